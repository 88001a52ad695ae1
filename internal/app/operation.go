package app

import (
	"time"

	"skillora/internal/market"
)

// Operation statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation is the record of one CLI invocation or server run. Its ID tags
// every log line written while it is open.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
	Status    string
	Err       error
}

// NewOperation starts an operation named name at the clock's current time.
func NewOperation(name string, clock market.Clock) *Operation {
	now := clock.Now().UTC()
	return &Operation{
		ID:        now.Format("20060102T150405Z"),
		Name:      name,
		StartedAt: now,
		Status:    StatusSuccess,
	}
}

// Fail marks the operation failed with err. A nil err is ignored; the first
// failure wins.
func (op *Operation) Fail(err error) {
	if err == nil || op.Err != nil {
		return
	}
	op.Status = StatusError
	op.Err = err
}

// Elapsed returns the time since the operation started.
func (op *Operation) Elapsed(clock market.Clock) time.Duration {
	return clock.Now().Sub(op.StartedAt)
}
