package market

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// Randomizer supplies the random numbers used for demo values
// (job budgets, default match scores).
type Randomizer interface {
	// IntN returns a number in [0, n).
	IntN(n int) int
}

// MathRandom draws from math/rand/v2.
type MathRandom struct{}

func (MathRandom) IntN(n int) int { return rand.IntN(n) }

// Latency simulates the network round trip of a remote backend.
type Latency interface {
	// Wait blocks for d or until ctx is done, whichever comes first.
	Wait(ctx context.Context, d time.Duration) error
}

// RealLatency sleeps for the requested duration.
type RealLatency struct{}

func (RealLatency) Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoLatency returns immediately unless ctx is already done.
type NoLatency struct{}

func (NoLatency) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
