package testutil

import (
	"testing"

	"skillora/internal/market"
	"skillora/internal/store"
)

// TestService bundles a Service with the stubs it was built from.
type TestService struct {
	*market.Service
	Store   *store.MemoryStore
	Clock   *StubClock
	IDs     *StubIDGenerator
	Latency *RecordingLatency
}

// NewTestService creates a Service on a fresh memory store with a fixed
// clock, sequential ids, random values of zero and no real delay.
func NewTestService(t *testing.T) *TestService {
	t.Helper()
	return NewTestServiceWithStore(t, store.NewMemoryStore())
}

// NewTestServiceWithStore is NewTestService on a caller-supplied memory store,
// for tests that model two services sharing one store.
func NewTestServiceWithStore(t *testing.T, s *store.MemoryStore) *TestService {
	t.Helper()

	ts := &TestService{
		Store:   s,
		Clock:   FixedClock(),
		IDs:     NewStubIDGenerator(),
		Latency: &RecordingLatency{},
	}
	ts.Service = market.NewService(s, market.NewNopLogger(), ts.Clock, ts.IDs, StubRandom{}, ts.Latency)

	t.Cleanup(func() { s.Close() })
	return ts
}
