package score

import (
	"context"
	"math"
	"sync"
	"time"
)

const (
	// DefaultPollInterval is how often the stored score is re-read to catch
	// writers that bypass this instance.
	DefaultPollInterval = 300 * time.Millisecond
	// epsilon absorbs float noise when comparing stored vs in-memory values.
	epsilon = 0.01
)

// Synchronizer owns the canonical in-memory score. Every mutation goes
// through it: the value is updated, written through to the Store, and
// published on the Bus, under one lock so publishes happen in call order.
//
// The background reconcile loop catches producers that write the Store
// directly instead of sharing this instance. In-process consumers should
// subscribe to the Bus; the Store matters for across-restart durability.
type Synchronizer struct {
	store    Store
	bus      *Bus
	interval time.Duration

	mu      sync.Mutex
	current float64
}

// NewSynchronizer builds a Synchronizer seeded from the Store. An absent or
// corrupt stored value seeds 0.
func NewSynchronizer(ctx context.Context, store Store, bus *Bus, interval time.Duration) *Synchronizer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Synchronizer{
		store:    store,
		bus:      bus,
		interval: interval,
		current:  store.ReadScore(ctx),
	}
}

// Current returns the authoritative in-memory score.
func (s *Synchronizer) Current() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetScore applies value, writes through, and publishes. Setting the same
// value twice leaves one observable state; the duplicate publish is allowed
// and consumers must tolerate it.
func (s *Synchronizer) SetScore(ctx context.Context, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = value
	s.store.WriteScore(ctx, value)
	s.bus.Publish(value)
}

// Increment applies a delta and returns the new score.
func (s *Synchronizer) Increment(ctx context.Context, delta float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current += delta
	s.store.WriteScore(ctx, s.current)
	s.bus.Publish(s.current)
	return s.current
}

// Reset sets the score back to zero.
func (s *Synchronizer) Reset(ctx context.Context) {
	s.SetScore(ctx, 0)
}

// Run polls the Store until ctx is done, adopting externally written values.
func (s *Synchronizer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcile(ctx)
		}
	}
}

// reconcile adopts the stored value when it drifted beyond epsilon and
// publishes the adoption. Reports whether an adoption happened.
func (s *Synchronizer) reconcile(ctx context.Context) bool {
	stored := s.store.ReadScore(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if math.Abs(stored-s.current) <= epsilon {
		return false
	}
	s.current = stored
	s.bus.Publish(stored)
	return true
}
