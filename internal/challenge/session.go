package challenge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"globetrotter-service/internal/score"
)

// DefaultCelebrationTTL is how long the one-shot celebration stays raised.
const DefaultCelebrationTTL = 5 * time.Second

// floorPercent keeps a visible sliver of progress even at score 0.
const floorPercent = 5.0

// FlagStore persists one-shot flags such as the challenge-beaten marker.
// Failures follow the score.Store rules: reads report unset, writes may drop.
type FlagStore interface {
	IsSet(ctx context.Context, key string) bool
	Set(ctx context.Context, key string)
}

// FlagKey identifies one distinct challenge: same inviter at a different
// score is a new challenge with its own celebration.
func FlagKey(inviterName string, inviterScore float64) string {
	return fmt.Sprintf("beat_challenge_%s_%s", inviterName, score.Format(inviterScore))
}

// Session tracks one accepted invitation against the live score. It owns the
// beaten/celebration contract; rendering is the caller's problem.
type Session struct {
	inviterName  string
	inviterScore float64
	flags        FlagStore
	ttl          time.Duration
	now          func() time.Time

	bus *score.Bus

	mu             sync.Mutex
	current        float64
	beaten         bool
	celebrateUntil time.Time
}

// Option tweaks Session construction.
type Option func(*Session)

// WithClock injects a deterministic clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithCelebrationTTL overrides how long Celebrating stays true.
func WithCelebrationTTL(d time.Duration) Option {
	return func(s *Session) { s.ttl = d }
}

// NewSession builds a session seeded from the synchronizer's current score.
// If the persisted flag already marks this challenge beaten, the celebration
// is suppressed but the beaten state sticks. The bus subscription is taken
// only inside Run; callers that feed updates through Observe never attach to
// the bus at all.
func NewSession(ctx context.Context, inviterName string, inviterScore float64, syncr *score.Synchronizer, bus *score.Bus, flags FlagStore, opts ...Option) *Session {
	s := &Session{
		inviterName:  inviterName,
		inviterScore: inviterScore,
		flags:        flags,
		bus:          bus,
		ttl:          DefaultCelebrationTTL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.beaten = flags.IsSet(ctx, FlagKey(inviterName, inviterScore))
	s.observe(ctx, syncr.Current())
	return s
}

// Run subscribes to the bus and consumes score updates until ctx is done.
// The subscription is released on return.
func (s *Session) Run(ctx context.Context) {
	updates, cancel := s.bus.Subscribe(score.ChannelCanonical)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-updates:
			if !ok {
				return
			}
			s.observe(ctx, v)
		}
	}
}

// Observe applies one score update out of band.
func (s *Session) Observe(ctx context.Context, current float64) {
	s.observe(ctx, current)
}

func (s *Session) observe(ctx context.Context, current float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = current
	if s.beaten || current <= s.inviterScore {
		return
	}
	// First time past the inviter: persist the dedup flag and raise the
	// one-shot celebration.
	s.beaten = true
	s.flags.Set(ctx, FlagKey(s.inviterName, s.inviterScore))
	s.celebrateUntil = s.now().Add(s.ttl)
}

// HasBeaten reports whether the current player has exceeded the inviter.
func (s *Session) HasBeaten() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beaten
}

// Celebrating reports whether the one-shot celebration is still live.
func (s *Session) Celebrating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.celebrateUntil)
}

// Progress is the percentage toward the inviter's score, floored at 5 so the
// bar never renders empty, capped at 100.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *Session) progressLocked() float64 {
	target := s.inviterScore
	if target < 1 {
		target = 1
	}
	p := s.current / target * 100
	if p < floorPercent {
		p = floorPercent
	}
	if p > 100 {
		p = 100
	}
	return p
}

// Snapshot bundles the view-facing state in one read.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		InviterName:  s.inviterName,
		InviterScore: s.inviterScore,
		CurrentScore: s.current,
		HasBeaten:    s.beaten,
		Celebrating:  s.now().Before(s.celebrateUntil),
		Progress:     s.progressLocked(),
	}
}

// State is a read-only snapshot for rendering.
type State struct {
	InviterName  string  `json:"inviterName"`
	InviterScore float64 `json:"inviterScore"`
	CurrentScore float64 `json:"currentScore"`
	HasBeaten    bool    `json:"hasBeaten"`
	Celebrating  bool    `json:"celebrating"`
	Progress     float64 `json:"progress"`
}
