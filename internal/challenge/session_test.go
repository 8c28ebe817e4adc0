package challenge_test

import (
	"context"
	"testing"
	"time"

	"globetrotter-service/internal/challenge"
	"globetrotter-service/internal/infra/memory"
	"globetrotter-service/internal/score"
)

func newFixture(ctx context.Context, t *testing.T, initial float64, now *time.Time) (*score.Synchronizer, *score.Bus, *memory.FlagStore, func() time.Time) {
	t.Helper()
	store := memory.NewScoreStore()
	bus := score.NewBus()
	syncr := score.NewSynchronizer(ctx, store, bus, 0)
	syncr.SetScore(ctx, initial)
	clock := func() time.Time { return *now }
	return syncr, bus, memory.NewFlagStore(), clock
}

func TestCelebrationFiresOnceOnBeatingChallenge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	syncr, bus, flags, clock := newFixture(ctx, t, 19, &now)

	session := challenge.NewSession(ctx, "Alex", 20, syncr, bus, flags, challenge.WithClock(clock))

	if session.HasBeaten() {
		t.Fatalf("19 must not beat 20")
	}

	session.Observe(ctx, 21)
	if !session.HasBeaten() {
		t.Fatalf("expected challenge beaten at 21")
	}
	if !session.Celebrating() {
		t.Fatalf("expected celebration raised on false->true transition")
	}
	if !flags.IsSet(ctx, challenge.FlagKey("Alex", 20)) {
		t.Fatalf("expected persisted beaten flag")
	}

	// Celebration auto-clears after its TTL.
	now = now.Add(challenge.DefaultCelebrationTTL + time.Second)
	if session.Celebrating() {
		t.Fatalf("expected celebration cleared after TTL")
	}

	// A further increase must not re-fire.
	session.Observe(ctx, 22)
	if session.Celebrating() {
		t.Fatalf("celebration must fire at most once per challenge")
	}
}

func TestPresetFlagSuppressesCelebration(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	syncr, bus, flags, clock := newFixture(ctx, t, 25, &now)

	flags.Set(ctx, challenge.FlagKey("Alex", 20))

	session := challenge.NewSession(ctx, "Alex", 20, syncr, bus, flags, challenge.WithClock(clock))

	if !session.HasBeaten() {
		t.Fatalf("expected beaten state from persisted flag")
	}
	if session.Celebrating() {
		t.Fatalf("expected celebration suppressed for previously beaten challenge")
	}
}

func TestBeatingAtConstructionCelebrates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	syncr, bus, flags, clock := newFixture(ctx, t, 30, &now)

	session := challenge.NewSession(ctx, "Jordan", 20, syncr, bus, flags, challenge.WithClock(clock))

	if !session.HasBeaten() || !session.Celebrating() {
		t.Fatalf("expected fresh beaten challenge to celebrate at construction")
	}
}

func TestRunConsumesBusUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	syncr, bus, flags, clock := newFixture(ctx, t, 19, &now)

	session := challenge.NewSession(ctx, "Alex", 20, syncr, bus, flags, challenge.WithClock(clock))

	// The subscription belongs to Run: before it starts, published scores
	// are not buffered for the session.
	syncr.SetScore(ctx, 21)
	if session.HasBeaten() {
		t.Fatalf("session must not consume bus updates before Run starts")
	}
	syncr.SetScore(ctx, 19)

	go session.Run(ctx)

	deadline := time.After(time.Second)
	for !session.HasBeaten() {
		select {
		case <-deadline:
			t.Fatalf("session never observed the published score")
		default:
			syncr.SetScore(ctx, 21)
			time.Sleep(5 * time.Millisecond)
		}
	}
}

func TestProgressFloorAndCap(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	syncr, bus, flags, clock := newFixture(ctx, t, 0, &now)
	session := challenge.NewSession(ctx, "Alex", 20, syncr, bus, flags, challenge.WithClock(clock))

	if got := session.Progress(); got != 5 {
		t.Fatalf("expected floor 5%% at score 0, got %v", got)
	}

	session.Observe(ctx, 10)
	if got := session.Progress(); got != 50 {
		t.Fatalf("expected 50%%, got %v", got)
	}

	session.Observe(ctx, 80)
	if got := session.Progress(); got != 100 {
		t.Fatalf("expected cap 100%%, got %v", got)
	}
}
