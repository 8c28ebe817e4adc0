package app_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"globetrotter-service/internal/app"
	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/infra/memory"
	"globetrotter-service/internal/score"
)

func newTestService(opts ...app.ServiceOption) *app.GameService {
	cities := memory.NewCityRepository(memory.NewStaticCityLoader(app.SampleCities(4)), 5*time.Minute)
	return app.NewGameService(cities, memory.NewInvitationDirectory(), "https://globetrotter.example", opts...)
}

func TestJoinValidatesName(t *testing.T) {
	service := newTestService()

	if _, err := service.Join("", "   "); !errors.Is(err, domain.ErrEmptyPlayerName) {
		t.Fatalf("expected empty-name error, got %v", err)
	}

	player, err := service.Join("", "Alice")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if player.Name != "Alice" || player.ID == "" {
		t.Fatalf("expected generated id and trimmed name, got %+v", player)
	}

	// An explicit id is kept.
	player, err = service.Join("p-1", "Bob")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if player.ID != "p-1" {
		t.Fatalf("expected id preserved, got %+v", player)
	}
}

func TestDefaultPlayerNameShape(t *testing.T) {
	service := newTestService()
	name := service.DefaultPlayerName()
	if !strings.HasPrefix(name, "Player") {
		t.Fatalf("expected Player### shape, got %q", name)
	}
}

func TestNewEngineUsesConfiguredPool(t *testing.T) {
	ctx := context.Background()
	service := newTestService(app.WithCityCount(4))
	syncr := score.NewSynchronizer(ctx, memory.NewScoreStore(), score.NewBus(), 0)

	engine, err := service.NewEngine(ctx, syncr)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	snap := engine.StartRound()
	if len(snap.Options) != 4 {
		t.Fatalf("expected a playable round with 4 options, got %+v", snap)
	}
}

func TestInvitationRoundTrip(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	service := newTestService(app.WithServiceClock(func() time.Time { return created }))

	player := domain.Player{ID: "p-1", Name: "Alice"}
	inv, link, err := service.CreateInvitation(ctx, player, 12.5)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	wantPrefix := "inv_" + strconv.FormatInt(created.Unix(), 36) + "_"
	if !strings.HasPrefix(inv.ID, wantPrefix) || len(inv.ID) != len(wantPrefix)+4 {
		t.Fatalf("expected inv_<ts36>_<4 random> id shape for %v, got %q", created, inv.ID)
	}
	if link != "https://globetrotter.example/invite/"+inv.ID {
		t.Fatalf("unexpected link %q", link)
	}

	got, err := service.GetInvitation(ctx, inv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.InviterName != "Alice" || got.Score != 12.5 || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected invitation %+v", got)
	}
}

func TestGetInvitationNotFound(t *testing.T) {
	service := newTestService()
	if _, err := service.GetInvitation(context.Background(), "inv_missing"); !errors.Is(err, domain.ErrInvitationNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestFallbackServesSampleSetOnFailure(t *testing.T) {
	ctx := context.Background()
	fallback := app.NewFallbackCityRepository(failingRepo{})

	cities, err := fallback.GenerateCities(ctx, 8)
	if err != nil {
		t.Fatalf("fallback must not fail: %v", err)
	}
	if len(cities) != 8 {
		t.Fatalf("expected 8 sample cities, got %d", len(cities))
	}
}

func TestFallbackWithoutPrimaryServesSamples(t *testing.T) {
	fallback := app.NewFallbackCityRepository(nil)
	cities, err := fallback.GenerateCities(context.Background(), 4)
	if err != nil || len(cities) != 4 {
		t.Fatalf("expected sample set, got %v %v", cities, err)
	}
}

type failingRepo struct{}

func (failingRepo) GenerateCities(context.Context, int) ([]domain.City, error) {
	return nil, domain.ErrCitiesUnavailable
}
