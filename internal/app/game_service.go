package app

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/game"
	"globetrotter-service/internal/score"
)

// DefaultCityCount is how many cities one game pool holds.
const DefaultCityCount = 20

// CityRepository produces the city pool for a game (cached/backing store).
type CityRepository interface {
	GenerateCities(ctx context.Context, count int) ([]domain.City, error)
}

// InvitationDirectory stores and resolves challenge invitations.
type InvitationDirectory interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error
	GetInvitation(ctx context.Context, id string) (domain.Invitation, error)
}

// GameService contains the core use cases: joining, opening a game engine
// over a fresh city pool, and issuing/resolving invitations.
type GameService struct {
	cities    CityRepository
	invites   InvitationDirectory
	baseURL   string
	cityCount int
	now       func() time.Time
	rnd       *rand.Rand
}

// ServiceOption tweaks GameService construction.
type ServiceOption func(*GameService)

// WithCityCount overrides the pool size per game.
func WithCityCount(n int) ServiceOption {
	return func(s *GameService) {
		if n > 0 {
			s.cityCount = n
		}
	}
}

// WithServiceClock is test-only for deterministic invitation timestamps.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *GameService) { s.now = now }
}

func NewGameService(cities CityRepository, invites InvitationDirectory, baseURL string, opts ...ServiceOption) *GameService {
	s := &GameService{
		cities:    cities,
		invites:   invites,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		cityCount: DefaultCityCount,
		now:       time.Now,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Join validates the display name and fills in identity defaults: a blank id
// gets a fresh UUID, a blank name is rejected, and Anonymous callers can ask
// for a generated name via DefaultPlayerName first.
func (s *GameService) Join(id, name string) (domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Player{}, domain.ErrEmptyPlayerName
	}
	if id == "" {
		id = uuid.NewString()
	}
	return domain.Player{ID: id, Name: name}, nil
}

// DefaultPlayerName generates a placeholder display name.
func (s *GameService) DefaultPlayerName() string {
	return "Player" + strconv.Itoa(s.rnd.Intn(1000))
}

// NewEngine fetches a fresh city pool and opens a round engine feeding syncr.
func (s *GameService) NewEngine(ctx context.Context, syncr *score.Synchronizer) (*game.Engine, error) {
	cities, err := s.cities.GenerateCities(ctx, s.cityCount)
	if err != nil {
		return nil, err
	}
	return game.NewEngine(cities, syncr)
}

// CreateInvitation issues a challenge at the player's current score and
// returns it with its shareable link.
func (s *GameService) CreateInvitation(ctx context.Context, player domain.Player, currentScore float64) (domain.Invitation, string, error) {
	inv := domain.Invitation{
		ID:          s.newInvitationID(),
		InviterID:   player.ID,
		InviterName: player.Name,
		Score:       currentScore,
		CreatedAt:   s.now(),
	}
	if err := s.invites.CreateInvitation(ctx, inv); err != nil {
		return domain.Invitation{}, "", err
	}
	return inv, s.InvitationLink(inv.ID), nil
}

// GetInvitation resolves a challenge link.
func (s *GameService) GetInvitation(ctx context.Context, id string) (domain.Invitation, error) {
	return s.invites.GetInvitation(ctx, id)
}

// InvitationLink renders the shareable URL for an invitation id.
func (s *GameService) InvitationLink(id string) string {
	return s.baseURL + "/invite/" + id
}

// newInvitationID mints ids like inv_m8xq1c_k3f9: a base36 timestamp plus a
// short random suffix, readable enough to paste into a chat message.
func (s *GameService) newInvitationID() string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = alphabet[s.rnd.Intn(len(alphabet))]
	}
	return fmt.Sprintf("inv_%s_%s", strconv.FormatInt(s.now().Unix(), 36), suffix)
}
