package memory

import (
	"context"
	"sync"

	"globetrotter-service/internal/score"
)

// ScoreStore keeps the persisted score slot in process memory. Used for
// redis-less runs and tests; cross-instance visibility is then limited to
// this process, which matches the "score persisted only for this tab"
// degraded mode.
type ScoreStore struct {
	mu      sync.RWMutex
	raw     string
	present bool
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{}
}

func (s *ScoreStore) ReadScore(context.Context) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return 0
	}
	v, ok := score.Parse(s.raw)
	if !ok {
		return 0
	}
	return v
}

func (s *ScoreStore) WriteScore(_ context.Context, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = score.Format(value)
	s.present = true
}

// SetRaw overwrites the slot with an arbitrary string, standing in for an
// external writer (another instance, or corruption).
func (s *ScoreStore) SetRaw(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	s.present = true
}

// Raw exposes the stored string form.
func (s *ScoreStore) Raw() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw, s.present
}

// FlagStore is the in-memory challenge.FlagStore.
type FlagStore struct {
	mu    sync.RWMutex
	flags map[string]bool
}

func NewFlagStore() *FlagStore {
	return &FlagStore{flags: make(map[string]bool)}
}

func (s *FlagStore) IsSet(_ context.Context, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[key]
}

func (s *FlagStore) Set(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = true
}
