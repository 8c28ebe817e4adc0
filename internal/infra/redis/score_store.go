package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"globetrotter-service/internal/score"
)

// DefaultScoreKey is the well-known slot every surface reads and writes.
const DefaultScoreKey = "globetrotter:score"

// ScoreStore persists the score in Redis. Errors are swallowed per the Store
// contract: a failed read is an absent value, a failed write is dropped.
// Writes are plain SET, so two instances racing are last-write-wins.
type ScoreStore struct {
	client *redis.Client
	key    string
}

func NewScoreStore(client *redis.Client, key string) *ScoreStore {
	if key == "" {
		key = DefaultScoreKey
	}
	return &ScoreStore{client: client, key: key}
}

func (s *ScoreStore) ReadScore(ctx context.Context) float64 {
	raw, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		return 0
	}
	v, ok := score.Parse(raw)
	if !ok {
		return 0
	}
	return v
}

func (s *ScoreStore) WriteScore(ctx context.Context, value float64) {
	_ = s.client.Set(ctx, s.key, score.Format(value), 0).Err()
}

// FlagStore persists one-shot flags (challenge-beaten markers) in Redis.
type FlagStore struct {
	client *redis.Client
	prefix string
}

func NewFlagStore(client *redis.Client) *FlagStore {
	return &FlagStore{client: client, prefix: "globetrotter:flag:"}
}

func (s *FlagStore) IsSet(ctx context.Context, key string) bool {
	raw, err := s.client.Get(ctx, s.prefix+key).Result()
	return err == nil && raw == "true"
}

func (s *FlagStore) Set(ctx context.Context, key string) {
	_ = s.client.Set(ctx, s.prefix+key, "true", 0).Err()
}
