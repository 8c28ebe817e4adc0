package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"globetrotter-service/internal/domain"
	"globetrotter-service/internal/infra/memory"
)

// CityRepository caches generated city sets in Redis as JSON blobs, one key
// per requested count, and falls back to the loader on cache miss.
// Cached as: SET cities:generated:{count} <json> EX ttl
type CityRepository struct {
	client *redis.Client
	loader memory.CityLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCityRepository(client *redis.Client, loader memory.CityLoader, ttl time.Duration) *CityRepository {
	return &CityRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CityRepository) GenerateCities(ctx context.Context, count int) ([]domain.City, error) {
	key := r.cacheKey(count)

	if cities, ok := r.fromCache(ctx, key); ok {
		return cities, nil
	}

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if cities, ok := r.fromCache(ctx, key); ok {
			return cities, nil
		}

		cities, err := r.loader.LoadCities(ctx, count)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(cities); err == nil {
			// best-effort cache fill
			_ = r.client.Set(ctx, key, data, r.ttlWithJitter()).Err()
		}
		return cities, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.City), nil
}

func (r *CityRepository) fromCache(ctx context.Context, key string) ([]domain.City, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	var cities []domain.City
	if err := json.Unmarshal(raw, &cities); err != nil || len(cities) == 0 {
		return nil, false
	}
	return cities, true
}

func (r *CityRepository) cacheKey(count int) string {
	return "cities:generated:" + strconv.Itoa(count)
}

func (r *CityRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
