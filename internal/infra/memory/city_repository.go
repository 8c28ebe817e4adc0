package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"globetrotter-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CityLoader fetches city sets from a backing store (DB, remote generator).
type CityLoader interface {
	LoadCities(ctx context.Context, count int) ([]domain.City, error)
}

// CityRepository caches generated city sets with TTL to avoid repeated
// loader hits; one cache entry per requested count.
type CityRepository struct {
	loader CityLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedCities
}

type cachedCities struct {
	cities    []domain.City
	expiresAt time.Time
}

func NewCityRepository(loader CityLoader, ttl time.Duration) *CityRepository {
	return &CityRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCities),
	}
}

func (r *CityRepository) GenerateCities(ctx context.Context, count int) ([]domain.City, error) {
	key := strconv.Itoa(count)
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.cities, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(key, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[key]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.cities, nil
		}
		r.mu.RUnlock()

		cities, err := r.loader.LoadCities(ctx, count)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[key] = cachedCities{
			cities:    cities,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return cities, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.City), nil
}

func (r *CityRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticCityLoader serves a fixed city list, cycling entries when more are
// requested than it holds (useful for tests and redis/postgres-less demos).
type StaticCityLoader struct {
	cities []domain.City
}

func NewStaticCityLoader(cities []domain.City) *StaticCityLoader {
	return &StaticCityLoader{cities: cities}
}

func (l *StaticCityLoader) LoadCities(_ context.Context, count int) ([]domain.City, error) {
	if len(l.cities) == 0 {
		return nil, domain.ErrCitiesUnavailable
	}
	if count <= len(l.cities) {
		return append([]domain.City(nil), l.cities[:count]...), nil
	}
	out := make([]domain.City, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, l.cities[i%len(l.cities)])
	}
	return out, nil
}
