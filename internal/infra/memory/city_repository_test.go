package memory

import (
	"context"
	"testing"
	"time"

	"globetrotter-service/internal/domain"
)

func TestCityRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		CityLoader: NewStaticCityLoader(sampleCities()),
	}
	repo := NewCityRepository(loader, time.Minute)

	if _, err := repo.GenerateCities(context.Background(), 4); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GenerateCities(context.Background(), 4); err != nil {
		t.Fatalf("generate 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}

	// A different count is a distinct cache entry.
	if _, err := repo.GenerateCities(context.Background(), 8); err != nil {
		t.Fatalf("generate 8: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected second loader call for new count, got %d", loader.calls)
	}
}

func TestStaticCityLoaderCycles(t *testing.T) {
	loader := NewStaticCityLoader(sampleCities())
	cities, err := loader.LoadCities(context.Background(), 10)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cities) != 10 {
		t.Fatalf("expected 10 cities, got %d", len(cities))
	}
	if cities[0].ID != cities[4].ID {
		t.Fatalf("expected cycling over the base set")
	}
}

type countingLoader struct {
	CityLoader
	calls int
}

func (l *countingLoader) LoadCities(ctx context.Context, count int) ([]domain.City, error) {
	l.calls++
	return l.CityLoader.LoadCities(ctx, count)
}

func sampleCities() []domain.City {
	return []domain.City{
		{ID: "1", Name: "Paris", Country: "France", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
		{ID: "2", Name: "Tokyo", Country: "Japan", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
		{ID: "3", Name: "Cairo", Country: "Egypt", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
		{ID: "4", Name: "Lima", Country: "Peru", Clues: []string{"c"}, FunFacts: domain.StringList{"f"}},
	}
}
