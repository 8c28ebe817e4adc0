package app

import (
	"context"
	"log"

	"globetrotter-service/internal/domain"
)

// FallbackCityRepository tries the primary repository and degrades to the
// packaged sample set when it fails, so gameplay survives a dead city source.
type FallbackCityRepository struct {
	primary CityRepository
}

func NewFallbackCityRepository(primary CityRepository) *FallbackCityRepository {
	return &FallbackCityRepository{primary: primary}
}

func (r *FallbackCityRepository) GenerateCities(ctx context.Context, count int) ([]domain.City, error) {
	if r.primary != nil {
		cities, err := r.primary.GenerateCities(ctx, count)
		if err == nil {
			return cities, nil
		}
		log.Printf("city source failed, serving sample set: %v", err)
	}
	return SampleCities(count), nil
}
