package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"globetrotter-service/internal/domain"
)

// CityLoader loads city JSONB rows from Postgres. Rows are drawn in random
// order so every load produces a fresh pool.
type CityLoader struct {
	pool *pgxpool.Pool
}

func NewCityLoader(pool *pgxpool.Pool) *CityLoader {
	return &CityLoader{pool: pool}
}

func (l *CityLoader) LoadCities(ctx context.Context, count int) ([]domain.City, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM cities ORDER BY random() LIMIT $1`, count)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, count)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		var city domain.City
		if err := json.Unmarshal(raw, &city); err != nil {
			return nil, fmt.Errorf("unmarshal city: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	if len(cities) == 0 {
		return nil, domain.ErrCitiesUnavailable
	}
	return cities, nil
}
