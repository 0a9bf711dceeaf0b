package repository

import (
	"context"
	"time"

	"github.com/commute-emissions/internal/domain"
)

// MeasurementCache определяет методы для кеширования измерений маршрутов
type MeasurementCache interface {
	// Get получает измерение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) (*domain.RouteMeasurement, error)

	// Set сохраняет измерение в кеше с TTL
	Set(ctx context.Context, key string, m *domain.RouteMeasurement, ttl time.Duration) error
}
