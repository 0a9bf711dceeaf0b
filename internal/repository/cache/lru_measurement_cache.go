package cache

import (
	"context"
	"slices"
	"time"

	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type lruMeasurementCache struct {
	entries *expirable.LRU[string, domain.RouteMeasurement]
}

// NewLRUMeasurementCache - кеш измерений в памяти процесса.
// TTL задаётся один раз при создании, ttl в Set не используется.
func NewLRUMeasurementCache(size int, ttl time.Duration) repository.MeasurementCache {
	return &lruMeasurementCache{
		entries: expirable.NewLRU[string, domain.RouteMeasurement](size, nil, ttl),
	}
}

func (c *lruMeasurementCache) Get(_ context.Context, key string) (*domain.RouteMeasurement, error) {
	m, ok := c.entries.Get(key)
	if !ok {
		return nil, nil
	}
	m.VehicleTypes = slices.Clone(m.VehicleTypes)
	return &m, nil
}

func (c *lruMeasurementCache) Set(_ context.Context, key string, m *domain.RouteMeasurement, _ time.Duration) error {
	stored := *m
	stored.VehicleTypes = slices.Clone(m.VehicleTypes)
	c.entries.Add(key, stored)
	return nil
}
