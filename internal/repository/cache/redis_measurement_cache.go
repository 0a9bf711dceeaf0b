package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const measurementKeyPrefix = "route:"

type redisMeasurementCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisMeasurementCache - кеш измерений в Redis, значения хранятся в JSON
func NewRedisMeasurementCache(client *redis.Client, logger *zap.Logger) repository.MeasurementCache {
	return &redisMeasurementCache{
		client: client,
		logger: logger,
	}
}

func (r *redisMeasurementCache) Get(ctx context.Context, key string) (*domain.RouteMeasurement, error) {
	val, err := r.client.Get(ctx, measurementKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var m domain.RouteMeasurement
	if err := json.Unmarshal(val, &m); err != nil {
		return nil, fmt.Errorf("cache decode error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return &m, nil
}

func (r *redisMeasurementCache) Set(ctx context.Context, key string, m *domain.RouteMeasurement, ttl time.Duration) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("cache encode error: %w", err)
	}

	if err := r.client.Set(ctx, measurementKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}
