package cache

import (
	"fmt"

	"github.com/commute-emissions/internal/config"
	"github.com/commute-emissions/internal/domain/repository"
	"go.uber.org/zap"
)

// WrapRouteRepository подключает кеш измерений согласно конфигурации.
// redis нужен только для бэкенда redis.
func WrapRouteRepository(
	next repository.RouteRepository,
	cfg *config.CacheConfig,
	redis *Redis,
	logger *zap.Logger,
) (repository.RouteRepository, error) {
	var mc repository.MeasurementCache

	switch cfg.Backend {
	case config.CacheBackendNone:
		logger.Info("Measurement cache disabled")
		return next, nil
	case config.CacheBackendMemory:
		mc = NewLRUMeasurementCache(cfg.LRUSize, cfg.TTL)
	case config.CacheBackendRedis:
		if redis == nil {
			return nil, fmt.Errorf("redis cache backend requires a redis connection")
		}
		mc = NewRedisMeasurementCache(redis.Client(), logger)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}

	logger.Info("Measurement cache enabled",
		zap.String("backend", cfg.Backend),
		zap.Duration("ttl", cfg.TTL))

	return NewCachedRouteRepository(next, mc, cfg.Backend, cfg.TTL, logger), nil
}
