package cache

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	"github.com/commute-emissions/internal/pkg/metrics"
	"go.uber.org/zap"
)

type cachedRouteRepository struct {
	next    repository.RouteRepository
	cache   repository.MeasurementCache
	backend string
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedRouteRepository оборачивает провайдера маршрутов кешем измерений.
// Ошибки кеша только логируются, запрос уходит к провайдеру.
func NewCachedRouteRepository(
	next repository.RouteRepository,
	cache repository.MeasurementCache,
	backend string,
	ttl time.Duration,
	logger *zap.Logger,
) repository.RouteRepository {
	return &cachedRouteRepository{
		next:    next,
		cache:   cache,
		backend: backend,
		ttl:     ttl,
		logger:  logger,
	}
}

func (r *cachedRouteRepository) MeasureRoute(
	ctx context.Context,
	origin, destination domain.Location,
	transport domain.Transport,
) (*domain.RouteMeasurement, error) {
	key := MeasurementKey(origin, destination, transport)

	cached, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheErrors.WithLabelValues(r.backend, "get").Inc()
		r.logger.Warn("Measurement cache get failed", zap.String("key", key), zap.Error(err))
	case cached != nil:
		metrics.CacheHits.WithLabelValues(r.backend).Inc()
		return cached, nil
	default:
		metrics.CacheMisses.WithLabelValues(r.backend).Inc()
	}

	m, err := r.next.MeasureRoute(ctx, origin, destination, transport)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, m, r.ttl); err != nil {
		metrics.CacheErrors.WithLabelValues(r.backend, "set").Inc()
		r.logger.Warn("Measurement cache set failed", zap.String("key", key), zap.Error(err))
	}

	return m, nil
}

// MeasurementKey identifies a provider query. Transit is keyed by kind only
// since the vehicle type is resolved from the measurement itself.
func MeasurementKey(origin, destination domain.Location, transport domain.Transport) string {
	transportKey := transport.Key()
	if transport.Kind() == domain.KindTransit {
		transportKey = string(domain.KindTransit)
	}

	return strings.Join([]string{
		url.QueryEscape(origin.String()),
		url.QueryEscape(destination.String()),
		url.QueryEscape(transportKey),
	}, "|")
}
