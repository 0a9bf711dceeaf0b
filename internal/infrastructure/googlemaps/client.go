package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/commute-emissions/internal/config"
	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	"github.com/commute-emissions/internal/pkg/metrics"
	"github.com/commute-emissions/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type client struct {
	httpClient    *http.Client
	baseURL       string
	apiKey        string
	departureTime int64
	limiter       *rate.Limiter
	logger        *zap.Logger
}

// NewClient создает клиент Google Directions API
func NewClient(cfg *config.MapsConfig, logger *zap.Logger) repository.RouteRepository {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		departureTime: cfg.DepartureTime,
		limiter:       rate.NewLimiter(limit, burst),
		logger:        logger,
	}
}

// MeasureRoute запрашивает маршрут у Directions API и возвращает расстояние и
// время первого участка первого маршрута. Для транзита возвращаются типы
// транспорта всех транзитных шагов в порядке следования.
func (c *client) MeasureRoute(
	ctx context.Context,
	origin, destination domain.Location,
	transport domain.Transport,
) (result *domain.RouteMeasurement, err error) {
	mode := string(transport.RoutingMode())

	ctx, span := tracing.StartSpan(ctx, "googlemaps.MeasureRoute", trace.WithAttributes(
		attribute.String(tracing.AttrRoutingMode, mode),
		attribute.String(tracing.AttrTransportKey, transport.Key()),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.ObserveRoutingRequest(mode, start, err)
		if err != nil {
			tracing.RecordError(ctx, err)
		}
	}()

	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %w", repository.ErrProvider, err)
	}
	metrics.RateLimitWaitTime.Observe(time.Since(waitStart).Seconds())

	reqURL := c.buildURL(origin, destination, transport)

	c.logger.Debug("Calling Directions API",
		zap.String("origin", origin.String()),
		zap.String("destination", destination.String()),
		zap.String("mode", mode),
		zap.Bool("stopover", transport.HasStopover()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to create request: %w", repository.ErrProvider, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to execute request: %w", repository.ErrProvider, err)
	}
	defer resp.Body.Close()

	tracing.SetAttributes(ctx, attribute.Int(tracing.AttrHTTPStatus, resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Directions API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("%w: directions API error: status %d", repository.ErrProvider, resp.StatusCode)
	}

	var directions directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&directions); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to decode response: %w", repository.ErrProvider, err)
	}

	switch directions.Status {
	case statusOK:
	case statusNotFound, statusZeroResults:
		c.logger.Info("Directions API found no route",
			zap.String("status", directions.Status),
			zap.String("mode", mode))
		return nil, fmt.Errorf("%w: directions status %s", repository.ErrRouteUnavailable, directions.Status)
	default:
		c.logger.Error("Directions API returned non-OK status",
			zap.String("status", directions.Status),
			zap.String("error_message", directions.ErrorMessage))
		return nil, fmt.Errorf("%w: directions status %s: %s", repository.ErrProvider, directions.Status, directions.ErrorMessage)
	}

	if len(directions.Routes) == 0 || len(directions.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: response contains no route legs", repository.ErrRouteUnavailable)
	}

	first := directions.Routes[0].Legs[0]
	result = &domain.RouteMeasurement{
		DistanceMeters:  first.Distance.Value,
		DurationSeconds: first.Duration.Value,
	}

	if transport.RoutingMode() == domain.RoutingModeTransit {
		result.VehicleTypes = vehicleTypes(first.Steps)
	}

	tracing.SetAttributes(ctx, attribute.Int(tracing.AttrDistance, result.DistanceMeters))

	c.logger.Debug("Directions API call successful",
		zap.Int("distance_m", result.DistanceMeters),
		zap.Int("duration_s", result.DurationSeconds),
		zap.Strings("vehicle_types", result.VehicleTypes))

	return result, nil
}

func (c *client) buildURL(origin, destination domain.Location, transport domain.Transport) string {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("origin", origin.String())
	params.Set("destination", destination.String())
	params.Set("mode", string(transport.RoutingMode()))
	params.Set("departure_time", strconv.FormatInt(c.departureTime, 10))
	if transport.HasStopover() {
		// via: passes through the stopover without splitting the route into legs
		params.Set("waypoints", "via:"+transport.Stopover().String())
	}

	return fmt.Sprintf("%s/directions/json?%s", c.baseURL, params.Encode())
}

// vehicleTypes collects the vehicle type of every transit step in travel order
func vehicleTypes(steps []step) []string {
	types := make([]string, 0, len(steps))
	for _, s := range steps {
		if s.TransitDetails == nil {
			continue
		}
		types = append(types, s.TransitDetails.Line.Vehicle.Type)
	}
	return types
}
