package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/commute-emissions/internal/config"
	"github.com/commute-emissions/internal/delivery/http/handler"
	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	"github.com/commute-emissions/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRouteRepository struct {
	mock.Mock
}

func (m *mockRouteRepository) MeasureRoute(ctx context.Context, origin, destination domain.Location, transport domain.Transport) (*domain.RouteMeasurement, error) {
	args := m.Called(ctx, origin, destination, transport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteMeasurement), args.Error(1)
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

const (
	origin      = "Flutstraße 23, 12439 Berlin"
	destination = "Am Friedrichshain 20D, 10407 Berlin"
	stopover    = "Alexanderplatz, Berlin"
)

func newTestServer(t *testing.T, repo *mockRouteRepository, redis HealthChecker) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	uc := usecase.NewEstimationUseCase(repo, domain.ModelRefined, domain.DefaultClassifier(), logger)
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 0}}

	return NewServer(cfg, logger, handler.NewRouteHandler(uc, logger), redis).App()
}

func query(params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		v.Set(k, val)
	}
	return v.Encode()
}

func doGet(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func carQuery() string {
	return query(map[string]string{
		"origin": origin, "destination": destination, "propulsion": "diesel", "size": "medium",
	})
}

func TestServer_RootRoutesReturnBareResult(t *testing.T) {
	repo := &mockRouteRepository{}
	repo.On("MeasureRoute", mock.Anything, domain.Location(origin), domain.Location(destination),
		domain.NewCar(domain.PropulsionDiesel, domain.CarSizeMedium)).
		Return(&domain.RouteMeasurement{DistanceMeters: 10000, DurationSeconds: 1200}, nil)

	app := newTestServer(t, repo, nil)

	status, body := doGet(t, app, "/car?"+carQuery())

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, map[string]interface{}{
		"distance":  float64(10000),
		"duration":  float64(1200),
		"emissions": float64(3100),
	}, body)
}

func TestServer_RootTransitRoute(t *testing.T) {
	repo := &mockRouteRepository{}
	repo.On("MeasureRoute", mock.Anything, mock.Anything, mock.Anything, domain.NewTransit()).
		Return(&domain.RouteMeasurement{
			DistanceMeters:  10000,
			DurationSeconds: 1800,
			VehicleTypes:    []string{domain.VehicleFerry, domain.VehicleBus, domain.VehicleSubway},
		}, nil)

	app := newTestServer(t, repo, nil)

	status, body := doGet(t, app, "/transit?"+query(map[string]string{"origin": origin, "destination": destination}))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1080), body["emissions"])
}

func TestServer_VersionedRouteUsesEnvelope(t *testing.T) {
	repo := &mockRouteRepository{}
	repo.On("MeasureRoute", mock.Anything, mock.Anything, mock.Anything, domain.NewCycle()).
		Return(&domain.RouteMeasurement{DistanceMeters: 8000, DurationSeconds: 2000}, nil)

	app := newTestServer(t, repo, nil)

	status, body := doGet(t, app, "/api/v1/routes/cycle?"+query(map[string]string{"origin": origin, "destination": destination}))

	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "cycle", data["kind"])
	assert.Equal(t, "Cycling", data["label"])
	assert.Equal(t, float64(0), data["emissions"])

	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, domain.ModelVersionRefined, meta["model"])
	assert.NotEmpty(t, meta["request_id"])
}

func TestServer_Compare(t *testing.T) {
	repo := &mockRouteRepository{}
	repo.On("MeasureRoute", mock.Anything, mock.Anything, mock.Anything, domain.NewTransit()).
		Return(&domain.RouteMeasurement{DistanceMeters: 10000, DurationSeconds: 1800, VehicleTypes: []string{domain.VehicleBus}}, nil)
	repo.On("MeasureRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.RouteMeasurement{DistanceMeters: 10000, DurationSeconds: 1200}, nil)

	app := newTestServer(t, repo, nil)

	q := query(map[string]string{
		"origin": origin, "destination": destination, "propulsion": "diesel", "size": "medium", "stopover": stopover,
	})
	status, body := doGet(t, app, "/api/v1/routes/compare?"+q)

	require.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	results := data["results"].([]interface{})
	require.Len(t, results, 5)

	savings := make(map[string]float64, len(results))
	for _, r := range results {
		entry := r.(map[string]interface{})
		savings[entry["kind"].(string)] = entry["savings_percent"].(float64)
	}
	assert.Equal(t, map[string]float64{
		"car": 0, "carpool": 50, "cycle": 100, "transit": 66, "walk": 100,
	}, savings)
}

func TestServer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		repoErr  error
		status   int
		code     string
		measured bool
	}{
		{
			name:   "unknown kind",
			path:   "/api/v1/routes/plane?" + carQuery(),
			status: fiber.StatusBadRequest,
			code:   "INVALID_TRANSPORT_TYPE",
		},
		{
			name:   "missing origin",
			path:   "/car?" + query(map[string]string{"destination": destination, "propulsion": "diesel", "size": "medium"}),
			status: fiber.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name:   "invalid propulsion",
			path:   "/car?" + query(map[string]string{"origin": origin, "destination": destination, "propulsion": "steam", "size": "medium"}),
			status: fiber.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name:   "carpool without stopover",
			path:   "/carpool?" + carQuery(),
			status: fiber.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name:   "compare without stopover",
			path:   "/api/v1/routes/compare?" + carQuery(),
			status: fiber.StatusBadRequest,
			code:   "INVALID_REQUEST",
		},
		{
			name:     "route not found",
			path:     "/walk?" + query(map[string]string{"origin": origin, "destination": "Atlantis"}),
			repoErr:  fmt.Errorf("%w: directions status ZERO_RESULTS", repository.ErrRouteUnavailable),
			status:   fiber.StatusNotFound,
			code:     "ROUTE_NOT_FOUND",
			measured: true,
		},
		{
			name:     "provider failure",
			path:     "/api/v1/routes/walk?" + query(map[string]string{"origin": origin, "destination": destination}),
			repoErr:  fmt.Errorf("%w: directions API error: status 500", repository.ErrProvider),
			status:   fiber.StatusBadGateway,
			code:     "ROUTING_PROVIDER_ERROR",
			measured: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRouteRepository{}
			if tt.measured {
				repo.On("MeasureRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.repoErr)
			}

			app := newTestServer(t, repo, nil)
			status, body := doGet(t, app, tt.path)

			assert.Equal(t, tt.status, status)
			errBody := body["error"].(map[string]interface{})
			assert.Equal(t, tt.code, errBody["code"])

			if !tt.measured {
				repo.AssertNotCalled(t, "MeasureRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestServer_Health(t *testing.T) {
	t.Run("without redis", func(t *testing.T) {
		app := newTestServer(t, &mockRouteRepository{}, nil)

		status, body := doGet(t, app, "/api/v1/health")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("redis down", func(t *testing.T) {
		app := newTestServer(t, &mockRouteRepository{}, healthFunc(func(context.Context) error {
			return errors.New("connection refused")
		}))

		status, body := doGet(t, app, "/api/v1/health")
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Equal(t, "degraded", body["status"])
	})
}

func TestServer_Metrics(t *testing.T) {
	app := newTestServer(t, &mockRouteRepository{}, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}
