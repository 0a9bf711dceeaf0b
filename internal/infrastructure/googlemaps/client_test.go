package googlemaps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/commute-emissions/internal/config"
	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	home = domain.Location("Flutstraße 23, 12439 Berlin")
	work = domain.Location("Am Friedrichshain 20D, 10407 Berlin")
)

func newTestClient(t *testing.T, handler http.HandlerFunc) repository.RouteRepository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.MapsConfig{
		APIKey:        "test_key",
		BaseURL:       server.URL,
		Timeout:       5 * time.Second,
		DepartureTime: 1679896800,
	}
	return NewClient(cfg, zap.NewNop())
}

func singleLeg(distance, duration int, steps ...step) directionsResponse {
	return directionsResponse{
		Status: statusOK,
		Routes: []route{{
			Legs: []leg{{
				Distance: textValue{Value: distance},
				Duration: textValue{Value: duration},
				Steps:    steps,
			}},
		}},
	}
}

func transitStep(vehicleType string) step {
	return step{
		TravelMode:     "TRANSIT",
		TransitDetails: &transitDetails{Line: transitLine{Vehicle: vehicle{Type: vehicleType}}},
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_MeasureRoute(t *testing.T) {
	t.Run("car request parameters", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/directions/json", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "test_key", q.Get("key"))
			assert.Equal(t, string(home), q.Get("origin"))
			assert.Equal(t, string(work), q.Get("destination"))
			assert.Equal(t, "driving", q.Get("mode"))
			assert.Equal(t, "1679896800", q.Get("departure_time"))
			assert.Empty(t, q.Get("waypoints"))

			writeJSON(w, singleLeg(10000, 1200))
		})

		result, err := client.MeasureRoute(context.Background(), home, work,
			domain.NewCar(domain.PropulsionDiesel, domain.CarSizeMedium))
		require.NoError(t, err)
		assert.Equal(t, 10000, result.DistanceMeters)
		assert.Equal(t, 1200, result.DurationSeconds)
		assert.Empty(t, result.VehicleTypes)
	})

	t.Run("carpool routes via stopover", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "driving", q.Get("mode"))
			assert.Equal(t, "via:Alexanderplatz, Berlin", q.Get("waypoints"))

			writeJSON(w, singleLeg(12500, 1500))
		})

		result, err := client.MeasureRoute(context.Background(), home, work,
			domain.NewCarPool(domain.PropulsionGas, domain.CarSizeSmall, "Alexanderplatz, Berlin"))
		require.NoError(t, err)
		assert.Equal(t, 12500, result.DistanceMeters)
	})

	t.Run("cycle and walk modes", func(t *testing.T) {
		modes := make(chan string, 2)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			modes <- r.URL.Query().Get("mode")
			writeJSON(w, singleLeg(8000, 2400))
		})

		_, err := client.MeasureRoute(context.Background(), home, work, domain.NewCycle())
		require.NoError(t, err)
		assert.Equal(t, "bicycling", <-modes)

		_, err = client.MeasureRoute(context.Background(), home, work, domain.NewWalk())
		require.NoError(t, err)
		assert.Equal(t, "walking", <-modes)
	})

	t.Run("transit collects vehicle types in order", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "transit", r.URL.Query().Get("mode"))
			writeJSON(w, singleLeg(10000, 1800,
				step{TravelMode: "WALKING"},
				transitStep(domain.VehicleFerry),
				step{TravelMode: "WALKING"},
				transitStep(domain.VehicleBus),
				transitStep(domain.VehicleSubway),
			))
		})

		result, err := client.MeasureRoute(context.Background(), home, work, domain.NewTransit())
		require.NoError(t, err)
		assert.Equal(t, []string{"FERRY", "BUS", "SUBWAY"}, result.VehicleTypes)
	})

	t.Run("only the first leg of the first route is used", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			resp := singleLeg(1000, 100)
			resp.Routes[0].Legs = append(resp.Routes[0].Legs, leg{Distance: textValue{Value: 9999}})
			resp.Routes = append(resp.Routes, route{Legs: []leg{{Distance: textValue{Value: 7777}}}})
			writeJSON(w, resp)
		})

		result, err := client.MeasureRoute(context.Background(), home, work, domain.NewWalk())
		require.NoError(t, err)
		assert.Equal(t, 1000, result.DistanceMeters)
	})
}

func TestClient_MeasureRoute_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected error
	}{
		{
			name: "zero results",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, directionsResponse{Status: statusZeroResults})
			},
			expected: repository.ErrRouteUnavailable,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, directionsResponse{Status: statusNotFound})
			},
			expected: repository.ErrRouteUnavailable,
		},
		{
			name: "ok without routes",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, directionsResponse{Status: statusOK})
			},
			expected: repository.ErrRouteUnavailable,
		},
		{
			name: "ok without legs",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, directionsResponse{Status: statusOK, Routes: []route{{}}})
			},
			expected: repository.ErrRouteUnavailable,
		},
		{
			name: "request denied",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, directionsResponse{Status: "REQUEST_DENIED", ErrorMessage: "The provided API key is invalid."})
			},
			expected: repository.ErrProvider,
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream down", http.StatusServiceUnavailable)
			},
			expected: repository.ErrProvider,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status": "OK", "routes": [`))
			},
			expected: repository.ErrProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			result, err := client.MeasureRoute(context.Background(), home, work, domain.NewWalk())
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestClient_MeasureRoute_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, singleLeg(1, 1))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.MeasureRoute(ctx, home, work, domain.NewWalk())
	assert.ErrorIs(t, err, repository.ErrProvider)
	assert.ErrorIs(t, err, context.Canceled)
}
