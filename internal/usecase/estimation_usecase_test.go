package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	apperrors "github.com/commute-emissions/internal/pkg/errors"
	"github.com/commute-emissions/internal/usecase"
	"github.com/commute-emissions/internal/usecase/dto"
)

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) MeasureRoute(ctx context.Context, origin, destination domain.Location, transport domain.Transport) (*domain.RouteMeasurement, error) {
	args := m.Called(ctx, origin, destination, transport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteMeasurement), args.Error(1)
}

const (
	home     = domain.Location("Flutstraße 23, 12439 Berlin")
	work     = domain.Location("Am Friedrichshain 20D, 10407 Berlin")
	stopover = "Alexanderplatz, Berlin"
)

var (
	dieselMedium     = domain.NewCar(domain.PropulsionDiesel, domain.CarSizeMedium)
	dieselMediumPool = domain.NewCarPool(domain.PropulsionDiesel, domain.CarSizeMedium, stopover)
)

func newUseCase(repo repository.RouteRepository, opts ...usecase.EstimationOption) *usecase.EstimationUseCase {
	return usecase.NewEstimationUseCase(repo, domain.ModelRefined, domain.DefaultClassifier(), zap.NewNop(), opts...)
}

func measured(distance, duration int, vehicleTypes ...string) *domain.RouteMeasurement {
	return &domain.RouteMeasurement{
		DistanceMeters:  distance,
		DurationSeconds: duration,
		VehicleTypes:    vehicleTypes,
	}
}

func TestEstimationUseCase_Estimate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		params      domain.TransportParams
		transport   domain.Transport
		measurement *domain.RouteMeasurement
		expected    dto.EstimateResponse
	}{
		{
			name:        "diesel medium car",
			params:      domain.TransportParams{Kind: "car", Propulsion: "diesel", Size: "medium"},
			transport:   dieselMedium,
			measurement: measured(10000, 1200),
			expected: dto.EstimateResponse{
				Kind: "car", Label: "Driving", Distance: 10000, Duration: 1200, Emissions: 3100,
			},
		},
		{
			name:        "diesel medium carpool",
			params:      domain.TransportParams{Kind: "carpool", Propulsion: "Diesel", Size: "MEDIUM", Stopover: stopover},
			transport:   dieselMediumPool,
			measurement: measured(10000, 1500),
			expected: dto.EstimateResponse{
				Kind: "carpool", Label: "Carpooling", Distance: 10000, Duration: 1500, Emissions: 1550,
			},
		},
		{
			name:        "transit takes first classified vehicle",
			params:      domain.TransportParams{Kind: "transit"},
			transport:   domain.NewTransit(),
			measurement: measured(10000, 1800, domain.VehicleFerry, domain.VehicleBus, domain.VehicleSubway),
			expected: dto.EstimateResponse{
				Kind: "transit", Label: "Public transport", TransitMode: "bus", Distance: 10000, Duration: 1800, Emissions: 1080,
			},
		},
		{
			name:        "cycle",
			params:      domain.TransportParams{Kind: "cycle"},
			transport:   domain.NewCycle(),
			measurement: measured(10000, 2400),
			expected: dto.EstimateResponse{
				Kind: "cycle", Label: "Cycling", Distance: 10000, Duration: 2400, Emissions: 0,
			},
		},
		{
			name:        "walk",
			params:      domain.TransportParams{Kind: "walk"},
			transport:   domain.NewWalk(),
			measurement: measured(9000, 6600),
			expected: dto.EstimateResponse{
				Kind: "walk", Label: "Walking", Distance: 9000, Duration: 6600, Emissions: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRouteRepository{}
			repo.On("MeasureRoute", mock.Anything, home, work, tt.transport).Return(tt.measurement, nil).Once()

			resp, err := newUseCase(repo).Estimate(ctx, home, work, tt.params)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, *resp)
			assert.Equal(t, tt.expected.Emissions, resp.EmissionResult().Emissions)
			repo.AssertExpectations(t)
		})
	}
}

func TestEstimationUseCase_Estimate_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		transport   domain.Transport
		measurement *domain.RouteMeasurement
		repoErr     error
		expected    *apperrors.AppError
		status      int
		cause       error
	}{
		{
			name:        "transit with only discarded vehicles",
			transport:   domain.NewTransit(),
			measurement: measured(10000, 1800, domain.VehicleFerry),
			expected:    apperrors.ErrContractViolation,
			status:      http.StatusInternalServerError,
			cause:       domain.ErrContractViolation,
		},
		{
			name:        "transit without transit steps",
			transport:   domain.NewTransit(),
			measurement: measured(800, 600),
			expected:    apperrors.ErrContractViolation,
			status:      http.StatusInternalServerError,
			cause:       domain.ErrContractViolation,
		},
		{
			name:        "unknown vehicle type",
			transport:   domain.NewTransit(),
			measurement: measured(10000, 1800, domain.VehicleBus, "HOVERCRAFT"),
			expected:    apperrors.ErrContractViolation,
			status:      http.StatusInternalServerError,
			cause:       domain.ErrContractViolation,
		},
		{
			name:      "no route",
			transport: domain.NewWalk(),
			repoErr:   fmt.Errorf("%w: directions status ZERO_RESULTS", repository.ErrRouteUnavailable),
			expected:  apperrors.ErrRouteNotFound,
			status:    http.StatusNotFound,
			cause:     repository.ErrRouteUnavailable,
		},
		{
			name:      "provider failure",
			transport: dieselMedium,
			repoErr:   fmt.Errorf("%w: directions API error: status 503", repository.ErrProvider),
			expected:  apperrors.ErrRoutingProvider,
			status:    http.StatusBadGateway,
			cause:     repository.ErrProvider,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRouteRepository{}
			if tt.repoErr != nil {
				repo.On("MeasureRoute", mock.Anything, home, work, tt.transport).Return(nil, tt.repoErr)
			} else {
				repo.On("MeasureRoute", mock.Anything, home, work, tt.transport).Return(tt.measurement, nil)
			}

			resp, err := newUseCase(repo).EstimateTransport(ctx, home, work, tt.transport)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, tt.cause)

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, appErr.StatusCode)
		})
	}
}

func TestEstimationUseCase_Estimate_InvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := &MockRouteRepository{}
	uc := newUseCase(repo)

	tests := []struct {
		name   string
		params domain.TransportParams
	}{
		{"unknown propulsion", domain.TransportParams{Kind: "car", Propulsion: "steam", Size: "small"}},
		{"missing size", domain.TransportParams{Kind: "car", Propulsion: "gas"}},
		{"carpool without stopover", domain.TransportParams{Kind: "carpool", Propulsion: "gas", Size: "small"}},
		{"unknown kind", domain.TransportParams{Kind: "plane"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Estimate(ctx, home, work, tt.params)

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Contains(t, appErr.Details, "reason")
		})
	}

	// provider is never queried for invalid input
	repo.AssertNotCalled(t, "MeasureRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEstimationUseCase_ContractViolationIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	repo := &MockRouteRepository{}
	repo.On("MeasureRoute", mock.Anything, home, work, domain.NewTransit()).
		Return(measured(10000, 1800, "HOVERCRAFT"), nil)

	uc := usecase.NewEstimationUseCase(repo, domain.ModelRefined, domain.DefaultClassifier(), zap.New(core))
	_, err := uc.EstimateTransport(context.Background(), home, work, domain.NewTransit())
	require.Error(t, err)

	entries := logs.FilterField(zap.Bool("contract_violation", true)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "transit", entries[0].ContextMap()["kind"])
}

func TestEstimationUseCase_ModelAndClassifierVariants(t *testing.T) {
	ctx := context.Background()

	t.Run("flat model", func(t *testing.T) {
		repo := &MockRouteRepository{}
		repo.On("MeasureRoute", mock.Anything, home, work, dieselMedium).Return(measured(10000, 1200), nil)

		uc := usecase.NewEstimationUseCase(repo, domain.ModelFlat, domain.DefaultClassifier(), zap.NewNop())
		resp, err := uc.EstimateTransport(ctx, home, work, dieselMedium)

		require.NoError(t, err)
		assert.Equal(t, 1180, resp.Emissions)
		assert.Same(t, domain.ModelFlat, uc.Model())
	})

	t.Run("commuter trains as regional trains", func(t *testing.T) {
		repo := &MockRouteRepository{}
		repo.On("MeasureRoute", mock.Anything, home, work, domain.NewTransit()).
			Return(measured(10000, 1500, domain.VehicleCommuterTrain), nil)

		uc := usecase.NewEstimationUseCase(repo, domain.ModelRefined, domain.CommuterAsTrainClassifier(), zap.NewNop())
		resp, err := uc.EstimateTransport(ctx, home, work, domain.NewTransit())

		require.NoError(t, err)
		assert.Equal(t, "train", resp.TransitMode)
		assert.Equal(t, 930, resp.Emissions)
	})
}

func compareRequest() dto.CompareRequest {
	return dto.CompareRequest{
		Origin:      string(home),
		Destination: string(work),
		Propulsion:  "diesel",
		Size:        "medium",
		Stopover:    stopover,
	}
}

func mockAllKinds(repo *MockRouteRepository) {
	repo.On("MeasureRoute", mock.Anything, home, work, dieselMedium).Return(measured(10000, 1200), nil)
	repo.On("MeasureRoute", mock.Anything, home, work, dieselMediumPool).Return(measured(10000, 1500), nil)
	repo.On("MeasureRoute", mock.Anything, home, work, domain.NewCycle()).Return(measured(10000, 2400), nil)
	repo.On("MeasureRoute", mock.Anything, home, work, domain.NewTransit()).
		Return(measured(10000, 1800, domain.VehicleBus, domain.VehicleSubway), nil)
	repo.On("MeasureRoute", mock.Anything, home, work, domain.NewWalk()).Return(measured(9000, 6600), nil)
}

func TestEstimationUseCase_Compare(t *testing.T) {
	for _, limit := range []int{-1, 1} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			repo := &MockRouteRepository{}
			mockAllKinds(repo)

			resp, err := newUseCase(repo, usecase.WithCompareLimit(limit)).Compare(context.Background(), compareRequest())
			require.NoError(t, err)

			assert.Equal(t, domain.ModelVersionRefined, resp.Model)
			require.Len(t, resp.Results, 5)

			kinds := make([]string, len(resp.Results))
			savings := make([]int, len(resp.Results))
			for i, r := range resp.Results {
				kinds[i] = r.Kind
				savings[i] = r.SavingsPercent
			}
			assert.Equal(t, []string{"car", "carpool", "cycle", "transit", "walk"}, kinds)
			assert.Equal(t, []int{0, 50, 100, 66, 100}, savings)

			car := resp.Car()
			require.NotNil(t, car)
			assert.Equal(t, 3100, car.Emissions)
			assert.Equal(t, "bus", resp.Results[3].TransitMode)

			repo.AssertNumberOfCalls(t, "MeasureRoute", 5)
		})
	}
}

func TestEstimationUseCase_Compare_AbortsOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		transit *domain.RouteMeasurement
		walkErr error
		wantErr error
	}{
		{
			name:    "walk route not found",
			transit: measured(10000, 1800, domain.VehicleBus),
			walkErr: fmt.Errorf("%w: directions status ZERO_RESULTS", repository.ErrRouteUnavailable),
			wantErr: apperrors.ErrRouteNotFound,
		},
		{
			name:    "unknown transit vehicle",
			transit: measured(10000, 1800, "HOVERCRAFT"),
			wantErr: apperrors.ErrContractViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRouteRepository{}
			repo.On("MeasureRoute", mock.Anything, home, work, domain.NewTransit()).Return(tt.transit, nil)
			if tt.walkErr != nil {
				repo.On("MeasureRoute", mock.Anything, home, work, domain.NewWalk()).Return(nil, tt.walkErr)
			}
			repo.On("MeasureRoute", mock.Anything, home, work, mock.Anything).Return(measured(10000, 1200), nil)

			resp, err := newUseCase(repo, usecase.WithCompareLimit(1)).Compare(context.Background(), compareRequest())

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEstimationUseCase_Compare_InvalidInput(t *testing.T) {
	repo := &MockRouteRepository{}
	req := compareRequest()
	req.Stopover = ""

	resp, err := newUseCase(repo).Compare(context.Background(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	repo.AssertNotCalled(t, "MeasureRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
