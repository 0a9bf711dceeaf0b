package usecase

import (
	"context"
	"errors"

	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/domain/repository"
	apperrors "github.com/commute-emissions/internal/pkg/errors"
	"github.com/commute-emissions/internal/pkg/metrics"
	"github.com/commute-emissions/internal/pkg/tracing"
	"github.com/commute-emissions/internal/usecase/dto"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EstimationUseCase - расчёт расстояния, времени и выбросов CO2 на человека
type EstimationUseCase struct {
	routeRepo    repository.RouteRepository
	model        *domain.EmissionModel
	classifier   *domain.Classifier
	compareLimit int
	logger       *zap.Logger
}

// EstimationOption настраивает EstimationUseCase
type EstimationOption func(*EstimationUseCase)

// WithCompareLimit ограничивает число параллельных запросов при сравнении,
// 1 означает последовательные запросы
func WithCompareLimit(n int) EstimationOption {
	return func(uc *EstimationUseCase) {
		uc.compareLimit = n
	}
}

func NewEstimationUseCase(
	routeRepo repository.RouteRepository,
	model *domain.EmissionModel,
	classifier *domain.Classifier,
	logger *zap.Logger,
	opts ...EstimationOption,
) *EstimationUseCase {
	uc := &EstimationUseCase{
		routeRepo:    routeRepo,
		model:        model,
		classifier:   classifier,
		compareLimit: -1,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Model возвращает используемую модель выбросов
func (uc *EstimationUseCase) Model() *domain.EmissionModel {
	return uc.model
}

// Estimate строит транспорт из параметров запроса и рассчитывает выбросы
func (uc *EstimationUseCase) Estimate(
	ctx context.Context,
	origin, destination domain.Location,
	params domain.TransportParams,
) (*dto.EstimateResponse, error) {
	transport, err := domain.NewTransport(params)
	if err != nil {
		return nil, uc.mapError(err, params.Kind)
	}
	return uc.EstimateTransport(ctx, origin, destination, transport)
}

// EstimateTransport измеряет маршрут, определяет вид транзита и считает выбросы
func (uc *EstimationUseCase) EstimateTransport(
	ctx context.Context,
	origin, destination domain.Location,
	transport domain.Transport,
) (resp *dto.EstimateResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "usecase.EstimateTransport")
	defer span.End()

	kind := string(transport.Kind())
	tracing.SetAttributes(ctx, attribute.String(tracing.AttrTransportKind, kind))

	defer func() {
		emissions := 0
		if resp != nil {
			emissions = resp.Emissions
		}
		metrics.ObserveEstimation(kind, emissions, err)
	}()

	result, resolved, err := uc.estimate(ctx, origin, destination, transport)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, uc.mapError(err, kind)
	}

	tracing.SetAttributes(ctx,
		attribute.String(tracing.AttrTransitMode, string(resolved.TransitMode())),
		attribute.Int(tracing.AttrEmissions, result.Emissions))

	uc.logger.Debug("Emissions estimated",
		zap.String("transport", resolved.Key()),
		zap.Int("distance", result.Distance),
		zap.Int("duration", result.Duration),
		zap.Int("emissions", result.Emissions))

	return dto.NewEstimateResponse(resolved, result), nil
}

func (uc *EstimationUseCase) estimate(
	ctx context.Context,
	origin, destination domain.Location,
	transport domain.Transport,
) (domain.EmissionResult, domain.Transport, error) {
	m, err := uc.routeRepo.MeasureRoute(ctx, origin, destination, transport)
	if err != nil {
		return domain.EmissionResult{}, transport, err
	}

	resolved, err := uc.classifier.ResolveTransport(transport, m.VehicleTypes)
	if err != nil {
		return domain.EmissionResult{}, transport, err
	}

	emissions, err := uc.model.Calculate(m.DistanceMeters, resolved)
	if err != nil {
		return domain.EmissionResult{}, transport, err
	}

	return domain.EmissionResult{
		Distance:  m.DistanceMeters,
		Duration:  m.DurationSeconds,
		Emissions: emissions,
	}, resolved, nil
}

// Compare рассчитывает все виды транспорта и экономию относительно автомобиля.
// Ошибка любого вида прерывает всё сравнение.
func (uc *EstimationUseCase) Compare(ctx context.Context, req dto.CompareRequest) (*dto.CompareResponse, error) {
	origin := domain.Location(req.Origin)
	destination := domain.Location(req.Destination)

	kinds := domain.Kinds()
	transports := make([]domain.Transport, len(kinds))
	for i, kind := range kinds {
		t, err := domain.NewTransport(req.Params(kind))
		if err != nil {
			return nil, uc.mapError(err, string(kind))
		}
		transports[i] = t
	}

	results := make([]*dto.EstimateResponse, len(transports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.compareLimit)
	for i, t := range transports {
		i, t := i, t
		g.Go(func() error {
			resp, err := uc.EstimateTransport(gctx, origin, destination, t)
			if err != nil {
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Kinds() starts with the car baseline
	carEmissions := results[0].Emissions

	entries := make([]dto.CompareEntry, len(results))
	for i, r := range results {
		entries[i] = dto.CompareEntry{
			EstimateResponse: *r,
			SavingsPercent:   domain.SavingsPercent(r.Emissions, carEmissions),
		}
	}

	return &dto.CompareResponse{
		Model:   uc.model.Version,
		Results: entries,
	}, nil
}

// mapError переводит ошибки домена и провайдера в AppError
func (uc *EstimationUseCase) mapError(err error, kind string) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrContractViolation):
		metrics.ContractViolationsTotal.WithLabelValues("estimation").Inc()
		uc.logger.Error("Routing data contract violation",
			zap.Bool("contract_violation", true),
			zap.String("kind", kind),
			zap.Error(err))
		return apperrors.ErrContractViolation.Wrap(err)

	case errors.Is(err, domain.ErrInvalidInput):
		return apperrors.ErrInvalidRequest.
			WithDetails(map[string]interface{}{"reason": err.Error()}).
			Wrap(err)

	case errors.Is(err, repository.ErrRouteUnavailable):
		uc.logger.Info("No route found", zap.String("kind", kind), zap.Error(err))
		return apperrors.ErrRouteNotFound.Wrap(err)

	case errors.Is(err, repository.ErrProvider):
		uc.logger.Warn("Routing provider failed", zap.String("kind", kind), zap.Error(err))
		return apperrors.ErrRoutingProvider.Wrap(err)

	default:
		uc.logger.Error("Estimation failed", zap.String("kind", kind), zap.Error(err))
		return apperrors.ErrInternalServer.Wrap(err)
	}
}
