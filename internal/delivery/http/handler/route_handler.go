package handler

import (
	"time"

	"github.com/commute-emissions/internal/delivery/http/middleware"
	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/pkg/errors"
	"github.com/commute-emissions/internal/pkg/utils"
	"github.com/commute-emissions/internal/pkg/validator"
	"github.com/commute-emissions/internal/usecase"
	"github.com/commute-emissions/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RouteHandler - обработчик запросов расчёта выбросов
type RouteHandler struct {
	estimationUC *usecase.EstimationUseCase
	logger       *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(estimationUC *usecase.EstimationUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		estimationUC: estimationUC,
		logger:       logger,
	}
}

// parseRouteRequest разбирает и валидирует query параметры
func parseRouteRequest(c *fiber.Ctx) (*dto.RouteRequest, error) {
	var req dto.RouteRequest
	if err := c.QueryParser(&req); err != nil {
		return nil, errors.ErrInvalidRequest.
			WithDetails(map[string]interface{}{"reason": "invalid query parameters"}).
			Wrap(err)
	}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// EmissionsFor возвращает обработчик корневого маршрута для вида kind.
// Ответ - только {distance, duration, emissions}, без конверта.
func (h *RouteHandler) EmissionsFor(kind domain.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseRouteRequest(c)
		if err != nil {
			return utils.SendError(c, err)
		}

		resp, err := h.estimationUC.Estimate(c.UserContext(),
			domain.Location(req.Origin), domain.Location(req.Destination), req.Params(kind))
		if err != nil {
			return utils.SendError(c, err)
		}

		return c.JSON(resp.EmissionResult())
	}
}

// Estimate godoc
// @Summary Расчёт выбросов CO2 для одного вида транспорта
// @Description Измеряет маршрут через Google Directions и рассчитывает выбросы на человека.
// @Description propulsion и size обязательны для car и carpool, stopover только для carpool.
// @Tags Routes
// @Produce json
// @Param kind path string true "Вид транспорта" Enums(car, carpool, cycle, transit, walk)
// @Param origin query string true "Адрес отправления"
// @Param destination query string true "Адрес назначения"
// @Param propulsion query string false "Тип двигателя" Enums(diesel, electric, gas)
// @Param size query string false "Размер автомобиля" Enums(small, medium, big)
// @Param stopover query string false "Промежуточная точка для carpool"
// @Success 200 {object} utils.SuccessResponse{data=dto.EstimateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/routes/{kind} [get]
func (h *RouteHandler) Estimate(c *fiber.Ctx) error {
	start := time.Now()

	kind, err := domain.ParseKind(c.Params("kind"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidTransportType.
			WithDetails(map[string]interface{}{"kind": c.Params("kind")}))
	}

	req, err := parseRouteRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.estimationUC.Estimate(c.UserContext(),
		domain.Location(req.Origin), domain.Location(req.Destination), req.Params(kind))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:     1,
		RequestID: middleware.GetRequestID(c),
		Model:     h.estimationUC.Model().Version,
		TimeMSec:  float64(time.Since(start).Microseconds()) / 1000,
	})
}

// Compare godoc
// @Summary Сравнение всех видов транспорта
// @Description Рассчитывает выбросы для car, carpool, cycle, transit и walk
// @Description и экономию каждого вида относительно автомобиля. Ошибка любого вида прерывает сравнение.
// @Tags Routes
// @Produce json
// @Param origin query string true "Адрес отправления"
// @Param destination query string true "Адрес назначения"
// @Param propulsion query string true "Тип двигателя" Enums(diesel, electric, gas)
// @Param size query string true "Размер автомобиля" Enums(small, medium, big)
// @Param stopover query string true "Промежуточная точка для carpool"
// @Success 200 {object} utils.SuccessResponse{data=dto.CompareResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/routes/compare [get]
func (h *RouteHandler) Compare(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.CompareRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.estimationUC.Compare(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Debug("Comparison finished",
		zap.String("origin", req.Origin),
		zap.String("destination", req.Destination),
		zap.Int("results", len(resp.Results)))

	return utils.SendSuccess(c, resp, &utils.Meta{
		Total:     len(resp.Results),
		RequestID: middleware.GetRequestID(c),
		Model:     resp.Model,
		TimeMSec:  float64(time.Since(start).Microseconds()) / 1000,
	})
}
