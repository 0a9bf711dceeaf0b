package repository

import (
	"context"
	"errors"

	"github.com/commute-emissions/internal/domain"
)

var (
	// ErrRouteUnavailable - провайдер не нашёл маршрут между точками
	ErrRouteUnavailable = errors.New("route unavailable")

	// ErrProvider - сбой провайдера маршрутов (сеть, HTTP статус, формат ответа)
	ErrProvider = errors.New("routing provider failure")
)

// RouteRepository определяет методы для измерения маршрутов у провайдера
type RouteRepository interface {
	// MeasureRoute возвращает расстояние и время маршрута для транспорта.
	// Для транзита дополнительно возвращает типы транспорта по шагам.
	MeasureRoute(
		ctx context.Context,
		origin, destination domain.Location,
		transport domain.Transport,
	) (*domain.RouteMeasurement, error)
}
