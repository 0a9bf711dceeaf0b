package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidTransportType = New(
		"INVALID_TRANSPORT_TYPE",
		"Invalid transport type",
		http.StatusBadRequest,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"No route found between origin and destination",
		http.StatusNotFound,
	)

	ErrRoutingProvider = New(
		"ROUTING_PROVIDER_ERROR",
		"Routing provider request failed",
		http.StatusBadGateway,
	)

	// ErrContractViolation - нарушено предположение об интеграции с провайдером
	// (неизвестный тип транспорта, транзит без классифицируемых шагов).
	// Не должна повторяться и не должна маскироваться под ошибку провайдера.
	ErrContractViolation = New(
		"CONTRACT_VIOLATION",
		"Unexpected routing data, estimation aborted",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
