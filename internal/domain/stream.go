package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamEmissionRequest = "stream:emission:request"
	StreamEmissionDone    = "stream:emission:done"
)

// EstimationRequestEvent - входящее событие на расчёт выбросов
type EstimationRequestEvent struct {
	RequestID   uuid.UUID `json:"request_id" validate:"required"`
	Kind        string    `json:"kind" validate:"required,transportkind"`
	Origin      string    `json:"origin" validate:"required"`
	Destination string    `json:"destination" validate:"required"`
	Propulsion  string    `json:"propulsion,omitempty"`
	Size        string    `json:"size,omitempty"`
	Stopover    string    `json:"stopover,omitempty"`
}

// TransportParams возвращает параметры транспорта из события
func (e *EstimationRequestEvent) TransportParams() TransportParams {
	return TransportParams{
		Kind:       e.Kind,
		Propulsion: e.Propulsion,
		Size:       e.Size,
		Stopover:   e.Stopover,
	}
}

// EstimationDoneEvent - результат расчёта
type EstimationDoneEvent struct {
	RequestID   uuid.UUID       `json:"request_id"`
	Kind        string          `json:"kind"`
	TransitMode string          `json:"transit_mode,omitempty"`
	Result      *EmissionResult `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	ErrorCode   string          `json:"error_code,omitempty"`
}

// Failed проверяет, завершился ли расчёт ошибкой
func (e *EstimationDoneEvent) Failed() bool {
	return e.Error != ""
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
