package dto

import "github.com/commute-emissions/internal/domain"

// RouteRequest - query параметры расчёта для одного вида транспорта.
// Какие параметры обязательны, зависит от вида транспорта и проверяется
// при построении domain.Transport.
type RouteRequest struct {
	Origin      string `query:"origin" json:"origin" validate:"required"`
	Destination string `query:"destination" json:"destination" validate:"required"`
	Propulsion  string `query:"propulsion" json:"propulsion,omitempty" validate:"omitempty,propulsion"`
	Size        string `query:"size" json:"size,omitempty" validate:"omitempty,carsize"`
	Stopover    string `query:"stopover" json:"stopover,omitempty"`
}

// Params возвращает параметры транспорта для вида kind
func (r *RouteRequest) Params(kind domain.Kind) domain.TransportParams {
	return domain.TransportParams{
		Kind:       string(kind),
		Propulsion: r.Propulsion,
		Size:       r.Size,
		Stopover:   r.Stopover,
	}
}

// CompareRequest - запрос на сравнение всех видов транспорта
type CompareRequest struct {
	Origin      string `query:"origin" json:"origin" validate:"required"`
	Destination string `query:"destination" json:"destination" validate:"required"`
	Propulsion  string `query:"propulsion" json:"propulsion" validate:"required,propulsion"`
	Size        string `query:"size" json:"size" validate:"required,carsize"`
	Stopover    string `query:"stopover" json:"stopover" validate:"required"`
}

// Params возвращает параметры транспорта для вида kind
func (r *CompareRequest) Params(kind domain.Kind) domain.TransportParams {
	return domain.TransportParams{
		Kind:       string(kind),
		Propulsion: r.Propulsion,
		Size:       r.Size,
		Stopover:   r.Stopover,
	}
}
