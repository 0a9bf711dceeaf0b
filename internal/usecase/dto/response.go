package dto

import "github.com/commute-emissions/internal/domain"

// EstimateResponse - результат расчёта для одного вида транспорта
type EstimateResponse struct {
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	TransitMode string `json:"transit_mode,omitempty"`
	Distance    int    `json:"distance"`  // meters
	Duration    int    `json:"duration"`  // seconds
	Emissions   int    `json:"emissions"` // g CO2 per person
}

// EmissionResult возвращает ответ в формате корневых маршрутов
func (r *EstimateResponse) EmissionResult() domain.EmissionResult {
	return domain.EmissionResult{
		Distance:  r.Distance,
		Duration:  r.Duration,
		Emissions: r.Emissions,
	}
}

// NewEstimateResponse собирает ответ из разрешённого транспорта и результата
func NewEstimateResponse(t domain.Transport, result domain.EmissionResult) *EstimateResponse {
	return &EstimateResponse{
		Kind:        string(t.Kind()),
		Label:       t.Label(),
		TransitMode: string(t.TransitMode()),
		Distance:    result.Distance,
		Duration:    result.Duration,
		Emissions:   result.Emissions,
	}
}

// CompareEntry - результат одного вида транспорта в сравнении
type CompareEntry struct {
	EstimateResponse
	SavingsPercent int `json:"savings_percent"`
}

// CompareResponse - сравнение всех видов транспорта с автомобилем
type CompareResponse struct {
	Model   string         `json:"model"`
	Results []CompareEntry `json:"results"`
}

// Car возвращает базовую запись автомобиля
func (r *CompareResponse) Car() *CompareEntry {
	for i := range r.Results {
		if r.Results[i].Kind == string(domain.KindCar) {
			return &r.Results[i]
		}
	}
	return nil
}
