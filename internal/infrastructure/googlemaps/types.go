package googlemaps

// Directions API response statuses
const (
	statusOK          = "OK"
	statusNotFound    = "NOT_FOUND"
	statusZeroResults = "ZERO_RESULTS"
)

type directionsResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Routes       []route `json:"routes"`
}

type route struct {
	Summary string `json:"summary,omitempty"`
	Legs    []leg  `json:"legs"`
}

type leg struct {
	Distance textValue `json:"distance"`
	Duration textValue `json:"duration"`
	Steps    []step    `json:"steps"`
}

type textValue struct {
	Text  string `json:"text,omitempty"`
	Value int    `json:"value"`
}

type step struct {
	TravelMode     string          `json:"travel_mode,omitempty"`
	TransitDetails *transitDetails `json:"transit_details,omitempty"`
}

type transitDetails struct {
	Line transitLine `json:"line"`
}

type transitLine struct {
	Name      string  `json:"name,omitempty"`
	ShortName string  `json:"short_name,omitempty"`
	Vehicle   vehicle `json:"vehicle"`
}

type vehicle struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}
