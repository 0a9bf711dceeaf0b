package domain

// RouteMeasurement is what the routing provider reports for one route:
// distance in meters, duration in seconds and, for transit, the vehicle type
// of every transit step of the first leg in travel order.
type RouteMeasurement struct {
	DistanceMeters  int      `json:"distance_meters"`
	DurationSeconds int      `json:"duration_seconds"`
	VehicleTypes    []string `json:"vehicle_types,omitempty"`
}

// EmissionResult is the per-transport answer returned across the API boundary
type EmissionResult struct {
	Distance  int `json:"distance"`  // meters
	Duration  int `json:"duration"`  // seconds
	Emissions int `json:"emissions"` // g CO2 per person
}
