package domain

// TransitMode is the vehicle type actually used on a transit trip. It is only
// known after the route has been measured.
type TransitMode string

const (
	TransitModeBus    TransitMode = "bus"
	TransitModeSbahn  TransitMode = "sbahn" // commuter rail
	TransitModeSubway TransitMode = "subway"
	TransitModeTrain  TransitMode = "train"
	TransitModeTram   TransitMode = "tram"
)

// IsValid checks if the mode is one of the modelled transit modes
func (m TransitMode) IsValid() bool {
	switch m {
	case TransitModeBus, TransitModeSbahn, TransitModeSubway, TransitModeTrain, TransitModeTram:
		return true
	}
	return false
}

// Provider vehicle types (Google Directions "vehicle.type")
const (
	VehicleBus               = "BUS"
	VehicleIntercityBus      = "INTERCITY_BUS"
	VehicleTrolleybus        = "TROLLEYBUS"
	VehicleCommuterTrain     = "COMMUTER_TRAIN"
	VehicleSubway            = "SUBWAY"
	VehicleHeavyRail         = "HEAVY_RAIL"
	VehicleHighSpeedTrain    = "HIGH_SPEED_TRAIN"
	VehicleLongDistanceTrain = "LONG_DISTANCE_TRAIN"
	VehicleMetroRail         = "METRO_RAIL"
	VehicleMonorail          = "MONORAIL"
	VehicleRail              = "RAIL"
	VehicleTram              = "TRAM"
	VehicleCableCar          = "CABLE_CAR"
	VehicleFerry             = "FERRY"
	VehicleFunicular         = "FUNICULAR"
	VehicleGondolaLift       = "GONDOLA_LIFT"
	VehicleOther             = "OTHER"
	VehicleShareTaxi         = "SHARE_TAXI"
)

// discardedVehicleTypes have no CO2 factor and are skipped during resolution
var discardedVehicleTypes = []string{
	VehicleCableCar,
	VehicleFerry,
	VehicleFunicular,
	VehicleGondolaLift,
	VehicleOther,
	VehicleShareTaxi,
}

// Classifier maps provider vehicle types to transit modes. The provider's
// enumeration is treated as closed: every code is either mapped or
// explicitly discarded.
type Classifier struct {
	modes     map[string]TransitMode
	discarded map[string]struct{}
}

// NewClassifier creates a classifier from a mapping table and a list of
// vehicle types to discard.
func NewClassifier(modes map[string]TransitMode, discarded []string) *Classifier {
	c := &Classifier{
		modes:     make(map[string]TransitMode, len(modes)),
		discarded: make(map[string]struct{}, len(discarded)),
	}
	for code, mode := range modes {
		c.modes[code] = mode
	}
	for _, code := range discarded {
		c.discarded[code] = struct{}{}
	}
	return c
}

// DefaultClassifier classifies commuter trains as S-Bahn.
func DefaultClassifier() *Classifier {
	return NewClassifier(defaultVehicleModes(), discardedVehicleTypes)
}

// CommuterAsTrainClassifier folds commuter trains into Train, for regions
// without a separate commuter rail network.
func CommuterAsTrainClassifier() *Classifier {
	modes := defaultVehicleModes()
	modes[VehicleCommuterTrain] = TransitModeTrain
	return NewClassifier(modes, discardedVehicleTypes)
}

func defaultVehicleModes() map[string]TransitMode {
	return map[string]TransitMode{
		VehicleBus:               TransitModeBus,
		VehicleIntercityBus:      TransitModeBus,
		VehicleTrolleybus:        TransitModeBus,
		VehicleCommuterTrain:     TransitModeSbahn,
		VehicleSubway:            TransitModeSubway,
		VehicleHeavyRail:         TransitModeTrain,
		VehicleHighSpeedTrain:    TransitModeTrain,
		VehicleLongDistanceTrain: TransitModeTrain,
		VehicleMetroRail:         TransitModeTrain,
		VehicleMonorail:          TransitModeTrain,
		VehicleRail:              TransitModeTrain,
		VehicleTram:              TransitModeTram,
	}
}

// Classify returns the transit mode for a provider vehicle type.
// ok is false for vehicle types without a CO2 factor (ferries, cable cars...).
// An unknown vehicle type is a contract violation.
func (c *Classifier) Classify(vehicleType string) (mode TransitMode, ok bool, err error) {
	if mode, found := c.modes[vehicleType]; found {
		return mode, true, nil
	}
	if _, found := c.discarded[vehicleType]; found {
		return "", false, nil
	}
	return "", false, contractViolation("unknown vehicle type %q", vehicleType)
}

// Resolve picks the transit mode for a whole trip from the vehicle types of
// its steps, in travel order. The first classifiable vehicle type wins; later
// steps only need to be known codes.
//
// TODO: split emissions per step once the provider distance per step is
// carried through RouteMeasurement.
func (c *Classifier) Resolve(vehicleTypes []string) (TransitMode, error) {
	var first TransitMode
	for _, vt := range vehicleTypes {
		mode, ok, err := c.Classify(vt)
		if err != nil {
			return "", err
		}
		if ok && first == "" {
			first = mode
		}
	}

	if first == "" {
		return "", contractViolation("no classifiable transit mode found in %d steps", len(vehicleTypes))
	}
	return first, nil
}

// ResolveTransport resolves an unresolved transit transport from the measured
// vehicle types. Any other transport is returned unchanged.
func (c *Classifier) ResolveTransport(t Transport, vehicleTypes []string) (Transport, error) {
	if t.IsResolved() {
		return t, nil
	}

	mode, err := c.Resolve(vehicleTypes)
	if err != nil {
		return Transport{}, err
	}
	return t.WithTransitMode(mode)
}
