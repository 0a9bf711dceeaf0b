package domain

import "strings"

// Emission model versions
const (
	ModelVersionFlat    = "v1"
	ModelVersionRefined = "v2"
)

// EmissionModel is a versioned set of emission factors (g CO2 eq per km)
// together with the unit conversion applied to meter distances.
type EmissionModel struct {
	Version     string
	Name        string
	carFactors  map[Propulsion]map[CarSize]int
	transit     map[TransitMode]int
	unitDivisor int
}

// ModelRefined is the propulsion and size sensitive model. It is the default.
var ModelRefined = &EmissionModel{
	Version: ModelVersionRefined,
	Name:    "refined",
	carFactors: map[Propulsion]map[CarSize]int{
		PropulsionDiesel: {
			CarSizeSmall:  240,
			CarSizeMedium: 310,
			CarSizeBig:    390,
		},
		PropulsionElectric: {
			CarSizeSmall:  160,
			CarSizeMedium: 200,
			CarSizeBig:    240,
		},
		PropulsionGas: {
			CarSizeSmall:  280,
			CarSizeMedium: 340,
			CarSizeBig:    410,
		},
	},
	transit: map[TransitMode]int{
		TransitModeBus:    108,
		TransitModeTrain:  93,
		TransitModeSbahn:  80,
		TransitModeSubway: 80,
		TransitModeTram:   80,
	},
	unitDivisor: 1000,
}

// ModelFlat is the first generation model with one factor per kind.
var ModelFlat = &EmissionModel{
	Version:    ModelVersionFlat,
	Name:       "flat",
	carFactors: uniformCarFactors(118),
	transit: map[TransitMode]int{
		TransitModeBus:    86,
		TransitModeTrain:  86,
		TransitModeSbahn:  86,
		TransitModeSubway: 86,
		TransitModeTram:   86,
	},
	unitDivisor: 1000,
}

func uniformCarFactors(factor int) map[Propulsion]map[CarSize]int {
	factors := make(map[Propulsion]map[CarSize]int)
	for _, p := range []Propulsion{PropulsionDiesel, PropulsionElectric, PropulsionGas} {
		factors[p] = map[CarSize]int{
			CarSizeSmall:  factor,
			CarSizeMedium: factor,
			CarSizeBig:    factor,
		}
	}
	return factors
}

// ModelByName returns the model for a version ("v1", "v2") or name
// ("flat", "refined"). Empty selects the refined model.
func ModelByName(name string) (*EmissionModel, error) {
	switch strings.ToLower(name) {
	case "", ModelVersionRefined, ModelRefined.Name:
		return ModelRefined, nil
	case ModelVersionFlat, ModelFlat.Name:
		return ModelFlat, nil
	default:
		return nil, invalidInput("unknown emission model %q", name)
	}
}

// Factor returns the emission factor of the transport in g CO2 per km.
// The stopover of a carpool never affects the factor.
func (m *EmissionModel) Factor(t Transport) (int, error) {
	switch t.kind {
	case KindCar, KindCarPool:
		factor, ok := m.carFactors[t.propulsion][t.size]
		if !ok {
			return 0, contractViolation("no factor for %s car of size %s", t.propulsion, t.size)
		}
		return factor, nil
	case KindCycle, KindWalk:
		return 0, nil
	case KindTransit:
		if t.transitMode == "" {
			return 0, contractViolation("transit mode needs to be set to calculate CO2")
		}
		factor, ok := m.transit[t.transitMode]
		if !ok {
			return 0, contractViolation("no factor for transit mode %s", t.transitMode)
		}
		return factor, nil
	default:
		return 0, contractViolation("unknown transport kind %q", t.kind)
	}
}

// Calculate returns the emissions in gram of CO2 per person for a trip of
// distanceMeters, floor-divided throughout:
//
//	distance * factor / 1000 / occupancy
func (m *EmissionModel) Calculate(distanceMeters int, t Transport) (int, error) {
	if distanceMeters < 0 {
		return 0, contractViolation("negative distance %d", distanceMeters)
	}

	factor, err := m.Factor(t)
	if err != nil {
		return 0, err
	}

	return distanceMeters * factor / m.unitDivisor / t.Occupancy(), nil
}
