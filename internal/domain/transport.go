package domain

import (
	"fmt"
	"strings"
)

// Location is an address as typed by the user. It is passed to the routing
// provider verbatim and never validated.
type Location string

func (l Location) String() string {
	return string(l)
}

// Propulsion of a car based transport
type Propulsion string

const (
	PropulsionDiesel   Propulsion = "diesel"
	PropulsionElectric Propulsion = "electric"
	PropulsionGas      Propulsion = "gas"
)

// ParsePropulsion parses a propulsion name case-insensitively.
func ParsePropulsion(s string) (Propulsion, error) {
	switch p := Propulsion(strings.ToLower(s)); p {
	case PropulsionDiesel, PropulsionElectric, PropulsionGas:
		return p, nil
	default:
		return "", invalidInput("unknown propulsion %q", s)
	}
}

// CarSize of a car based transport
type CarSize string

const (
	CarSizeSmall  CarSize = "small"
	CarSizeMedium CarSize = "medium"
	CarSizeBig    CarSize = "big"
)

// ParseCarSize parses a car size name case-insensitively.
func ParseCarSize(s string) (CarSize, error) {
	switch size := CarSize(strings.ToLower(s)); size {
	case CarSizeSmall, CarSizeMedium, CarSizeBig:
		return size, nil
	default:
		return "", invalidInput("unknown car size %q", s)
	}
}

// Kind selects the transport variant
type Kind string

const (
	KindCar     Kind = "car"
	KindCarPool Kind = "carpool"
	KindCycle   Kind = "cycle"
	KindTransit Kind = "transit"
	KindWalk    Kind = "walk"
)

// Kinds returns all transport kinds, car first (it is the comparison baseline).
func Kinds() []Kind {
	return []Kind{KindCar, KindCarPool, KindCycle, KindTransit, KindWalk}
}

// ParseKind parses a transport kind case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindCar, KindCarPool, KindCycle, KindTransit, KindWalk:
		return k, nil
	default:
		return "", invalidInput("unknown transport kind %q", s)
	}
}

// RoutingMode is the travel mode understood by the routing provider
type RoutingMode string

const (
	RoutingModeDriving   RoutingMode = "driving"
	RoutingModeBicycling RoutingMode = "bicycling"
	RoutingModeTransit   RoutingMode = "transit"
	RoutingModeWalking   RoutingMode = "walking"
)

// Transport is a closed tagged variant: the kind plus the data only that kind
// needs. Car and CarPool carry propulsion and size, CarPool additionally a
// stopover, Transit the vehicle type resolved after the route was measured.
//
// Values are built with the New* constructors and are immutable; the only
// permitted change is the single transit resolution through WithTransitMode.
type Transport struct {
	kind        Kind
	propulsion  Propulsion
	size        CarSize
	stopover    Location
	transitMode TransitMode
}

func NewCar(propulsion Propulsion, size CarSize) Transport {
	return Transport{kind: KindCar, propulsion: propulsion, size: size}
}

func NewCarPool(propulsion Propulsion, size CarSize, stopover Location) Transport {
	return Transport{kind: KindCarPool, propulsion: propulsion, size: size, stopover: stopover}
}

func NewCycle() Transport {
	return Transport{kind: KindCycle}
}

// NewTransit returns a transit transport whose vehicle type is not known yet.
func NewTransit() Transport {
	return Transport{kind: KindTransit}
}

func NewWalk() Transport {
	return Transport{kind: KindWalk}
}

// TransportParams is the raw caller input a Transport is built from
type TransportParams struct {
	Kind       string
	Propulsion string
	Size       string
	Stopover   string
}

// NewTransport builds a Transport from raw caller input. Propulsion and size
// are only read for car and carpool, the stopover only for carpool.
func NewTransport(p TransportParams) (Transport, error) {
	kind, err := ParseKind(p.Kind)
	if err != nil {
		return Transport{}, err
	}

	switch kind {
	case KindCar, KindCarPool:
		propulsion, err := ParsePropulsion(p.Propulsion)
		if err != nil {
			return Transport{}, err
		}
		size, err := ParseCarSize(p.Size)
		if err != nil {
			return Transport{}, err
		}
		if kind == KindCar {
			return NewCar(propulsion, size), nil
		}
		if p.Stopover == "" {
			return Transport{}, invalidInput("carpool requires a stopover")
		}
		return NewCarPool(propulsion, size, Location(p.Stopover)), nil
	case KindCycle:
		return NewCycle(), nil
	case KindTransit:
		return NewTransit(), nil
	default:
		return NewWalk(), nil
	}
}

func (t Transport) Kind() Kind {
	return t.kind
}

func (t Transport) Propulsion() Propulsion {
	return t.propulsion
}

func (t Transport) Size() CarSize {
	return t.size
}

func (t Transport) Stopover() Location {
	return t.stopover
}

// TransitMode is empty until the transport has been resolved.
func (t Transport) TransitMode() TransitMode {
	return t.transitMode
}

// HasStopover reports whether the route goes via a pickup point.
func (t Transport) HasStopover() bool {
	return t.kind == KindCarPool
}

// RoutingMode maps the transport to the provider's travel mode.
// Car and CarPool both route as driving.
func (t Transport) RoutingMode() RoutingMode {
	switch t.kind {
	case KindCycle:
		return RoutingModeBicycling
	case KindTransit:
		return RoutingModeTransit
	case KindWalk:
		return RoutingModeWalking
	default:
		return RoutingModeDriving
	}
}

// Label is the human readable name of the transport kind.
func (t Transport) Label() string {
	switch t.kind {
	case KindCar:
		return "Driving"
	case KindCarPool:
		return "Carpooling"
	case KindCycle:
		return "Cycling"
	case KindTransit:
		return "Public transport"
	case KindWalk:
		return "Walking"
	default:
		return "Unknown"
	}
}

func (t Transport) String() string {
	return t.Label()
}

// Occupancy is the number of people the trip emissions are split between.
func (t Transport) Occupancy() int {
	if t.kind == KindCarPool {
		return 2
	}
	return 1
}

// IsResolved is false only for a transit transport whose vehicle type is
// still unknown.
func (t Transport) IsResolved() bool {
	return t.kind != KindTransit || t.transitMode != ""
}

// WithTransitMode returns a copy of an unresolved transit transport with its
// vehicle type set. Resolving anything else is a contract violation.
func (t Transport) WithTransitMode(mode TransitMode) (Transport, error) {
	if t.kind != KindTransit {
		return Transport{}, contractViolation("cannot set transit mode on %s transport", t.kind)
	}
	if t.transitMode != "" {
		return Transport{}, contractViolation("transit mode already resolved to %s", t.transitMode)
	}
	if !mode.IsValid() {
		return Transport{}, contractViolation("unknown transit mode %q", mode)
	}

	t.transitMode = mode
	return t, nil
}

// Key is a canonical structural encoding of the variant and its parameters,
// usable as a map or cache key.
func (t Transport) Key() string {
	switch t.kind {
	case KindCar:
		return fmt.Sprintf("%s:%s:%s", t.kind, t.propulsion, t.size)
	case KindCarPool:
		return fmt.Sprintf("%s:%s:%s:%s", t.kind, t.propulsion, t.size, t.stopover)
	case KindTransit:
		if t.transitMode == "" {
			return string(t.kind)
		}
		return fmt.Sprintf("%s:%s", t.kind, t.transitMode)
	default:
		return string(t.kind)
	}
}
