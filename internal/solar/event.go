package solar

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction is the sense in which the Sun crosses an event's elevation.
type Direction int

const (
	// Ascending events happen before solar noon.
	Ascending Direction = iota
	// Descending events happen after solar noon.
	Descending
)

func (d Direction) String() string {
	if d == Ascending {
		return "ascending"
	}
	return "descending"
}

// Altitude is an elevation expressed in degrees below the horizon, as used by
// custom events. It is always within [-90, 90].
type Altitude float64

// NewAltitude validates v and returns it as an Altitude.
func NewAltitude(v float64) (Altitude, error) {
	if !(v >= -90.0 && v <= 90.0) {
		return 0, fmt.Errorf("altitude must be between -90.0 and 90.0, inclusive. Found '%v'", v)
	}
	return Altitude(v), nil
}

// ParseAltitude parses a decimal number of degrees below the horizon.
func ParseAltitude(s string) (Altitude, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid altitude '%s': expected decimal degrees", s)
	}
	return NewAltitude(v)
}

// Event is a solar event whose time can be resolved by Calculations.EventTime.
// The only implementations are FixedElevationEvent and SolarNoonEvent.
type Event interface {
	Name() string
	isEvent()
}

// FixedElevationEvent happens when the Sun crosses a fixed elevation in a
// given direction.
type FixedElevationEvent struct {
	name                string
	degreesBelowHorizon float64
	direction           Direction
}

func (e FixedElevationEvent) Name() string { return e.name }

// DegreesBelowHorizon is the Sun's elevation at the event, positive below the horizon.
func (e FixedElevationEvent) DegreesBelowHorizon() float64 { return e.degreesBelowHorizon }

// Direction reports whether the event is before or after solar noon.
func (e FixedElevationEvent) Direction() Direction { return e.direction }

func (FixedElevationEvent) isEvent() {}

// SolarNoonEvent is the moment the Sun crosses the local meridian.
type SolarNoonEvent struct{}

func (SolarNoonEvent) Name() string { return "solar_noon" }
func (SolarNoonEvent) isEvent()     {}

// SunriseDegrees is the elevation below the horizon used for sunrise and
// sunset. It allows for refraction and the Sun's radius.
const SunriseDegrees = 0.833

var (
	Sunrise          = FixedElevationEvent{"sunrise", SunriseDegrees, Ascending}
	Sunset           = FixedElevationEvent{"sunset", SunriseDegrees, Descending}
	CivilDawn        = FixedElevationEvent{"civil_dawn", 6.0, Ascending}
	CivilDusk        = FixedElevationEvent{"civil_dusk", 6.0, Descending}
	NauticalDawn     = FixedElevationEvent{"nautical_dawn", 12.0, Ascending}
	NauticalDusk     = FixedElevationEvent{"nautical_dusk", 12.0, Descending}
	AstronomicalDawn = FixedElevationEvent{"astronomical_dawn", 18.0, Ascending}
	AstronomicalDusk = FixedElevationEvent{"astronomical_dusk", 18.0, Descending}
	SolarNoon        = SolarNoonEvent{}
)

// CustomAM is the morning crossing of a caller chosen altitude.
func CustomAM(altitude Altitude) FixedElevationEvent {
	return FixedElevationEvent{"custom_am", float64(altitude), Ascending}
}

// CustomPM is the evening crossing of a caller chosen altitude.
func CustomPM(altitude Altitude) FixedElevationEvent {
	return FixedElevationEvent{"custom_pm", float64(altitude), Descending}
}

var namedEvents = map[string]Event{
	Sunrise.name:          Sunrise,
	Sunset.name:           Sunset,
	CivilDawn.name:        CivilDawn,
	CivilDusk.name:        CivilDusk,
	NauticalDawn.name:     NauticalDawn,
	NauticalDusk.name:     NauticalDusk,
	AstronomicalDawn.name: AstronomicalDawn,
	AstronomicalDusk.name: AstronomicalDusk,
	SolarNoon.Name():      SolarNoon,
}

// EventNames lists every name ParseEvent accepts.
func EventNames() []string {
	return []string{
		"sunrise", "sunset",
		"civil_dawn", "civil_dusk",
		"nautical_dawn", "nautical_dusk",
		"astronomical_dawn", "astronomical_dusk",
		"custom_am", "custom_pm",
		"solar_noon",
	}
}

// EventError reports an event name or altitude that ParseEvent rejected.
type EventError struct {
	Name   string
	Reason string
}

func (e *EventError) Error() string {
	return fmt.Sprintf("invalid event '%s': %s", e.Name, e.Reason)
}

// ParseEvent returns the event called name. An altitude must be given for
// custom_am and custom_pm and must be nil for every other event.
func ParseEvent(name string, altitude *Altitude) (Event, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	switch name {
	case "custom_am", "custom_pm":
		if altitude == nil {
			return nil, &EventError{Name: name, Reason: "an altitude is required for custom events"}
		}
		if name == "custom_am" {
			return CustomAM(*altitude), nil
		}
		return CustomPM(*altitude), nil
	}

	event, ok := namedEvents[name]
	if !ok {
		return nil, &EventError{
			Name:   name,
			Reason: "expected one of " + strings.Join(EventNames(), ", "),
		}
	}
	if altitude != nil {
		return nil, &EventError{Name: name, Reason: "an altitude may only be given for custom_am or custom_pm"}
	}
	return event, nil
}
