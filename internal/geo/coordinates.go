// Package geo provides validated geographic coordinates.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// RangeError reports a coordinate value outside its permitted range.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %v and %v, inclusive. Found '%v'", e.Field, e.Min, e.Max, e.Value)
}

// Latitude in decimal degrees, positive to the north.
type Latitude float64

// Longitude in decimal degrees, positive to the east.
type Longitude float64

// NewLatitude validates v and returns it as a Latitude.
func NewLatitude(v float64) (Latitude, error) {
	// Written so that NaN fails the check.
	if !(v >= minLatitude && v <= maxLatitude) {
		return 0, &RangeError{Field: "latitude", Value: v, Min: minLatitude, Max: maxLatitude}
	}
	return Latitude(v), nil
}

// NewLongitude validates v and returns it as a Longitude.
func NewLongitude(v float64) (Longitude, error) {
	if !(v >= minLongitude && v <= maxLongitude) {
		return 0, &RangeError{Field: "longitude", Value: v, Min: minLongitude, Max: maxLongitude}
	}
	return Longitude(v), nil
}

// ParseLatitude parses a latitude such as "51.4769", "-33.9" or "33.9S".
func ParseLatitude(s string) (Latitude, error) {
	v, err := parseDegrees(s, "latitude", 'N', 'S')
	if err != nil {
		return 0, err
	}
	return NewLatitude(v)
}

// ParseLongitude parses a longitude such as "-0.0005", "18.552" or "3.1W".
func ParseLongitude(s string) (Longitude, error) {
	v, err := parseDegrees(s, "longitude", 'E', 'W')
	if err != nil {
		return 0, err
	}
	return NewLongitude(v)
}

// parseDegrees accepts a signed decimal with an optional hemisphere suffix.
// The negative hemisphere suffix flips the sign, so "-50S" is 50 north.
func parseDegrees(s, field string, positive, negative byte) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid %s: empty value", field)
	}
	sign := 1.0
	suffix := s[len(s)-1]
	if suffix >= 'a' && suffix <= 'z' {
		suffix -= 'a' - 'A'
	}
	switch suffix {
	case positive:
		s = s[:len(s)-1]
	case negative:
		sign = -1.0
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': expected decimal degrees", field, s)
	}
	return v * sign, nil
}

// Coordinates is a position on the Earth's surface.
type Coordinates struct {
	Latitude  Latitude  `json:"latitude"`
	Longitude Longitude `json:"longitude"`
}

// NewCoordinates validates both components.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	la, err := NewLatitude(lat)
	if err != nil {
		return Coordinates{}, err
	}
	lo, err := NewLongitude(lon)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Latitude: la, Longitude: lo}, nil
}

// ParseCoordinates parses both components, see ParseLatitude and ParseLongitude.
func ParseCoordinates(lat, lon string) (Coordinates, error) {
	la, err := ParseLatitude(lat)
	if err != nil {
		return Coordinates{}, err
	}
	lo, err := ParseLongitude(lon)
	if err != nil {
		return Coordinates{}, err
	}
	return Coordinates{Latitude: la, Longitude: lo}, nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%v, %v", float64(c.Latitude), float64(c.Longitude))
}
