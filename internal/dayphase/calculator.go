package dayphase

import (
	"context"
	"fmt"
	"time"

	"suncron/internal/clock"
	"suncron/internal/geo"
	"suncron/internal/solar"

	"go.uber.org/zap"
)

// DayPart is the part of the day implied by the Sun's elevation
type DayPart string

const (
	DayPartDay                  DayPart = "day"
	DayPartCivilTwilight        DayPart = "civil_twilight"
	DayPartNauticalTwilight     DayPart = "nautical_twilight"
	DayPartAstronomicalTwilight DayPart = "astronomical_twilight"
	DayPartNight                DayPart = "night"
)

// FromElevation classifies a refraction-corrected solar elevation in degrees
func FromElevation(elevation float64) DayPart {
	switch {
	case elevation < -18.0:
		return DayPartNight
	case elevation < -12.0:
		return DayPartAstronomicalTwilight
	case elevation < -6.0:
		return DayPartNauticalTwilight
	case elevation < solar.SunriseDegrees:
		return DayPartCivilTwilight
	default:
		return DayPartDay
	}
}

// DisplayName returns the human readable name of the day part
func (p DayPart) DisplayName() string {
	switch p {
	case DayPartDay:
		return "Day"
	case DayPartCivilTwilight:
		return "Civil Twilight"
	case DayPartNauticalTwilight:
		return "Nautical Twilight"
	case DayPartAstronomicalTwilight:
		return "Astronomical Twilight"
	case DayPartNight:
		return "Night"
	default:
		return string(p)
	}
}

// ValidateDayPart checks if a string is a valid day part
func ValidateDayPart(part string) (DayPart, error) {
	switch DayPart(part) {
	case DayPartDay, DayPartCivilTwilight, DayPartNauticalTwilight, DayPartAstronomicalTwilight, DayPartNight:
		return DayPart(part), nil
	default:
		return "", fmt.Errorf("invalid day part: %s", part)
	}
}

// Reading is the Sun's state at one instant
type Reading struct {
	Time           time.Time `json:"time"`
	SolarElevation float64   `json:"solar_elevation"`
	DayPart        DayPart   `json:"day_part"`
}

// Calculator reports the current day part for a fixed location
type Calculator struct {
	coordinates geo.Coordinates
	clock       clock.Clock
	logger      *zap.Logger
}

// NewCalculator creates a new day part calculator
func NewCalculator(coordinates geo.Coordinates, clk clock.Clock, logger *zap.Logger) *Calculator {
	return &Calculator{
		coordinates: coordinates,
		clock:       clk,
		logger:      logger.Named("dayphase"),
	}
}

// Current builds fresh calculations for the clock's current time and
// classifies the resulting elevation
func (c *Calculator) Current() Reading {
	now := solar.FixedOffset(c.clock.Now().Truncate(time.Second))
	elevation := solar.New(now, c.coordinates).SolarElevation()
	part := FromElevation(elevation)

	c.logger.Debug("Calculated day part",
		zap.Time("now", now),
		zap.Float64("elevation", elevation),
		zap.String("day_part", string(part)))

	return Reading{Time: now, SolarElevation: elevation, DayPart: part}
}

// Watch calls fn with a reading now and again at every minute boundary
// until ctx is done or fn returns an error
func (c *Calculator) Watch(ctx context.Context, fn func(Reading) error) error {
	c.logger.Info("Watching day part", zap.String("location", c.coordinates.String()))

	for {
		if err := fn(c.Current()); err != nil {
			return err
		}

		next := c.clock.Now().Truncate(time.Minute).Add(time.Minute)
		if err := c.clock.WaitUntil(ctx, next); err != nil {
			c.logger.Info("Stopped watching day part", zap.Error(err))
			return err
		}
	}
}
