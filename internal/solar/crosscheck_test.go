package solar

import (
	"math"
	"testing"
	"time"

	"suncron/internal/geo"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The libraries below use their own series, so agreement is only expected to
// within a couple of minutes.
// Locations are picked so every event falls on the same UTC calendar day.
const crossCheckTolerance = 3 * time.Minute

var crossCheckCases = []struct {
	name   string
	date   time.Time
	coords geo.Coordinates
}{
	{"greenwich equinox", noonOn(2020, time.March, 25, time.UTC), greenwich},
	{"greenwich midsummer", noonOn(2022, time.June, 21, time.UTC), greenwich},
	{"cape town summer", noonOn(2023, time.January, 15, time.UTC), geo.Coordinates{Latitude: -33.9249, Longitude: 18.4241}},
	{"reykjavik spring", noonOn(2021, time.March, 10, time.UTC), geo.Coordinates{Latitude: 64.1466, Longitude: -21.9426}},
	{"riga autumn", noonOn(2024, time.October, 2, time.UTC), geo.Coordinates{Latitude: 56.9496, Longitude: 24.1052}},
}

func assertWithin(t *testing.T, expected time.Time, actual EventTime, msg string) {
	t.Helper()
	got, ok := actual.Time()
	require.True(t, ok, msg)
	assert.WithinDuration(t, expected, got, crossCheckTolerance, msg)
}

func TestCrossCheck_GoSunrise(t *testing.T) {
	for _, tt := range crossCheckCases {
		t.Run(tt.name, func(t *testing.T) {
			rise, set := sunrise.SunriseSunset(
				float64(tt.coords.Latitude), float64(tt.coords.Longitude),
				tt.date.Year(), tt.date.Month(), tt.date.Day(),
			)
			c := New(tt.date, tt.coords)

			assertWithin(t, rise, c.EventTime(Sunrise), "sunrise")
			assertWithin(t, set, c.EventTime(Sunset), "sunset")
		})
	}
}

func TestCrossCheck_SunCalc(t *testing.T) {
	for _, tt := range crossCheckCases {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := float64(tt.coords.Latitude), float64(tt.coords.Longitude)
			times := suncalc.GetTimes(tt.date, lat, lon)
			c := New(tt.date, tt.coords)

			assertWithin(t, times[suncalc.SolarNoon].Value, c.EventTime(SolarNoon), "solar noon")
			assertWithin(t, times[suncalc.NauticalDawn].Value, c.EventTime(NauticalDawn), "nautical dawn")
			assertWithin(t, times[suncalc.NauticalDusk].Value, c.EventTime(NauticalDusk), "nautical dusk")

			// suncalc reports the geometric altitude in radians. Refraction
			// adds well under a tenth of a degree this high above the horizon.
			altitude := suncalc.GetPosition(tt.date, lat, lon).Altitude * 180.0 / math.Pi
			if altitude > 10 {
				assert.InDelta(t, altitude, c.SolarElevation(), 0.1)
			}
		})
	}
}
