package solar

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"suncron/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayLength(t *testing.T) {
	hammerfest := geo.Coordinates{Latitude: 70.67299, Longitude: 23.67165}

	tests := []struct {
		name     string
		date     time.Time
		coords   geo.Coordinates
		expected time.Duration
	}{
		{"equinox", noonOn(2020, time.March, 25, offset(0)), greenwich, 45113 * time.Second},
		{"summer", noonOn(2022, time.June, 11, offset(1)), greenwich, 59585 * time.Second},
		{"winter", noonOn(2099, time.December, 31, offset(0)), greenwich, 28514 * time.Second},
		{"polar night", noonOn(2020, time.December, 25, offset(0)), hammerfest, 0},
		{"midnight sun", noonOn(2020, time.June, 25, offset(0)), hammerfest, 24 * time.Hour},
		{"north pole in march", noonOn(2020, time.March, 25, offset(0)), geo.Coordinates{Latitude: 90}, 24 * time.Hour},
		{"south pole in march", noonOn(2020, time.March, 25, offset(0)), geo.Coordinates{Latitude: -90}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.date, tt.coords).DayLength())
		})
	}
}

func TestNewReport(t *testing.T) {
	c := New(noonOn(2022, time.June, 11, offset(1)), greenwich)
	report := NewReport(c)

	assert.Equal(t, greenwich, report.Location)
	assert.Equal(t, 59585*time.Second, report.DayLength)
	assert.Equal(t, c.EventTime(SolarNoon), report.SolarNoon)
	assert.Equal(t, c.EventTime(Sunrise), report.Sunrise)
	assert.Equal(t, c.EventTime(Sunset), report.Sunset)
	assert.Equal(t, c.EventTime(NauticalDawn), report.Dawn.Nautical)
	assert.Equal(t, c.EventTime(CivilDusk), report.Dusk.Civil)
	assert.False(t, report.Dawn.Astronomical.Present())
	assert.False(t, report.Dusk.Astronomical.Present())
}

func TestReport_JSON(t *testing.T) {
	report := NewReport(New(noonOn(2022, time.June, 11, offset(1)), greenwich))

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, map[string]any{"latitude": 51.4769, "longitude": -0.0005}, decoded["location"])
	assert.Equal(t, "2022-06-11T12:00:00+01:00", decoded["date"])
	assert.Equal(t, 59585.0, decoded["day_length"])
	assert.Equal(t, "2022-06-11T12:59:39+01:00", decoded["solar_noon"])
	assert.Equal(t, "2022-06-11T04:43:07+01:00", decoded["sunrise"])
	assert.Equal(t, "2022-06-11T21:16:12+01:00", decoded["sunset"])

	dawn := decoded["dawn"].(map[string]any)
	assert.Equal(t, "2022-06-11T03:56:02+01:00", dawn["civil"])
	assert.Equal(t, "2022-06-11T02:43:43+01:00", dawn["nautical"])
	assert.Nil(t, dawn["astronomical"])
	assert.Contains(t, dawn, "astronomical")

	dusk := decoded["dusk"].(map[string]any)
	assert.Equal(t, "2022-06-11T23:15:36+01:00", dusk["nautical"])
	assert.Nil(t, dusk["astronomical"])
}

func TestReport_WriteText(t *testing.T) {
	report := NewReport(New(noonOn(2022, time.June, 11, offset(1)), greenwich))

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "Latitude:  51.4769\n")
	assert.Contains(t, out, "Longitude: -0.0005\n")
	assert.Contains(t, out, "2022-06-11 12:00:00 +01:00\n")
	assert.Contains(t, out, "Solar noon is at:         2022-06-11 12:59:39 +01:00\n")
	assert.Contains(t, out, "The day length is:        16:33:05\n")
	assert.Contains(t, out, "Sunrise is at:            2022-06-11 04:43:07 +01:00\n")
	assert.Contains(t, out, "Sunset is at:             2022-06-11 21:16:12 +01:00\n")
	assert.Contains(t, out, "Astronomical dawn is at:  Never\n")
	assert.Contains(t, out, "Astronomical dusk is at:  Never\n")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "24:00:00", FormatDuration(24*time.Hour))
	assert.Equal(t, "12:31:53", FormatDuration(45113*time.Second+900*time.Millisecond))
	assert.Equal(t, "-00:01:30", FormatDuration(-90*time.Second))
}
