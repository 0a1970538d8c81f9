package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	"suncron/internal/geo"
	"suncron/internal/solar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bst     = time.FixedZone("BST", 3600)
	testNow = time.Date(2022, time.June, 11, 8, 30, 0, 0, bst)
)

func TestParse_ReportDefaults(t *testing.T) {
	cfg, err := Parse([]string{"report"}, BuiltinDefaults(), testNow)
	require.NoError(t, err)

	assert.Equal(t, ReportAction, cfg.Action)
	assert.False(t, cfg.JSON)
	assert.Equal(t, BuiltinDefaults().Coordinates, cfg.Coordinates)
	assert.Equal(t, "2022-06-11 12:00:00 +01:00", cfg.Date.Format(solar.EventTimeLayout))
}

func TestParse_GlobalFlags(t *testing.T) {
	cfg, err := Parse([]string{
		"--date", "2020-03-25", "-t", "-09:30", "-l", "9.3968S", "--longitude", "140.0777W", "report", "--json",
	}, BuiltinDefaults(), testNow)
	require.NoError(t, err)

	assert.True(t, cfg.JSON)
	assert.Equal(t, "2020-03-25 12:00:00 -09:30", cfg.Date.Format(solar.EventTimeLayout))
	assert.InDelta(t, -9.3968, float64(cfg.Coordinates.Latitude), 1e-12)
	assert.InDelta(t, -140.0777, float64(cfg.Coordinates.Longitude), 1e-12)
}

func TestParse_Wait(t *testing.T) {
	cfg, err := Parse([]string{
		"wait", "--event", "sunset", "-o", "-01:30", "--tag", "lights", "--run-missed-event",
	}, BuiltinDefaults(), testNow)
	require.NoError(t, err)

	assert.Equal(t, WaitAction, cfg.Action)
	assert.Equal(t, solar.Sunset, cfg.Event)
	assert.Equal(t, -90*time.Minute, cfg.Offset)
	assert.Equal(t, "lights", cfg.Tag)
	assert.True(t, cfg.RunMissed)
}

func TestParse_WaitCustomEvent(t *testing.T) {
	cfg, err := Parse([]string{"wait", "-e", "custom_pm", "-a", "-4.5"}, BuiltinDefaults(), testNow)
	require.NoError(t, err)
	assert.Equal(t, solar.CustomPM(-4.5), cfg.Event)
	assert.Equal(t, time.Duration(0), cfg.Offset)
}

func TestParse_Poll(t *testing.T) {
	cfg, err := Parse([]string{"poll", "--watch", "--json"}, BuiltinDefaults(), testNow)
	require.NoError(t, err)
	assert.Equal(t, PollAction, cfg.Action)
	assert.True(t, cfg.Watch)
	assert.True(t, cfg.JSON)
}

func TestParse_UsesSuppliedDefaults(t *testing.T) {
	defaults := Defaults{Coordinates: geo.Coordinates{Latitude: 1, Longitude: 2}}
	cfg, err := Parse([]string{"report"}, defaults, testNow)
	require.NoError(t, err)
	assert.Equal(t, defaults.Coordinates, cfg.Coordinates)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		source string
	}{
		{"no command", []string{}, "command"},
		{"unknown command", []string{"dance"}, "command"},
		{"latitude only", []string{"-l", "51.0", "report"}, "--latitude/--longitude"},
		{"latitude out of range", []string{"-l", "91.0", "-o", "0.0", "report"}, "--latitude/--longitude"},
		{"bad date", []string{"-d", "2020-13-01", "report"}, "--date"},
		{"bad time zone", []string{"-t", "+24:00", "report"}, "--time-zone"},
		{"unknown flag", []string{"--colour", "report"}, "arguments"},
		{"extra argument", []string{"report", "now"}, "report"},
		{"missing event", []string{"wait"}, "--event"},
		{"unknown event", []string{"wait", "-e", "moonrise"}, "--event"},
		{"custom without altitude", []string{"wait", "-e", "custom_am"}, "--event"},
		{"altitude on sunrise", []string{"wait", "-e", "sunrise", "-a", "4"}, "--event"},
		{"altitude out of range", []string{"wait", "-e", "custom_am", "-a", "95"}, "--altitude"},
		{"bad offset", []string{"wait", "-e", "sunrise", "-o", "24:00:00"}, "--offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args, BuiltinDefaults(), testNow)
			require.Error(t, err)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.source, cfgErr.Source)
		})
	}
}

func TestParse_RangeErrorIsWrapped(t *testing.T) {
	_, err := Parse([]string{"-l", "91.0", "-o", "0.0", "report"}, BuiltinDefaults(), testNow)

	var rangeErr *geo.RangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "latitude", rangeErr.Field)
}

func TestParse_Help(t *testing.T) {
	_, err := Parse([]string{"-h"}, BuiltinDefaults(), testNow)
	assert.True(t, errors.Is(err, flag.ErrHelp))

	_, err = Parse([]string{"wait", "--help"}, BuiltinDefaults(), testNow)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestParseOffset(t *testing.T) {
	valid := []struct {
		input    string
		expected time.Duration
	}{
		{"12:00:00", 12 * time.Hour},
		{"12:00", 12 * time.Hour},
		{"-12:00:00", -12 * time.Hour},
		{"23:59:59", 86399 * time.Second},
		{"23:59", 86340 * time.Second},
		{"00:59", 59 * time.Minute},
		{"00:00", 0},
		{"-00:00:30", -30 * time.Second},
	}
	for _, tt := range valid {
		d, err := ParseOffset(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, d, tt.input)
	}

	for _, input := range []string{"24:00:00", "24:00", "12:60", "-", "", "1h30m", "12"} {
		_, err := ParseOffset(input)
		assert.Error(t, err, "input %q should be rejected", input)
	}
}

func TestParseTimeZone(t *testing.T) {
	valid := map[string]int{
		"+00:00": 0,
		"+01:00": 3600,
		"-09:30": -34200,
		"+23:59": 86340,
		"-23:59": -86340,
	}
	for input, expected := range valid {
		loc, err := ParseTimeZone(input)
		require.NoError(t, err, input)
		_, off := time.Date(2022, 1, 1, 0, 0, 0, 0, loc).Zone()
		assert.Equal(t, expected, off, input)
	}

	for _, input := range []string{"01:00", "+1:00", "+24:00", "+12:60", "UTC", ""} {
		_, err := ParseTimeZone(input)
		assert.Error(t, err, "input %q should be rejected", input)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2099-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2099, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 31, d.Day())

	for _, input := range []string{"2020-02-30", "31/12/2099", "2020-3-25", ""} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q should be rejected", input)
	}
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)

	out := buf.String()
	assert.Contains(t, out, "-latitude")
	assert.Contains(t, out, "-run-missed-event")
	assert.Contains(t, out, "-watch")
	assert.Contains(t, out, "custom_am")
}
