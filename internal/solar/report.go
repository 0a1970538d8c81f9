package solar

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"suncron/internal/geo"
)

// Twilight holds the three twilight boundaries on one side of the day.
type Twilight struct {
	Civil        EventTime `json:"civil"`
	Nautical     EventTime `json:"nautical"`
	Astronomical EventTime `json:"astronomical"`
}

// Report collects every event for one date and location. All fields are
// resolved from the same Calculations.
type Report struct {
	Location  geo.Coordinates
	Date      time.Time
	DayLength time.Duration
	SolarNoon EventTime
	Sunrise   EventTime
	Sunset    EventTime
	Dawn      Twilight
	Dusk      Twilight
}

// NewReport resolves the full set of events from c.
func NewReport(c *Calculations) *Report {
	return &Report{
		Location:  c.coordinates,
		Date:      c.date,
		DayLength: c.DayLength(),
		SolarNoon: c.EventTime(SolarNoon),
		Sunrise:   c.EventTime(Sunrise),
		Sunset:    c.EventTime(Sunset),
		Dawn: Twilight{
			Civil:        c.EventTime(CivilDawn),
			Nautical:     c.EventTime(NauticalDawn),
			Astronomical: c.EventTime(AstronomicalDawn),
		},
		Dusk: Twilight{
			Civil:        c.EventTime(CivilDusk),
			Nautical:     c.EventTime(NauticalDusk),
			Astronomical: c.EventTime(AstronomicalDusk),
		},
	}
}

type reportJSON struct {
	Location  geo.Coordinates `json:"location"`
	Date      string          `json:"date"`
	DayLength int64           `json:"day_length"`
	SolarNoon EventTime       `json:"solar_noon"`
	Sunrise   EventTime       `json:"sunrise"`
	Sunset    EventTime       `json:"sunset"`
	Dawn      Twilight        `json:"dawn"`
	Dusk      Twilight        `json:"dusk"`
}

// MarshalJSON renders the day length in whole seconds and absent events as null.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportJSON{
		Location:  r.Location,
		Date:      r.Date.Format(time.RFC3339),
		DayLength: int64(r.DayLength / time.Second),
		SolarNoon: r.SolarNoon,
		Sunrise:   r.Sunrise,
		Sunset:    r.Sunset,
		Dawn:      r.Dawn,
		Dusk:      r.Dusk,
	})
}

// WriteText writes the human readable form of the report to w.
func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"LOCATION\n"+
			"--------\n"+
			"Latitude:  %v\n"+
			"Longitude: %v\n\n"+
			"DATE\n"+
			"----\n"+
			"%s\n\n"+
			"Solar noon is at:         %s\n"+
			"The day length is:        %s\n\n"+
			"Sunrise is at:            %s\n"+
			"Sunset is at:             %s\n\n"+
			"Civil dawn is at:         %s\n"+
			"Civil dusk is at:         %s\n\n"+
			"Nautical dawn is at:      %s\n"+
			"Nautical dusk is at:      %s\n\n"+
			"Astronomical dawn is at:  %s\n"+
			"Astronomical dusk is at:  %s\n",
		float64(r.Location.Latitude),
		float64(r.Location.Longitude),
		r.Date.Format(EventTimeLayout),
		r.SolarNoon,
		FormatDuration(r.DayLength),
		r.Sunrise,
		r.Sunset,
		r.Dawn.Civil,
		r.Dusk.Civil,
		r.Dawn.Nautical,
		r.Dusk.Nautical,
		r.Dawn.Astronomical,
		r.Dusk.Astronomical,
	)
	return err
}

// FormatDuration renders d as HH:MM:SS, truncated to whole seconds.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, seconds/60%60, seconds%60)
}
