package solar

import (
	"encoding/json"
	"math"
	"time"
)

// EventTimeLayout is the text form of a present EventTime.
const EventTimeLayout = "2006-01-02 15:04:05 -07:00"

// EventTime is the time of an event, or nothing when the event does not
// happen on the date at the location.
type EventTime struct {
	t       time.Time
	present bool
}

// NewEventTime returns a present EventTime.
func NewEventTime(t time.Time) EventTime {
	return EventTime{t: t, present: true}
}

// Time returns the event time and whether the event happens at all.
func (e EventTime) Time() (time.Time, bool) {
	return e.t, e.present
}

// Present reports whether the event happens.
func (e EventTime) Present() bool {
	return e.present
}

func (e EventTime) String() string {
	if !e.present {
		return "Never"
	}
	return e.t.Format(EventTimeLayout)
}

// MarshalJSON renders an absent time as null and a present one in RFC 3339.
func (e EventTime) MarshalJSON() ([]byte, error) {
	if !e.present {
		return []byte("null"), nil
	}
	return json.Marshal(e.t.Format(time.RFC3339))
}

// EventTime resolves event against the calculations.
func (c *Calculations) EventTime(event Event) EventTime {
	switch e := event.(type) {
	case SolarNoonEvent:
		return NewEventTime(DayFractionToTime(c.date, c.solarNoonFraction))
	case FixedElevationEvent:
		hourAngle, ok := c.hourAngle(e.degreesBelowHorizon)
		if !ok {
			return EventTime{}
		}
		fraction := c.solarNoonFraction + hourAngle/360.0
		if e.direction == Ascending {
			fraction = c.solarNoonFraction - hourAngle/360.0
		}
		return NewEventTime(DayFractionToTime(c.date, fraction))
	default:
		return EventTime{}
	}
}

// hourAngle returns the hour angle in degrees at which the Sun is
// degreesBelowHorizon below the horizon. It reports false when the Sun never
// reaches that elevation on the date.
func (c *Calculations) hourAngle(degreesBelowHorizon float64) (float64, bool) {
	latitude := float64(c.coordinates.Latitude)
	declination := c.solarDeclination

	cosHourAngle := cosD(90.0+degreesBelowHorizon)/(cosD(latitude)*cosD(declination)) -
		tanD(latitude)*tanD(declination)
	hourAngle := rad2deg(math.Acos(cosHourAngle))
	if math.IsNaN(hourAngle) {
		return 0, false
	}
	return hourAngle, true
}

// DayFractionToTime converts a fraction of the day that starts at date's
// local midnight into a time in date's location. Fractions outside [0, 1)
// move the result to the previous or next day; fractional seconds are
// truncated.
func DayFractionToTime(date time.Time, fraction float64) time.Time {
	day := date
	switch {
	case fraction < 0:
		fraction += 1.0
		day = day.AddDate(0, 0, -1)
	case fraction >= 1:
		fraction -= 1.0
		day = day.AddDate(0, 0, 1)
	}

	hours := fraction * 24.0
	h := math.Trunc(hours)
	minutes := (hours - h) * 60.0
	m := math.Trunc(minutes)
	s := math.Trunc((minutes - m) * 60.0)

	year, month, d := day.Date()
	return time.Date(year, month, d, int(h), int(m), int(s), 0, day.Location())
}
