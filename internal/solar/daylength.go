package solar

import "time"

// DayLength returns the time between sunrise and sunset. When either does not
// happen the Sun is either up all day or down all day, and the elevation at
// solar noon decides which.
func (c *Calculations) DayLength() time.Duration {
	sunrise, riseOK := c.EventTime(Sunrise).Time()
	sunset, setOK := c.EventTime(Sunset).Time()
	if riseOK && setOK {
		return sunset.Sub(sunrise)
	}

	noon, _ := c.EventTime(SolarNoon).Time()
	if New(noon, c.coordinates).SolarElevation() >= SunriseDegrees {
		return 24 * time.Hour
	}
	return 0
}
