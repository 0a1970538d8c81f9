// Package solar computes the times of solar events such as sunrise, sunset,
// solar noon and twilight for a date, a fixed UTC offset and a coordinate.
//
// The calculations follow the NOAA low-precision solar position series.
// A Calculations value holds the quantities that every event for one date
// shares and is built once with New; event times are then derived from it
// without repeating the trigonometry.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"suncron/internal/geo"
)

// j2000 is the Julian date of the J2000.0 epoch.
const j2000 = 2451545.0

// Calculations holds the midday quantities for one date and location.
// It is immutable and safe for concurrent use.
type Calculations struct {
	date        time.Time
	coordinates geo.Coordinates

	solarDeclination             float64
	solarNoonFraction            float64
	correctedSolarElevationAngle float64
	equationOfTime               float64
}

// FixedOffset returns t in a zone that has t's current UTC offset
// permanently, so later date arithmetic never crosses a DST transition.
func FixedOffset(t time.Time) time.Time {
	name, offset := t.Zone()
	return t.In(time.FixedZone(name, offset))
}

// New computes the solar quantities for date at coordinates. The offset of
// date is fixed for all derived event times.
func New(date time.Time, coordinates geo.Coordinates) *Calculations {
	date = FixedOffset(date)
	_, offsetSeconds := date.Zone()
	timeZone := float64(offsetSeconds) / 3600.0
	latitude := float64(coordinates.Latitude)
	longitude := float64(coordinates.Longitude)

	julianDate := julian.TimeToJD(date.UTC())
	julianCentury := (julianDate - j2000) / 36525.0

	geomMeanLongSun := math.Mod(280.46646+julianCentury*(36000.76983+julianCentury*0.0003032), 360.0)
	geomMeanAnomSun := 357.52911 + julianCentury*(35999.05029-0.0001537*julianCentury)
	eccentEarthOrbit := 0.016708634 - julianCentury*(0.000042037+0.0000001267*julianCentury)

	equationOfCenter := sinD(geomMeanAnomSun)*(1.914602-julianCentury*(0.004817+0.000014*julianCentury)) +
		sinD(2*geomMeanAnomSun)*(0.019993-0.000101*julianCentury) +
		sinD(3*geomMeanAnomSun)*0.000289

	trueLongSun := geomMeanLongSun + equationOfCenter
	omega := 125.04 - 1934.136*julianCentury
	apparentLongSun := trueLongSun - 0.00569 - 0.00478*sinD(omega)

	meanObliqEcliptic := 23.0 + (26.0+(21.448-julianCentury*(46.815+julianCentury*(0.00059-julianCentury*0.001813)))/60.0)/60.0
	obliqCorr := meanObliqEcliptic + 0.00256*cosD(omega)

	declination := rad2deg(math.Asin(sinD(obliqCorr) * sinD(apparentLongSun)))

	varY := math.Pow(tanD(obliqCorr/2.0), 2)
	l0 := deg2rad(geomMeanLongSun)
	m := deg2rad(geomMeanAnomSun)
	equationOfTime := 4.0 * rad2deg(
		varY*math.Sin(2*l0)-
			2*eccentEarthOrbit*math.Sin(m)+
			4*eccentEarthOrbit*varY*math.Sin(m)*math.Cos(2*l0)-
			0.5*varY*varY*math.Sin(4*l0)-
			1.25*eccentEarthOrbit*eccentEarthOrbit*math.Sin(2*m))

	solarNoonFraction := (720.0 - 4.0*longitude - equationOfTime + timeZone*60.0) / 1440.0

	trueSolarTime := math.Mod(dayFraction(date)*1440.0+equationOfTime+4.0*longitude-60.0*timeZone, 1440.0)
	var hourAngle float64
	if trueSolarTime/4.0 < 0 {
		hourAngle = trueSolarTime/4.0 + 180.0
	} else {
		hourAngle = trueSolarTime/4.0 - 180.0
	}

	zenith := rad2deg(math.Acos(sinD(latitude)*sinD(declination) + cosD(latitude)*cosD(declination)*cosD(hourAngle)))
	elevation := 90.0 - zenith

	return &Calculations{
		date:                         date,
		coordinates:                  coordinates,
		solarDeclination:             declination,
		solarNoonFraction:            solarNoonFraction,
		correctedSolarElevationAngle: elevation + atmosphericRefraction(elevation),
		equationOfTime:               equationOfTime,
	}
}

// atmosphericRefraction returns the refraction correction in degrees for a
// geometric elevation in degrees.
func atmosphericRefraction(elevation float64) float64 {
	var arcSeconds float64
	switch {
	case elevation > 85.0:
		arcSeconds = 0
	case elevation > 5.0:
		t := tanD(elevation)
		arcSeconds = 58.1/t - 0.07/math.Pow(t, 3) + 0.000086/math.Pow(t, 5)
	case elevation > -0.575:
		arcSeconds = 1735.0 + elevation*(103.4+elevation*(-12.79+elevation*0.711))
	default:
		arcSeconds = -20.772 / tanD(elevation)
	}
	return arcSeconds / 3600.0
}

// dayFraction returns the whole seconds elapsed since local midnight as a
// fraction of a day.
func dayFraction(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h*3600+m*60+s) / 86400.0
}

// Date returns the date, with its fixed offset, the calculations were made for.
func (c *Calculations) Date() time.Time {
	return c.date
}

// Coordinates returns the location the calculations were made for.
func (c *Calculations) Coordinates() geo.Coordinates {
	return c.coordinates
}

// SolarDeclination returns the Sun's declination in degrees.
func (c *Calculations) SolarDeclination() float64 {
	return c.solarDeclination
}

// SolarNoonFraction returns solar noon as a fraction of the local day. The
// value is not normalised and may fall outside [0, 1).
func (c *Calculations) SolarNoonFraction() float64 {
	return c.solarNoonFraction
}

// EquationOfTime returns the equation of time in minutes.
func (c *Calculations) EquationOfTime() float64 {
	return c.equationOfTime
}

// SolarElevation returns the refraction-corrected solar elevation in degrees
// at the instant the calculations were made for.
func (c *Calculations) SolarElevation() float64 {
	return c.correctedSolarElevationAngle
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

func sinD(d float64) float64 { return math.Sin(deg2rad(d)) }
func cosD(d float64) float64 { return math.Cos(deg2rad(d)) }
func tanD(d float64) float64 { return math.Tan(deg2rad(d)) }
