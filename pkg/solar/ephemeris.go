// Package solar computes the position of the Sun for a UTC instant and its
// elevation above the horizon at a point on Earth.
//
// The ephemeris is Paul Schlyter's low-precision method. Day numbers are only
// meaningful for 1901-2099; instants outside that range still produce a result,
// with accuracy degrading silently.
package solar

import (
	"math"
	"time"
)

const (
	degs = 180 / math.Pi
	rads = math.Pi / 180
)

// Instant is a UTC calendar date with a decimal hour in [0,24).
type Instant struct {
	Year  int
	Month int
	Day   int
	Hour  float64
}

// FromTime converts t to UTC and returns it as an Instant.
func FromTime(t time.Time) Instant {
	t = t.UTC()
	return Instant{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Hour:  float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600,
	}
}

// Ephemeris is the Sun's position for one instant.
type Ephemeris struct {
	RA       float64 // right ascension, hours [0,24)
	Dec      float64 // declination, degrees
	Sidereal float64 // mean longitude w+M, degrees [0,360)
}

// GMST0 returns Greenwich mean sidereal time at 0h UT in hours.
// It is not normalized.
func (e Ephemeris) GMST0() float64 {
	return (e.Sidereal + 180) / 15
}

// Rev normalizes an angle in degrees into [0,360).
func Rev(x float64) float64 {
	rv := math.Mod(x, 360)
	if rv < 0 {
		rv += 360
	}
	if rv >= 360 {
		// -tiny + 360 rounds up to 360
		rv = 0
	}
	return rv
}

// DayNumber returns days since 2000 Jan 0.0 UT.
// Integer terms truncate toward zero.
func DayNumber(in Instant) float64 {
	y, m, d := in.Year, in.Month, in.Day
	days := 367*y - 7*(y+(m+9)/12)/4 + 275*m/9 + d - 730530
	return float64(days) + in.Hour/24
}

// Compute returns the Sun's right ascension, declination and sidereal
// reference for the instant.
//
// The eccentric anomaly uses a single first-order correction and is never
// iterated.
func Compute(in Instant) Ephemeris {
	d := DayNumber(in)

	w := 282.9404 + 4.70935e-5*d // longitude of perihelion
	e := 0.016709 - 1.151e-9*d   // eccentricity
	M := Rev(356.0470 + 0.9856002585*d)
	oblecl := 23.4393 - 3.563e-7*d
	L := Rev(w + M)

	E := M + degs*e*math.Sin(M*rads)*(1+e*math.Cos(M*rads))

	// Rectangular coordinates in the plane of the ecliptic
	x := math.Cos(E*rads) - e
	y := math.Sin(E*rads) * math.Sqrt(1-e*e)
	r := math.Sqrt(x*x + y*y)
	v := math.Atan2(y, x) * degs
	lon := Rev(v + w)

	xequat := r * math.Cos(lon*rads)
	yequat := r * math.Sin(lon*rads) * math.Cos(oblecl*rads)
	zequat := r * math.Sin(lon*rads) * math.Sin(oblecl*rads)

	ra := math.Atan2(yequat, xequat) * degs / 15
	if ra < 0 {
		ra += 24
	}
	if ra >= 24 {
		ra -= 24
	}

	return Ephemeris{
		RA:       ra,
		Dec:      math.Asin(zequat/r) * degs,
		Sidereal: L,
	}
}

// Valid reports whether every field is a finite number.
func (e Ephemeris) Valid() bool {
	return finite(e.RA) && finite(e.Dec) && finite(e.Sidereal)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
