package solar

import "math"

// GeoCoordinate is a point on Earth in degrees.
// Lat is in [-90,90], Lon in [-180,180).
type GeoCoordinate struct {
	Lat float64
	Lon float64
}

// WrapLongitude maps a longitude in degrees into [-180,180).
func WrapLongitude(lon float64) float64 {
	l := math.Mod(lon+180, 360)
	if l < 0 {
		l += 360
	}
	if l >= 360 {
		l = 0
	}
	return l - 180
}

// Altitude returns the Sun's elevation in degrees above the horizon at geo.
// hour is the UT decimal hour of the instant the ephemeris was computed for.
func Altitude(eph Ephemeris, geo GeoCoordinate, hour float64) float64 {
	sidtime := eph.GMST0() + hour + geo.Lon/15
	ha := Rev(sidtime-eph.RA) * 15 * rads

	dec := eph.Dec * rads
	lat := geo.Lat * rads

	// Hour angle and declination as a unit vector
	x := math.Cos(ha) * math.Cos(dec)
	y := math.Sin(ha) * math.Cos(dec)
	z := math.Sin(dec)

	// Rotate along the y axis by the observer's latitude
	xhor := x*math.Sin(lat) - z*math.Cos(lat)
	yhor := y
	zhor := x*math.Cos(lat) + z*math.Sin(lat)

	return math.Atan2(zhor, math.Sqrt(xhor*xhor+yhor*yhor)) * degs
}

// SubsolarPoint returns the point where the Sun is at the zenith.
func SubsolarPoint(eph Ephemeris, hour float64) GeoCoordinate {
	return GeoCoordinate{
		Lat: eph.Dec,
		Lon: WrapLongitude(15 * (eph.RA - eph.GMST0() - hour)),
	}
}
