package solar

import "math"

// SunDirection returns a normalized Earth-fixed vector pointing towards the
// Sun. X points at 0°N 0°E, Y at 0°N 90°E and Z at the north pole.
func SunDirection(eph Ephemeris, hour float64) [3]float64 {
	p := SubsolarPoint(eph, hour)

	// Convert degrees to radians
	latRad := p.Lat * rads
	lonRad := p.Lon * rads

	// Spherical to Cartesian conversion
	x := math.Cos(latRad) * math.Cos(lonRad)
	y := math.Cos(latRad) * math.Sin(lonRad)
	z := math.Sin(latRad)

	return [3]float64{x, y, z}
}

// Illuminated reports whether geo is on the day side of the terminator,
// using the sign of the dot product with the Sun direction.
func Illuminated(eph Ephemeris, geo GeoCoordinate, hour float64) bool {
	s := SunDirection(eph, hour)
	latRad := geo.Lat * rads
	lonRad := geo.Lon * rads
	dot := s[0]*math.Cos(latRad)*math.Cos(lonRad) +
		s[1]*math.Cos(latRad)*math.Sin(lonRad) +
		s[2]*math.Sin(latRad)
	return dot >= 0
}
