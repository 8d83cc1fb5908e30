// Package geo provides great-circle distance math over geographic coordinates.
package geo

import "math"

// EarthRadiusMiles is the mean radius of the Earth in miles.
const EarthRadiusMiles = 3963.1

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point lies within the usual coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the great-circle distance between a and b in miles,
// computed with the haversine formula. The result is symmetric and
// non-negative; the distance from a point to itself is 0.
func Distance(a, b Point) float64 {
	dLat := radians(a.Lat - b.Lat)
	dLon := radians(a.Lon - b.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * math.Asin(math.Sqrt(h)) * EarthRadiusMiles
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
