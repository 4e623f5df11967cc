package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters  = 6371000.0 // Earth's mean radius in meters
	MetersPerDegreeLat = 111320.0  // approximate meters per degree of latitude
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// LocalXY projects a point onto a flat-earth plane centered at (centerLat, centerLon).
// Returns (x, y) in meters, x pointing east and y pointing north. Accurate enough
// for the few hundred meters a running track or course spans.
func LocalXY(centerLat, centerLon, lat, lon float64) (float64, float64) {
	y := (lat - centerLat) * MetersPerDegreeLat
	x := (lon - centerLon) * MetersPerDegreeLat * math.Cos(centerLat*math.Pi/180)
	return x, y
}

// LatLonFromLocalXY is the inverse of LocalXY, mapping plane coordinates in
// meters back to degrees around the same center.
func LatLonFromLocalXY(centerLat, centerLon, x, y float64) (float64, float64) {
	lat := centerLat + y/MetersPerDegreeLat
	lon := centerLon + x/(MetersPerDegreeLat*math.Cos(centerLat*math.Pi/180))
	return lat, lon
}
