package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// One degree of longitude at the equator is about 111.19 km
	d := HaversineDistance(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 100)

	assert.Equal(t, 0.0, HaversineDistance(45.5, -122.6, 45.5, -122.6))
}

func TestLocalXY(t *testing.T) {
	centerLat, centerLon := 40.0, -105.0

	// Straight north by 0.001 degree is about 111.3 m
	x, y := LocalXY(centerLat, centerLon, centerLat+0.001, centerLon)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 111.32, y, 0.01)

	// Longitude shrinks with cos(lat)
	x, y = LocalXY(centerLat, centerLon, centerLat, centerLon+0.001)
	assert.InDelta(t, 111.32*0.766, x, 0.2)
	assert.InDelta(t, 0, y, 1e-9)
}

func TestLatLonFromLocalXYRoundTrip(t *testing.T) {
	centerLat, centerLon := 40.0, -105.0

	lat, lon := LatLonFromLocalXY(centerLat, centerLon, 150, -80)
	x, y := LocalXY(centerLat, centerLon, lat, lon)

	assert.InDelta(t, 150, x, 1e-6)
	assert.InDelta(t, -80, y, 1e-6)
}
