package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvexHull(t *testing.T) {
	// Square corners plus interior and edge points
	points := []XY{
		{0, 0}, {10, 0}, {10, 10}, {0, 10},
		{5, 5}, {2, 3}, {5, 0}, {10, 5},
	}

	hull := ConvexHull(points)
	require.Len(t, hull, 4)

	assert.InDelta(t, 100.0, PolygonArea(hull), 1e-9)

	// Counter-clockwise winding has positive signed area
	var signed float64
	for i := range hull {
		j := (i + 1) % len(hull)
		signed += hull[i].X*hull[j].Y - hull[j].X*hull[i].Y
	}
	assert.Greater(t, signed, 0.0)
}

func TestConvexHullDegenerate(t *testing.T) {
	assert.Len(t, ConvexHull([]XY{{1, 1}}), 1)
	assert.Len(t, ConvexHull([]XY{{1, 1}, {2, 2}}), 2)

	// Collinear points collapse to the two endpoints
	collinear := []XY{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	assert.Len(t, ConvexHull(collinear), 2)
}

func TestPolygonArea(t *testing.T) {
	square := []XY{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	assert.InDelta(t, 16.0, PolygonArea(square), 1e-9)

	// Winding direction does not matter
	reversed := []XY{{0, 4}, {4, 4}, {4, 0}, {0, 0}}
	assert.InDelta(t, 16.0, PolygonArea(reversed), 1e-9)

	assert.Equal(t, 0.0, PolygonArea([]XY{{0, 0}, {1, 1}}))
}

func TestMinAreaRect(t *testing.T) {
	// A 10x4 rectangle rotated 30 degrees
	angle := 30 * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)

	var points []XY
	for _, c := range []XY{{-5, -2}, {5, -2}, {5, 2}, {-5, 2}, {0, -2}, {0, 2}} {
		points = append(points, XY{
			X: c.X*cos - c.Y*sin,
			Y: c.X*sin + c.Y*cos,
		})
	}

	rect := MinAreaRect(points)
	assert.InDelta(t, 4.0, rect.ShortAxis(), 1e-6)
	assert.InDelta(t, 10.0, rect.LongAxis(), 1e-6)
	assert.InDelta(t, 30.0, rect.AngleDeg, 1e-6)
	assert.InDelta(t, 0.0, rect.Center.X, 1e-6)
	assert.InDelta(t, 0.0, rect.Center.Y, 1e-6)
}

func TestMinAreaRectAxisAligned(t *testing.T) {
	points := []XY{{0, 0}, {8, 0}, {8, 3}, {0, 3}, {4, 1}}

	rect := MinAreaRect(points)
	assert.InDelta(t, 3.0, rect.ShortAxis(), 1e-9)
	assert.InDelta(t, 8.0, rect.LongAxis(), 1e-9)
	// Long axis runs along X
	assert.InDelta(t, 0.0, math.Min(rect.AngleDeg, 180-rect.AngleDeg), 1e-9)
}
