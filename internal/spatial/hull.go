package spatial

import (
	"math"
	"sort"
)

// XY is a point on a local flat-earth plane, in meters
type XY struct {
	X float64
	Y float64
}

// RotatedRect is a minimum-area rectangle enclosing a point set
type RotatedRect struct {
	Center   XY
	Width    float64 // extent along the rectangle's first axis
	Height   float64 // extent along the rectangle's second axis
	AngleDeg float64 // angle of the longer axis, normalized to [0, 180)
}

// ShortAxis returns the smaller rectangle dimension
func (r RotatedRect) ShortAxis() float64 {
	return math.Min(r.Width, r.Height)
}

// LongAxis returns the larger rectangle dimension
func (r RotatedRect) LongAxis() float64 {
	return math.Max(r.Width, r.Height)
}

func cross(o, a, b XY) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ConvexHull computes the convex hull of a point set using the monotone chain
// algorithm. The hull is returned in counter-clockwise order without the
// closing point. Collinear boundary points are dropped.
func ConvexHull(points []XY) []XY {
	n := len(points)
	if n < 3 {
		out := make([]XY, n)
		copy(out, points)
		return out
	}

	pts := make([]XY, n)
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	hull := make([]XY, 0, 2*n)

	// Lower hull
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	// Upper hull
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1]
}

// PolygonArea calculates the area of a planar polygon using the shoelace formula.
// Vertices must be in order; the closing point is implicit.
func PolygonArea(ring []XY) float64 {
	if len(ring) < 3 {
		return 0
	}

	var sum float64
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return math.Abs(sum) / 2.0
}

// MinAreaRect computes the minimum-area rotated rectangle enclosing a point set
// using rotating calipers over the convex hull edges.
func MinAreaRect(points []XY) RotatedRect {
	hull := ConvexHull(points)
	n := len(hull)

	if n == 0 {
		return RotatedRect{}
	}
	if n == 1 {
		return RotatedRect{Center: hull[0]}
	}
	if n == 2 {
		dx := hull[1].X - hull[0].X
		dy := hull[1].Y - hull[0].Y
		return RotatedRect{
			Center:   XY{X: (hull[0].X + hull[1].X) / 2, Y: (hull[0].Y + hull[1].Y) / 2},
			Width:    math.Hypot(dx, dy),
			Height:   0,
			AngleDeg: normalizeAngle(math.Atan2(dy, dx) * 180 / math.Pi),
		}
	}

	best := RotatedRect{}
	bestArea := math.Inf(1)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		ex := hull[j].X - hull[i].X
		ey := hull[j].Y - hull[i].Y
		length := math.Hypot(ex, ey)
		if length == 0 {
			continue
		}
		// Unit edge direction and its normal
		ux, uy := ex/length, ey/length
		nx, ny := -uy, ux

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range hull {
			u := p.X*ux + p.Y*uy
			v := p.X*nx + p.Y*ny
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		w := maxU - minU
		h := maxV - minV
		area := w * h
		if area >= bestArea {
			continue
		}
		bestArea = area

		cu := (minU + maxU) / 2
		cv := (minV + maxV) / 2
		angle := math.Atan2(uy, ux) * 180 / math.Pi
		if h > w {
			// Report the angle of the longer axis
			angle += 90
		}
		best = RotatedRect{
			Center:   XY{X: cu*ux + cv*nx, Y: cu*uy + cv*ny},
			Width:    w,
			Height:   h,
			AngleDeg: normalizeAngle(angle),
		}
	}

	return best
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	return deg
}
