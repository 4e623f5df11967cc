package spatial

import "math"

// huEps is the magnitude below which a Hu moment is treated as zero
// when comparing shapes.
const huEps = 1e-5

// polygonMoments computes the raw geometric moments of a closed polygon up to
// third order using Green's theorem. The ring is reversed first if it is
// clockwise, so results do not depend on winding.
func polygonMoments(ring []XY) (m00, m10, m01, m20, m11, m02, m30, m21, m12, m03 float64) {
	n := len(ring)
	if n < 3 {
		return
	}

	var signed float64
	for i := range ring {
		j := (i + 1) % n
		signed += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	pts := ring
	if signed < 0 {
		pts = make([]XY, n)
		for i, p := range ring {
			pts[n-1-i] = p
		}
	}

	for i := range pts {
		j := (i + 1) % n
		x0, y0 := pts[i].X, pts[i].Y
		x1, y1 := pts[j].X, pts[j].Y
		a := x0*y1 - x1*y0

		m00 += a
		m10 += a * (x0 + x1)
		m01 += a * (y0 + y1)
		m20 += a * (x0*x0 + x0*x1 + x1*x1)
		m11 += a * (2*x0*y0 + x0*y1 + x1*y0 + 2*x1*y1)
		m02 += a * (y0*y0 + y0*y1 + y1*y1)
		m30 += a * (x0*x0*x0 + x0*x0*x1 + x0*x1*x1 + x1*x1*x1)
		m21 += a * (x0*x0*(3*y0+y1) + 2*x0*x1*(y0+y1) + x1*x1*(y0+3*y1))
		m12 += a * (y0*y0*(3*x0+x1) + 2*y0*y1*(x0+x1) + y1*y1*(x0+3*x1))
		m03 += a * (y0*y0*y0 + y0*y0*y1 + y0*y1*y1 + y1*y1*y1)
	}

	m00 /= 2
	m10 /= 6
	m01 /= 6
	m20 /= 12
	m11 /= 24
	m02 /= 12
	m30 /= 20
	m21 /= 60
	m12 /= 60
	m03 /= 20
	return
}

// HuMoments computes the seven Hu invariant moments of a polygon. They are
// invariant to translation, scale and rotation, which is what lets a GPS
// point cloud be compared against an ideal track oval regardless of where
// the track sits or how it is oriented.
func HuMoments(ring []XY) [7]float64 {
	var hu [7]float64

	m00, m10, m01, m20, m11, m02, m30, m21, m12, m03 := polygonMoments(ring)
	if m00 == 0 {
		return hu
	}

	cx := m10 / m00
	cy := m01 / m00

	mu20 := m20 - cx*m10
	mu11 := m11 - cx*m01
	mu02 := m02 - cy*m01
	mu30 := m30 - 3*cx*m20 + 2*cx*cx*m10
	mu21 := m21 - 2*cx*m11 - cy*m20 + 2*cx*cx*m01
	mu12 := m12 - 2*cy*m11 - cx*m02 + 2*cy*cy*m10
	mu03 := m03 - 3*cy*m02 + 2*cy*cy*m01

	den2 := m00 * m00
	den3 := m00 * m00 * math.Sqrt(m00)

	n20 := mu20 / den2
	n11 := mu11 / den2
	n02 := mu02 / den2
	n30 := mu30 / den3
	n21 := mu21 / den3
	n12 := mu12 / den3
	n03 := mu03 / den3

	hu[0] = n20 + n02
	hu[1] = (n20-n02)*(n20-n02) + 4*n11*n11
	hu[2] = (n30-3*n12)*(n30-3*n12) + (3*n21-n03)*(3*n21-n03)
	hu[3] = (n30+n12)*(n30+n12) + (n21+n03)*(n21+n03)
	hu[4] = (n30-3*n12)*(n30+n12)*((n30+n12)*(n30+n12)-3*(n21+n03)*(n21+n03)) +
		(3*n21-n03)*(n21+n03)*(3*(n30+n12)*(n30+n12)-(n21+n03)*(n21+n03))
	hu[5] = (n20-n02)*((n30+n12)*(n30+n12)-(n21+n03)*(n21+n03)) +
		4*n11*(n30+n12)*(n21+n03)
	hu[6] = (3*n21-n03)*(n30+n12)*((n30+n12)*(n30+n12)-3*(n21+n03)*(n21+n03)) -
		(n30-3*n12)*(n21+n03)*(3*(n30+n12)*(n30+n12)-(n21+n03)*(n21+n03))

	return hu
}

// MatchShapes compares two polygons by their Hu moments and returns a
// dissimilarity score. Zero means identical shape; values grow with
// difference. Moments with magnitude at or below 1e-5 are skipped.
func MatchShapes(a, b []XY) float64 {
	ha := HuMoments(a)
	hb := HuMoments(b)

	var result float64
	for i := 0; i < 7; i++ {
		ama := math.Abs(ha[i])
		amb := math.Abs(hb[i])
		if ama <= huEps || amb <= huEps {
			continue
		}

		sma := 1.0
		if ha[i] < 0 {
			sma = -1.0
		}
		smb := 1.0
		if hb[i] < 0 {
			smb = -1.0
		}

		ta := 1.0 / (sma * math.Log10(ama))
		tb := 1.0 / (smb * math.Log10(amb))
		result += math.Abs(tb - ta)
	}

	return result
}
