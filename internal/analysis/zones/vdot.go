// Package zones implements the Daniels-Gilbert VDOT model: race-to-VDOT
// conversion, training pace derivation, and pace zone classification for
// the E/M/T/I/R/FR training zones.
package zones

import (
	"fmt"
	"math"
)

// MetersPerMile is the exact meters-per-statute-mile conversion factor
const MetersPerMile = 1609.344

// Zone names, ordered slowest to fastest
const (
	ZoneWalk = "walk"
	ZoneE    = "E"
	ZoneM    = "M"
	ZoneT    = "T"
	ZoneI    = "I"
	ZoneR    = "R"
	ZoneFR   = "FR"
)

// Zone %VO2max targets, calibrated against Daniels tables (VDOT 40/50/60).
// I sits at ~98% rather than 100%, R slightly above VO2max velocity, and FR
// roughly midway between R and a sprint.
var zonePctVO2Max = map[string]float64{
	ZoneE:  0.70,
	ZoneM:  0.82,
	ZoneT:  0.88,
	ZoneI:  0.98,
	ZoneR:  1.075,
	ZoneFR: 1.15,
}

// Zone boundary %VO2max midpoints between adjacent zones
const (
	boundaryPctEM = 0.76
	boundaryPctMT = 0.85
	boundaryPctTI = 0.93
)

// Boundaries holds the slow-side pace boundary of each zone in seconds per
// mile. A pace belongs to a zone if it is at or below that zone's boundary
// and above the next faster zone's boundary.
type Boundaries struct {
	Walk float64
	E    float64
	M    float64
	T    float64
	I    float64
	R    float64
}

// Classify returns the training zone for a pace in seconds per mile.
func (b Boundaries) Classify(paceSPerMi float64) string {
	switch {
	case paceSPerMi >= b.Walk:
		return ZoneWalk
	case paceSPerMi >= b.E:
		return ZoneE
	case paceSPerMi >= b.M:
		return ZoneM
	case paceSPerMi >= b.T:
		return ZoneT
	case paceSPerMi >= b.I:
		return ZoneI
	case paceSPerMi >= b.R:
		return ZoneR
	default:
		return ZoneFR
	}
}

// IsWorkZone reports whether a zone counts as quality work (T and faster)
func IsWorkZone(zone string) bool {
	switch zone {
	case ZoneT, ZoneI, ZoneR, ZoneFR:
		return true
	}
	return false
}

func rawVDOT(distanceM, timeS float64) float64 {
	timeMin := timeS / 60.0
	velocity := distanceM / timeMin // m/min

	vo2 := -4.60 + 0.182258*velocity + 0.000104*velocity*velocity
	pctVO2Max := 0.8 + 0.1894393*math.Exp(-0.012778*timeMin) +
		0.2989558*math.Exp(-0.1932605*timeMin)

	return vo2 / pctVO2Max
}

// RaceToVDOT calculates VDOT from a race performance using the
// Daniels-Gilbert formula. Distance is in meters, time in seconds.
func RaceToVDOT(distanceM, timeS float64) float64 {
	return roundTo(rawVDOT(distanceM, timeS), 2)
}

// velocityFromVO2 solves the VO2-velocity quadratic for velocity in m/min.
//
//	VO2 = -4.60 + 0.182258*V + 0.000104*V²
func velocityFromVO2(vo2 float64) float64 {
	a := 0.000104
	b := 0.182258
	c := -(vo2 + 4.60)
	discriminant := b*b - 4*a*c
	return (-b + math.Sqrt(discriminant)) / (2 * a)
}

// velocityToPace converts velocity in m/min to pace in s/mi
func velocityToPace(velocityMPerMin float64) float64 {
	return MetersPerMile / velocityMPerMin * 60
}

// Paces derives the training pace for each zone from a VDOT value.
// Paces are in seconds per mile, rounded to one decimal.
func Paces(vdot float64) map[string]float64 {
	paces := make(map[string]float64, len(zonePctVO2Max))
	for zone, pct := range zonePctVO2Max {
		velocity := velocityFromVO2(vdot * pct)
		paces[zone] = roundTo(velocityToPace(velocity), 1)
	}
	return paces
}

// ForVDOT derives pace zone boundaries from a VDOT value. The E/M, M/T and
// T/I boundaries come from %VO2max midpoints; the I and R boundaries are
// midpoints of the adjacent zone paces; walk uses the supplied threshold.
func ForVDOT(vdot, walkingThreshold float64) Boundaries {
	paces := Paces(vdot)

	boundaryPace := func(pct float64) float64 {
		return velocityToPace(velocityFromVO2(vdot * pct))
	}

	return Boundaries{
		Walk: walkingThreshold,
		E:    boundaryPace(boundaryPctEM),
		M:    boundaryPace(boundaryPctMT),
		T:    boundaryPace(boundaryPctTI),
		I:    (paces[ZoneI] + paces[ZoneR]) / 2,
		R:    (paces[ZoneR] + paces[ZoneFR]) / 2,
	}
}

// PredictTime inverts the Daniels-Gilbert formula: the race time in seconds
// a runner at the given VDOT would run for the given distance. Solved by
// bisection since VDOT decreases monotonically with time at fixed distance.
func PredictTime(vdot, distanceM float64) (float64, error) {
	if vdot <= 0 || distanceM <= 0 {
		return 0, fmt.Errorf("invalid prediction input: vdot=%.2f distance=%.0f", vdot, distanceM)
	}

	// 1000 m/min is faster than any human; 50 m/min is a slow walk
	lo := distanceM / 1000.0 * 60.0
	hi := distanceM / 50.0 * 60.0

	if rawVDOT(distanceM, lo) < vdot || rawVDOT(distanceM, hi) > vdot {
		return 0, fmt.Errorf("vdot %.2f out of range for distance %.0f m", vdot, distanceM)
	}

	for i := 0; i < 100 && hi-lo > 0.01; i++ {
		mid := (lo + hi) / 2
		if rawVDOT(distanceM, mid) > vdot {
			lo = mid
		} else {
			hi = mid
		}
	}

	return roundTo((lo+hi)/2, 1), nil
}

// FormatPace formats a pace in s/mi as M:SS, e.g. "5:16". Seconds truncate.
func FormatPace(secondsPerMile float64) string {
	total := int(secondsPerMile)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatPacePrecise formats a pace in s/mi as M:SS.s, e.g. "5:07.3"
func FormatPacePrecise(secondsPerMile float64) string {
	minutes := int(secondsPerMile / 60)
	secs := secondsPerMile - float64(minutes)*60
	return fmt.Sprintf("%d:%04.1f", minutes, secs)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
