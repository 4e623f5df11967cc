// Package tagger tags recovery laps and groups rep sets on structured
// workouts. Each real lap is classified against VDOT zone boundaries as
// warmup, cooldown, work, or recovery, and contiguous work+recovery blocks
// are numbered as sets separated by set breaks (walking laps or unusually
// long recoveries).
package tagger

import (
	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/stats"
)

// A recovery is a set break if its duration reaches this multiple of the
// median recovery duration, or its distance reaches the threshold.
const (
	setBreakDurationMultiple = 2.0
	setBreakDistanceMi       = 0.3
)

// TagWorkoutIntervals updates IsRecovery and SetNumber in place on the real
// laps of a structured workout. Pace segments are left untouched. Nothing
// happens without boundaries, with fewer than two laps, or when no lap
// reaches a work zone.
func TagWorkoutIntervals(intervals []models.Interval, boundaries *zones.Boundaries) {
	if boundaries == nil || len(intervals) < 2 {
		return
	}

	laps := make([]*models.Interval, 0, len(intervals))
	for i := range intervals {
		if intervals[i].IsRealLap() {
			laps = append(laps, &intervals[i])
		}
	}
	if len(laps) < 2 {
		return
	}

	zoneOf := make([]string, len(laps))
	for i, lap := range laps {
		if lap.AvgPaceSPerMi != nil && *lap.AvgPaceSPerMi > 0 {
			zoneOf[i] = boundaries.Classify(*lap.AvgPaceSPerMi)
		}
	}

	firstWork, lastWork := -1, -1
	for i := range laps {
		if zones.IsWorkZone(zoneOf[i]) {
			if firstWork == -1 {
				firstWork = i
			}
			lastWork = i
		}
	}
	if firstWork == -1 {
		return
	}

	// Warmup before the first work lap, cooldown after the last
	for i, lap := range laps {
		if i < firstWork || i > lastWork {
			lap.SetNumber = nil
			lap.IsRecovery = false
		}
	}

	// Inside the work range, anything that is not work is recovery,
	// including laps with no pace at all
	for i := firstWork; i <= lastWork; i++ {
		laps[i].IsRecovery = !zones.IsWorkZone(zoneOf[i])
	}

	var recoveryDurations []float64
	hasRecovery := false
	for i := firstWork; i <= lastWork; i++ {
		if !laps[i].IsRecovery {
			continue
		}
		hasRecovery = true
		if d := laps[i].DurationS; d != nil && *d != 0 {
			recoveryDurations = append(recoveryDurations, *d)
		}
	}

	if !hasRecovery {
		// Continuous work is a single set
		for i := firstWork; i <= lastWork; i++ {
			n := 1
			laps[i].SetNumber = &n
		}
		return
	}

	var medRecoveryDur float64
	if len(recoveryDurations) > 0 {
		medRecoveryDur = stats.Median(recoveryDurations)
	}

	setBreak := make(map[int]bool)
	for i := firstWork; i <= lastWork; i++ {
		lap := laps[i]
		if !lap.IsRecovery {
			continue
		}

		isBreak := false
		switch {
		case lap.IsWalking || zoneOf[i] == zones.ZoneWalk:
			isBreak = true
		case medRecoveryDur > 0 && lap.DurationS != nil && *lap.DurationS != 0 &&
			*lap.DurationS >= setBreakDurationMultiple*medRecoveryDur:
			isBreak = true
		case lap.GPSMeasuredDistanceMi != nil && *lap.GPSMeasuredDistanceMi != 0 &&
			*lap.GPSMeasuredDistanceMi >= setBreakDistanceMi:
			isBreak = true
		}

		if isBreak {
			setBreak[i] = true
			lap.SetNumber = nil
		}
	}

	setNum := 1
	inSet := false
	for i := firstWork; i <= lastWork; i++ {
		if setBreak[i] {
			if inSet {
				setNum++
				inSet = false
			}
			continue
		}
		n := setNum
		laps[i].SetNumber = &n
		inSet = true
	}
}
