// Package segmenter builds synthetic intervals for unstructured runs (easy
// runs, long runs) by segmenting the GPS stream by pace zone. Structured
// workouts keep their recorded laps instead.
package segmenter

import (
	"strings"

	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/stats"
)

// Categories that indicate a structured workout
var structuredCategories = map[string]bool{
	"interval":   true,
	"tempo":      true,
	"repetition": true,
	"fartlek":    true,
	"race":       true,
	"hills":      true,
	"workout":    true,
}

// IsStructured decides whether an activity keeps its recorded laps (true)
// or gets pace segmentation (false). An activity is structured if its
// category is a workout type, it has spreadsheet splits, Strava marks it a
// workout, or its recorded laps show a workout-like bimodal pace pattern.
func IsStructured(category string, hasXlsxSplits bool, stravaWorkoutType *int, hasWorkoutLaps bool) bool {
	if structuredCategories[strings.ToLower(category)] {
		return true
	}
	if hasXlsxSplits {
		return true
	}
	if stravaWorkoutType != nil && *stravaWorkoutType == models.StravaTypeWorkout {
		return true
	}
	return hasWorkoutLaps
}

// Options controls smoothing and segment merging.
type Options struct {
	SmoothingWindowS    int
	MinSegmentDurationS float64
}

type segment struct {
	zone    string
	records []models.StreamPoint
}

// SegmentByPace segments a stream, sorted by timestamp, into consecutive
// same-zone intervals. Pace is smoothed with a trailing rolling average
// before classification, and segments shorter than the minimum duration are
// merged into their neighbors.
func SegmentByPace(streamPoints []models.StreamPoint, boundaries zones.Boundaries, opts Options) []models.Interval {
	records := make([]models.StreamPoint, 0, len(streamPoints))
	for _, sp := range streamPoints {
		if sp.TimestampS == nil {
			continue
		}
		records = append(records, sp)
	}
	if len(records) == 0 {
		return nil
	}

	paces := make([]*float64, len(records))
	for i := range records {
		paces[i] = records[i].PaceSPerMi
	}
	smoothed := stats.RollingTrailingAverage(paces, opts.SmoothingWindowS)

	zoneByRecord := make([]string, len(records))
	for i, pace := range smoothed {
		if pace == nil || *pace <= 0 {
			zoneByRecord[i] = "unknown"
		} else {
			zoneByRecord[i] = boundaries.Classify(*pace)
		}
	}

	merged := mergeShortSegments(groupConsecutive(records, zoneByRecord), opts.MinSegmentDurationS)

	intervals := make([]models.Interval, 0, len(merged))
	for i, seg := range merged {
		if len(seg.records) == 0 {
			continue
		}
		intervals = append(intervals, buildInterval(seg, i, len(merged)))
	}
	return intervals
}

func buildInterval(seg segment, index, total int) models.Interval {
	first := seg.records[0]
	last := seg.records[len(seg.records)-1]

	startTS := *first.TimestampS
	endTS := *last.TimestampS
	duration := endTS - startTS

	var startDist, endDist float64
	if first.DistanceMi != nil {
		startDist = *first.DistanceMi
	}
	if last.DistanceMi != nil {
		endDist = *last.DistanceMi
	}
	distance := endDist - startDist

	var hrValues, cadValues []float64
	for _, r := range seg.records {
		if r.HeartRate != nil {
			hrValues = append(hrValues, *r.HeartRate)
		}
		if r.Cadence != nil {
			cadValues = append(cadValues, *r.Cadence)
		}
	}

	iv := models.Interval{
		RepNumber:       index + 1,
		IsRecovery:      (seg.zone == zones.ZoneWalk || seg.zone == zones.ZoneE) && index > 0 && index < total-1,
		StartTimestampS: &startTS,
		EndTimestampS:   &endTS,
	}
	source := models.SourcePaceSegment
	iv.Source = &source

	if distance != 0 {
		d := stats.RoundTo(distance, 4)
		iv.GPSMeasuredDistanceMi = &d
	}
	if duration != 0 {
		dur := stats.RoundTo(duration, 1)
		iv.DurationS = &dur
	}
	if len(hrValues) > 0 {
		hr := stats.RoundTo(stats.Mean(hrValues), 2)
		iv.AvgHR = &hr
	}
	if len(cadValues) > 0 {
		cad := stats.RoundTo(stats.Mean(cadValues), 2)
		iv.AvgCadence = &cad
	}
	if distance > 0 && duration != 0 {
		pace := stats.RoundTo(duration/distance, 1)
		display := zones.FormatPacePrecise(pace)
		iv.AvgPaceSPerMi = &pace
		iv.AvgPaceDisplay = &display
	}
	if seg.zone != "unknown" {
		zone := seg.zone
		iv.PaceZone = &zone
	}

	return iv
}

// groupConsecutive groups adjacent records sharing a zone.
func groupConsecutive(records []models.StreamPoint, zoneByRecord []string) []segment {
	if len(records) == 0 {
		return nil
	}

	var segments []segment
	current := segment{zone: zoneByRecord[0], records: []models.StreamPoint{records[0]}}

	for i := 1; i < len(records); i++ {
		if zoneByRecord[i] == current.zone {
			current.records = append(current.records, records[i])
			continue
		}
		segments = append(segments, current)
		current = segment{zone: zoneByRecord[i], records: []models.StreamPoint{records[i]}}
	}

	return append(segments, current)
}

// mergeShortSegments folds segments shorter than minDuration into a
// neighbor, preferring the previous segment, until no short segment
// remains. The zone of the absorbing segment wins.
func mergeShortSegments(segments []segment, minDuration float64) []segment {
	if len(segments) <= 1 {
		return segments
	}

	merged := segments
	changed := true
	for changed {
		changed = false
		newMerged := make([]segment, 0, len(merged))

		for i := 0; i < len(merged); i++ {
			seg := merged[i]

			var duration float64
			if len(seg.records) >= 2 {
				duration = *seg.records[len(seg.records)-1].TimestampS - *seg.records[0].TimestampS
			}

			switch {
			case duration < minDuration && len(newMerged) > 0:
				prev := &newMerged[len(newMerged)-1]
				prev.records = append(prev.records, seg.records...)
				changed = true
			case duration < minDuration && i+1 < len(merged):
				next := make([]models.StreamPoint, 0, len(seg.records)+len(merged[i+1].records))
				next = append(next, seg.records...)
				next = append(next, merged[i+1].records...)
				merged[i+1].records = next
				changed = true
			default:
				newMerged = append(newMerged, seg)
			}
		}

		merged = newMerged
	}

	return merged
}
