// Package fastest finds the fastest efforts at a given distance across all
// activities, combining snapped intervals with a sliding-window scan over
// raw GPS streams.
package fastest

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
)

// MinPaceSPerMi is the fastest plausible pace. Windows quicker than this
// are GPS glitches, not running.
const MinPaceSPerMi = 180.0

// Result source types
const (
	SourceTypeInterval = "interval"
	SourceTypeStream   = "stream"
)

// Result is one ranked effort at the target distance.
type Result struct {
	ActivityID  int64   `json:"activityId"`
	Date        string  `json:"date"`
	WorkoutName string  `json:"workoutName"`
	DurationS   float64 `json:"durationS"`
	PaceSPerMi  float64 `json:"paceSPerMi"`
	SourceType  string  `json:"sourceType"`
}

// Finder scans intervals and streams for fastest efforts.
type Finder struct {
	db *sql.DB
}

// NewFinder creates a fastest-effort finder on the given database.
func NewFinder(db *sql.DB) *Finder {
	return &Finder{db: db}
}

type span struct {
	start float64
	end   float64
}

type sample struct {
	ts   float64
	dist float64
}

// Find returns the top-N fastest efforts at targetM meters, sorted by pace.
// Snapped intervals within 3% of the target count directly; every GPS
// stream is additionally scanned with a sliding window, excluding time
// ranges already covered by snapped intervals so measured reps are not
// double-counted.
func (f *Finder) Find(targetM float64, topN int) ([]Result, error) {
	if topN <= 0 {
		topN = 10
	}

	targetMi := targetM / zones.MetersPerMile
	tolMi := targetMi * 0.03

	results, err := f.intervalResults(targetMi, tolMi)
	if err != nil {
		return nil, err
	}

	streamResults, err := f.streamResults(targetMi, tolMi)
	if err != nil {
		return nil, err
	}
	results = append(results, streamResults...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PaceSPerMi < results[j].PaceSPerMi
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

func (f *Finder) intervalResults(targetMi, tolMi float64) ([]Result, error) {
	rows, err := f.db.Query(`
		SELECT i.activity_id, a.date, a.workout_name,
		       i.duration_s, i.avg_pace_s_per_mi
		FROM intervals i
		JOIN activities a ON a.id = i.activity_id
		WHERE ABS(i.canonical_distance_mi - ?) < ?
		  AND i.is_walking = 0 AND i.is_recovery = 0 AND i.is_stride = 0
		  AND i.duration_s > 0`, targetMi, tolMi)
	if err != nil {
		return nil, fmt.Errorf("failed to query matching intervals: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var name sql.NullString
		var pace sql.NullFloat64
		if err := rows.Scan(&r.ActivityID, &r.Date, &name, &r.DurationS, &pace); err != nil {
			return nil, fmt.Errorf("failed to scan interval result: %w", err)
		}
		if !pace.Valid {
			continue
		}
		r.WorkoutName = name.String
		r.PaceSPerMi = pace.Float64
		r.SourceType = SourceTypeInterval
		results = append(results, r)
	}
	return results, rows.Err()
}

type candidateActivity struct {
	id   int64
	date string
	name string
}

func (f *Finder) streamResults(targetMi, tolMi float64) ([]Result, error) {
	activities, err := f.streamActivities()
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, act := range activities {
		exclusions, err := f.exclusions(act.id, targetMi, tolMi)
		if err != nil {
			return nil, err
		}

		sourceIDs, err := f.sourceIDs(act.id)
		if err != nil {
			return nil, err
		}

		best := 0.0
		haveBest := false
		for _, srcID := range sourceIDs {
			points, err := f.points(act.id, srcID)
			if err != nil {
				return nil, err
			}
			if len(points) < 2 {
				continue
			}
			if elapsed := fastestWindow(points, targetMi, exclusions); elapsed != nil {
				if !haveBest || *elapsed < best {
					best = *elapsed
					haveBest = true
				}
			}
		}

		if !haveBest {
			continue
		}
		pace := best / targetMi
		if pace < MinPaceSPerMi {
			continue
		}
		results = append(results, Result{
			ActivityID:  act.id,
			Date:        act.date,
			WorkoutName: act.name,
			DurationS:   best,
			PaceSPerMi:  pace,
			SourceType:  SourceTypeStream,
		})
	}
	return results, nil
}

func (f *Finder) streamActivities() ([]candidateActivity, error) {
	rows, err := f.db.Query(`
		SELECT DISTINCT s.activity_id, a.date, a.workout_name
		FROM streams s
		JOIN activities a ON a.id = s.activity_id
		ORDER BY s.activity_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stream activities: %w", err)
	}
	defer rows.Close()

	var activities []candidateActivity
	for rows.Next() {
		var act candidateActivity
		var name sql.NullString
		if err := rows.Scan(&act.id, &act.date, &name); err != nil {
			return nil, fmt.Errorf("failed to scan stream activity: %w", err)
		}
		act.name = name.String
		activities = append(activities, act)
	}
	return activities, rows.Err()
}

// exclusions returns time ranges already covered by intervals at the target
// distance or snapped to a track or measured course.
func (f *Finder) exclusions(activityID int64, targetMi, tolMi float64) ([]span, error) {
	rows, err := f.db.Query(`
		SELECT start_timestamp_s, end_timestamp_s
		FROM intervals
		WHERE activity_id = ?
		  AND start_timestamp_s IS NOT NULL
		  AND end_timestamp_s IS NOT NULL
		  AND (
		      ABS(canonical_distance_mi - ?) < ?
		      OR location_type IN ('track', 'measured_course')
		  )`, activityID, targetMi, tolMi)
	if err != nil {
		return nil, fmt.Errorf("failed to query exclusion ranges: %w", err)
	}
	defer rows.Close()

	var spans []span
	for rows.Next() {
		var s span
		if err := rows.Scan(&s.start, &s.end); err != nil {
			return nil, fmt.Errorf("failed to scan exclusion range: %w", err)
		}
		spans = append(spans, s)
	}
	return spans, rows.Err()
}

func (f *Finder) sourceIDs(activityID int64) ([]*string, error) {
	rows, err := f.db.Query(`
		SELECT DISTINCT source_id FROM streams
		WHERE activity_id = ? AND source_id IS NOT NULL`, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stream sources: %w", err)
	}
	defer rows.Close()

	var ids []*string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan stream source: %w", err)
		}
		ids = append(ids, &id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Ungrouped single-recording activities have no source ids
	if len(ids) == 0 {
		ids = []*string{nil}
	}
	return ids, nil
}

func (f *Finder) points(activityID int64, sourceID *string) ([]sample, error) {
	query := `
		SELECT timestamp_s, distance_mi
		FROM streams
		WHERE activity_id = ?
		  AND distance_mi IS NOT NULL
		  AND timestamp_s IS NOT NULL`
	args := []any{activityID}
	if sourceID != nil {
		query += ` AND source_id = ?`
		args = append(args, *sourceID)
	}
	query += ` ORDER BY timestamp_s`

	rows, err := f.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stream points: %w", err)
	}
	defer rows.Close()

	var points []sample
	for rows.Next() {
		var p sample
		if err := rows.Scan(&p.ts, &p.dist); err != nil {
			return nil, fmt.Errorf("failed to scan stream point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// fastestWindow runs a two-pointer scan for the fastest window covering
// targetMi, interpolating the right edge for sub-second precision. Windows
// whose midpoint falls inside an exclusion range are skipped. Returns nil
// when no valid window exists.
func fastestWindow(points []sample, targetMi float64, exclusions []span) *float64 {
	n := len(points)
	var best *float64
	right := 0

	for left := 0; left < n; left++ {
		goal := points[left].dist + targetMi

		for right < n-1 && points[right].dist < goal {
			right++
		}
		if points[right].dist < goal {
			break
		}

		var tEnd float64
		if right > 0 && points[right].dist > points[right-1].dist {
			frac := (goal - points[right-1].dist) / (points[right].dist - points[right-1].dist)
			tEnd = points[right-1].ts + frac*(points[right].ts-points[right-1].ts)
		} else {
			tEnd = points[right].ts
		}

		elapsed := tEnd - points[left].ts
		if elapsed <= 0 {
			continue
		}

		mid := points[left].ts + elapsed/2
		excluded := false
		for _, ex := range exclusions {
			if ex.start <= mid && mid <= ex.end {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		if best == nil || elapsed < *best {
			e := elapsed
			best = &e
		}
	}

	return best
}
