package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/runpace/runpace-backend-go/internal/analysis/segmenter"
	"github.com/runpace/runpace-backend-go/internal/analysis/tagger"
	"github.com/runpace/runpace-backend-go/internal/analysis/trackdetect"
	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/config"
	"github.com/runpace/runpace-backend-go/internal/database"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/repository"
	"github.com/runpace/runpace-backend-go/internal/spatial"
	"github.com/runpace/runpace-backend-go/internal/stats"
)

// ErrActivityNotFound is returned when enrichment is requested for an
// activity id that does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// Intervals between these bounds are treated as whole track reps and
// snapped to the 100m grid. Shorter ones are strides, longer ones tempo
// stretches whose GPS distance is the better estimate.
const (
	trackSnapMinDistanceM = 180.0
	trackSnapMaxDistanceM = 1300.0
)

// Minimum gap between fast and slow lap cluster means before an untagged
// activity counts as a structured workout.
const bimodalMinGapSPerMi = 75.0

// EnrichService runs the enrichment waterfall: structured-workout
// detection, pace segmentation, track and measured-course snapping,
// set tagging, walking/stride scrubbing and zone assignment.
type EnrichService struct {
	db           *sql.DB
	cfg          *config.Config
	activityRepo *repository.ActivityRepository
	intervalRepo *repository.IntervalRepository
	streamRepo   *repository.StreamRepository
	vdotRepo     *repository.VDOTRepository
	detector     *trackdetect.Detector
}

// NewEnrichService creates a new enrichment service
func NewEnrichService(
	db *sql.DB,
	cfg *config.Config,
	activityRepo *repository.ActivityRepository,
	intervalRepo *repository.IntervalRepository,
	streamRepo *repository.StreamRepository,
	vdotRepo *repository.VDOTRepository,
	trackCache trackdetect.Cache,
) *EnrichService {
	return &EnrichService{
		db:           db,
		cfg:          cfg,
		activityRepo: activityRepo,
		intervalRepo: intervalRepo,
		streamRepo:   streamRepo,
		vdotRepo:     vdotRepo,
		detector:     trackdetect.NewDetector(cfg.Paces.TrackDetection, trackCache),
	}
}

// EnrichSummary reports what one enrichment pass changed.
type EnrichSummary struct {
	ActivityID        int64 `json:"activityId"`
	TrackIntervals    int   `json:"trackIntervals"`
	MeasuredIntervals int   `json:"measuredIntervals"`
	RecoveryIntervals int   `json:"recoveryIntervals"`
	SetsTagged        int   `json:"setsTagged"`
	WalkingIntervals  int   `json:"walkingIntervals"`
	StrideIntervals   int   `json:"strideIntervals"`
	ZonesAssigned     int   `json:"zonesAssigned"`
	SegmentsCreated   int   `json:"segmentsCreated"`
}

// BatchSummary aggregates enrichment results over a set of activities.
type BatchSummary struct {
	Total             int `json:"total"`
	Enriched          int `json:"enriched"`
	Skipped           int `json:"skipped"`
	TrackIntervals    int `json:"trackIntervals"`
	MeasuredIntervals int `json:"measuredIntervals"`
	RecoveryIntervals int `json:"recoveryIntervals"`
	SetsTagged        int `json:"setsTagged"`
	WalkingIntervals  int `json:"walkingIntervals"`
	StrideIntervals   int `json:"strideIntervals"`
	ZonesAssigned     int `json:"zonesAssigned"`
	SegmentsCreated   int `json:"segmentsCreated"`
}

// EnrichActivity runs the full enrichment waterfall on one activity and
// persists every change in a single transaction. Steps that need a
// fitness score degrade to no-ops when no VDOT entry covers the activity
// date; a missing activity is the one hard failure.
func (s *EnrichService) EnrichActivity(activityID int64) (*EnrichSummary, error) {
	summary := &EnrichSummary{ActivityID: activityID}

	activity, err := s.activityRepo.GetActivityByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, fmt.Errorf("activity %d: %w", activityID, ErrActivityNotFound)
	}

	name := strVal(activity.WorkoutName)
	category := strVal(activity.WorkoutCategory)

	// Infer the category from the name when none is set
	var inferredCategory string
	if category == "" {
		if inferred := InferCategory(name); inferred != "" {
			category = inferred
			inferredCategory = inferred
			log.Printf("[Enricher] Activity %d: category %q inferred from %q", activityID, inferred, name)
		}
	}

	// Fitness score in effect on the activity date
	var vdot *float64
	var boundaries *zones.Boundaries
	entry, err := s.vdotRepo.CurrentForDate(activity.Date)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		vdot = &entry.VDOT
		b := zones.ForVDOT(entry.VDOT, s.cfg.Paces.WalkingThresholdSPerMi)
		boundaries = &b
	}

	streams, err := s.streamRepo.GetStreamPoints(activityID)
	if err != nil {
		return nil, err
	}
	intervals, err := s.intervalRepo.GetIntervalsByActivity(activityID)
	if err != nil {
		return nil, err
	}

	hasXlsx := false
	for i := range intervals {
		if intervals[i].Source != nil && *intervals[i].Source == models.SourceXlsxSplit {
			hasXlsx = true
			break
		}
	}
	structured := segmenter.IsStructured(category, hasXlsx, activity.StravaWorkoutType, hasBimodalLaps(intervals))

	// Unstructured runs get synthetic pace segments regenerated from the
	// streams, replacing any from a previous pass
	regenerated := false
	if !structured && len(streams) > 0 && boundaries != nil {
		regenerated = true

		kept := make([]models.Interval, 0, len(intervals))
		for _, iv := range intervals {
			if !iv.IsSynthetic() {
				kept = append(kept, iv)
			}
		}

		segments := segmenter.SegmentByPace(streams, *boundaries, segmenter.Options{
			SmoothingWindowS:    s.cfg.Paces.SmoothingWindowS,
			MinSegmentDurationS: s.cfg.Paces.MinSegmentDurationS,
		})
		for i := range segments {
			segments[i].ActivityID = activityID
		}
		if len(segments) > 0 {
			log.Printf("[Enricher] Activity %d: created %d pace segments", activityID, len(segments))
		}

		summary.SegmentsCreated = len(segments)
		intervals = append(kept, segments...)
	}

	// Track detection runs per stream source so GPS from group-matched
	// recordings is never mixed in one window
	var trackResult trackdetect.Result
	if len(streams) > 0 && len(intervals) > 0 {
		for _, group := range models.SplitBySource(streams) {
			r, err := s.detector.Detect(activityID, group)
			if err != nil {
				return nil, err
			}
			if r.IsTrack && (!trackResult.IsTrack || r.FitScore < trackResult.FitScore) {
				trackResult = r
			}
		}
		if trackResult.IsTrack {
			estimateIntervalTimestamps(intervals, streams)
			applyTrackSnapping(intervals, name, trackResult, s.cfg.Paces.TrackDetection.DistanceSnapM, summary)
			log.Printf("[Enricher] Activity %d: track detected (%s, score=%.4f)", activityID, trackResult.Method, trackResult.FitScore)
		}
	}

	// Measured-course snapping only applies to structured workouts, so an
	// easy run's auto-laps never snap just because the route passes a course
	if structured && len(streams) > 0 && boundaries != nil {
		estimateIntervalTimestamps(intervals, streams)
		applyMeasuredCourses(intervals, streams, boundaries, s.cfg.Paces.MeasuredCourses, s.cfg.Paces.CourseTolerancePct, summary)
	}

	// Recovery and set tagging
	if structured && boundaries != nil {
		tagger.TagWorkoutIntervals(intervals, boundaries)
		sets := make(map[int]bool)
		for i := range intervals {
			if intervals[i].IsRecovery {
				summary.RecoveryIntervals++
			}
			if intervals[i].SetNumber != nil {
				sets[*intervals[i].SetNumber] = true
			}
		}
		summary.SetsTagged = len(sets)
	}

	// Walking scrub
	for i := range intervals {
		if pace := floatVal(intervals[i].AvgPaceSPerMi); pace != 0 && pace >= s.cfg.Paces.WalkingThresholdSPerMi {
			intervals[i].IsWalking = true
			summary.WalkingIntervals++
		}
	}

	// Stride detection skips synthetic segments, whose short durations are
	// just transitions between pace changes
	for i := range intervals {
		if intervals[i].IsSynthetic() {
			continue
		}
		duration := floatVal(intervals[i].DurationS)
		if duration != 0 && duration < s.cfg.Paces.StrideMaxDurationS && !intervals[i].IsRecovery {
			intervals[i].IsStride = true
			summary.StrideIntervals++
		}
	}

	// Zone assignment for intervals that still lack one
	if boundaries != nil {
		for i := range intervals {
			pace := floatVal(intervals[i].AvgPaceSPerMi)
			if pace > 0 && strVal(intervals[i].PaceZone) == "" {
				zone := boundaries.Classify(pace)
				intervals[i].PaceZone = &zone
				summary.ZonesAssigned++
			}
		}
	}

	adjusted := adjustedDistance(intervals, activity)

	if err := s.persist(activityID, intervals, inferredCategory, regenerated, adjusted, vdot); err != nil {
		return nil, err
	}

	log.Printf("[Enricher] Activity #%d (%s): %s", activityID, activity.Date, summary.detail())
	return summary, nil
}

// EnrichBatch enriches every activity in the date range in date order.
// Empty bounds are open-ended. A dry run only counts what would be
// processed.
func (s *EnrichService) EnrichBatch(startDate, endDate string, dryRun bool) (*BatchSummary, error) {
	activities, err := s.activityRepo.GetActivitiesBetween(startDate, endDate)
	if err != nil {
		return nil, err
	}

	batch := &BatchSummary{Total: len(activities)}
	if dryRun {
		batch.Enriched = len(activities)
		return batch, nil
	}

	log.Printf("[Enricher] Enriching %d activities", len(activities))
	for i := range activities {
		summary, err := s.EnrichActivity(activities[i].ID)
		if err != nil {
			// An activity deleted between listing and enrichment is skipped
			if errors.Is(err, ErrActivityNotFound) {
				batch.Skipped++
				continue
			}
			return nil, fmt.Errorf("failed to enrich activity %d: %w", activities[i].ID, err)
		}
		batch.Enriched++
		batch.TrackIntervals += summary.TrackIntervals
		batch.MeasuredIntervals += summary.MeasuredIntervals
		batch.RecoveryIntervals += summary.RecoveryIntervals
		batch.SetsTagged += summary.SetsTagged
		batch.WalkingIntervals += summary.WalkingIntervals
		batch.StrideIntervals += summary.StrideIntervals
		batch.ZonesAssigned += summary.ZonesAssigned
		batch.SegmentsCreated += summary.SegmentsCreated
	}

	return batch, nil
}

// persist writes every enrichment result in one transaction: the inferred
// category, regenerated pace segments, per-interval flags and the
// activity's adjusted distance and VDOT.
func (s *EnrichService) persist(activityID int64, intervals []models.Interval, inferredCategory string, regenerated bool, adjusted, vdot *float64) error {
	return database.TransactionOn(s.db, func(tx *sql.Tx) error {
		if inferredCategory != "" {
			if _, err := tx.Exec(
				"UPDATE activities SET workout_category = ?, updated_at = datetime('now') WHERE id = ?",
				inferredCategory, activityID,
			); err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}
		}

		if regenerated {
			if _, err := tx.Exec(
				"DELETE FROM intervals WHERE activity_id = ? AND source = ?",
				activityID, models.SourcePaceSegment,
			); err != nil {
				return fmt.Errorf("failed to delete stale segments: %w", err)
			}

			insert, err := tx.Prepare(`INSERT INTO intervals
				(activity_id, rep_number, gps_measured_distance_mi, canonical_distance_mi,
				 duration_s, avg_pace_s_per_mi, avg_pace_display, avg_hr, avg_cadence,
				 is_recovery, is_walking, is_stride, is_race, pace_zone, location_type,
				 set_number, source, start_timestamp_s, end_timestamp_s)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("failed to prepare segment insert: %w", err)
			}
			defer insert.Close()

			for i := range intervals {
				iv := &intervals[i]
				if iv.ID != 0 || !iv.IsSynthetic() {
					continue
				}
				if _, err := insert.Exec(
					iv.ActivityID, iv.RepNumber, iv.GPSMeasuredDistanceMi, iv.CanonicalDistanceMi,
					iv.DurationS, iv.AvgPaceSPerMi, iv.AvgPaceDisplay, iv.AvgHR, iv.AvgCadence,
					iv.IsRecovery, iv.IsWalking, iv.IsStride, iv.IsRace, iv.PaceZone, iv.LocationType,
					iv.SetNumber, iv.Source, iv.StartTimestampS, iv.EndTimestampS,
				); err != nil {
					return fmt.Errorf("failed to insert segment: %w", err)
				}
			}
		}

		update, err := tx.Prepare(`UPDATE intervals
			SET pace_zone = ?, is_walking = ?, is_stride = ?, is_race = ?,
			    location_type = ?, canonical_distance_mi = ?, avg_pace_s_per_mi = ?,
			    avg_pace_display = ?, is_recovery = ?, set_number = ?
			WHERE id = ?`)
		if err != nil {
			return fmt.Errorf("failed to prepare interval update: %w", err)
		}
		defer update.Close()

		for i := range intervals {
			iv := &intervals[i]
			if iv.ID == 0 {
				continue
			}
			if _, err := update.Exec(
				iv.PaceZone, iv.IsWalking, iv.IsStride, iv.IsRace,
				iv.LocationType, iv.CanonicalDistanceMi, iv.AvgPaceSPerMi,
				iv.AvgPaceDisplay, iv.IsRecovery, iv.SetNumber, iv.ID,
			); err != nil {
				return fmt.Errorf("failed to update interval %d: %w", iv.ID, err)
			}
		}

		if _, err := tx.Exec(
			"UPDATE activities SET adjusted_distance_mi = ?, vdot = ? WHERE id = ?",
			adjusted, vdot, activityID,
		); err != nil {
			return fmt.Errorf("failed to update activity: %w", err)
		}

		return nil
	})
}

// adjustedDistance sums non-walking distance. Synthetic segments replace
// the real laps when present so the same meters are never counted twice,
// but strides from real laps still count even when a walking segment
// absorbed them.
func adjustedDistance(intervals []models.Interval, activity *models.Activity) *float64 {
	if len(intervals) == 0 {
		return activity.DistanceMi
	}

	hasSegments := false
	for i := range intervals {
		if intervals[i].IsSynthetic() {
			hasSegments = true
			break
		}
	}

	var nonWalking float64
	for i := range intervals {
		if hasSegments && !intervals[i].IsSynthetic() {
			continue
		}
		if intervals[i].IsWalking {
			continue
		}
		nonWalking += floatVal(intervals[i].GPSMeasuredDistanceMi)
	}
	if hasSegments {
		for i := range intervals {
			if intervals[i].IsStride && !intervals[i].IsSynthetic() {
				nonWalking += floatVal(intervals[i].GPSMeasuredDistanceMi)
			}
		}
	}

	adjusted := stats.RoundTo(nonWalking, 2)
	return &adjusted
}

// hasBimodalLaps reports whether the real laps split cleanly into a fast
// and a slow pace cluster, the signature of a rep workout recorded with
// no category metadata. Sorted paces are split at the point minimizing
// summed within-cluster variance, with at least two laps per side.
func hasBimodalLaps(intervals []models.Interval) bool {
	var paces []float64
	for i := range intervals {
		if !intervals[i].IsRealLap() {
			continue
		}
		if p := floatVal(intervals[i].AvgPaceSPerMi); p > 0 {
			paces = append(paces, p)
		}
	}
	if len(paces) < 4 {
		return false
	}
	sort.Float64s(paces)

	bestSplit := -1
	bestSpread := math.Inf(1)
	for split := 2; split <= len(paces)-2; split++ {
		spread := stats.Variance(paces[:split]) + stats.Variance(paces[split:])
		if spread < bestSpread {
			bestSpread = spread
			bestSplit = split
		}
	}
	if bestSplit < 0 {
		return false
	}

	fast := paces[:bestSplit]
	slow := paces[bestSplit:]
	return stats.Mean(slow)-stats.Mean(fast) >= bimodalMinGapSPerMi
}

// estimateIntervalTimestamps fills in missing interval timestamps by
// walking reps in order and matching cumulative distance to the closest
// stream sample. Spreadsheet splits carry no timestamps; without them
// track labeling would skip every lap.
func estimateIntervalTimestamps(intervals []models.Interval, streams []models.StreamPoint) {
	var missing []int
	for i := range intervals {
		if intervals[i].StartTimestampS == nil && floatVal(intervals[i].GPSMeasuredDistanceMi) != 0 {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return
	}

	type sample struct{ ts, dist float64 }
	var pts []sample
	for _, sp := range streams {
		if sp.TimestampS != nil && sp.DistanceMi != nil {
			pts = append(pts, sample{*sp.TimestampS, *sp.DistanceMi})
		}
	}
	if len(pts) < 2 {
		return
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].ts < pts[j].ts })

	closestTS := func(target float64) float64 {
		best := 0
		bestDiff := math.Abs(pts[0].dist - target)
		for i := 1; i < len(pts); i++ {
			if diff := math.Abs(pts[i].dist - target); diff < bestDiff {
				bestDiff = diff
				best = i
			}
		}
		return pts[best].ts
	}

	sort.Slice(missing, func(a, b int) bool {
		return intervals[missing[a]].RepNumber < intervals[missing[b]].RepNumber
	})

	cumulative := 0.0
	for _, idx := range missing {
		start := closestTS(cumulative)
		cumulative += floatVal(intervals[idx].GPSMeasuredDistanceMi)
		end := closestTS(cumulative)
		intervals[idx].StartTimestampS = &start
		intervals[idx].EndTimestampS = &end
	}
}

// applyTrackSnapping labels intervals overlapping the detected track
// window and snaps their distances. Races snap one interval to the race
// distance, workouts snap only the work reps, anything else snaps
// rep-sized intervals to the 100m grid.
func applyTrackSnapping(intervals []models.Interval, workoutName string, result trackdetect.Result, snapM float64, summary *EnrichSummary) {
	winStart := result.WindowStartTS
	winEnd := result.WindowEndTS

	var trackIdx []int
	for i := range intervals {
		iv := &intervals[i]
		if iv.IsRecovery || floatVal(iv.GPSMeasuredDistanceMi) == 0 {
			continue
		}
		if iv.StartTimestampS != nil && iv.EndTimestampS != nil && winStart != nil && winEnd != nil {
			if *iv.EndTimestampS < *winStart || *iv.StartTimestampS > *winEnd {
				continue
			}
		} else if winStart != nil {
			continue
		}

		lt := models.LocationTrack
		iv.LocationType = &lt
		iv.CanonicalDistanceMi = nil // clear stale
		iv.IsRace = false
		summary.TrackIntervals++
		trackIdx = append(trackIdx, i)
	}
	if len(trackIdx) == 0 {
		return
	}

	switch {
	case IsRaceName(workoutName):
		raceDistM := ParseRaceDistanceM(workoutName)
		bestIdx := trackIdx[0]
		if raceDistM != 0 {
			bestDiff := math.Abs(floatVal(intervals[bestIdx].GPSMeasuredDistanceMi)*zones.MetersPerMile - raceDistM)
			for _, i := range trackIdx[1:] {
				if diff := math.Abs(floatVal(intervals[i].GPSMeasuredDistanceMi)*zones.MetersPerMile - raceDistM); diff < bestDiff {
					bestDiff = diff
					bestIdx = i
				}
			}
		} else {
			for _, i := range trackIdx[1:] {
				if floatVal(intervals[i].GPSMeasuredDistanceMi) > floatVal(intervals[bestIdx].GPSMeasuredDistanceMi) {
					bestIdx = i
				}
			}
			raceDistM = ClosestRaceDistanceM(floatVal(intervals[bestIdx].GPSMeasuredDistanceMi) * zones.MetersPerMile)
		}

		canonical := stats.RoundTo(raceDistM/zones.MetersPerMile, 4)
		intervals[bestIdx].CanonicalDistanceMi = &canonical
		intervals[bestIdx].IsRace = true
		recalcPace(&intervals[bestIdx])
		log.Printf("[Enricher] Race interval %.0fm snapped to %.0fm",
			floatVal(intervals[bestIdx].GPSMeasuredDistanceMi)*zones.MetersPerMile, raceDistM)
		if t := ParseRaceTimeS(workoutName); t > 0 {
			log.Printf("[Enricher] Race time from name: %s", zones.FormatPace(t))
		}

	case IsWorkoutName(workoutName):
		// Only snap work reps, judged against the average over every
		// non-recovery interval
		var paces []float64
		for i := range intervals {
			if p := floatVal(intervals[i].AvgPaceSPerMi); p > 0 && !intervals[i].IsRecovery {
				paces = append(paces, p)
			}
		}
		if len(paces) == 0 {
			return
		}
		avg := stats.Mean(paces)
		for _, i := range trackIdx {
			if p := floatVal(intervals[i].AvgPaceSPerMi); p > 0 && p < avg {
				canonical := snapToGrid(floatVal(intervals[i].GPSMeasuredDistanceMi), snapM)
				intervals[i].CanonicalDistanceMi = &canonical
				recalcPace(&intervals[i])
			}
		}

	default:
		for _, i := range trackIdx {
			distM := floatVal(intervals[i].GPSMeasuredDistanceMi) * zones.MetersPerMile
			if distM > trackSnapMinDistanceM && distM <= trackSnapMaxDistanceM {
				canonical := snapToGrid(floatVal(intervals[i].GPSMeasuredDistanceMi), snapM)
				intervals[i].CanonicalDistanceMi = &canonical
				recalcPace(&intervals[i])
			}
		}
	}
}

// applyMeasuredCourses snaps structured work reps to whitelisted course
// distances. Matching uses per-distance-group centroids rather than the
// activity centroid, so a long warmup can't drag the match off course.
func applyMeasuredCourses(intervals []models.Interval, streams []models.StreamPoint, boundaries *zones.Boundaries, courses []config.MeasuredCourse, tolerancePct float64, summary *EnrichSummary) {
	groupCentroids := computeWorkGroupCentroids(intervals, streams, boundaries)
	if len(groupCentroids) == 0 {
		return
	}

	matched := make(map[int][]config.MeasuredCourse)
	for bucket, centroid := range groupCentroids {
		if m := FindMatchingCourses(courses, centroid.Lat, centroid.Lon); len(m) > 0 {
			matched[bucket] = m
			names := make([]string, len(m))
			for i := range m {
				names[i] = m[i].Name
			}
			log.Printf("[Enricher] %dm group centroid (%.5f, %.5f) near %s",
				bucket, centroid.Lat, centroid.Lon, strings.Join(names, ", "))
		}
	}
	if len(matched) == 0 {
		return
	}

	for i := range intervals {
		iv := &intervals[i]
		if iv.IsRecovery || iv.LocationType != nil || iv.IsSynthetic() {
			continue
		}
		gps := floatVal(iv.GPSMeasuredDistanceMi)
		if gps == 0 {
			continue
		}
		bucket := int(math.Round(gps*zones.MetersPerMile/100)) * 100
		courseList, ok := matched[bucket]
		if !ok {
			continue
		}
		course := BestCourseForInterval(gps, courseList, tolerancePct)
		if course == nil {
			continue
		}

		lt := models.LocationMeasuredCourse
		iv.LocationType = &lt
		canonical := stats.RoundTo(course.SnapDistanceM/zones.MetersPerMile, 4)
		iv.CanonicalDistanceMi = &canonical
		recalcPace(iv)
		summary.MeasuredIntervals++
		log.Printf("[Enricher] Interval %.0fm snapped to %.0fm (%s)",
			gps*zones.MetersPerMile, course.SnapDistanceM, course.Name)
	}
}

// computeWorkGroupCentroids buckets work reps by 100m of GPS distance and
// returns each bucket's stream centroid. Timestamps from FIT and Strava
// laps are trusted; buckets with none fall back to the centroid of all
// stream points moving at a work pace.
func computeWorkGroupCentroids(intervals []models.Interval, streams []models.StreamPoint, boundaries *zones.Boundaries) map[int]spatial.Point {
	if boundaries == nil || len(streams) == 0 {
		return nil
	}

	type geoPoint struct{ ts, lat, lon float64 }
	var geo []geoPoint
	for _, sp := range streams {
		if sp.TimestampS != nil && sp.Lat != nil && sp.Lon != nil {
			geo = append(geo, geoPoint{*sp.TimestampS, *sp.Lat, *sp.Lon})
		}
	}
	if len(geo) == 0 {
		return nil
	}
	sort.Slice(geo, func(i, j int) bool { return geo[i].ts < geo[j].ts })

	inRange := func(start, end float64) []geoPoint {
		lo := sort.Search(len(geo), func(i int) bool { return geo[i].ts >= start })
		hi := sort.Search(len(geo), func(i int) bool { return geo[i].ts > end })
		return geo[lo:hi]
	}

	trustedGroups := make(map[int][]int)
	untrustedBuckets := make(map[int]bool)

	for i := range intervals {
		iv := &intervals[i]
		if iv.IsRecovery || iv.IsSynthetic() {
			continue
		}
		pace := floatVal(iv.AvgPaceSPerMi)
		gps := floatVal(iv.GPSMeasuredDistanceMi)
		if pace <= 0 || gps == 0 {
			continue
		}
		if !zones.IsWorkZone(boundaries.Classify(pace)) {
			continue
		}
		bucket := int(math.Round(gps*zones.MetersPerMile/100)) * 100

		trusted := iv.Source != nil && (*iv.Source == models.SourceFitLap || *iv.Source == models.SourceStravaLap)
		if iv.StartTimestampS != nil && iv.EndTimestampS != nil && trusted {
			trustedGroups[bucket] = append(trustedGroups[bucket], i)
		} else {
			untrustedBuckets[bucket] = true
		}
	}

	centroids := make(map[int]spatial.Point)
	for bucket, members := range trustedGroups {
		var sumLat, sumLon float64
		n := 0
		for _, i := range members {
			for _, p := range inRange(*intervals[i].StartTimestampS, *intervals[i].EndTimestampS) {
				sumLat += p.lat
				sumLon += p.lon
				n++
			}
		}
		if n > 0 {
			centroids[bucket] = spatial.Point{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}
		}
	}

	// Pre-lap-data activities have no trusted timestamps at all; fall back
	// to classifying raw stream paces
	if len(untrustedBuckets) > 0 {
		var sumLat, sumLon float64
		n := 0
		for _, sp := range streams {
			if sp.Lat == nil || sp.Lon == nil || sp.PaceSPerMi == nil {
				continue
			}
			pace := *sp.PaceSPerMi
			if pace <= 0 {
				continue
			}
			if zones.IsWorkZone(boundaries.Classify(pace)) {
				sumLat += *sp.Lat
				sumLon += *sp.Lon
				n++
			}
		}
		if n > 0 {
			workCentroid := spatial.Point{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}
			for bucket := range untrustedBuckets {
				if _, ok := centroids[bucket]; !ok {
					centroids[bucket] = workCentroid
				}
			}
		}
	}

	return centroids
}

// snapToGrid rounds a distance to the nearest snapM meters and returns it
// in miles.
func snapToGrid(distanceMi, snapM float64) float64 {
	snapped := math.Round(distanceMi*zones.MetersPerMile/snapM) * snapM
	return stats.RoundTo(snapped/zones.MetersPerMile, 4)
}

// recalcPace recomputes average pace from the canonical distance after a
// snap changed it.
func recalcPace(iv *models.Interval) {
	dist := floatVal(iv.CanonicalDistanceMi)
	dur := floatVal(iv.DurationS)
	if dist <= 0 || dur <= 0 {
		return
	}
	pace := dur / dist
	display := zones.FormatPacePrecise(pace)
	iv.AvgPaceSPerMi = &pace
	iv.AvgPaceDisplay = &display
}

func (s *EnrichSummary) detail() string {
	var parts []string
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	add(s.TrackIntervals, "track")
	add(s.MeasuredIntervals, "measured")
	add(s.RecoveryIntervals, "recov")
	add(s.SetsTagged, "sets")
	add(s.WalkingIntervals, "walk")
	add(s.StrideIntervals, "stride")
	add(s.ZonesAssigned, "zones")
	add(s.SegmentsCreated, "segments")
	if len(parts) == 0 {
		return "no enrichment"
	}
	return strings.Join(parts, ", ")
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatVal(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
