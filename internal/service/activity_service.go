package service

import (
	"fmt"
	"math"

	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/repository"
	"github.com/runpace/runpace-backend-go/internal/stats"
)

// ActivityService handles business logic for activities
type ActivityService struct {
	activityRepo *repository.ActivityRepository
	intervalRepo *repository.IntervalRepository
	streamRepo   *repository.StreamRepository
}

// NewActivityService creates a new activity service
func NewActivityService(
	activityRepo *repository.ActivityRepository,
	intervalRepo *repository.IntervalRepository,
	streamRepo *repository.StreamRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		intervalRepo: intervalRepo,
		streamRepo:   streamRepo,
	}
}

// GetActivities retrieves activities with filtering and pagination
func (s *ActivityService) GetActivities(filter models.ActivityFilter) (*models.ActivitiesResponse, error) {
	// Validate filter
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	activities, total, err := s.activityRepo.GetActivities(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return &models.ActivitiesResponse{
		Data:       activities,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetActivityDetail retrieves one activity with its intervals. Returns
// nil when the activity does not exist.
func (s *ActivityService) GetActivityDetail(id int64) (*models.ActivityDetail, error) {
	activity, err := s.activityRepo.GetActivityByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil {
		return nil, nil
	}

	intervals, err := s.intervalRepo.GetIntervalsByActivity(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get intervals: %w", err)
	}
	streamCount, err := s.streamRepo.CountByActivity(id)
	if err != nil {
		return nil, fmt.Errorf("failed to count stream points: %w", err)
	}

	return &models.ActivityDetail{
		Activity:    *activity,
		Intervals:   intervals,
		RepSummary:  buildRepSummary(intervals),
		StreamCount: streamCount,
	}, nil
}

// buildRepSummary groups an activity's work intervals by distance and
// averages each group, in first-seen order. Synthetic segments and lone
// reps are dropped. Sub-mile reps group on the nearest 50 m ("400m"),
// longer ones on the distance rounded to hundredths ("1.00mi").
func buildRepSummary(intervals []models.Interval) []models.RepSummary {
	type group struct {
		count     int
		durations []float64
		paces     []float64
		hrs       []float64
	}
	groups := make(map[string]*group)
	var order []string

	for i := range intervals {
		iv := &intervals[i]
		if iv.IsWalking || iv.IsRecovery || iv.IsSynthetic() {
			continue
		}
		var dist float64
		switch {
		case iv.CanonicalDistanceMi != nil && *iv.CanonicalDistanceMi > 0:
			dist = *iv.CanonicalDistanceMi
		case iv.GPSMeasuredDistanceMi != nil && *iv.GPSMeasuredDistanceMi > 0:
			dist = *iv.GPSMeasuredDistanceMi
		default:
			continue
		}

		var label string
		if dist < 1.0 {
			label = fmt.Sprintf("%.0fm", math.Round(dist*zones.MetersPerMile/50)*50)
		} else {
			label = fmt.Sprintf("%.2fmi", stats.RoundTo(dist, 2))
		}

		g := groups[label]
		if g == nil {
			g = &group{}
			groups[label] = g
			order = append(order, label)
		}
		g.count++
		if iv.DurationS != nil && *iv.DurationS > 0 {
			g.durations = append(g.durations, *iv.DurationS)
		}
		if iv.AvgPaceSPerMi != nil && *iv.AvgPaceSPerMi > 0 {
			g.paces = append(g.paces, *iv.AvgPaceSPerMi)
		}
		if iv.AvgHR != nil && *iv.AvgHR > 0 {
			g.hrs = append(g.hrs, *iv.AvgHR)
		}
	}

	var summary []models.RepSummary
	for _, label := range order {
		g := groups[label]
		if g.count < 2 {
			continue
		}
		rep := models.RepSummary{Distance: label, Count: g.count}
		if len(g.durations) > 0 {
			rep.AvgDurationDisplay = formatDurationPrecise(stats.Mean(g.durations))
		}
		if len(g.paces) > 0 {
			rep.AvgPaceDisplay = zones.FormatPace(stats.Mean(g.paces))
		}
		if len(g.hrs) > 0 {
			rep.AvgHRDisplay = fmt.Sprintf("%.0f", stats.Mean(g.hrs))
		}
		summary = append(summary, rep)
	}

	return summary
}

// GetActivityStreams retrieves an activity's stream points in timestamp
// order. Returns nil, nil when the activity does not exist.
func (s *ActivityService) GetActivityStreams(id int64) ([]models.StreamPoint, error) {
	activity, err := s.activityRepo.GetActivityByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil {
		return nil, nil
	}

	points, err := s.streamRepo.GetStreamPoints(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream points: %w", err)
	}
	return points, nil
}

// GetWorkoutLocations clusters the work-interval centroids of all
// activities into candidate venues, largest cluster first. Useful for
// spotting locations worth adding to the measured-course whitelist.
func (s *ActivityService) GetWorkoutLocations(radiusM float64, minIntervals int) ([]models.LocationCluster, error) {
	if radiusM <= 0 {
		radiusM = 500
	}
	if minIntervals < 1 {
		minIntervals = 3
	}

	centroids, err := s.activityRepo.GetWorkoutCentroids(minIntervals)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout centroids: %w", err)
	}

	return ClusterWorkoutLocations(centroids, radiusM), nil
}
