package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/runpace/runpace-backend-go/internal/models"
)

// ActivityRepository handles database operations for activities
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `id, date, workout_name, workout_category, strava_workout_type,
	distance_mi, duration_s, avg_pace_s_per_mi, avg_hr, max_hr, avg_cadence,
	adjusted_distance_mi, vdot, created_at, updated_at`

func scanActivity(scanner interface{ Scan(...interface{}) error }) (models.Activity, error) {
	var a models.Activity
	err := scanner.Scan(
		&a.ID, &a.Date, &a.WorkoutName, &a.WorkoutCategory, &a.StravaWorkoutType,
		&a.DistanceMi, &a.DurationS, &a.AvgPaceSPerMi, &a.AvgHR, &a.MaxHR, &a.AvgCadence,
		&a.AdjustedDistanceMi, &a.VDOT, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// GetActivities retrieves activities with filtering and pagination
func (r *ActivityRepository) GetActivities(filter models.ActivityFilter) ([]models.Activity, int64, error) {
	query := "SELECT " + activityColumns + " FROM activities"

	var conditions []string
	var args []interface{}

	if filter.StartDate != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate)
	}
	if filter.Category != "" {
		conditions = append(conditions, "workout_category = ?")
		args = append(args, filter.Category)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM activities"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	err := r.db.QueryRow(countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY date DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, total, nil
}

// GetActivityByID retrieves a single activity by ID
func (r *ActivityRepository) GetActivityByID(id int64) (*models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE id = ?"

	a, err := scanActivity(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return &a, nil
}

// GetActivitiesBetween retrieves activities in a date range ordered by date.
// Empty bounds are open-ended, so ("", "") returns every activity.
func (r *ActivityRepository) GetActivitiesBetween(startDate, endDate string) ([]models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities"

	var conditions []string
	var args []interface{}

	if startDate != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, startDate)
	}
	if endDate != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, endDate)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, nil
}

// GetWorkoutCentroids returns the GPS centroid of every activity that has
// at least minIntervals work intervals and stream coordinates
func (r *ActivityRepository) GetWorkoutCentroids(minIntervals int) ([]models.WorkoutLocation, error) {
	query := `
		SELECT a.id, a.date, a.workout_name,
		       AVG(s.lat) AS avg_lat, AVG(s.lon) AS avg_lon
		FROM activities a
		JOIN intervals i ON i.activity_id = a.id
		JOIN streams s ON s.activity_id = a.id
		WHERE s.lat IS NOT NULL AND s.lon IS NOT NULL
		  AND i.is_recovery = 0
		GROUP BY a.id
		HAVING COUNT(DISTINCT i.id) >= ?
		   AND AVG(s.lat) IS NOT NULL
		ORDER BY a.id ASC`

	rows, err := r.db.Query(query, minIntervals)
	if err != nil {
		return nil, fmt.Errorf("failed to query workout centroids: %w", err)
	}
	defer rows.Close()

	var locations []models.WorkoutLocation
	for rows.Next() {
		var loc models.WorkoutLocation
		if err := rows.Scan(&loc.ActivityID, &loc.Date, &loc.WorkoutName, &loc.Lat, &loc.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan workout centroid: %w", err)
		}
		locations = append(locations, loc)
	}

	return locations, nil
}
