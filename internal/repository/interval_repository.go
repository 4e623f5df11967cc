package repository

import (
	"database/sql"
	"fmt"

	"github.com/runpace/runpace-backend-go/internal/models"
)

// IntervalRepository handles database operations for intervals
type IntervalRepository struct {
	db *sql.DB
}

// NewIntervalRepository creates a new interval repository
func NewIntervalRepository(db *sql.DB) *IntervalRepository {
	return &IntervalRepository{db: db}
}

const intervalColumns = `id, activity_id, rep_number, gps_measured_distance_mi,
	canonical_distance_mi, duration_s, avg_pace_s_per_mi, avg_pace_display,
	avg_hr, avg_cadence, is_recovery, is_walking, is_stride, is_race,
	pace_zone, location_type, set_number, source, start_timestamp_s, end_timestamp_s`

func scanInterval(scanner interface{ Scan(...interface{}) error }) (models.Interval, error) {
	var iv models.Interval
	err := scanner.Scan(
		&iv.ID, &iv.ActivityID, &iv.RepNumber, &iv.GPSMeasuredDistanceMi,
		&iv.CanonicalDistanceMi, &iv.DurationS, &iv.AvgPaceSPerMi, &iv.AvgPaceDisplay,
		&iv.AvgHR, &iv.AvgCadence, &iv.IsRecovery, &iv.IsWalking, &iv.IsStride, &iv.IsRace,
		&iv.PaceZone, &iv.LocationType, &iv.SetNumber, &iv.Source,
		&iv.StartTimestampS, &iv.EndTimestampS,
	)
	return iv, err
}

// GetIntervalsByActivity retrieves all intervals for an activity in rep order
func (r *IntervalRepository) GetIntervalsByActivity(activityID int64) ([]models.Interval, error) {
	query := "SELECT " + intervalColumns + ` FROM intervals
		WHERE activity_id = ?
		ORDER BY rep_number ASC, id ASC`

	rows, err := r.db.Query(query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query intervals: %w", err)
	}
	defer rows.Close()

	var intervals []models.Interval
	for rows.Next() {
		iv, err := scanInterval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		intervals = append(intervals, iv)
	}

	return intervals, nil
}

// GetIntervalByID retrieves a single interval by ID
func (r *IntervalRepository) GetIntervalByID(id int64) (*models.Interval, error) {
	query := "SELECT " + intervalColumns + " FROM intervals WHERE id = ?"

	iv, err := scanInterval(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interval: %w", err)
	}

	return &iv, nil
}
