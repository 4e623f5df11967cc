package repository

import (
	"database/sql"
	"fmt"

	"github.com/runpace/runpace-backend-go/internal/models"
)

// StreamRepository handles database operations for stream points
type StreamRepository struct {
	db *sql.DB
}

// NewStreamRepository creates a new stream repository
func NewStreamRepository(db *sql.DB) *StreamRepository {
	return &StreamRepository{db: db}
}

// GetStreamPoints retrieves all stream points for an activity in time order
func (r *StreamRepository) GetStreamPoints(activityID int64) ([]models.StreamPoint, error) {
	query := `SELECT id, activity_id, timestamp_s, lat, lon, altitude_ft,
		heart_rate, cadence, pace_s_per_mi, distance_mi, source_id
		FROM streams
		WHERE activity_id = ?
		ORDER BY timestamp_s ASC, id ASC`

	rows, err := r.db.Query(query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stream points: %w", err)
	}
	defer rows.Close()

	var points []models.StreamPoint
	for rows.Next() {
		var p models.StreamPoint
		err := rows.Scan(
			&p.ID, &p.ActivityID, &p.TimestampS, &p.Lat, &p.Lon, &p.AltitudeFt,
			&p.HeartRate, &p.Cadence, &p.PaceSPerMi, &p.DistanceMi, &p.SourceID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stream point: %w", err)
		}
		points = append(points, p)
	}

	return points, nil
}

// CountByActivity returns the number of stream points for an activity
func (r *StreamRepository) CountByActivity(activityID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow("SELECT COUNT(*) FROM streams WHERE activity_id = ?", activityID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stream points: %w", err)
	}
	return count, nil
}
