package repository

import (
	"database/sql"
	"fmt"

	"github.com/runpace/runpace-backend-go/internal/models"
)

// DetectedTrackRepository handles database operations for cached track
// locations. It satisfies the track detector's cache interface.
type DetectedTrackRepository struct {
	db *sql.DB
}

// NewDetectedTrackRepository creates a new detected track repository
func NewDetectedTrackRepository(db *sql.DB) *DetectedTrackRepository {
	return &DetectedTrackRepository{db: db}
}

// All retrieves every cached track location
func (r *DetectedTrackRepository) All() ([]models.DetectedTrack, error) {
	query := `SELECT id, lat, lon, orientation_deg, fit_score, detected_by_activity_id, created_at
		FROM detected_tracks
		ORDER BY id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query detected tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.DetectedTrack
	for rows.Next() {
		var t models.DetectedTrack
		err := rows.Scan(&t.ID, &t.Lat, &t.Lon, &t.OrientationDeg, &t.FitScore,
			&t.DetectedByActivityID, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detected track: %w", err)
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

// Insert saves a newly detected track location and fills in its ID
func (r *DetectedTrackRepository) Insert(track *models.DetectedTrack) error {
	query := `INSERT INTO detected_tracks (lat, lon, orientation_deg, fit_score, detected_by_activity_id)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query, track.Lat, track.Lon, track.OrientationDeg,
		track.FitScore, track.DetectedByActivityID)
	if err != nil {
		return fmt.Errorf("failed to insert detected track: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get detected track id: %w", err)
	}
	track.ID = id

	return nil
}
