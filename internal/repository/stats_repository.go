package repository

import (
	"database/sql"
	"fmt"

	"github.com/runpace/runpace-backend-go/internal/models"
)

// StatsRepository handles database operations for training statistics
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetDailyDistances returns the summed mileage per day in the range,
// preferring adjusted distance over raw. Days without activities are
// absent from the result.
func (r *StatsRepository) GetDailyDistances(startDate, endDate string) ([]models.DailyDistance, error) {
	query := `
		SELECT date, SUM(COALESCE(adjusted_distance_mi, distance_mi, 0))
		FROM activities
		WHERE date >= ? AND date <= ?
		GROUP BY date
		ORDER BY date ASC`

	rows, err := r.db.Query(query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily distances: %w", err)
	}
	defer rows.Close()

	var days []models.DailyDistance
	for rows.Next() {
		var d models.DailyDistance
		if err := rows.Scan(&d.Date, &d.DistanceMi); err != nil {
			return nil, fmt.Errorf("failed to scan daily distance: %w", err)
		}
		days = append(days, d)
	}

	return days, nil
}

// GetActivityTotals returns per-activity date, distance and duration in
// the range, ordered by date. Distance prefers the adjusted value.
func (r *StatsRepository) GetActivityTotals(startDate, endDate string) ([]models.ActivityTotals, error) {
	query := `
		SELECT date, COALESCE(adjusted_distance_mi, distance_mi, 0), COALESCE(duration_s, 0)
		FROM activities
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity totals: %w", err)
	}
	defer rows.Close()

	var totals []models.ActivityTotals
	for rows.Next() {
		var t models.ActivityTotals
		if err := rows.Scan(&t.Date, &t.DistanceMi, &t.DurationS); err != nil {
			return nil, fmt.Errorf("failed to scan activity totals: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, nil
}
