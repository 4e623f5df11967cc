package repository

import (
	"database/sql"
	"fmt"

	"github.com/runpace/runpace-backend-go/internal/models"
)

// VDOTRepository handles database operations for the fitness-score history
type VDOTRepository struct {
	db *sql.DB
}

// NewVDOTRepository creates a new VDOT repository
func NewVDOTRepository(db *sql.DB) *VDOTRepository {
	return &VDOTRepository{db: db}
}

// CurrentForDate retrieves the entry in effect on the given date: the one
// with the latest effective_date on or before it. Returns nil when the
// history has no entry that early.
func (r *VDOTRepository) CurrentForDate(date string) (*models.VDOTEntry, error) {
	query := `SELECT id, effective_date, vdot, source, activity_id, notes, created_at
		FROM vdot_history
		WHERE effective_date <= ?
		ORDER BY effective_date DESC, id DESC
		LIMIT 1`

	var e models.VDOTEntry
	err := r.db.QueryRow(query, date).Scan(
		&e.ID, &e.EffectiveDate, &e.VDOT, &e.Source, &e.ActivityID, &e.Notes, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vdot entry: %w", err)
	}

	return &e, nil
}

// GetHistory retrieves all entries ordered by effective date
func (r *VDOTRepository) GetHistory() ([]models.VDOTEntry, error) {
	query := `SELECT id, effective_date, vdot, source, activity_id, notes, created_at
		FROM vdot_history
		ORDER BY effective_date ASC, id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vdot history: %w", err)
	}
	defer rows.Close()

	var entries []models.VDOTEntry
	for rows.Next() {
		var e models.VDOTEntry
		err := rows.Scan(&e.ID, &e.EffectiveDate, &e.VDOT, &e.Source,
			&e.ActivityID, &e.Notes, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vdot entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Insert saves a new history entry and fills in its ID
func (r *VDOTRepository) Insert(entry *models.VDOTEntry) error {
	query := `INSERT INTO vdot_history (effective_date, vdot, source, activity_id, notes)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.Exec(query, entry.EffectiveDate, entry.VDOT, entry.Source,
		entry.ActivityID, entry.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert vdot entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get vdot entry id: %w", err)
	}
	entry.ID = id

	return nil
}
