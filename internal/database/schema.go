package database

import (
	"database/sql"
	"fmt"
)

// Base schema. Later changes go through versioned migration files; this
// block only ever gains new CREATE IF NOT EXISTS statements.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS activities (
	id                   INTEGER PRIMARY KEY,
	date                 TEXT NOT NULL,
	workout_name         TEXT,
	workout_category     TEXT,
	strava_workout_type  INTEGER,
	distance_mi          REAL,
	duration_s           REAL,
	avg_pace_s_per_mi    REAL,
	avg_hr               REAL,
	max_hr               REAL,
	avg_cadence          REAL,
	adjusted_distance_mi REAL,
	vdot                 REAL,
	created_at           TEXT DEFAULT (datetime('now')),
	updated_at           TEXT DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS intervals (
	id                       INTEGER PRIMARY KEY,
	activity_id              INTEGER NOT NULL REFERENCES activities(id),
	rep_number               INTEGER,
	gps_measured_distance_mi REAL,
	canonical_distance_mi    REAL,
	duration_s               REAL,
	avg_pace_s_per_mi        REAL,
	avg_pace_display         TEXT,
	avg_hr                   REAL,
	avg_cadence              REAL,
	is_recovery              BOOLEAN DEFAULT 0,
	is_walking               BOOLEAN DEFAULT 0,
	is_stride                BOOLEAN DEFAULT 0,
	is_race                  BOOLEAN DEFAULT 0,
	pace_zone                TEXT,
	location_type            TEXT,
	set_number               INTEGER,
	source                   TEXT,
	start_timestamp_s        REAL,
	end_timestamp_s          REAL
);
CREATE INDEX IF NOT EXISTS idx_intervals_activity ON intervals(activity_id);
CREATE INDEX IF NOT EXISTS idx_intervals_canonical ON intervals(canonical_distance_mi);

CREATE TABLE IF NOT EXISTS streams (
	id            INTEGER PRIMARY KEY,
	activity_id   INTEGER NOT NULL REFERENCES activities(id),
	timestamp_s   REAL,
	lat           REAL,
	lon           REAL,
	altitude_ft   REAL,
	heart_rate    REAL,
	cadence       REAL,
	pace_s_per_mi REAL,
	distance_mi   REAL,
	source_id     TEXT
);
CREATE INDEX IF NOT EXISTS idx_streams_activity ON streams(activity_id, timestamp_s);

CREATE TABLE IF NOT EXISTS vdot_history (
	id             INTEGER PRIMARY KEY,
	effective_date TEXT NOT NULL,
	vdot           REAL NOT NULL,
	source         TEXT DEFAULT 'manual',
	activity_id    INTEGER REFERENCES activities(id),
	notes          TEXT,
	created_at     TEXT DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_vdot_history_date ON vdot_history(effective_date);

CREATE TABLE IF NOT EXISTS detected_tracks (
	id                      INTEGER PRIMARY KEY,
	lat                     REAL NOT NULL,
	lon                     REAL NOT NULL,
	orientation_deg         REAL,
	fit_score               REAL,
	detected_by_activity_id INTEGER REFERENCES activities(id),
	created_at              TEXT DEFAULT (datetime('now'))
);
`

// EnsureSchema creates all base tables if they don't exist yet.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
