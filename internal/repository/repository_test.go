package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/runpace/runpace-backend-go/internal/database"
	"github.com/runpace/runpace-backend-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// One connection so the in-memory database is shared across queries
	db.SetMaxOpenConns(1)
	require.NoError(t, database.EnsureSchema(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedActivity(t *testing.T, db *sql.DB, id int64, date, category string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO activities (id, date, workout_name, workout_category) VALUES (?, ?, ?, ?)`,
		id, date, "Run "+date, category)
	require.NoError(t, err)
}

func TestActivityRepositoryFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewActivityRepository(db)

	seedActivity(t, db, 1, "2026-01-05", "easy")
	seedActivity(t, db, 2, "2026-01-12", "interval")
	seedActivity(t, db, 3, "2026-02-01", "easy")

	activities, total, err := repo.GetActivities(models.ActivityFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, activities, 3)
	// Newest first
	assert.Equal(t, int64(3), activities[0].ID)

	activities, total, err = repo.GetActivities(models.ActivityFilter{
		StartDate: "2026-01-10", EndDate: "2026-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, activities, 1)
	assert.Equal(t, int64(2), activities[0].ID)

	activities, total, err = repo.GetActivities(models.ActivityFilter{Category: "easy"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, activities, 2)

	activities, total, err = repo.GetActivities(models.ActivityFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, activities, 1)
	assert.Equal(t, int64(1), activities[0].ID)
}

func TestActivityRepositoryByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewActivityRepository(db)

	seedActivity(t, db, 7, "2026-03-01", "long")

	a, err := repo.GetActivityByID(7)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "2026-03-01", a.Date)
	require.NotNil(t, a.WorkoutCategory)
	assert.Equal(t, "long", *a.WorkoutCategory)
	assert.Nil(t, a.VDOT)

	missing, err := repo.GetActivityByID(99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestActivityRepositoryBetween(t *testing.T) {
	db := openTestDB(t)
	repo := NewActivityRepository(db)

	seedActivity(t, db, 1, "2026-01-05", "easy")
	seedActivity(t, db, 2, "2026-02-12", "interval")
	seedActivity(t, db, 3, "2026-03-01", "easy")

	all, err := repo.GetActivitiesBetween("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Oldest first
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[2].ID)

	some, err := repo.GetActivitiesBetween("2026-02-01", "")
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, int64(2), some[0].ID)
}

func TestIntervalRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewIntervalRepository(db)

	seedActivity(t, db, 1, "2026-01-05", "interval")
	_, err := db.Exec(`
		INSERT INTO intervals (activity_id, rep_number, gps_measured_distance_mi,
		                       duration_s, avg_pace_s_per_mi, pace_zone, source)
		VALUES (1, 2, 0.2489, 89.5, 359.6, 'I', 'fit_lap'),
		       (1, 1, 0.2501, 90.0, 359.9, 'I', 'fit_lap'),
		       (1, 3, NULL, NULL, NULL, NULL, 'fit_lap')`)
	require.NoError(t, err)

	intervals, err := repo.GetIntervalsByActivity(1)
	require.NoError(t, err)
	require.Len(t, intervals, 3)

	assert.Equal(t, 1, intervals[0].RepNumber)
	assert.Equal(t, 2, intervals[1].RepNumber)
	require.NotNil(t, intervals[0].GPSMeasuredDistanceMi)
	assert.Equal(t, 0.2501, *intervals[0].GPSMeasuredDistanceMi)
	assert.True(t, intervals[0].IsRealLap())
	assert.False(t, intervals[0].IsRecovery)

	// Nullable columns survive the round trip
	assert.Nil(t, intervals[2].GPSMeasuredDistanceMi)
	assert.Nil(t, intervals[2].PaceZone)

	iv, err := repo.GetIntervalByID(intervals[0].ID)
	require.NoError(t, err)
	require.NotNil(t, iv)
	assert.Equal(t, 1, iv.RepNumber)

	missing, err := repo.GetIntervalByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStreamRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewStreamRepository(db)

	seedActivity(t, db, 1, "2026-01-05", "easy")
	_, err := db.Exec(`
		INSERT INTO streams (activity_id, timestamp_s, lat, lon, distance_mi, source_id)
		VALUES (1, 2, 40.0001, -105.0, 0.01, 'watch'),
		       (1, 1, 40.0000, -105.0, 0.0, 'watch'),
		       (1, 3, 40.0002, -105.0, NULL, NULL)`)
	require.NoError(t, err)

	points, err := repo.GetStreamPoints(1)
	require.NoError(t, err)
	require.Len(t, points, 3)

	require.NotNil(t, points[0].TimestampS)
	assert.Equal(t, 1.0, *points[0].TimestampS)
	assert.Equal(t, 3.0, *points[2].TimestampS)
	assert.Nil(t, points[2].DistanceMi)
	assert.Nil(t, points[2].SourceID)

	count, err := repo.CountByActivity(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountByActivity(42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestDetectedTrackRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewDetectedTrackRepository(db)

	tracks, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, tracks)

	seedActivity(t, db, 1, "2026-01-05", "interval")
	angle, score, actID := 93.5, 0.0412, int64(1)
	track := &models.DetectedTrack{
		Lat:                  40.0012,
		Lon:                  -105.2634,
		OrientationDeg:       &angle,
		FitScore:             &score,
		DetectedByActivityID: &actID,
	}
	require.NoError(t, repo.Insert(track))
	assert.NotZero(t, track.ID)

	tracks, err = repo.All()
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 40.0012, tracks[0].Lat)
	require.NotNil(t, tracks[0].OrientationDeg)
	assert.Equal(t, 93.5, *tracks[0].OrientationDeg)
	require.NotNil(t, tracks[0].FitScore)
	assert.Equal(t, 0.0412, *tracks[0].FitScore)
	require.NotNil(t, tracks[0].DetectedByActivityID)
	assert.Equal(t, int64(1), *tracks[0].DetectedByActivityID)

	// Manually seeded tracks may carry no fit metadata
	require.NoError(t, repo.Insert(&models.DetectedTrack{Lat: 47.0, Lon: 8.0}))
	tracks, err = repo.All()
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Nil(t, tracks[1].OrientationDeg)
	assert.Nil(t, tracks[1].DetectedByActivityID)
}

func TestVDOTRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewVDOTRepository(db)

	entry, err := repo.CurrentForDate("2026-01-01")
	require.NoError(t, err)
	assert.Nil(t, entry)

	for _, e := range []models.VDOTEntry{
		{EffectiveDate: "2025-03-01", VDOT: 48.0, Source: "manual"},
		{EffectiveDate: "2025-09-15", VDOT: 50.2, Source: "race"},
		{EffectiveDate: "2026-02-01", VDOT: 51.5, Source: "race"},
	} {
		entry := e
		require.NoError(t, repo.Insert(&entry))
		assert.NotZero(t, entry.ID)
	}

	entry, err = repo.CurrentForDate("2026-01-10")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 50.2, entry.VDOT)
	assert.Equal(t, "2025-09-15", entry.EffectiveDate)

	// Exact effective date counts
	entry, err = repo.CurrentForDate("2026-02-01")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 51.5, entry.VDOT)

	entry, err = repo.CurrentForDate("2025-01-01")
	require.NoError(t, err)
	assert.Nil(t, entry)

	history, err := repo.GetHistory()
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 48.0, history[0].VDOT)
	assert.Equal(t, 51.5, history[2].VDOT)
}
