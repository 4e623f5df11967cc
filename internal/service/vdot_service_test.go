package service

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/repository"
)

func newTestVDOTService(db *sql.DB) *VDOTService {
	return NewVDOTService(repository.NewVDOTRepository(db))
}

func TestVDOTServiceGetZones(t *testing.T) {
	db := openServiceDB(t)
	svc := newTestVDOTService(db)

	// Empty history
	zones, err := svc.GetZones("2026-03-01")
	require.NoError(t, err)
	assert.Nil(t, zones)

	seedVDOT(t, db, "2026-01-01", 50.0)

	zones, err = svc.GetZones("2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, zones)
	assert.Equal(t, 50.0, zones.VDOT)
	assert.Equal(t, "2026-01-01", zones.EffectiveDate)
	assert.Equal(t, "2026-03-01", zones.Date)

	require.Len(t, zones.Zones, 6)
	// Slowest zone first, strictly ordered
	assert.Equal(t, "E", zones.Zones[0].Zone)
	assert.Equal(t, "FR", zones.Zones[5].Zone)
	for i := 1; i < len(zones.Zones); i++ {
		assert.Less(t, zones.Zones[i].PaceSPerMi, zones.Zones[i-1].PaceSPerMi)
	}
	assert.InDelta(t, 494.0, zones.Zones[0].PaceSPerMi, 0.1)
	assert.Equal(t, "8:14", zones.Zones[0].PaceDisplay)

	_, err = svc.GetZones("March 1st")
	require.Error(t, err)
}

func TestVDOTServiceAddEntry(t *testing.T) {
	db := openServiceDB(t)
	svc := newTestVDOTService(db)

	err := svc.AddEntry(&models.VDOTEntry{EffectiveDate: "yesterday", VDOT: 50})
	require.Error(t, err)

	err = svc.AddEntry(&models.VDOTEntry{EffectiveDate: "2026-03-01", VDOT: 10})
	require.Error(t, err)

	entry := &models.VDOTEntry{EffectiveDate: "2026-03-01", VDOT: 51.5}
	require.NoError(t, svc.AddEntry(entry))
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "manual", entry.Source)

	history, err := svc.GetHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 51.5, history[0].VDOT)
}

func TestVDOTServiceRecordRace(t *testing.T) {
	db := openServiceDB(t)
	svc := newTestVDOTService(db)

	_, err := svc.RecordRace(0, 1200, "2026-04-04", nil, nil)
	require.Error(t, err)

	// 5k in 20:00
	entry, err := svc.RecordRace(5000, 1200, "2026-04-04", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.InDelta(t, 49.81, entry.VDOT, 0.01)
	assert.Equal(t, "race", entry.Source)
	assert.NotZero(t, entry.ID)

	zones, err := svc.GetZones("2026-04-10")
	require.NoError(t, err)
	require.NotNil(t, zones)
	assert.InDelta(t, 49.81, zones.VDOT, 0.01)
}

func TestVDOTServicePredictRace(t *testing.T) {
	db := openServiceDB(t)
	svc := newTestVDOTService(db)

	pred, err := svc.PredictRace(5000, "2026-06-01")
	require.NoError(t, err)
	assert.Nil(t, pred)

	seedVDOT(t, db, "2026-01-01", 50.0)

	pred, err = svc.PredictRace(5000, "2026-06-01")
	require.NoError(t, err)
	require.NotNil(t, pred)
	assert.Equal(t, 50.0, pred.VDOT)
	assert.InDelta(t, 1196.0, pred.PredictedTimeS, 1.0)
	assert.InDelta(t, 385.0, pred.PaceSPerMi, 0.5)

	_, err = svc.PredictRace(-1, "2026-06-01")
	require.Error(t, err)
}
