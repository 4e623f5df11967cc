package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/repository"
)

// VDOTService handles the fitness-score history and the derived
// training-zone pace tables.
type VDOTService struct {
	vdotRepo *repository.VDOTRepository
}

// NewVDOTService creates a new VDOT service
func NewVDOTService(vdotRepo *repository.VDOTRepository) *VDOTService {
	return &VDOTService{vdotRepo: vdotRepo}
}

// GetZones returns the zone pace table in effect on the given date, or
// today's when the date is empty. Returns nil when the history has no
// entry that early.
func (s *VDOTService) GetZones(date string) (*models.ZonesResponse, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	entry, err := s.vdotRepo.CurrentForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to get vdot entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}

	paces := zones.Paces(entry.VDOT)
	table := make([]models.ZonePace, 0, len(paces))
	for zone, pace := range paces {
		table = append(table, models.ZonePace{
			Zone:        zone,
			PaceSPerMi:  pace,
			PaceDisplay: zones.FormatPace(pace),
		})
	}
	// Slowest zone first
	sort.Slice(table, func(i, j int) bool { return table[i].PaceSPerMi > table[j].PaceSPerMi })

	return &models.ZonesResponse{
		Date:          date,
		VDOT:          entry.VDOT,
		EffectiveDate: entry.EffectiveDate,
		Zones:         table,
	}, nil
}

// GetHistory retrieves the full fitness-score history, oldest first
func (s *VDOTService) GetHistory() ([]models.VDOTEntry, error) {
	history, err := s.vdotRepo.GetHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to get vdot history: %w", err)
	}
	return history, nil
}

// AddEntry validates and saves a new history entry
func (s *VDOTService) AddEntry(entry *models.VDOTEntry) error {
	if _, err := time.Parse("2006-01-02", entry.EffectiveDate); err != nil {
		return fmt.Errorf("invalid effective date %q: %w", entry.EffectiveDate, err)
	}
	if entry.VDOT < 20 || entry.VDOT > 90 {
		return fmt.Errorf("vdot %.2f out of range", entry.VDOT)
	}
	if entry.Source == "" {
		entry.Source = "manual"
	}

	if err := s.vdotRepo.Insert(entry); err != nil {
		return fmt.Errorf("failed to insert vdot entry: %w", err)
	}
	return nil
}

// RecordRace converts a race performance into a VDOT entry effective on
// the race date and saves it.
func (s *VDOTService) RecordRace(distanceM, timeS float64, date string, activityID *int64, notes *string) (*models.VDOTEntry, error) {
	if distanceM <= 0 || timeS <= 0 {
		return nil, fmt.Errorf("invalid race result: distance=%.0f time=%.0f", distanceM, timeS)
	}

	entry := &models.VDOTEntry{
		EffectiveDate: date,
		VDOT:          zones.RaceToVDOT(distanceM, timeS),
		Source:        "race",
		ActivityID:    activityID,
		Notes:         notes,
	}
	if err := s.AddEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// PredictRace predicts the race time over a distance at the fitness in
// effect on the given date (today when empty). Returns nil when the
// history has no entry that early.
func (s *VDOTService) PredictRace(distanceM float64, date string) (*models.RacePrediction, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	entry, err := s.vdotRepo.CurrentForDate(date)
	if err != nil {
		return nil, fmt.Errorf("failed to get vdot entry: %w", err)
	}
	if entry == nil {
		return nil, nil
	}

	timeS, err := zones.PredictTime(entry.VDOT, distanceM)
	if err != nil {
		return nil, err
	}
	pace := timeS / (distanceM / zones.MetersPerMile)

	return &models.RacePrediction{
		DistanceM:      distanceM,
		VDOT:           entry.VDOT,
		PredictedTimeS: timeS,
		PaceSPerMi:     pace,
		PaceDisplay:    zones.FormatPace(pace),
	}, nil
}
