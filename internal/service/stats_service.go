package service

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/repository"
	"github.com/runpace/runpace-backend-go/internal/stats"
)

// StatsService handles business logic for training statistics
type StatsService struct {
	statsRepo *repository.StatsRepository
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo *repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

// GetYearSummary aggregates one calendar year into monthly and yearly
// totals. Average weekly mileage divides each month's distance by its
// elapsed weeks, so the current month only counts days that have already
// happened and future months report zero.
func (s *StatsService) GetYearSummary(year int) (*models.YearSummary, error) {
	if year < 1900 || year > 2999 {
		return nil, fmt.Errorf("invalid year %d", year)
	}

	rows, err := s.statsRepo.GetActivityTotals(
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-12-31", year),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity totals: %w", err)
	}

	type bucket struct {
		distance float64
		duration float64
		count    int
		longest  float64
	}
	var months [13]bucket
	for _, row := range rows {
		if len(row.Date) < 7 {
			continue
		}
		m, err := strconv.Atoi(row.Date[5:7])
		if err != nil || m < 1 || m > 12 {
			continue
		}
		months[m].distance += row.DistanceMi
		months[m].duration += row.DurationS
		months[m].count++
		if row.DistanceMi > months[m].longest {
			months[m].longest = row.DistanceMi
		}
	}

	today := time.Now()
	summary := &models.YearSummary{
		Year:    year,
		Monthly: make([]models.MonthlyStat, 0, 12),
	}

	for m := 1; m <= 12; m++ {
		b := months[m]
		daysInMonth := time.Date(year, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()

		var elapsedDays int
		switch {
		case year == today.Year() && time.Month(m) == today.Month():
			elapsedDays = today.Day()
		case year < today.Year() || (year == today.Year() && time.Month(m) < today.Month()):
			elapsedDays = daysInMonth
		}

		avgWeekly := 0.0
		if elapsedDays > 0 {
			avgWeekly = b.distance / (float64(elapsedDays) / 7.0)
		}
		paceDisplay := ""
		if b.distance > 0 {
			paceDisplay = zones.FormatPace(b.duration / b.distance)
		}

		summary.Monthly = append(summary.Monthly, models.MonthlyStat{
			Month:           m,
			Name:            time.Month(m).String()[:3],
			DistanceMi:      stats.RoundTo(b.distance, 1),
			Count:           b.count,
			DurationDisplay: formatDuration(b.duration),
			PaceDisplay:     paceDisplay,
			AvgWeeklyMi:     stats.RoundTo(avgWeekly, 1),
		})

		summary.DistanceMi += b.distance
		summary.Count += b.count
		if b.longest > summary.LongestRunMi {
			summary.LongestRunMi = b.longest
		}
	}

	var yearlyDuration float64
	for m := 1; m <= 12; m++ {
		yearlyDuration += months[m].duration
	}
	summary.DurationDisplay = formatDuration(yearlyDuration)
	if summary.DistanceMi > 0 {
		summary.PaceDisplay = zones.FormatPace(yearlyDuration / summary.DistanceMi)
	}
	summary.DistanceMi = stats.RoundTo(summary.DistanceMi, 1)
	summary.LongestRunMi = stats.RoundTo(summary.LongestRunMi, 1)

	// Chart scale has a floor of 1
	for _, ms := range summary.Monthly {
		if ms.DistanceMi > summary.MaxMonthDistanceMi {
			summary.MaxMonthDistanceMi = ms.DistanceMi
		}
	}
	if summary.MaxMonthDistanceMi == 0 {
		summary.MaxMonthDistanceMi = 1
	}

	return summary, nil
}

// GetWeeklyMileage buckets the range into Sunday-to-Saturday weeks keyed
// by their Saturday end date. Each week's value is the sum of the seven
// days ending on that Saturday, so a range starting mid-week yields a
// partial first bucket.
func (s *StatsService) GetWeeklyMileage(startDate, endDate string) ([]models.WeeklyMileage, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	daily, err := s.dailyTotals(startDate, endDate)
	if err != nil {
		return nil, err
	}

	// First Saturday on or after the start date
	sat := start.AddDate(0, 0, (int(time.Saturday)-int(start.Weekday())+7)%7)

	var weeks []models.WeeklyMileage
	for !sat.After(end) {
		total := 0.0
		for offset := 0; offset < 7; offset++ {
			total += daily[sat.AddDate(0, 0, -offset).Format("2006-01-02")]
		}
		weeks = append(weeks, models.WeeklyMileage{
			WeekEnding: sat.Format("2006-01-02"),
			Label:      sat.Format("1/2"),
			DistanceMi: stats.RoundTo(total, 1),
		})
		sat = sat.AddDate(0, 0, 7)
	}

	return weeks, nil
}

// GetTrailingMileage returns the 7-day trailing mileage for every day in
// the range, keyed by date. Activities up to a week before the start are
// pulled in so the first days have a full window.
func (s *StatsService) GetTrailingMileage(startDate, endDate string) (map[string]float64, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	windowStart := start.AddDate(0, 0, -7).Format("2006-01-02")
	daily, err := s.dailyTotals(windowStart, endDate)
	if err != nil {
		return nil, err
	}

	result := make(map[string]float64)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		total := 0.0
		for offset := 0; offset < 7; offset++ {
			total += daily[d.AddDate(0, 0, -offset).Format("2006-01-02")]
		}
		result[d.Format("2006-01-02")] = stats.RoundTo(total, 1)
	}

	return result, nil
}

func (s *StatsService) dailyTotals(startDate, endDate string) (map[string]float64, error) {
	days, err := s.statsRepo.GetDailyDistances(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily distances: %w", err)
	}
	daily := make(map[string]float64, len(days))
	for _, d := range days {
		daily[d.Date] = d.DistanceMi
	}
	return daily, nil
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s before start date %s", endDate, startDate)
	}
	return start, end, nil
}

// formatDuration renders seconds as H:MM:SS, or M:SS under an hour.
// Fractional seconds truncate.
func formatDuration(seconds float64) string {
	total := int(seconds)
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// formatDurationPrecise is formatDuration with tenths, e.g. "5:07.3"
func formatDurationPrecise(seconds float64) string {
	total := int(seconds)
	tenths := int(math.Round((seconds-float64(total))*10)) % 10
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d.%d", total/3600, (total%3600)/60, total%60, tenths)
	}
	return fmt.Sprintf("%d:%02d.%d", total/60, total%60, tenths)
}
