package models

// DailyDistance is one day's summed mileage, adjusted distance preferred
type DailyDistance struct {
	Date       string  `json:"date"` // Format: 2006-01-02
	DistanceMi float64 `json:"distanceMi"`
}

// ActivityTotals is one activity's date, distance and duration, used by
// summary aggregation
type ActivityTotals struct {
	Date       string  `json:"date"`
	DistanceMi float64 `json:"distanceMi"`
	DurationS  float64 `json:"durationS"`
}

// MonthlyStat aggregates one calendar month of training
type MonthlyStat struct {
	Month           int     `json:"month"`
	Name            string  `json:"name"`
	DistanceMi      float64 `json:"distanceMi"`
	Count           int     `json:"count"`
	DurationDisplay string  `json:"durationDisplay"`
	PaceDisplay     string  `json:"paceDisplay"`
	AvgWeeklyMi     float64 `json:"avgWeeklyMi"`
}

// YearSummary is the yearly rollup with its monthly breakdown
type YearSummary struct {
	Year               int           `json:"year"`
	Monthly            []MonthlyStat `json:"monthly"`
	DistanceMi         float64       `json:"distanceMi"`
	Count              int           `json:"count"`
	DurationDisplay    string        `json:"durationDisplay"`
	PaceDisplay        string        `json:"paceDisplay"`
	LongestRunMi       float64       `json:"longestRunMi"`
	MaxMonthDistanceMi float64       `json:"maxMonthDistanceMi"`
}

// WeeklyMileage is one Sunday-to-Saturday training week, keyed by its
// Saturday end date
type WeeklyMileage struct {
	WeekEnding string  `json:"weekEnding"` // Format: 2006-01-02, always a Saturday
	Label      string  `json:"label"`      // Short form, e.g. "3/14"
	DistanceMi float64 `json:"distanceMi"`
}

// RepSummary averages repeated efforts at one canonical distance within
// an activity
type RepSummary struct {
	Distance           string `json:"distance"` // "400m" or "1.00mi"
	Count              int    `json:"count"`
	AvgDurationDisplay string `json:"avgDurationDisplay"`
	AvgPaceDisplay     string `json:"avgPaceDisplay"`
	AvgHRDisplay       string `json:"avgHrDisplay"`
}
