package models

// Activity represents one real-world run
type Activity struct {
	ID                 int64    `json:"id" db:"id"`
	Date               string   `json:"date" db:"date"` // Format: 2006-01-02
	WorkoutName        *string  `json:"workoutName,omitempty" db:"workout_name"`
	WorkoutCategory    *string  `json:"workoutCategory,omitempty" db:"workout_category"`
	StravaWorkoutType  *int     `json:"stravaWorkoutType,omitempty" db:"strava_workout_type"`
	DistanceMi         *float64 `json:"distanceMi,omitempty" db:"distance_mi"`
	DurationS          *float64 `json:"durationS,omitempty" db:"duration_s"`
	AvgPaceSPerMi      *float64 `json:"avgPaceSPerMi,omitempty" db:"avg_pace_s_per_mi"`
	AvgHR              *float64 `json:"avgHr,omitempty" db:"avg_hr"`
	MaxHR              *float64 `json:"maxHr,omitempty" db:"max_hr"`
	AvgCadence         *float64 `json:"avgCadence,omitempty" db:"avg_cadence"`
	AdjustedDistanceMi *float64 `json:"adjustedDistanceMi,omitempty" db:"adjusted_distance_mi"`
	VDOT               *float64 `json:"vdot,omitempty" db:"vdot"`

	CreatedAt *string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt *string `json:"updatedAt,omitempty" db:"updated_at"`
}

// ActivityFilter represents filter parameters for querying activities
type ActivityFilter struct {
	StartDate string `form:"startDate"` // Format: 2006-01-02
	EndDate   string `form:"endDate"`
	Category  string `form:"category"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// ActivitiesResponse represents a paginated response of activities
type ActivitiesResponse struct {
	Data       []Activity `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}

// ActivityDetail is one activity with its intervals and per-distance
// rep averages
type ActivityDetail struct {
	Activity
	Intervals   []Interval   `json:"intervals"`
	RepSummary  []RepSummary `json:"repSummary"`
	StreamCount int64        `json:"streamCount"`
}

// Strava workout_type values for runs. Type 3 marks a structured workout.
const (
	StravaTypeRace    = 1
	StravaTypeLong    = 2
	StravaTypeWorkout = 3
)
