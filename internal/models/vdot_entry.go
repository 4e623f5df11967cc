package models

// VDOTEntry is one row of the fitness-score history. The score in
// effect for an activity is the entry with the latest effective_date
// on or before the activity date.
type VDOTEntry struct {
	ID            int64   `json:"id" db:"id"`
	EffectiveDate string  `json:"effectiveDate" db:"effective_date"` // Format: 2006-01-02
	VDOT          float64 `json:"vdot" db:"vdot"`
	Source        string  `json:"source" db:"source"` // manual, race, estimate
	ActivityID    *int64  `json:"activityId,omitempty" db:"activity_id"`
	Notes         *string `json:"notes,omitempty" db:"notes"`
	CreatedAt     *string `json:"createdAt,omitempty" db:"created_at"`
}

// ZonePace is one row of the training-zone pace table
type ZonePace struct {
	Zone        string  `json:"zone"`
	PaceSPerMi  float64 `json:"paceSPerMi"`
	PaceDisplay string  `json:"paceDisplay"`
}

// ZonesResponse is the zone pace table in effect on a date
type ZonesResponse struct {
	Date          string     `json:"date"`
	VDOT          float64    `json:"vdot"`
	EffectiveDate string     `json:"effectiveDate"`
	Zones         []ZonePace `json:"zones"`
}

// RacePrediction is a predicted race time at the current fitness
type RacePrediction struct {
	DistanceM      float64 `json:"distanceM"`
	VDOT           float64 `json:"vdot"`
	PredictedTimeS float64 `json:"predictedTimeS"`
	PaceSPerMi     float64 `json:"paceSPerMi"`
	PaceDisplay    string  `json:"paceDisplay"`
}
