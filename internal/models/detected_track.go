package models

// DetectedTrack is a cached running-track location. Rows are inserted
// after a successful geometric fit and never updated or removed, so a
// revisit to the same physical track can skip the shape search.
type DetectedTrack struct {
	ID                   int64    `json:"id" db:"id"`
	Lat                  float64  `json:"lat" db:"lat"`
	Lon                  float64  `json:"lon" db:"lon"`
	OrientationDeg       *float64 `json:"orientationDeg,omitempty" db:"orientation_deg"`
	FitScore             *float64 `json:"fitScore,omitempty" db:"fit_score"`
	DetectedByActivityID *int64   `json:"detectedByActivityId,omitempty" db:"detected_by_activity_id"`
	CreatedAt            *string  `json:"createdAt,omitempty" db:"created_at"`
}
