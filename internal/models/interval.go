package models

// Interval provenance sources
const (
	SourceFitLap      = "fit_lap"
	SourceStravaLap   = "strava_lap"
	SourceXlsxSplit   = "xlsx_split"
	SourcePaceSegment = "pace_segment"
	SourceManual      = "manual"
)

// Interval location types assigned by enrichment
const (
	LocationTrack          = "track"
	LocationMeasuredCourse = "measured_course"
)

// Interval represents one lap/effort within an activity.
// GPSMeasuredDistanceMi is what the device recorded; CanonicalDistanceMi
// is the snapped distance (track grid, measured course, or race distance)
// and overrides it when present.
type Interval struct {
	ID                    int64    `json:"id" db:"id"`
	ActivityID            int64    `json:"activityId" db:"activity_id"`
	RepNumber             int      `json:"repNumber" db:"rep_number"`
	GPSMeasuredDistanceMi *float64 `json:"gpsMeasuredDistanceMi,omitempty" db:"gps_measured_distance_mi"`
	CanonicalDistanceMi   *float64 `json:"canonicalDistanceMi,omitempty" db:"canonical_distance_mi"`
	DurationS             *float64 `json:"durationS,omitempty" db:"duration_s"`
	AvgPaceSPerMi         *float64 `json:"avgPaceSPerMi,omitempty" db:"avg_pace_s_per_mi"`
	AvgPaceDisplay        *string  `json:"avgPaceDisplay,omitempty" db:"avg_pace_display"`
	AvgHR                 *float64 `json:"avgHr,omitempty" db:"avg_hr"`
	AvgCadence            *float64 `json:"avgCadence,omitempty" db:"avg_cadence"`
	IsRecovery            bool     `json:"isRecovery" db:"is_recovery"`
	IsWalking             bool     `json:"isWalking" db:"is_walking"`
	IsStride              bool     `json:"isStride" db:"is_stride"`
	IsRace                bool     `json:"isRace" db:"is_race"`
	PaceZone              *string  `json:"paceZone,omitempty" db:"pace_zone"`
	LocationType          *string  `json:"locationType,omitempty" db:"location_type"`
	SetNumber             *int     `json:"setNumber,omitempty" db:"set_number"`
	Source                *string  `json:"source,omitempty" db:"source"`
	StartTimestampS       *float64 `json:"startTimestampS,omitempty" db:"start_timestamp_s"`
	EndTimestampS         *float64 `json:"endTimestampS,omitempty" db:"end_timestamp_s"`
}

// IsRealLap reports whether the interval is a real recorded lap rather
// than a synthetic pace segment. Legacy rows with no source count as real.
func (iv *Interval) IsRealLap() bool {
	if iv.Source == nil {
		return true
	}
	switch *iv.Source {
	case SourceFitLap, SourceStravaLap, SourceXlsxSplit:
		return true
	}
	return false
}

// IsSynthetic reports whether the interval was derived by the pace segmenter.
func (iv *Interval) IsSynthetic() bool {
	return iv.Source != nil && *iv.Source == SourcePaceSegment
}
