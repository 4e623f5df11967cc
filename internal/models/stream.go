package models

// StreamPoint represents one per-second sample from a recording.
// Streams are immutable once loaded; enrichment never writes them.
type StreamPoint struct {
	ID         int64    `json:"id" db:"id"`
	ActivityID int64    `json:"activityId" db:"activity_id"`
	TimestampS *float64 `json:"timestampS,omitempty" db:"timestamp_s"`
	Lat        *float64 `json:"lat,omitempty" db:"lat"`
	Lon        *float64 `json:"lon,omitempty" db:"lon"`
	AltitudeFt *float64 `json:"altitudeFt,omitempty" db:"altitude_ft"`
	HeartRate  *float64 `json:"heartRate,omitempty" db:"heart_rate"`
	Cadence    *float64 `json:"cadence,omitempty" db:"cadence"`
	PaceSPerMi *float64 `json:"paceSPerMi,omitempty" db:"pace_s_per_mi"`
	DistanceMi *float64 `json:"distanceMi,omitempty" db:"distance_mi"`
	SourceID   *string  `json:"sourceId,omitempty" db:"source_id"`
}

// SplitBySource groups stream points by source_id. Activities merged
// from several concurrent recordings must be processed per group so GPS
// from different devices is never mixed in one window. Single-source
// activities return one group containing all points.
func SplitBySource(streams []StreamPoint) [][]StreamPoint {
	ids := make(map[string]bool)
	for _, s := range streams {
		if s.SourceID != nil {
			ids[*s.SourceID] = true
		}
	}
	if len(ids) <= 1 {
		return [][]StreamPoint{streams}
	}

	groups := make(map[string][]StreamPoint)
	var order []string
	for _, s := range streams {
		key := ""
		if s.SourceID != nil {
			key = *s.SourceID
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	result := make([][]StreamPoint, 0, len(order))
	for _, key := range order {
		result = append(result, groups[key])
	}
	return result
}
