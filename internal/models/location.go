package models

// WorkoutLocation is one activity's GPS centroid, used to cluster common
// workout venues
type WorkoutLocation struct {
	ActivityID  int64   `json:"activityId" db:"activity_id"`
	Date        string  `json:"date" db:"date"`
	WorkoutName *string `json:"workoutName,omitempty" db:"workout_name"`
	Lat         float64 `json:"lat" db:"lat"`
	Lon         float64 `json:"lon" db:"lon"`
}

// LocationCluster groups nearby workout centroids around one venue
type LocationCluster struct {
	CenterLat  float64           `json:"centerLat"`
	CenterLon  float64           `json:"centerLon"`
	Count      int               `json:"count"`
	Activities []WorkoutLocation `json:"activities"`
}
