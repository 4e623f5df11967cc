package service

import (
	"math"
	"sort"

	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/config"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/spatial"
	"github.com/runpace/runpace-backend-go/internal/stats"
)

const defaultCourseRadiusM = 500.0

// FindMatchingCourses returns every measured course whose radius covers
// the given point. Courses without a radius use the 500m default.
func FindMatchingCourses(courses []config.MeasuredCourse, lat, lon float64) []config.MeasuredCourse {
	var matches []config.MeasuredCourse
	for _, course := range courses {
		radius := course.RadiusM
		if radius <= 0 {
			radius = defaultCourseRadiusM
		}
		if spatial.HaversineDistance(lat, lon, course.Lat, course.Lon) <= radius {
			matches = append(matches, course)
		}
	}
	return matches
}

// BestCourseForInterval picks the course whose snap distance is closest to
// the interval's GPS distance, within tolerancePct. Returns nil when no
// course is close enough.
func BestCourseForInterval(gpsDistanceMi float64, courses []config.MeasuredCourse, tolerancePct float64) *config.MeasuredCourse {
	if gpsDistanceMi == 0 || len(courses) == 0 {
		return nil
	}

	gpsM := gpsDistanceMi * zones.MetersPerMile
	var best *config.MeasuredCourse
	bestPct := tolerancePct

	for i := range courses {
		snapM := courses[i].SnapDistanceM
		if snapM == 0 {
			continue
		}
		pct := math.Abs(gpsM-snapM) / snapM * 100
		if pct <= bestPct {
			bestPct = pct
			best = &courses[i]
		}
	}

	return best
}

// ClusterWorkoutLocations groups workout centroids into venues with simple
// greedy clustering. Each unassigned point seeds a cluster and absorbs
// every other unassigned point within radiusM. Clusters come back largest
// first, members in date order.
func ClusterWorkoutLocations(points []models.WorkoutLocation, radiusM float64) []models.LocationCluster {
	if len(points) == 0 {
		return nil
	}

	var clusters []models.LocationCluster
	assigned := make(map[int64]bool, len(points))

	for _, p := range points {
		if assigned[p.ActivityID] {
			continue
		}

		members := []models.WorkoutLocation{p}
		assigned[p.ActivityID] = true

		for _, q := range points {
			if assigned[q.ActivityID] {
				continue
			}
			if spatial.HaversineDistance(p.Lat, p.Lon, q.Lat, q.Lon) <= radiusM {
				members = append(members, q)
				assigned[q.ActivityID] = true
			}
		}

		var sumLat, sumLon float64
		for _, m := range members {
			sumLat += m.Lat
			sumLon += m.Lon
		}
		sort.SliceStable(members, func(i, j int) bool { return members[i].Date < members[j].Date })

		clusters = append(clusters, models.LocationCluster{
			CenterLat:  stats.RoundTo(sumLat/float64(len(members)), 4),
			CenterLon:  stats.RoundTo(sumLon/float64(len(members)), 4),
			Count:      len(members),
			Activities: members,
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool { return clusters[i].Count > clusters[j].Count })
	return clusters
}
