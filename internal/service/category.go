package service

import (
	"math"
	"regexp"
)

// Workout names carry a lot of signal: "10k Race", "6x400", "4 miles at T".
// These pattern tables turn a free-form name into a category, a race
// distance, or a finish time. Patterns without (?i) are case sensitive on
// purpose ("TT" is a time trial, "tt" is not).

var raceNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brace\b`),
	regexp.MustCompile(`\bTT\b`),
	regexp.MustCompile(`(?i)\btime\s*trial\b`),
	regexp.MustCompile(`(?i)\bparkrun\b`),
}

var workoutNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\s*x\s*[\d(]`), // "6x400", "3x(2,2,4)"
	regexp.MustCompile(`(?i)\brepeat`),
	regexp.MustCompile(`(?i)\binterval`),
}

var tempoNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bat\s*T\b`),
	regexp.MustCompile(`(?i)\b\d+\s*miles?\s*at\s*T\b`),
	regexp.MustCompile(`(?i)\btempo\b`),
	regexp.MustCompile(`(?i)\b@\s*t\b`),
}

var hillsNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bhill`),
	regexp.MustCompile(`\bmins?\s*H\b`),
}

// raceDistancePatterns map name fragments to distances in meters. Ordered
// so longer phrases win ("half marathon" before "marathon" before "half").
var raceDistancePatterns = []struct {
	pattern   *regexp.Regexp
	distanceM float64
}{
	{regexp.MustCompile(`(?i)\bhalf\s*marathon\b`), 21097.5},
	{regexp.MustCompile(`(?i)\bmarathon\b`), 42195},
	{regexp.MustCompile(`(?i)\bhalf\b`), 21097.5},
	{regexp.MustCompile(`(?i)\bparkrun\b`), 5000},
	{regexp.MustCompile(`(?i)\b2\s*mile\b`), 3218.688},
	{regexp.MustCompile(`(?i)\bmile\b`), 1609.344},
	{regexp.MustCompile(`(?i)\b10k\b`), 10000},
	{regexp.MustCompile(`(?i)\b8k\b`), 8000},
	{regexp.MustCompile(`(?i)\b5k\b`), 5000},
	{regexp.MustCompile(`\b3200\b`), 3200},
	{regexp.MustCompile(`\b3000\b`), 3000},
	{regexp.MustCompile(`\b1500\b`), 1500},
	{regexp.MustCompile(`\b800m?\b`), 800},
	{regexp.MustCompile(`\b400m?\b`), 400},
	{regexp.MustCompile(`\b200m?\b`), 200},
}

// commonRaceDistancesM lists the distances an unlabeled race interval can
// be rounded to.
var commonRaceDistancesM = []float64{
	200, 400, 800, 1500, 1609.344, 3000, 3200, 3218.688,
	5000, 8000, 10000, 15000, 21097.5, 42195,
}

var (
	raceTimeHMS = regexp.MustCompile(`\b(\d{1,2}):(\d{2}):(\d{2})\b`)
	raceTimeMS  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

func matchAny(patterns []*regexp.Regexp, name string) bool {
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// IsRaceName reports whether an activity name implies a race or time trial.
func IsRaceName(name string) bool {
	if name == "" {
		return false
	}
	return matchAny(raceNamePatterns, name)
}

// IsWorkoutName reports whether an activity name implies structured repeats.
// Race names never count as workouts, even when they also mention repeats.
func IsWorkoutName(name string) bool {
	if name == "" {
		return false
	}
	if IsRaceName(name) {
		return false
	}
	return matchAny(workoutNamePatterns, name)
}

// InferCategory derives a workout category from the activity name, or ""
// when the name gives no signal. Race outranks tempo outranks hills
// outranks repetition.
func InferCategory(name string) string {
	if name == "" {
		return ""
	}
	if IsRaceName(name) {
		return "race"
	}
	if matchAny(tempoNamePatterns, name) {
		return "tempo"
	}
	if matchAny(hillsNamePatterns, name) {
		return "hills"
	}
	if IsWorkoutName(name) {
		return "repetition"
	}
	return ""
}

// ParseRaceDistanceM extracts a race distance in meters from the activity
// name, or 0 when none is named.
func ParseRaceDistanceM(name string) float64 {
	if name == "" {
		return 0
	}
	for _, rd := range raceDistancePatterns {
		if rd.pattern.MatchString(name) {
			return rd.distanceM
		}
	}
	return 0
}

// ClosestRaceDistanceM returns the common race distance closest to distM.
func ClosestRaceDistanceM(distM float64) float64 {
	best := commonRaceDistancesM[0]
	bestDiff := math.Abs(best - distM)
	for _, d := range commonRaceDistancesM[1:] {
		if diff := math.Abs(d - distM); diff < bestDiff {
			bestDiff = diff
			best = d
		}
	}
	return best
}

// ParseRaceTimeS extracts a finish time in seconds from the activity name,
// matching "1:05:30" or "18:45" style fragments. Returns 0 when the name
// carries no time.
func ParseRaceTimeS(name string) float64 {
	if name == "" {
		return 0
	}
	if m := raceTimeHMS.FindStringSubmatch(name); m != nil {
		return float64(atoi(m[1])*3600 + atoi(m[2])*60 + atoi(m[3]))
	}
	if m := raceTimeMS.FindStringSubmatch(name); m != nil {
		if s := atoi(m[2]); s < 60 {
			return float64(atoi(m[1])*60 + s)
		}
	}
	return 0
}

// atoi converts a digits-only capture group. The patterns guarantee the
// input parses.
func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
