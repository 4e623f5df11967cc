package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRaceName(t *testing.T) {
	require.True(t, IsRaceName("5k Race"))
	require.True(t, IsRaceName("Ballycotton TT"))
	require.True(t, IsRaceName("Club time trial"))
	require.True(t, IsRaceName("Saturday parkrun"))

	// "TT" is case sensitive, "race" must be a whole word
	require.False(t, IsRaceName("watt test"))
	require.False(t, IsRaceName("braces fitting"))
	require.False(t, IsRaceName("Easy run"))
	require.False(t, IsRaceName(""))
}

func TestIsWorkoutName(t *testing.T) {
	require.True(t, IsWorkoutName("6x400"))
	require.True(t, IsWorkoutName("6 X 400 w/ jog"))
	require.True(t, IsWorkoutName("3x(2,2,4)"))
	require.True(t, IsWorkoutName("Hill repeats"))
	require.True(t, IsWorkoutName("Interval session"))

	// Race outranks workout even when the name mentions repeats
	require.False(t, IsWorkoutName("Race 5x1k relay"))
	require.False(t, IsWorkoutName("Long run"))
	require.False(t, IsWorkoutName(""))
}

func TestInferCategory(t *testing.T) {
	require.Equal(t, "race", InferCategory("10k Race"))
	require.Equal(t, "race", InferCategory("parkrun 6x400"))
	require.Equal(t, "tempo", InferCategory("Tempo intervals"))
	require.Equal(t, "tempo", InferCategory("4 miles at T"))
	require.Equal(t, "tempo", InferCategory("4mi@T"))
	require.Equal(t, "hills", InferCategory("Hilly repeats"))
	require.Equal(t, "hills", InferCategory("10 mins H"))
	require.Equal(t, "repetition", InferCategory("6x400"))
	require.Equal(t, "", InferCategory("Morning jog"))
	require.Equal(t, "", InferCategory(""))

	// Word boundary needs a word character before the @
	require.Equal(t, "", InferCategory("4 mi @ T"))
	// "mins H" is case sensitive
	require.Equal(t, "", InferCategory("10 mins h"))
}

func TestParseRaceDistanceM(t *testing.T) {
	require.Equal(t, 21097.5, ParseRaceDistanceM("Half Marathon PB"))
	require.Equal(t, 42195.0, ParseRaceDistanceM("marathon day"))
	require.Equal(t, 21097.5, ParseRaceDistanceM("First half"))
	require.Equal(t, 5000.0, ParseRaceDistanceM("parkrun"))
	require.Equal(t, 3218.688, ParseRaceDistanceM("2 mile TT"))
	require.Equal(t, 1609.344, ParseRaceDistanceM("Mile race"))
	require.Equal(t, 10000.0, ParseRaceDistanceM("10k tune-up"))
	require.Equal(t, 8000.0, ParseRaceDistanceM("8K champs"))
	require.Equal(t, 5000.0, ParseRaceDistanceM("5k TT"))
	require.Equal(t, 3200.0, ParseRaceDistanceM("3200 time trial"))
	require.Equal(t, 800.0, ParseRaceDistanceM("800m race"))
	require.Equal(t, 400.0, ParseRaceDistanceM("400 final"))

	// Metric track distances are case sensitive
	require.Equal(t, 0.0, ParseRaceDistanceM("800M race"))
	require.Equal(t, 0.0, ParseRaceDistanceM("Easy run"))
	require.Equal(t, 0.0, ParseRaceDistanceM(""))
}

func TestClosestRaceDistanceM(t *testing.T) {
	require.Equal(t, 5000.0, ClosestRaceDistanceM(5100))
	require.Equal(t, 1500.0, ClosestRaceDistanceM(1550))
	require.Equal(t, 800.0, ClosestRaceDistanceM(790))
	require.Equal(t, 42195.0, ClosestRaceDistanceM(42000))
	require.Equal(t, 200.0, ClosestRaceDistanceM(100))
}

func TestParseRaceTimeS(t *testing.T) {
	require.Equal(t, 1125.0, ParseRaceTimeS("5k 18:45"))
	require.Equal(t, 11130.0, ParseRaceTimeS("Marathon 3:05:30"))
	require.Equal(t, 312.0, ParseRaceTimeS("Mile 5:12"))

	// M:SS only counts when the seconds field is plausible
	require.Equal(t, 0.0, ParseRaceTimeS("split 17:99"))
	require.Equal(t, 0.0, ParseRaceTimeS("no time here"))
	require.Equal(t, 0.0, ParseRaceTimeS(""))
}
