package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runpace/runpace-backend-go/internal/analysis/zones"
	"github.com/runpace/runpace-backend-go/internal/models"
)

func vdot50() zones.Boundaries {
	return zones.ForVDOT(50.0, 660.0)
}

// streamBuilder emits one record per second with cumulative distance
type streamBuilder struct {
	points []models.StreamPoint
	ts     float64
	dist   float64
}

func (b *streamBuilder) addRun(seconds int, paceSPerMi float64) *streamBuilder {
	for i := 0; i < seconds; i++ {
		if len(b.points) > 0 {
			b.dist += 1.0 / paceSPerMi
		}
		ts, dist, pace := b.ts, b.dist, paceSPerMi
		hr, cad := 150.0, 180.0
		b.points = append(b.points, models.StreamPoint{
			TimestampS: &ts,
			DistanceMi: &dist,
			PaceSPerMi: &pace,
			HeartRate:  &hr,
			Cadence:    &cad,
		})
		b.ts++
	}
	return b
}

func (b *streamBuilder) addNoSignal(seconds int) *streamBuilder {
	for i := 0; i < seconds; i++ {
		ts := b.ts
		b.points = append(b.points, models.StreamPoint{TimestampS: &ts})
		b.ts++
	}
	return b
}

func rawOpts() Options {
	// Zero smoothing keeps per-record paces as-is
	return Options{SmoothingWindowS: 0, MinSegmentDurationS: 10}
}

func TestIsStructured(t *testing.T) {
	workout := models.StravaTypeWorkout
	long := models.StravaTypeLong

	assert.True(t, IsStructured("interval", false, nil, false))
	assert.True(t, IsStructured("Tempo", false, nil, false))
	assert.True(t, IsStructured("easy", true, nil, false))
	assert.True(t, IsStructured("easy", false, &workout, false))
	assert.True(t, IsStructured("easy", false, nil, true))
	assert.False(t, IsStructured("easy", false, &long, false))
	assert.False(t, IsStructured("", false, nil, false))
}

func TestSegmentByPaceBasic(t *testing.T) {
	b := &streamBuilder{}
	b.addRun(60, 500).addRun(20, 300).addRun(60, 500)

	intervals := SegmentByPace(b.points, vdot50(), rawOpts())
	require.Len(t, intervals, 3)

	assert.Equal(t, 1, intervals[0].RepNumber)
	assert.Equal(t, 2, intervals[1].RepNumber)
	assert.Equal(t, 3, intervals[2].RepNumber)

	require.NotNil(t, intervals[0].PaceZone)
	assert.Equal(t, zones.ZoneE, *intervals[0].PaceZone)
	assert.Equal(t, zones.ZoneFR, *intervals[1].PaceZone)
	assert.Equal(t, zones.ZoneE, *intervals[2].PaceZone)

	for _, iv := range intervals {
		require.NotNil(t, iv.Source)
		assert.Equal(t, models.SourcePaceSegment, *iv.Source)
		assert.False(t, iv.IsWalking)
		assert.False(t, iv.IsStride)
	}

	stride := intervals[1]
	require.NotNil(t, stride.DurationS)
	assert.Equal(t, 19.0, *stride.DurationS)
	require.NotNil(t, stride.GPSMeasuredDistanceMi)
	assert.InDelta(t, 0.0633, *stride.GPSMeasuredDistanceMi, 1e-4)
	require.NotNil(t, stride.AvgPaceSPerMi)
	assert.Equal(t, 300.0, *stride.AvgPaceSPerMi)
	require.NotNil(t, stride.AvgPaceDisplay)
	assert.Equal(t, "5:00.0", *stride.AvgPaceDisplay)
	require.NotNil(t, stride.AvgHR)
	assert.Equal(t, 150.0, *stride.AvgHR)

	// A fast middle segment is not recovery
	assert.False(t, stride.IsRecovery)
}

func TestSegmentByPaceRecovery(t *testing.T) {
	b := &streamBuilder{}
	b.addRun(60, 500).addRun(40, 700).addRun(60, 500).addRun(40, 700)

	intervals := SegmentByPace(b.points, vdot50(), rawOpts())
	require.Len(t, intervals, 4)

	assert.Equal(t, zones.ZoneE, *intervals[0].PaceZone)
	assert.Equal(t, zones.ZoneWalk, *intervals[1].PaceZone)
	assert.Equal(t, zones.ZoneE, *intervals[2].PaceZone)
	assert.Equal(t, zones.ZoneWalk, *intervals[3].PaceZone)

	// Interior walk and E segments count as recovery; the edges never do
	assert.False(t, intervals[0].IsRecovery)
	assert.True(t, intervals[1].IsRecovery)
	assert.True(t, intervals[2].IsRecovery)
	assert.False(t, intervals[3].IsRecovery)
}

func TestSegmentByPaceMergesShortSegments(t *testing.T) {
	b := &streamBuilder{}
	b.addRun(60, 500).addRun(5, 400).addRun(60, 500)

	intervals := SegmentByPace(b.points, vdot50(), rawOpts())

	// The 5s tempo blip folds into the previous segment; the two E
	// segments stay distinct
	require.Len(t, intervals, 2)
	assert.Equal(t, zones.ZoneE, *intervals[0].PaceZone)
	assert.Equal(t, zones.ZoneE, *intervals[1].PaceZone)
	assert.Equal(t, 64.0, *intervals[0].DurationS)
	assert.Equal(t, 59.0, *intervals[1].DurationS)
}

func TestSegmentByPaceShortLeadingSegment(t *testing.T) {
	b := &streamBuilder{}
	b.addRun(5, 400).addRun(60, 500)

	intervals := SegmentByPace(b.points, vdot50(), rawOpts())

	// A short opening segment folds forward into its successor
	require.Len(t, intervals, 1)
	assert.Equal(t, zones.ZoneE, *intervals[0].PaceZone)
	assert.Equal(t, 0.0, *intervals[0].StartTimestampS)
	assert.Equal(t, 64.0, *intervals[0].EndTimestampS)
}

func TestSegmentByPaceUnknownZone(t *testing.T) {
	b := &streamBuilder{}
	b.addNoSignal(30)
	b.addRun(60, 500)

	intervals := SegmentByPace(b.points, vdot50(), rawOpts())
	require.Len(t, intervals, 2)

	noSignal := intervals[0]
	assert.Nil(t, noSignal.PaceZone)
	assert.Nil(t, noSignal.GPSMeasuredDistanceMi)
	assert.Nil(t, noSignal.AvgPaceSPerMi)
	require.NotNil(t, noSignal.DurationS)
	assert.Equal(t, 29.0, *noSignal.DurationS)

	assert.Equal(t, zones.ZoneE, *intervals[1].PaceZone)
}

func TestSegmentByPaceSmoothedTransitions(t *testing.T) {
	b := &streamBuilder{}
	b.addRun(120, 500).addRun(300, 400).addRun(120, 500)

	intervals := SegmentByPace(b.points, vdot50(), Options{
		SmoothingWindowS:    30,
		MinSegmentDurationS: 10,
	})
	require.NotEmpty(t, intervals)

	assert.Equal(t, zones.ZoneE, *intervals[0].PaceZone)
	assert.Equal(t, zones.ZoneE, *intervals[len(intervals)-1].PaceZone)

	var sawTempo bool
	for _, iv := range intervals {
		if iv.PaceZone != nil && *iv.PaceZone == zones.ZoneT {
			sawTempo = true
		}
		// Merging leaves no segment under the minimum duration
		require.NotNil(t, iv.DurationS)
		assert.GreaterOrEqual(t, *iv.DurationS, 10.0)
	}
	assert.True(t, sawTempo)

	assert.Equal(t, 0.0, *intervals[0].StartTimestampS)
	assert.Equal(t, 539.0, *intervals[len(intervals)-1].EndTimestampS)
}

func TestSegmentByPaceEmpty(t *testing.T) {
	assert.Empty(t, SegmentByPace(nil, vdot50(), rawOpts()))

	// Records without timestamps are dropped entirely
	points := []models.StreamPoint{{}, {}}
	assert.Empty(t, SegmentByPace(points, vdot50(), rawOpts()))
}
