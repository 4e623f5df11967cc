package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestRollingTrailingAverage(t *testing.T) {
	values := []*float64{fptr(100), fptr(200), fptr(300), fptr(400)}

	// window 4 keeps entries with index >= i-2
	out := RollingTrailingAverage(values, 4)
	require.Len(t, out, 4)

	assert.InDelta(t, 100, *out[0], 1e-9)
	assert.InDelta(t, 150, *out[1], 1e-9)
	assert.InDelta(t, 200, *out[2], 1e-9)
	assert.InDelta(t, 300, *out[3], 1e-9)
}

func TestRollingTrailingAverageNils(t *testing.T) {
	values := []*float64{fptr(100), nil, fptr(300)}

	out := RollingTrailingAverage(values, 30)
	require.Len(t, out, 3)

	assert.InDelta(t, 100, *out[0], 1e-9)
	assert.Nil(t, out[1])
	assert.InDelta(t, 200, *out[2], 1e-9)
}

func TestRollingTrailingAverageNonPositivePassThrough(t *testing.T) {
	// A zero pace never joins the window; with no prior valid entries it
	// passes through as-is
	values := []*float64{fptr(0), fptr(100)}

	out := RollingTrailingAverage(values, 30)
	assert.Equal(t, 0.0, *out[0])
	assert.InDelta(t, 100, *out[1], 1e-9)

	// With prior valid entries a non-positive value takes the window average
	values = []*float64{fptr(100), fptr(0)}
	out = RollingTrailingAverage(values, 30)
	assert.InDelta(t, 100, *out[1], 1e-9)
}

func TestRollingTrailingAverageEmpty(t *testing.T) {
	assert.Empty(t, RollingTrailingAverage(nil, 30))
}
