package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 5.5, Mean([]float64{5.5}))
}

func TestVariance(t *testing.T) {
	assert.Equal(t, 0.0, Variance([]float64{42}))
	// Sample variance of 2,4,4,4,5,5,7,9 is 32/7
	assert.InDelta(t, 32.0/7.0, Variance([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestStdDev(t *testing.T) {
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-9)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, Median(nil))
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))

	// Input slice is not reordered
	values := []float64{9, 1, 5}
	Median(values)
	assert.Equal(t, []float64{9, 1, 5}, values)
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum(nil))
	assert.Equal(t, 6.5, Sum([]float64{1, 2, 3.5}))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.14, RoundTo(3.14159, 2))
	assert.Equal(t, 3.1416, RoundTo(3.14159, 4))
	assert.Equal(t, 120.0, RoundTo(120.04, 1))
	assert.Equal(t, -2.5, RoundTo(-2.46, 1))
}
