package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectAnomalyFlagsOutlier(t *testing.T) {
	history := []float64{100, 102, 98, 101, 99}

	detection := DetectAnomaly("totalEmissions", 130, history)

	assert.True(t, detection.IsAnomaly)
	// mean 100, sample stddev sqrt(2.5).
	assert.InDelta(t, 18.97, detection.ZScore, 0.01)
	assert.InDelta(t, 1.0, detection.Confidence, 1e-9)
	assert.InDelta(t, 100-2*1.5811, detection.ExpectedLow, 0.01)
	assert.InDelta(t, 100+2*1.5811, detection.ExpectedHigh, 0.01)
	assert.Len(t, detection.SimilarValues, 5)
	assert.InDelta(t, 102, detection.SimilarValues[0], 1e-9)
}

func TestDetectAnomalyNormalValue(t *testing.T) {
	detection := DetectAnomaly("totalEmissions", 101, []float64{100, 102, 98, 101, 99})

	assert.False(t, detection.IsAnomaly)
	assert.Less(t, detection.ZScore, 2.5)
	assert.Zero(t, detection.Confidence)
}

func TestDetectAnomalyInsufficientHistory(t *testing.T) {
	detection := DetectAnomaly("totalEmissions", 500, []float64{100, 101})

	assert.False(t, detection.IsAnomaly)
	assert.Zero(t, detection.ZScore)
	assert.Empty(t, detection.SimilarValues)
}

func TestDetectAnomalyZeroSpread(t *testing.T) {
	history := []float64{50, 50, 50}

	same := DetectAnomaly("x", 50, history)
	assert.False(t, same.IsAnomaly)

	different := DetectAnomaly("x", 51, history)
	assert.True(t, different.IsAnomaly)
	assert.InDelta(t, 1.0, different.Confidence, 1e-9)
}

func TestDetectAnomalyConfidenceScaling(t *testing.T) {
	history := []float64{100, 102, 98, 101, 99}

	// z just above the 2.5 threshold should give confidence z/3, not 1.
	mean, stddev := sampleStats(history)
	value := mean + 2.7*stddev
	detection := DetectAnomaly("x", value, history)

	require.True(t, detection.IsAnomaly)
	assert.InDelta(t, 2.7/3.0, detection.Confidence, 1e-6)
}

func TestSampleStats(t *testing.T) {
	mean, stddev := sampleStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.138, stddev, 0.001)
}

func TestClosestValues(t *testing.T) {
	got := closestValues(10, []float64{1, 9, 20, 50, 10.5}, 3)

	assert.Equal(t, []float64{10.5, 9, 1}, got)
}
