package validation

import (
	"math"
	"sort"
)

// Statistical anomaly detection constants. Independent of the rule table:
// this detector works from raw historical series supplied by the caller.
const (
	// minHistoryPoints is the minimum sample size for a meaningful z-score.
	minHistoryPoints = 3

	// anomalyZThreshold is the z-score above which a value is anomalous.
	anomalyZThreshold = 2.5

	// confidenceZScale divides the z-score to produce a [0,1] confidence.
	confidenceZScale = 3.0

	// expectedRangeStdDevs is the half-width of the expected range in
	// standard deviations.
	expectedRangeStdDevs = 2.0

	// maxSimilarValues caps the historical context values returned.
	maxSimilarValues = 5
)

// AnomalyDetection is the outcome of a statistical anomaly check.
type AnomalyDetection struct {
	// Field is the field path the value belongs to.
	Field string `json:"field"`

	// Value is the new value under inspection.
	Value float64 `json:"value"`

	// IsAnomaly is true when the z-score exceeds 2.5σ.
	IsAnomaly bool `json:"isAnomaly"`

	// ZScore is |value - mean| / stddev over the historical sample.
	ZScore float64 `json:"zScore"`

	// Confidence grows with the z-score, capped at 1.0.
	Confidence float64 `json:"confidence"`

	// ExpectedLow and ExpectedHigh bound the expected range, mean ± 2σ.
	ExpectedLow  float64 `json:"expectedLow"`
	ExpectedHigh float64 `json:"expectedHigh"`

	// SimilarValues are up to 5 historical values closest to the new one,
	// for reviewer context.
	SimilarValues []float64 `json:"similarValues,omitempty"`
}

// DetectAnomaly flags a new value as anomalous against its historical
// series. Needs at least 3 historical points; with fewer, or with zero
// spread, it reports no anomaly.
func DetectAnomaly(field string, value float64, history []float64) AnomalyDetection {
	detection := AnomalyDetection{Field: field, Value: value}

	if len(history) < minHistoryPoints {
		return detection
	}

	mean, stddev := sampleStats(history)
	detection.ExpectedLow = mean - expectedRangeStdDevs*stddev
	detection.ExpectedHigh = mean + expectedRangeStdDevs*stddev
	detection.SimilarValues = closestValues(value, history, maxSimilarValues)

	if stddev == 0 {
		detection.IsAnomaly = value != mean
		if detection.IsAnomaly {
			detection.Confidence = 1.0
		}
		return detection
	}

	detection.ZScore = math.Abs(value-mean) / stddev
	detection.IsAnomaly = detection.ZScore > anomalyZThreshold
	if detection.IsAnomaly {
		detection.Confidence = math.Min(detection.ZScore/confidenceZScale, 1.0)
	}

	return detection
}

// sampleStats returns the sample mean and sample standard deviation
// (Bessel-corrected) of values.
func sampleStats(values []float64) (mean, stddev float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}

	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	stddev = math.Sqrt(sumSquares / float64(len(values)-1))

	return mean, stddev
}

// closestValues returns up to n historical values ordered by proximity to
// the target.
func closestValues(target float64, history []float64, n int) []float64 {
	sorted := make([]float64, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return math.Abs(sorted[i]-target) < math.Abs(sorted[j]-target)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
