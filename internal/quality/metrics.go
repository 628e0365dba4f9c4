// Package quality converts validation outcomes and completeness statistics
// into a weighted 0-100 data-quality score with prioritized improvement
// suggestions.
package quality

import (
	"github.com/carbonlens/carbonlens/internal/validation"
)

// Metric weights. They sum to 1.0 and are a reproducibility contract for
// scoring: any change must be documented as a scoring-contract change.
const (
	WeightCompleteness = 0.25
	WeightAccuracy     = 0.25
	WeightConsistency  = 0.20
	WeightTimeliness   = 0.10
	WeightValidity     = 0.15
	WeightUniqueness   = 0.05
)

// Score penalties per issue.
const (
	ErrorPenalty   = 10.0
	WarningPenalty = 2.0
)

// Default values for the externally supplied dimensions when no
// submission-timing or dedup signal is available.
const (
	DefaultTimeliness = 80.0
	DefaultUniqueness = 100.0
)

// coreFields are the document fields completeness is always measured over,
// independently of which fields the submission happens to carry.
//
//nolint:gochecknoglobals // Constant lookup table
var coreFields = []string{
	"organizationId",
	"reportingPeriod",
	"scope1Emissions",
	"scope2Emissions",
	"scope3Emissions",
	"totalEmissions",
	"employeeCount",
	"sector",
}

// Metrics is the six-dimension data-quality breakdown, each in [0,100].
type Metrics struct {
	Completeness float64 `json:"completeness"`
	Accuracy     float64 `json:"accuracy"`
	Consistency  float64 `json:"consistency"`
	Timeliness   float64 `json:"timeliness"`
	Validity     float64 `json:"validity"`
	Uniqueness   float64 `json:"uniqueness"`
	Overall      float64 `json:"overall"`
}

// ExternalSignals carries the dimensions the core cannot compute itself:
// submission timing and record dedup, owned by collaborator services.
// Nil pointers select the documented defaults.
type ExternalSignals struct {
	Timeliness *float64
	Uniqueness *float64
}

// ComputeMetrics derives the quality metrics from the data document and a
// validation report.
//
//   - completeness: filled core fields / total core fields
//   - accuracy: share of evaluated rules that passed
//   - consistency: share of consistency rules that passed (100 when none)
//   - validity: share of range rules that passed (100 when none)
//   - timeliness, uniqueness: external signals or defaults
//
// Overall is the fixed weighted sum of the six.
func ComputeMetrics(data validation.Data, report validation.Report, signals ExternalSignals) Metrics {
	m := Metrics{
		Completeness: completeness(data),
		Accuracy:     passRatio(report.Evaluated, len(report.Issues)),
		Consistency:  kindPassRatio(report, validation.KindConsistency),
		Validity:     kindPassRatio(report, validation.KindRange),
		Timeliness:   DefaultTimeliness,
		Uniqueness:   DefaultUniqueness,
	}

	if signals.Timeliness != nil {
		m.Timeliness = clampScore(*signals.Timeliness)
	}
	if signals.Uniqueness != nil {
		m.Uniqueness = clampScore(*signals.Uniqueness)
	}

	m.Overall = WeightCompleteness*m.Completeness +
		WeightAccuracy*m.Accuracy +
		WeightConsistency*m.Consistency +
		WeightTimeliness*m.Timeliness +
		WeightValidity*m.Validity +
		WeightUniqueness*m.Uniqueness

	return m
}

func completeness(data validation.Data) float64 {
	filled := 0
	for _, field := range coreFields {
		if v, ok := data.Lookup(field); ok && v != nil && v != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(coreFields)) * 100
}

func passRatio(evaluated, failed int) float64 {
	if evaluated == 0 {
		return 100
	}
	ratio := float64(evaluated-failed) / float64(evaluated) * 100
	return clampScore(ratio)
}

func kindPassRatio(report validation.Report, kind validation.Kind) float64 {
	evaluated := report.EvaluatedByKind[kind]
	if evaluated == 0 {
		return 100
	}
	return passRatio(evaluated, report.FailedByKind[kind])
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Score applies the per-issue penalties to the overall metric:
// overall − 10 per error − 2 per warning, floored at zero. Monotonically
// non-increasing in both counts.
func Score(metrics Metrics, errorCount, warningCount int) float64 {
	score := metrics.Overall - ErrorPenalty*float64(errorCount) - WarningPenalty*float64(warningCount)
	if score < 0 {
		return 0
	}
	return score
}
