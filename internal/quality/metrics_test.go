package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carbonlens/carbonlens/internal/validation"
)

func completeDoc() validation.Data {
	return validation.Data{
		"organizationId":  "org-1",
		"reportingPeriod": "2025",
		"scope1Emissions": 600.0,
		"scope2Emissions": 100.0,
		"scope3Emissions": 300.0,
		"totalEmissions":  1000.0,
		"employeeCount":   500,
		"sector":          "manufacturing",
	}
}

func TestComputeMetricsCompleteDocument(t *testing.T) {
	report := validation.Report{
		Evaluated:       8,
		EvaluatedByKind: map[validation.Kind]int{},
		FailedByKind:    map[validation.Kind]int{},
	}

	m := ComputeMetrics(completeDoc(), report, ExternalSignals{})

	assert.InDelta(t, 100.0, m.Completeness, 1e-9)
	assert.InDelta(t, 100.0, m.Accuracy, 1e-9)
	assert.InDelta(t, 100.0, m.Consistency, 1e-9)
	assert.InDelta(t, 100.0, m.Validity, 1e-9)
	assert.InDelta(t, DefaultTimeliness, m.Timeliness, 1e-9)
	assert.InDelta(t, DefaultUniqueness, m.Uniqueness, 1e-9)

	// 0.25·100 + 0.25·100 + 0.20·100 + 0.10·80 + 0.15·100 + 0.05·100 = 98
	assert.InDelta(t, 98.0, m.Overall, 1e-9)
}

func TestComputeMetricsPartialDocument(t *testing.T) {
	doc := completeDoc()
	delete(doc, "scope3Emissions")
	delete(doc, "sector")

	m := ComputeMetrics(doc, validation.Report{}, ExternalSignals{})

	// 6 of 8 core fields filled.
	assert.InDelta(t, 75.0, m.Completeness, 1e-9)
}

func TestComputeMetricsAccuracy(t *testing.T) {
	report := validation.Report{
		Evaluated: 10,
		Issues:    make([]validation.Issue, 3),
	}

	m := ComputeMetrics(completeDoc(), report, ExternalSignals{})

	assert.InDelta(t, 70.0, m.Accuracy, 1e-9)
}

func TestComputeMetricsKindDimensions(t *testing.T) {
	report := validation.Report{
		Evaluated: 5,
		EvaluatedByKind: map[validation.Kind]int{
			validation.KindConsistency: 2,
			validation.KindRange:       1,
		},
		FailedByKind: map[validation.Kind]int{
			validation.KindConsistency: 1,
		},
	}

	m := ComputeMetrics(completeDoc(), report, ExternalSignals{})

	assert.InDelta(t, 50.0, m.Consistency, 1e-9)
	assert.InDelta(t, 100.0, m.Validity, 1e-9)
}

func TestComputeMetricsExternalSignals(t *testing.T) {
	timeliness := 95.0
	uniqueness := 120.0 // clamped to 100

	m := ComputeMetrics(completeDoc(), validation.Report{}, ExternalSignals{
		Timeliness: &timeliness,
		Uniqueness: &uniqueness,
	})

	assert.InDelta(t, 95.0, m.Timeliness, 1e-9)
	assert.InDelta(t, 100.0, m.Uniqueness, 1e-9)
}

func TestScorePenalties(t *testing.T) {
	metrics := Metrics{Overall: 98}

	assert.InDelta(t, 98.0, Score(metrics, 0, 0), 1e-9)
	assert.InDelta(t, 88.0, Score(metrics, 1, 0), 1e-9)
	assert.InDelta(t, 96.0, Score(metrics, 0, 1), 1e-9)
	assert.InDelta(t, 74.0, Score(metrics, 2, 2), 1e-9)
}

func TestScoreFloorsAtZero(t *testing.T) {
	metrics := Metrics{Overall: 50}

	assert.Zero(t, Score(metrics, 6, 0))
	assert.Zero(t, Score(metrics, 100, 100))
}

func TestScoreMonotonic(t *testing.T) {
	metrics := Metrics{Overall: 90}

	prev := Score(metrics, 0, 0)
	for errs := 1; errs <= 12; errs++ {
		cur := Score(metrics, errs, 0)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}
