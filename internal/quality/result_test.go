package quality

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonlens/carbonlens/internal/validation"
)

func TestAssessCleanDocument(t *testing.T) {
	engine := validation.NewEngine(validation.NewStore(validation.DefaultRules()))

	doc := completeDoc()
	doc["electricityConsumption"] = 250000.0

	result := Assess(context.Background(), engine, doc, validation.Context{}, ExternalSignals{})

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.InDelta(t, 98.0, result.Score, 1e-9)
	assert.Empty(t, result.Suggestions)
}

func TestAssessInvalidDocument(t *testing.T) {
	engine := validation.NewEngine(validation.NewStore(validation.DefaultRules()))

	doc := completeDoc()
	doc["electricityConsumption"] = 250000.0
	doc["totalEmissions"] = 900.0 // breaks the scope sum

	result := Assess(context.Background(), engine, doc, validation.Context{}, ExternalSignals{})

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "scope-total-consistency", result.Errors[0].RuleID)

	// One failed consistency rule out of two drops the dimension to 50,
	// pulling the methodology suggestion in.
	assert.InDelta(t, 50.0, result.Metrics.Consistency, 1e-9)
	assert.Less(t, result.Score, 90.0)
	assert.NotEmpty(t, result.Suggestions)
}

func TestFromReportSeveritySplit(t *testing.T) {
	report := validation.Report{
		Evaluated: 4,
		Issues: []validation.Issue{
			{RuleID: "e1", Severity: validation.SeverityError},
			{RuleID: "w1", Severity: validation.SeverityWarning},
			{RuleID: "i1", Severity: validation.SeverityInfo},
		},
	}

	result := FromReport(report, completeDoc(), ExternalSignals{})

	assert.Len(t, result.Errors, 1)
	assert.Len(t, result.Warnings, 1)
	assert.Len(t, result.Infos, 1)
	assert.False(t, result.IsValid)
}
