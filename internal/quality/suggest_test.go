package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonlens/carbonlens/internal/validation"
)

func suggestionCategories(suggestions []Suggestion) []string {
	out := make([]string, len(suggestions))
	for i, s := range suggestions {
		out[i] = s.Category
	}
	return out
}

func TestSuggestNoneWhenHealthy(t *testing.T) {
	metrics := Metrics{Completeness: 100, Accuracy: 100, Consistency: 100}

	suggestions := Suggest(metrics, validation.Report{}, completeDoc())

	assert.Empty(t, suggestions)
}

func TestSuggestLowCompleteness(t *testing.T) {
	metrics := Metrics{Completeness: 62.5, Accuracy: 100, Consistency: 100}

	suggestions := Suggest(metrics, validation.Report{}, completeDoc())

	require.Len(t, suggestions, 1)
	assert.Equal(t, PriorityHigh, suggestions[0].Priority)
	assert.Equal(t, "completeness", suggestions[0].Category)
	assert.Contains(t, suggestions[0].Message, "62%")
}

func TestSuggestLowAccuracyCitesCounts(t *testing.T) {
	metrics := Metrics{Completeness: 100, Accuracy: 70, Consistency: 100}
	report := validation.Report{
		Issues: []validation.Issue{
			{Severity: validation.SeverityError},
			{Severity: validation.SeverityError},
			{Severity: validation.SeverityWarning},
		},
	}

	suggestions := Suggest(metrics, report, completeDoc())

	require.Len(t, suggestions, 1)
	assert.Equal(t, PriorityHigh, suggestions[0].Priority)
	assert.Contains(t, suggestions[0].Message, "2 error(s)")
	assert.Contains(t, suggestions[0].Message, "1 warning(s)")
}

func TestSuggestLowConsistency(t *testing.T) {
	metrics := Metrics{Completeness: 100, Accuracy: 100, Consistency: 50}

	suggestions := Suggest(metrics, validation.Report{}, completeDoc())

	require.Len(t, suggestions, 1)
	assert.Equal(t, PriorityMedium, suggestions[0].Priority)
	assert.Equal(t, "methodology", suggestions[0].Category)
}

func TestSuggestMissingScope3(t *testing.T) {
	metrics := Metrics{Completeness: 100, Accuracy: 100, Consistency: 100}

	doc := completeDoc()
	delete(doc, "scope3Emissions")
	suggestions := Suggest(metrics, validation.Report{}, doc)

	require.Len(t, suggestions, 1)
	assert.Equal(t, PriorityMedium, suggestions[0].Priority)
	assert.Equal(t, "data-improvement", suggestions[0].Category)

	doc["scope3Emissions"] = 0.0
	suggestions = Suggest(metrics, validation.Report{}, doc)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "data-improvement", suggestions[0].Category)
}

func TestSuggestThresholdBoundaries(t *testing.T) {
	// Values exactly at the thresholds do not trigger.
	metrics := Metrics{Completeness: 80, Accuracy: 85, Consistency: 90}

	suggestions := Suggest(metrics, validation.Report{}, completeDoc())

	assert.Empty(t, suggestions)
}

func TestSuggestAllTriggers(t *testing.T) {
	metrics := Metrics{Completeness: 50, Accuracy: 60, Consistency: 70}
	doc := completeDoc()
	doc["scope3Emissions"] = 0.0

	suggestions := Suggest(metrics, validation.Report{}, doc)

	assert.Equal(t,
		[]string{"completeness", "accuracy", "methodology", "data-improvement"},
		suggestionCategories(suggestions))
}
