package quality

import (
	"fmt"

	"github.com/carbonlens/carbonlens/internal/validation"
)

// Priority ranks an improvement suggestion.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Suggestion is one prioritized improvement recommendation.
type Suggestion struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
}

// Suggestion thresholds. Fixed constants: report consumers reproduce the
// exact trigger points.
const (
	completenessThreshold = 80.0
	accuracyThreshold     = 85.0
	consistencyThreshold  = 90.0
)

// Suggest generates improvement suggestions from the metrics and report.
//
// Triggers: completeness < 80 (HIGH), accuracy < 85 (HIGH, citing the
// exact error and warning counts), consistency < 90 (MEDIUM), and a
// missing or zero scope-3 figure (always MEDIUM — scope 3 commonly
// represents the majority of the total footprint).
func Suggest(metrics Metrics, report validation.Report, data validation.Data) []Suggestion {
	var suggestions []Suggestion

	if metrics.Completeness < completenessThreshold {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "completeness",
			Message: fmt.Sprintf(
				"Data completeness is %.0f%%. Fill in the missing core fields before submission.",
				metrics.Completeness),
		})
	}

	if metrics.Accuracy < accuracyThreshold {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "accuracy",
			Message: fmt.Sprintf(
				"Validation found %d error(s) and %d warning(s). Resolve the errors first; they block approval.",
				len(report.Errors()), len(report.Warnings())),
		})
	}

	if metrics.Consistency < consistencyThreshold {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityMedium,
			Category: "methodology",
			Message:  "Cross-field consistency checks failed. Review the calculation methodology and reconcile scope totals.",
		})
	}

	if scope3, ok := data.Number("scope3Emissions"); !ok || scope3 == 0 {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityMedium,
			Category: "data-improvement",
			Message:  "Scope 3 emissions are missing or zero. Scope 3 typically represents the majority of the total footprint; screen value-chain categories.",
		})
	}

	return suggestions
}
