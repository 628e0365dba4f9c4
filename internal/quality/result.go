package quality

import (
	"context"

	"github.com/carbonlens/carbonlens/internal/validation"
)

// Result is the aggregate outcome of one validation pass: the verdict, the
// penalized score, the issues split by severity, the quality metrics, and
// improvement suggestions.
type Result struct {
	// IsValid is true iff the pass produced zero ERROR issues.
	IsValid bool `json:"isValid"`

	// Score is the overall metric minus per-issue penalties, in [0,100].
	Score float64 `json:"score"`

	Errors      []validation.Issue `json:"errors"`
	Warnings    []validation.Issue `json:"warnings"`
	Infos       []validation.Issue `json:"infos,omitempty"`
	Suggestions []Suggestion       `json:"suggestions"`
	Metrics     Metrics            `json:"metrics"`
}

// Assess runs a full validation-and-scoring pass: the engine evaluates its
// current rule snapshot against the document, then the report is scored and
// turned into suggestions. All context is passed in; the pass does no I/O.
func Assess(ctx context.Context, engine *validation.Engine, data validation.Data, vctx validation.Context, signals ExternalSignals) Result {
	report := engine.Validate(ctx, data, vctx)
	return FromReport(report, data, signals)
}

// FromReport scores an existing validation report.
func FromReport(report validation.Report, data validation.Data, signals ExternalSignals) Result {
	metrics := ComputeMetrics(data, report, signals)

	errors := report.Errors()
	warnings := report.Warnings()

	var infos []validation.Issue
	for _, issue := range report.Issues {
		if issue.Severity == validation.SeverityInfo {
			infos = append(infos, issue)
		}
	}

	return Result{
		IsValid:     len(errors) == 0,
		Score:       Score(metrics, len(errors), len(warnings)),
		Errors:      errors,
		Warnings:    warnings,
		Infos:       infos,
		Suggestions: Suggest(metrics, report, data),
		Metrics:     metrics,
	}
}
