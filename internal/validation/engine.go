package validation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/carbonlens/carbonlens/internal/logging"
	"github.com/carbonlens/carbonlens/internal/model"
)

// Data is the emissions data document a validation pass inspects: a nested
// map addressed by dot-path fields (e.g. "facility.energyUse").
type Data map[string]any

// Lookup resolves a dot-path into the document. The second return is false
// when any path segment is absent.
func (d Data) Lookup(path string) (any, bool) {
	var current any = map[string]any(d)
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Number resolves a dot-path to a float64, accepting any numeric JSON/YAML
// representation.
func (d Data) Number(path string) (float64, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return 0, false
	}
	return toNumber(v)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Benchmark is one sector benchmark: the sector average and spread for a
// field, supplied by an external analytics collaborator.
type Benchmark struct {
	SectorAverage     float64 `json:"sectorAverage"`
	StandardDeviation float64 `json:"standardDeviation"`
}

// Context carries everything a pass needs beyond the document itself. All
// of it is fetched once by the caller and passed in: the engine does no I/O.
type Context struct {
	// Organization supplies sector and size context.
	Organization model.OrganizationContext

	// PreviousYear maps field paths to the prior reporting year's value,
	// consumed by ANOMALY rules.
	PreviousYear map[string]float64

	// Benchmarks maps field paths to sector benchmarks, consumed by
	// BENCHMARK rules.
	Benchmarks map[string]Benchmark

	// History maps field paths to historical value series, consumed by the
	// statistical anomaly detector.
	History map[string][]float64
}

// Report is the raw outcome of one validation pass, before quality scoring.
type Report struct {
	// Issues holds every rule violation found, in rule order.
	Issues []Issue `json:"issues"`

	// Evaluated counts rules that produced an assessment (pass or fail).
	Evaluated int `json:"evaluated"`

	// Skipped counts enabled rules that could not be assessed: missing
	// context, absent correlated fields, unevaluable equations.
	Skipped int `json:"skipped"`

	// EvaluatedByKind and FailedByKind break the counts down per rule
	// kind, feeding the per-dimension quality metrics.
	EvaluatedByKind map[Kind]int `json:"evaluatedByKind"`
	FailedByKind    map[Kind]int `json:"failedByKind"`
}

// Errors returns the ERROR-severity issues.
func (r *Report) Errors() []Issue { return r.bySeverity(SeverityError) }

// Warnings returns the WARNING-severity issues.
func (r *Report) Warnings() []Issue { return r.bySeverity(SeverityWarning) }

func (r *Report) bySeverity(severity Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// IsValid reports whether the pass found zero ERROR issues.
func (r *Report) IsValid() bool { return len(r.Errors()) == 0 }

// Engine evaluates rule snapshots against data documents.
type Engine struct {
	store *Store
}

// NewEngine creates an engine over a rule store.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Store exposes the engine's rule store for runtime mutation.
func (e *Engine) Store() *Store { return e.store }

// Validate runs one pass: every enabled rule in the current snapshot is
// evaluated against the document, and every violation is collected. Rule
// failures are data, never errors — the pass always completes. Rules whose
// context is missing (no benchmark, no prior year) are skipped silently;
// unevaluable equations are skipped and logged.
func (e *Engine) Validate(ctx context.Context, data Data, vctx Context) Report {
	snapshot := e.store.Snapshot()

	report := Report{
		EvaluatedByKind: map[Kind]int{},
		FailedByKind:    map[Kind]int{},
	}

	for _, rule := range snapshot.Enabled() {
		outcome := evaluateRule(ctx, rule, data, vctx)
		switch {
		case outcome.skipped:
			report.Skipped++
		case outcome.issue != nil:
			report.Evaluated++
			report.EvaluatedByKind[rule.Kind()]++
			report.FailedByKind[rule.Kind()]++
			report.Issues = append(report.Issues, *outcome.issue)
		default:
			report.Evaluated++
			report.EvaluatedByKind[rule.Kind()]++
		}
	}

	logging.FromContext(ctx).Debug().
		Str("component", "validation").
		Int("evaluated", report.Evaluated).
		Int("skipped", report.Skipped).
		Int("issues", len(report.Issues)).
		Msg("validation pass complete")

	return report
}

// outcome is one rule's evaluation result: skipped, passed, or failed with
// an issue.
type outcome struct {
	skipped bool
	issue   *Issue
}

func pass() outcome            { return outcome{} }
func skip() outcome            { return outcome{skipped: true} }
func fail(issue Issue) outcome { return outcome{issue: &issue} }

// evaluateRule dispatches on the rule's condition payload. The switch is
// exhaustive over rule kinds; a rule with no payload cannot get past
// Rule.Validate.
func evaluateRule(ctx context.Context, rule Rule, data Data, vctx Context) outcome {
	switch rule.Kind() {
	case KindRequired:
		return evalRequired(rule, data)
	case KindRange:
		return evalRange(rule, data)
	case KindPattern:
		return evalPattern(ctx, rule, data)
	case KindConsistency:
		return evalConsistency(ctx, rule, data)
	case KindBenchmark:
		return evalBenchmark(rule, data, vctx)
	case KindAnomaly:
		return evalAnomaly(rule, data, vctx)
	default:
		return skip()
	}
}

func newIssue(rule Rule, message string) Issue {
	if message == "" {
		message = rule.Message
	}
	return Issue{
		RuleID:   rule.ID,
		Field:    rule.Field,
		Severity: rule.Severity,
		Message:  message,
	}
}

func evalRequired(rule Rule, data Data) outcome {
	cond := rule.Required
	value, present := data.Lookup(rule.Field)

	if !present || value == nil {
		if cond.NotNull || cond.NotZero || cond.Positive {
			issue := newIssue(rule, "")
			issue.Suggestion = fmt.Sprintf("Provide a value for %s.", rule.Field)
			return fail(issue)
		}
		return pass()
	}

	if cond.NotZero || cond.Positive {
		n, ok := toNumber(value)
		if !ok {
			return pass()
		}
		if cond.NotZero && n == 0 {
			issue := newIssue(rule, rule.Message+" (value is zero)")
			issue.CurrentValue = n
			issue.Suggestion = fmt.Sprintf("Report a non-zero figure for %s or mark the source inactive.", rule.Field)
			return fail(issue)
		}
		if cond.Positive && n <= 0 {
			issue := newIssue(rule, rule.Message+" (value is not positive)")
			issue.CurrentValue = n
			issue.Suggestion = fmt.Sprintf("Check the sign and unit of %s.", rule.Field)
			return fail(issue)
		}
	}

	return pass()
}

func evalRange(rule Rule, data Data) outcome {
	cond := rule.Range
	value, ok := data.Number(rule.Field)
	if !ok {
		return skip()
	}

	if cond.Min != nil && value < *cond.Min {
		issue := newIssue(rule, fmt.Sprintf("%s (below minimum %v)", rule.Message, *cond.Min))
		issue.CurrentValue = value
		issue.ExpectedValue = fmt.Sprintf(">= %v", *cond.Min)
		issue.Suggestion = fmt.Sprintf("Verify %s: values below %v are implausible.", rule.Field, *cond.Min)
		return fail(issue)
	}
	if cond.Max != nil && value > *cond.Max {
		issue := newIssue(rule, fmt.Sprintf("%s (above maximum %v)", rule.Message, *cond.Max))
		issue.CurrentValue = value
		issue.ExpectedValue = fmt.Sprintf("<= %v", *cond.Max)
		issue.Suggestion = fmt.Sprintf("Verify %s: values above %v are implausible.", rule.Field, *cond.Max)
		return fail(issue)
	}

	return pass()
}

func evalPattern(ctx context.Context, rule Rule, data Data) outcome {
	value, present := data.Lookup(rule.Field)
	if !present || value == nil {
		return skip()
	}
	text, ok := value.(string)
	if !ok {
		text = fmt.Sprintf("%v", value)
	}

	re, err := rule.Pattern.Regexp()
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "validation").
			Str("rule_id", rule.ID).
			Err(err).
			Msg("pattern rule skipped")
		return skip()
	}

	if !re.MatchString(text) {
		issue := newIssue(rule, "")
		issue.CurrentValue = text
		issue.ExpectedValue = rule.Pattern.Pattern
		issue.Suggestion = fmt.Sprintf("Format %s to match %s.", rule.Field, rule.Pattern.Pattern)
		return fail(issue)
	}

	return pass()
}

func evalConsistency(ctx context.Context, rule Rule, data Data) outcome {
	cond := rule.Consistency
	if cond.Equation != "" {
		return evalEquationRule(ctx, rule, data)
	}
	return evalCorrelation(rule, data)
}

func evalEquationRule(ctx context.Context, rule Rule, data Data) outcome {
	cond := rule.Consistency

	actual, ok := data.Number(rule.Field)
	if !ok {
		return skip()
	}

	fields := map[string]float64{}
	for _, name := range equationFields(cond.Equation) {
		value, ok := data.Number(name)
		if !ok {
			// Absent operands mean the equation cannot be assessed.
			return skip()
		}
		fields[name] = value
	}

	expected, err := evalEquation(cond.Equation, fields)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "validation").
			Str("rule_id", rule.ID).
			Err(err).
			Msg("consistency equation skipped")
		return skip()
	}

	tolerance := cond.Tolerance
	if tolerance == 0 {
		tolerance = DefaultEquationTolerance
	}

	if math.Abs(expected-actual) > tolerance {
		issue := newIssue(rule, fmt.Sprintf("%s (expected %.3f, got %.3f)", rule.Message, expected, actual))
		issue.CurrentValue = actual
		issue.ExpectedValue = expected
		issue.Suggestion = fmt.Sprintf("Reconcile %s against its components: %s.", rule.Field, cond.Equation)
		return fail(issue)
	}

	return pass()
}

func evalCorrelation(rule Rule, data Data) outcome {
	cond := rule.Consistency

	actual, ok := data.Number(rule.Field)
	if !ok {
		return skip()
	}
	correlated, ok := data.Number(cond.CorrelateWith)
	if !ok || correlated == 0 {
		return skip()
	}
	if cond.ExpectedFactor == 0 {
		return skip()
	}

	ratio := actual / correlated
	deviation := math.Abs(ratio-cond.ExpectedFactor) / math.Abs(cond.ExpectedFactor)

	if deviation > DefaultCorrelationDeviation {
		issue := newIssue(rule, fmt.Sprintf("%s (ratio %.6g deviates %.0f%% from expected %.6g)",
			rule.Message, ratio, deviation*100, cond.ExpectedFactor))
		issue.CurrentValue = actual
		issue.ExpectedValue = cond.ExpectedFactor * correlated
		issue.Suggestion = fmt.Sprintf("Cross-check %s against %s.", rule.Field, cond.CorrelateWith)
		return fail(issue)
	}

	return pass()
}

func evalBenchmark(rule Rule, data Data, vctx Context) outcome {
	benchmark, ok := vctx.Benchmarks[rule.Field]
	if !ok || benchmark.StandardDeviation <= 0 {
		// No benchmark context is not a validation failure.
		return skip()
	}

	value, ok := data.Number(rule.Field)
	if !ok {
		return skip()
	}

	threshold := rule.Benchmark.DeviationThreshold
	if threshold == 0 {
		threshold = DefaultBenchmarkThreshold
	}

	z := math.Abs(value-benchmark.SectorAverage) / benchmark.StandardDeviation
	if z > threshold {
		issue := newIssue(rule, fmt.Sprintf("%s (%.2fσ from sector average %.1f)",
			rule.Message, z, benchmark.SectorAverage))
		issue.CurrentValue = value
		issue.ExpectedValue = benchmark.SectorAverage
		issue.Suggestion = "Confirm the figure or document why the organization deviates from its sector."
		return fail(issue)
	}

	return pass()
}

func evalAnomaly(rule Rule, data Data, vctx Context) outcome {
	previous, ok := vctx.PreviousYear[rule.Field]
	if !ok || previous == 0 {
		// No historical context is not a validation failure.
		return skip()
	}

	value, ok := data.Number(rule.Field)
	if !ok {
		return skip()
	}

	threshold := rule.Anomaly.ChangeThreshold
	if threshold == 0 {
		threshold = DefaultAnomalyThreshold
	}

	change := math.Abs(value-previous) / math.Abs(previous)
	if change > threshold {
		issue := newIssue(rule, fmt.Sprintf("%s (%.0f%% change, previous year %.1f)",
			rule.Message, change*100, previous))
		issue.CurrentValue = value
		issue.ExpectedValue = previous
		issue.Suggestion = "Explain the year-over-year movement or correct the underlying activity data."
		return fail(issue)
	}

	return pass()
}
