// Package validation is the rule-based data validation engine: it evaluates
// a configurable set of typed rules against an emissions data document and
// produces structured issues, never exceptions, so a complete report of all
// problems always comes back.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Severity ranks a rule violation.
type Severity string

const (
	// SeverityError marks violations that make the overall result invalid.
	SeverityError Severity = "ERROR"

	// SeverityWarning marks violations that lower the score but do not
	// invalidate the result.
	SeverityWarning Severity = "WARNING"

	// SeverityInfo marks advisory findings.
	SeverityInfo Severity = "INFO"
)

// ParseSeverity converts a severity label, case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return SeverityError, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "INFO", "":
		return SeverityInfo, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

// Kind identifies a rule's check algorithm.
type Kind string

const (
	KindRequired    Kind = "REQUIRED"
	KindRange       Kind = "RANGE"
	KindPattern     Kind = "PATTERN"
	KindConsistency Kind = "CONSISTENCY"
	KindBenchmark   Kind = "BENCHMARK"
	KindAnomaly     Kind = "ANOMALY"
)

// RequiredCondition fails when the target is absent or, depending on flags,
// zero or non-positive.
type RequiredCondition struct {
	// NotNull fails on a missing or null value.
	NotNull bool `yaml:"notNull" json:"notNull"`

	// NotZero fails on a value of exactly zero.
	NotZero bool `yaml:"notZero" json:"notZero"`

	// Positive fails on values <= 0.
	Positive bool `yaml:"positive" json:"positive"`
}

// RangeCondition fails when a numeric value falls outside [Min, Max].
// Either bound may be omitted.
type RangeCondition struct {
	Min *float64 `yaml:"min" json:"min,omitempty"`
	Max *float64 `yaml:"max" json:"max,omitempty"`
}

// PatternCondition fails when a string value does not match the regexp.
type PatternCondition struct {
	Pattern string `yaml:"pattern" json:"pattern"`

	compiled *regexp.Regexp
}

// Regexp returns the compiled pattern, compiling on first use.
func (c *PatternCondition) Regexp() (*regexp.Regexp, error) {
	if c.compiled == nil {
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", c.Pattern, err)
		}
		c.compiled = re
	}
	return c.compiled, nil
}

// DefaultEquationTolerance is the absolute tolerance an equation check
// allows between the evaluated expression and the actual field value.
const DefaultEquationTolerance = 0.01

// DefaultCorrelationDeviation is the maximum relative deviation a
// correlation check allows between the observed ratio and expected factor.
const DefaultCorrelationDeviation = 0.5

// ConsistencyCondition has two sub-modes. Equation mode substitutes named
// fields into an arithmetic expression and compares the result against the
// target field within Tolerance. Correlation mode divides the target by
// CorrelateWith and compares the ratio against ExpectedFactor, allowing 50%
// relative deviation.
type ConsistencyCondition struct {
	// Equation is an arithmetic expression over named numeric fields,
	// restricted to + - * / and parentheses.
	Equation string `yaml:"equation" json:"equation,omitempty"`

	// Tolerance is the allowed absolute difference for equation mode.
	// Zero selects DefaultEquationTolerance.
	Tolerance float64 `yaml:"tolerance" json:"tolerance,omitempty"`

	// CorrelateWith names the field the target is divided by.
	CorrelateWith string `yaml:"correlateWith" json:"correlateWith,omitempty"`

	// ExpectedFactor is the expected target/CorrelateWith ratio.
	ExpectedFactor float64 `yaml:"expectedFactor" json:"expectedFactor,omitempty"`
}

// DefaultBenchmarkThreshold is the z-score above which a benchmark check
// produces an issue.
const DefaultBenchmarkThreshold = 2.0

// BenchmarkCondition fails when the value's z-score against the sector
// average exceeds the deviation threshold.
type BenchmarkCondition struct {
	// DeviationThreshold is the z-score limit in standard deviations.
	// Zero selects DefaultBenchmarkThreshold.
	DeviationThreshold float64 `yaml:"deviationThreshold" json:"deviationThreshold,omitempty"`
}

// DefaultAnomalyThreshold is the year-over-year relative change above which
// an anomaly check produces an issue (0.3 = 30%).
const DefaultAnomalyThreshold = 0.3

// AnomalyCondition fails when the relative change against the previous-year
// value exceeds the change threshold.
type AnomalyCondition struct {
	// ChangeThreshold is the relative change limit. Zero selects
	// DefaultAnomalyThreshold.
	ChangeThreshold float64 `yaml:"changeThreshold" json:"changeThreshold,omitempty"`
}

// Rule is one declarative validation rule. Exactly one condition payload is
// set; the payload determines the rule kind, giving an exhaustive dispatch
// instead of a stringly-typed handler.
type Rule struct {
	// ID is stable across configuration changes and correlates issues.
	ID string `yaml:"id" json:"id"`

	// Field is a dot-path into the emissions data document.
	Field string `yaml:"field" json:"field"`

	// Severity of issues the rule produces.
	Severity Severity `yaml:"severity" json:"severity"`

	// Message shown when the rule fails. A rule-specific annotation
	// (violated bound, expected value) is appended by the handlers.
	Message string `yaml:"message" json:"message"`

	// Category groups rules for reporting (completeness, plausibility...).
	Category string `yaml:"category" json:"category,omitempty"`

	// Enabled rules are evaluated; disabled rules are skipped entirely.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Condition payloads: exactly one must be non-nil.
	Required    *RequiredCondition    `yaml:"required,omitempty" json:"required,omitempty"`
	Range       *RangeCondition       `yaml:"range,omitempty" json:"range,omitempty"`
	Pattern     *PatternCondition     `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Consistency *ConsistencyCondition `yaml:"consistency,omitempty" json:"consistency,omitempty"`
	Benchmark   *BenchmarkCondition   `yaml:"benchmark,omitempty" json:"benchmark,omitempty"`
	Anomaly     *AnomalyCondition     `yaml:"anomaly,omitempty" json:"anomaly,omitempty"`
}

// Kind returns the rule's check algorithm, derived from the set payload.
func (r *Rule) Kind() Kind {
	switch {
	case r.Required != nil:
		return KindRequired
	case r.Range != nil:
		return KindRange
	case r.Pattern != nil:
		return KindPattern
	case r.Consistency != nil:
		return KindConsistency
	case r.Benchmark != nil:
		return KindBenchmark
	case r.Anomaly != nil:
		return KindAnomaly
	default:
		return ""
	}
}

// Validate checks structural soundness: an ID, a field, and exactly one
// condition payload.
func (r *Rule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule missing id")
	}
	if r.Field == "" && (r.Consistency == nil || r.Consistency.Equation == "") {
		return fmt.Errorf("rule %s: missing field", r.ID)
	}

	set := 0
	for _, present := range []bool{
		r.Required != nil, r.Range != nil, r.Pattern != nil,
		r.Consistency != nil, r.Benchmark != nil, r.Anomaly != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("rule %s: exactly one condition must be set, got %d", r.ID, set)
	}

	if r.Pattern != nil {
		if _, err := r.Pattern.Regexp(); err != nil {
			return fmt.Errorf("rule %s: %w", r.ID, err)
		}
	}
	if r.Consistency != nil && r.Consistency.Equation == "" && r.Consistency.CorrelateWith == "" {
		return fmt.Errorf("rule %s: consistency rule needs an equation or correlateWith", r.ID)
	}

	if _, err := ParseSeverity(string(r.Severity)); err != nil {
		return fmt.Errorf("rule %s: %w", r.ID, err)
	}

	return nil
}

// Issue is one rule violation. Violations are data, not errors: the engine
// reports every one it finds in a single pass.
type Issue struct {
	RuleID        string   `json:"ruleId"`
	Field         string   `json:"field"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	CurrentValue  any      `json:"currentValue,omitempty"`
	ExpectedValue any      `json:"expectedValue,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
}
