package validation

// floatPtr is a convenience for range bounds in the default rule table.
func floatPtr(v float64) *float64 { return &v }

// DefaultRules returns the built-in rule set used when no rules file is
// configured. IDs are stable: issue correlation and enable/disable
// operations depend on them.
func DefaultRules() *RuleSet {
	set, err := NewRuleSet([]Rule{
		{
			ID:       "scope1-required",
			Field:    "scope1Emissions",
			Severity: SeverityError,
			Message:  "Scope 1 emissions must be reported",
			Category: "completeness",
			Enabled:  true,
			Required: &RequiredCondition{NotNull: true},
		},
		{
			ID:       "scope2-required",
			Field:    "scope2Emissions",
			Severity: SeverityError,
			Message:  "Scope 2 emissions must be reported",
			Category: "completeness",
			Enabled:  true,
			Required: &RequiredCondition{NotNull: true},
		},
		{
			ID:       "total-positive",
			Field:    "totalEmissions",
			Severity: SeverityError,
			Message:  "Total emissions must be a positive figure",
			Category: "plausibility",
			Enabled:  true,
			Required: &RequiredCondition{NotNull: true, Positive: true},
		},
		{
			ID:       "employee-count-range",
			Field:    "employeeCount",
			Severity: SeverityWarning,
			Message:  "Employee count outside plausible range",
			Category: "plausibility",
			Enabled:  true,
			Range:    &RangeCondition{Min: floatPtr(1), Max: floatPtr(1000000)},
		},
		{
			ID:       "reporting-period-format",
			Field:    "reportingPeriod",
			Severity: SeverityWarning,
			Message:  "Reporting period must be a year or year-quarter (2024 or 2024-Q1)",
			Category: "validity",
			Enabled:  true,
			Pattern:  &PatternCondition{Pattern: `^\d{4}(-Q[1-4])?$`},
		},
		{
			ID:       "scope-total-consistency",
			Field:    "totalEmissions",
			Severity: SeverityError,
			Message:  "Total emissions must equal the sum of scope 1, 2, and 3",
			Category: "consistency",
			Enabled:  true,
			Consistency: &ConsistencyCondition{
				Equation: "scope1Emissions + scope2Emissions + scope3Emissions",
			},
		},
		{
			ID:       "electricity-scope2-correlation",
			Field:    "scope2Emissions",
			Severity: SeverityWarning,
			Message:  "Scope 2 emissions out of line with reported electricity consumption",
			Category: "consistency",
			Enabled:  true,
			Consistency: &ConsistencyCondition{
				CorrelateWith:  "electricityConsumption",
				ExpectedFactor: 0.0004, // tonnes CO2e per kWh, grid average
			},
		},
		{
			ID:        "sector-benchmark",
			Field:     "totalEmissions",
			Severity:  SeverityWarning,
			Message:   "Total emissions deviate sharply from the sector benchmark",
			Category:  "plausibility",
			Enabled:   true,
			Benchmark: &BenchmarkCondition{},
		},
		{
			ID:       "year-over-year-change",
			Field:    "totalEmissions",
			Severity: SeverityWarning,
			Message:  "Total emissions changed sharply against the previous year",
			Category: "anomaly",
			Enabled:  true,
			Anomaly:  &AnomalyCondition{},
		},
	})
	if err != nil {
		// The built-in table is validated by tests; a broken entry is a
		// programming error.
		panic(err)
	}
	return set
}
