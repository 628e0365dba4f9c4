// Package gwp holds the versioned Global Warming Potential tables published
// by the IPCC assessment reports (AR4, AR5, AR6) and resolves the GWP for a
// gas, and for multi-compound families, a specific compound.
//
// The tables are 100-year horizon values. They are static by construction:
// lookups never hit I/O and the package exposes no mutation.
package gwp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carbonlens/carbonlens/internal/model"
)

// Assessment identifies an IPCC assessment report vintage.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type Assessment int

const (
	// AR4 is the Fourth Assessment Report (2007).
	AR4 Assessment = iota

	// AR5 is the Fifth Assessment Report (2014).
	AR5

	// AR6 is the Sixth Assessment Report (2021). It has the most complete
	// tables and is the default vintage for new calculations.
	AR6
)

// DefaultAssessment is the vintage used when the caller does not choose one.
const DefaultAssessment = AR6

// DefaultHorizon is the time horizon the shipped tables cover.
const DefaultHorizon = "100"

// String returns the report label ("AR4", "AR5", "AR6").
func (a Assessment) String() string {
	switch a {
	case AR4:
		return "AR4"
	case AR5:
		return "AR5"
	case AR6:
		return "AR6"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// ParseAssessment converts a report label to its Assessment value.
// Matching is case-insensitive. An empty string selects DefaultAssessment.
func ParseAssessment(s string) (Assessment, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DefaultAssessment, nil
	case "AR4":
		return AR4, nil
	case "AR5":
		return AR5, nil
	case "AR6":
		return AR6, nil
	default:
		return 0, fmt.Errorf("unknown assessment %q: must be AR4, AR5, or AR6", s)
	}
}

// MarshalJSON encodes the assessment as its report label.
func (a Assessment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an assessment from its report label.
func (a *Assessment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAssessment(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnknownGWPError reports a gas/assessment combination with no table entry.
// A missing entry must never silently default to 1: a GWP of 1 is a real
// value (CO2), not an absence.
type UnknownGWPError struct {
	Gas        model.Gas
	Compound   string
	Assessment Assessment
}

func (e *UnknownGWPError) Error() string {
	if e.Compound != "" {
		return fmt.Sprintf("no GWP entry for %s compound %q under %s", e.Gas, e.Compound, e.Assessment)
	}
	return fmt.Sprintf("no GWP entry for %s under %s", e.Gas, e.Assessment)
}

// Value is the outcome of a GWP lookup.
type Value struct {
	// GWP is the resolved 100-year global warming potential.
	GWP float64

	// Compound is the compound the value belongs to, for multi-compound
	// families. Empty for single-compound gases.
	Compound string

	// CompoundDefaulted is true when the caller named a family gas without
	// a known compound and the registry fell back to the family default.
	// Conversion provenance must surface this.
	CompoundDefaulted bool
}

// Default compounds used when a family gas is looked up without a compound.
// HFC-134a and CF4 are the most common industrial representatives of their
// families and match the behavior documented for reporting fallbacks.
const (
	DefaultHFCCompound = "HFC-134a"
	DefaultPFCCompound = "CF4"
)

// gasTables maps assessment -> gas -> GWP for single-compound gases.
//
//nolint:gochecknoglobals // Constant lookup table
var gasTables = map[Assessment]map[model.Gas]float64{
	AR4: {
		model.GasCO2: 1,
		model.GasCH4: 25,
		model.GasN2O: 298,
		model.GasSF6: 22800,
		model.GasNF3: 17200,
	},
	AR5: {
		model.GasCO2: 1,
		model.GasCH4: 28,
		model.GasN2O: 265,
		model.GasSF6: 23500,
		model.GasNF3: 16100,
	},
	AR6: {
		model.GasCO2: 1,
		model.GasCH4: 28,
		model.GasN2O: 273,
		model.GasSF6: 24300,
		model.GasNF3: 17400,
	},
}

// compoundTables maps assessment -> family gas -> compound -> GWP.
//
//nolint:gochecknoglobals // Constant lookup table
var compoundTables = map[Assessment]map[model.Gas]map[string]float64{
	AR4: {
		model.GasHFC: {
			"HFC-23":   14800,
			"HFC-32":   675,
			"HFC-125":  3500,
			"HFC-134a": 1430,
			"HFC-143a": 4470,
			"HFC-152a": 124,
		},
		model.GasPFC: {
			"CF4":    7390,
			"C2F6":   12200,
			"C3F8":   8830,
			"c-C4F8": 10300,
		},
	},
	AR5: {
		model.GasHFC: {
			"HFC-23":   12400,
			"HFC-32":   677,
			"HFC-125":  3170,
			"HFC-134a": 1300,
			"HFC-143a": 4800,
			"HFC-152a": 138,
		},
		model.GasPFC: {
			"CF4":    6630,
			"C2F6":   11100,
			"C3F8":   8900,
			"c-C4F8": 9540,
		},
	},
	AR6: {
		model.GasHFC: {
			"HFC-23":   14600,
			"HFC-32":   771,
			"HFC-125":  3740,
			"HFC-134a": 1530,
			"HFC-143a": 5810,
			"HFC-152a": 164,
		},
		model.GasPFC: {
			"CF4":    7380,
			"C2F6":   12400,
			"C3F8":   9290,
			"c-C4F8": 10200,
		},
	},
}

// Lookup resolves the GWP for a gas under an assessment vintage.
//
// For HFC/PFC, compound selects the table entry; an empty or unknown
// compound falls back to the documented family default and the returned
// Value reports CompoundDefaulted so provenance strings can record it.
// A compound passed for a single-compound gas is ignored.
//
// Returns *UnknownGWPError when the assessment has no entry for the gas.
func Lookup(assessment Assessment, gas model.Gas, compound string) (Value, error) {
	if gas.HasCompounds() {
		return lookupCompound(assessment, gas, compound)
	}

	table, ok := gasTables[assessment]
	if !ok {
		return Value{}, &UnknownGWPError{Gas: gas, Assessment: assessment}
	}
	v, ok := table[gas]
	if !ok {
		return Value{}, &UnknownGWPError{Gas: gas, Assessment: assessment}
	}
	return Value{GWP: v}, nil
}

func lookupCompound(assessment Assessment, gas model.Gas, compound string) (Value, error) {
	families, ok := compoundTables[assessment]
	if !ok {
		return Value{}, &UnknownGWPError{Gas: gas, Compound: compound, Assessment: assessment}
	}
	family, ok := families[gas]
	if !ok {
		return Value{}, &UnknownGWPError{Gas: gas, Compound: compound, Assessment: assessment}
	}

	if compound != "" {
		if v, ok := family[compound]; ok {
			return Value{GWP: v, Compound: compound}, nil
		}
	}

	fallback := DefaultHFCCompound
	if gas == model.GasPFC {
		fallback = DefaultPFCCompound
	}
	v, ok := family[fallback]
	if !ok {
		return Value{}, &UnknownGWPError{Gas: gas, Compound: fallback, Assessment: assessment}
	}
	return Value{GWP: v, Compound: fallback, CompoundDefaulted: true}, nil
}

// Compounds returns the compound names known for a family gas under an
// assessment, in unspecified order. Empty for single-compound gases.
func Compounds(assessment Assessment, gas model.Gas) []string {
	family, ok := compoundTables[assessment][gas]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(family))
	for name := range family {
		names = append(names, name)
	}
	return names
}
