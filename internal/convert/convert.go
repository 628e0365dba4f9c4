// Package convert is the emission conversion engine: it turns a raw gas
// quantity into a CO2-equivalent value under a chosen IPCC assessment
// vintage, with reproducible calculation provenance.
package convert

import (
	"context"
	"fmt"
	"strconv"

	"github.com/carbonlens/carbonlens/internal/gwp"
	"github.com/carbonlens/carbonlens/internal/model"
	"github.com/carbonlens/carbonlens/internal/units"
)

// CO2eUnit is the unit every CO2-equivalent value is expressed in.
const CO2eUnit = "tonnes CO2e"

// Input describes one conversion request.
type Input struct {
	// Gas is the gas family label (CO2, CH4, N2O, HFC, PFC, SF6, NF3).
	Gas string `json:"gas"`

	// Compound is the specific compound for HFC/PFC families, e.g. "HFC-134a".
	Compound string `json:"specificCompound,omitempty"`

	// Quantity is the raw measured or derived quantity.
	Quantity float64 `json:"quantity"`

	// Unit is the mass unit of Quantity (kg, g, t, lb).
	Unit string `json:"unit"`

	// Assessment selects the GWP table vintage. Empty selects AR6.
	Assessment string `json:"assessment,omitempty"`

	// Horizon is the GWP time horizon in years. Empty selects "100".
	Horizon string `json:"horizon,omitempty"`
}

// Calculation is a completed conversion with full provenance.
type Calculation struct {
	OriginalQuantity  float64        `json:"originalQuantity"`
	OriginalUnit      string         `json:"originalUnit"`
	Gas               model.Gas      `json:"gas"`
	SpecificCompound  string         `json:"specificCompound,omitempty"`
	GWP               float64        `json:"gwp"`
	CO2Equivalent     float64        `json:"co2Equivalent"`
	CO2EquivalentUnit string         `json:"co2EquivalentUnit"`
	Assessment        gwp.Assessment `json:"assessment"`
	Horizon           string         `json:"horizon"`

	// Trace is the byte-reproducible provenance string, e.g.
	// "50 kg × GWP(28) = 1.400 tonnes CO2e". Audit exports rely on it
	// being identical for identical inputs.
	Trace string `json:"calculationTrace"`

	// UnitRecognized is false when the unit normalizer applied its
	// tonnes pass-through fallback for an unknown unit.
	UnitRecognized bool `json:"unitRecognized"`

	// CompoundDefaulted is true when the GWP registry fell back to the
	// family default compound.
	CompoundDefaulted bool `json:"compoundDefaulted,omitempty"`
}

// Calculate resolves the GWP, normalizes the quantity to tonnes, and
// multiplies, producing a Calculation with its provenance trace.
//
// Returns *model.UnsupportedGasError for gases outside the seven recognized
// families and propagates *gwp.UnknownGWPError from the registry.
func Calculate(ctx context.Context, in Input) (Calculation, error) {
	gas, err := model.ParseGas(in.Gas)
	if err != nil {
		return Calculation{}, err
	}

	assessment, err := gwp.ParseAssessment(in.Assessment)
	if err != nil {
		return Calculation{}, err
	}

	horizon := in.Horizon
	if horizon == "" {
		horizon = gwp.DefaultHorizon
	}

	value, err := gwp.Lookup(assessment, gas, in.Compound)
	if err != nil {
		return Calculation{}, err
	}
	if value.GWP <= 0 {
		// A zero GWP is a table defect, never a usable multiplier.
		return Calculation{}, &gwp.UnknownGWPError{Gas: gas, Compound: value.Compound, Assessment: assessment}
	}

	norm, err := units.ToTonnes(ctx, in.Quantity, in.Unit)
	if err != nil {
		return Calculation{}, fmt.Errorf("normalizing %v %s: %w", in.Quantity, in.Unit, err)
	}

	co2e := norm.Tonnes * value.GWP

	calc := Calculation{
		OriginalQuantity:  in.Quantity,
		OriginalUnit:      in.Unit,
		Gas:               gas,
		SpecificCompound:  value.Compound,
		GWP:               value.GWP,
		CO2Equivalent:     co2e,
		CO2EquivalentUnit: CO2eUnit,
		Assessment:        assessment,
		Horizon:           horizon,
		UnitRecognized:    norm.Recognized,
		CompoundDefaulted: value.CompoundDefaulted,
	}
	calc.Trace = buildTrace(calc)

	return calc, nil
}

// buildTrace renders the provenance string. The format is a contract:
// identical inputs must produce byte-identical traces.
func buildTrace(c Calculation) string {
	trace := fmt.Sprintf("%s %s × GWP(%s) = %.3f %s",
		formatQuantity(c.OriginalQuantity),
		c.OriginalUnit,
		formatQuantity(c.GWP),
		c.CO2Equivalent,
		CO2eUnit,
	)
	if c.CompoundDefaulted {
		trace += fmt.Sprintf(" [default compound %s]", c.SpecificCompound)
	}
	return trace
}

// formatQuantity renders a float with the shortest exact representation, so
// "50" stays "50" and "0.5" stays "0.5".
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
