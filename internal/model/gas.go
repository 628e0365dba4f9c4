package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Gas identifies one of the seven Kyoto Protocol greenhouse gas families.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type Gas int

const (
	// GasCO2 is carbon dioxide, the reference gas (GWP 1 by definition).
	GasCO2 Gas = iota

	// GasCH4 is methane.
	GasCH4

	// GasN2O is nitrous oxide.
	GasN2O

	// GasHFC is the hydrofluorocarbon family. Records carrying this gas
	// should also carry a specific compound (e.g. "HFC-134a").
	GasHFC

	// GasPFC is the perfluorocarbon family. Like HFC, compound-specific.
	GasPFC

	// GasSF6 is sulfur hexafluoride.
	GasSF6

	// GasNF3 is nitrogen trifluoride.
	GasNF3
)

// Gases lists every recognized gas family in declaration order.
//
//nolint:gochecknoglobals // Constant lookup table
var Gases = []Gas{GasCO2, GasCH4, GasN2O, GasHFC, GasPFC, GasSF6, GasNF3}

// String returns the canonical chemical label for the gas.
func (g Gas) String() string {
	switch g {
	case GasCO2:
		return "CO2"
	case GasCH4:
		return "CH4"
	case GasN2O:
		return "N2O"
	case GasHFC:
		return "HFC"
	case GasPFC:
		return "PFC"
	case GasSF6:
		return "SF6"
	case GasNF3:
		return "NF3"
	default:
		return fmt.Sprintf("unknown(%d)", int(g))
	}
}

// ParseGas converts a gas label to its Gas value. Matching is
// case-insensitive. Returns an UnsupportedGasError for anything outside the
// seven recognized families.
func ParseGas(s string) (Gas, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CO2":
		return GasCO2, nil
	case "CH4":
		return GasCH4, nil
	case "N2O":
		return GasN2O, nil
	case "HFC", "HFCS":
		return GasHFC, nil
	case "PFC", "PFCS":
		return GasPFC, nil
	case "SF6":
		return GasSF6, nil
	case "NF3":
		return GasNF3, nil
	default:
		return 0, &UnsupportedGasError{Gas: s}
	}
}

// HasCompounds reports whether the gas is a multi-compound family whose GWP
// depends on the specific compound.
func (g Gas) HasCompounds() bool {
	return g == GasHFC || g == GasPFC
}

// MarshalJSON encodes the gas as its string label.
func (g Gas) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a gas from its string label.
func (g *Gas) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseGas(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalYAML encodes the gas as its string label.
func (g Gas) MarshalYAML() (any, error) {
	return g.String(), nil
}

// UnmarshalYAML decodes a gas from its string label.
func (g *Gas) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseGas(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// UnsupportedGasError reports a gas label outside the seven recognized
// families. It aborts the single conversion it occurs in, never a batch.
type UnsupportedGasError struct {
	Gas string
}

func (e *UnsupportedGasError) Error() string {
	return fmt.Sprintf("unsupported gas %q: must be one of CO2, CH4, N2O, HFC, PFC, SF6, NF3", e.Gas)
}
