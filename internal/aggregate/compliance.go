package aggregate

import (
	"fmt"
	"strings"
)

// Standard identifies a reporting standard compliance gaps are assessed
// against.
type Standard string

const (
	// StandardGHGProtocol is the GHG Protocol Corporate Standard.
	StandardGHGProtocol Standard = "ghg-protocol"

	// StandardISO14064 is ISO 14064-1 organizational GHG quantification.
	StandardISO14064 Standard = "iso-14064"

	// StandardEUETS is the EU Emissions Trading System MRV regulation.
	StandardEUETS Standard = "eu-ets"
)

// ParseStandard converts a standard label to its Standard value.
func ParseStandard(s string) (Standard, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ghg-protocol", "ghgprotocol", "ghg":
		return StandardGHGProtocol, nil
	case "iso-14064", "iso14064", "iso":
		return StandardISO14064, nil
	case "eu-ets", "euets", "ets":
		return StandardEUETS, nil
	default:
		return "", fmt.Errorf("unknown reporting standard %q", s)
	}
}

// Gap statuses.
const (
	GapStatusCompliant = "compliant"
	GapStatusPartial   = "partial"
	GapStatusGap       = "gap"
)

// ComplianceGap is one requirement of a reporting standard and how the
// inventory measures against it.
type ComplianceGap struct {
	Requirement string `json:"requirement"`
	Status      string `json:"status"`
	Action      string `json:"recommendedAction,omitempty"`
}

// baseGaps apply to every standard and are derived from the inventory
// itself. Standard-specific requirements are appended on top.
func baseGaps(inv Inventory, verifiedShare float64) []ComplianceGap {
	gaps := []ComplianceGap{
		{
			Requirement: "Scope 1 and 2 emissions quantified",
			Status:      scopeCoverageStatus(inv, "scope1", "scope2"),
			Action:      "Quantify all direct and purchased-energy emission sources.",
		},
		{
			Requirement: "Scope 3 value-chain emissions screened",
			Status:      scopeCoverageStatus(inv, "scope3"),
			Action:      "Screen upstream and downstream categories; scope 3 typically dominates the footprint.",
		},
	}

	verification := ComplianceGap{Requirement: "Independent verification of reported figures"}
	switch {
	case verifiedShare >= 0.9:
		verification.Status = GapStatusCompliant
	case verifiedShare > 0:
		verification.Status = GapStatusPartial
		verification.Action = "Extend third-party verification to all material sources."
	default:
		verification.Status = GapStatusGap
		verification.Action = "Engage an accredited verifier for the reported inventory."
	}

	return append(gaps, verification)
}

func scopeCoverageStatus(inv Inventory, scopes ...string) string {
	covered := 0
	for _, scope := range scopes {
		if share, ok := inv.ByScope[scope]; ok && share.CO2e > 0 {
			covered++
		}
	}
	switch covered {
	case len(scopes):
		return GapStatusCompliant
	case 0:
		return GapStatusGap
	default:
		return GapStatusPartial
	}
}

// standardGaps lists the requirements each standard appends to the base set.
//
//nolint:gochecknoglobals // Constant lookup table
var standardGaps = map[Standard][]ComplianceGap{
	StandardGHGProtocol: {
		{
			Requirement: "Scope 2 dual reporting (location- and market-based)",
			Status:      GapStatusGap,
			Action:      "Report purchased electricity under both the location-based and market-based methods.",
		},
		{
			Requirement: "Organizational boundary documented (equity share or control approach)",
			Status:      GapStatusPartial,
			Action:      "Document the consolidation approach and apply it consistently across facilities.",
		},
	},
	StandardISO14064: {
		{
			Requirement: "GHG inventory management plan maintained",
			Status:      GapStatusGap,
			Action:      "Establish a documented inventory management plan covering data collection and QA.",
		},
		{
			Requirement: "Uncertainty assessment for quantified emissions",
			Status:      GapStatusPartial,
			Action:      "Attach quantitative uncertainty estimates to each emission source.",
		},
	},
	StandardEUETS: {
		{
			Requirement: "Approved monitoring plan for scope 1 installations",
			Status:      GapStatusGap,
			Action:      "Submit a monitoring plan for each covered installation to the competent authority.",
		},
		{
			Requirement: "Annual verified emissions report",
			Status:      GapStatusPartial,
			Action:      "Schedule accredited verification ahead of the annual surrender deadline.",
		},
	},
}

// ComplianceGaps assesses the inventory against a reporting standard:
// the base gap set applies to every standard, with the standard's own
// requirements appended. verifiedShare is the CO2e-weighted share of
// third-party-verified records, in [0,1].
func ComplianceGaps(inv Inventory, standard Standard, verifiedShare float64) []ComplianceGap {
	gaps := baseGaps(inv, verifiedShare)
	gaps = append(gaps, standardGaps[standard]...)
	return gaps
}
