// Package aggregate rolls individual emission records up into inventories:
// totals by gas, scope, and source, percentage shares, calendar-aligned
// trend series, and per-standard compliance gap assessments.
package aggregate

import (
	"sort"
	"time"

	"github.com/carbonlens/carbonlens/internal/model"
)

// Share is one slice of a breakdown: an absolute total and its share of the
// inventory total.
type Share struct {
	// CO2e is the summed CO2-equivalent in tonnes.
	CO2e float64 `json:"co2e"`

	// Percent is the share of the inventory total, 0-100.
	Percent float64 `json:"percent"`
}

// Inventory is an organization/period-scoped rollup. It is derived data:
// always recomputable from the underlying records, never persisted truth.
type Inventory struct {
	OrganizationID string `json:"organizationId,omitempty"`
	Period         string `json:"period,omitempty"`

	// TotalCO2e is the inventory total in tonnes CO2e.
	TotalCO2e float64 `json:"totalCo2e"`

	// RecordCount is the number of records the rollup covers.
	RecordCount int `json:"recordCount"`

	ByGas    map[string]Share `json:"byGas"`
	ByScope  map[string]Share `json:"byScope"`
	BySource map[string]Share `json:"bySource"`
}

// Filter narrows the record set an inventory is built from. Zero-valued
// fields match everything.
type Filter struct {
	OrganizationID string
	FacilityID     string
	Period         string
	Scope          model.Scope
	From           time.Time
	To             time.Time
}

func (f Filter) matches(r model.EmissionRecord) bool {
	if f.OrganizationID != "" && r.OrganizationID != f.OrganizationID {
		return false
	}
	if f.FacilityID != "" && r.FacilityID != f.FacilityID {
		return false
	}
	if f.Period != "" && r.ReportingPeriod != f.Period {
		return false
	}
	if f.Scope.Valid() && r.Scope != f.Scope {
		return false
	}
	if !f.From.IsZero() && r.PeriodEnd.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.PeriodStart.After(f.To) {
		return false
	}
	return true
}

// BuildInventory reduces the filtered records into an Inventory. The
// reduction is sequential: every record's individual result must be in
// before shares can be computed.
func BuildInventory(records []model.EmissionRecord, filter Filter) Inventory {
	inv := Inventory{
		OrganizationID: filter.OrganizationID,
		Period:         filter.Period,
		ByGas:          map[string]Share{},
		ByScope:        map[string]Share{},
		BySource:       map[string]Share{},
	}

	for _, r := range records {
		if !filter.matches(r) {
			continue
		}
		inv.RecordCount++
		inv.TotalCO2e += r.CO2Equivalent
		addShare(inv.ByGas, r.Gas.String(), r.CO2Equivalent)
		addShare(inv.ByScope, r.Scope.String(), r.CO2Equivalent)
		addShare(inv.BySource, string(r.Source), r.CO2Equivalent)
	}

	fillPercents(inv.ByGas, inv.TotalCO2e)
	fillPercents(inv.ByScope, inv.TotalCO2e)
	fillPercents(inv.BySource, inv.TotalCO2e)

	return inv
}

func addShare(m map[string]Share, key string, co2e float64) {
	s := m[key]
	s.CO2e += co2e
	m[key] = s
}

func fillPercents(m map[string]Share, total float64) {
	if total <= 0 {
		return
	}
	for key, s := range m {
		s.Percent = s.CO2e / total * 100
		m[key] = s
	}
}

// TopSources returns source categories ordered by descending CO2e,
// limited to n entries (n <= 0 means all).
func (inv Inventory) TopSources(n int) []string {
	keys := make([]string, 0, len(inv.BySource))
	for key := range inv.BySource {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := inv.BySource[keys[i]], inv.BySource[keys[j]]
		if a.CO2e != b.CO2e {
			return a.CO2e > b.CO2e
		}
		return keys[i] < keys[j]
	})
	if n > 0 && n < len(keys) {
		keys = keys[:n]
	}
	return keys
}
