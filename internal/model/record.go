// Package model defines the shared domain types of the emission calculation
// and validation core: gases, emission records, activity data, emission
// factors, and organization context.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Scope is a GHG Protocol emission scope.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type Scope int

const (
	// Scope1 covers direct emissions from owned or controlled sources.
	Scope1 Scope = 1

	// Scope2 covers indirect emissions from purchased energy.
	Scope2 Scope = 2

	// Scope3 covers all other indirect value-chain emissions.
	Scope3 Scope = 3
)

// String returns the scope label ("scope1", "scope2", "scope3").
func (s Scope) String() string {
	switch s {
	case Scope1, Scope2, Scope3:
		return fmt.Sprintf("scope%d", int(s))
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Valid reports whether s is one of the three defined scopes.
func (s Scope) Valid() bool {
	return s >= Scope1 && s <= Scope3
}

// SourceCategory classifies the origin of an emission.
type SourceCategory string

// Source categories. Scope 1 sources come first, then scope 2, then scope 3.
const (
	SourceStationaryCombustion SourceCategory = "stationary_combustion"
	SourceMobileCombustion     SourceCategory = "mobile_combustion"
	SourceFugitive             SourceCategory = "fugitive"
	SourcePurchasedElectricity SourceCategory = "purchased_electricity"
	SourcePurchasedHeat        SourceCategory = "purchased_heat"
	SourcePurchasedCooling     SourceCategory = "purchased_cooling"
	SourceUpstreamActivity     SourceCategory = "upstream_activity"
	SourceDownstreamActivity   SourceCategory = "downstream_activity"
	SourceWaste                SourceCategory = "waste"
	SourceBusinessTravel       SourceCategory = "business_travel"
	SourceEmployeeCommuting    SourceCategory = "employee_commuting"
)

// CalculationMethod identifies how an emission quantity was derived.
type CalculationMethod string

// Calculation methods, ordered roughly by data quality.
const (
	MethodEmissionFactor       CalculationMethod = "emission_factor"
	MethodMassBalance          CalculationMethod = "mass_balance"
	MethodContinuousMonitoring CalculationMethod = "continuous_monitoring"
	MethodPredictiveModel      CalculationMethod = "predictive_model"
)

// VerificationStatus tracks independent assurance of a record.
type VerificationStatus string

const (
	// VerificationNone means the record has not been verified.
	VerificationNone VerificationStatus = "unverified"

	// VerificationSelf means the reporting organization verified it internally.
	VerificationSelf VerificationStatus = "self_verified"

	// VerificationThirdParty means an accredited external body verified it.
	VerificationThirdParty VerificationStatus = "third_party_verified"
)

// EmissionRecord is one measured or calculated quantity of a gas from one
// source, with its resolved CO2-equivalent and full calculation provenance.
//
// Records are immutable once persisted; the only sanctioned mutation is an
// explicit recalculation that re-derives CO2Equivalent and stamps UpdatedAt.
type EmissionRecord struct {
	ID               string             `json:"id"`
	OrganizationID   string             `json:"organizationId"`
	FacilityID       string             `json:"facilityId,omitempty"`
	Gas              Gas                `json:"gas"`
	SpecificCompound string             `json:"specificCompound,omitempty"`
	Scope            Scope              `json:"scope"`
	Source           SourceCategory     `json:"source"`
	Quantity         float64            `json:"quantity"`
	Unit             string             `json:"unit"`
	Method           CalculationMethod  `json:"calculationMethod"`
	GWP              float64            `json:"gwp"`
	CO2Equivalent    float64            `json:"co2Equivalent"`
	CalculationTrace string             `json:"calculationTrace,omitempty"`
	ReportingPeriod  string             `json:"reportingPeriod"`
	PeriodStart      time.Time          `json:"periodStart"`
	PeriodEnd        time.Time          `json:"periodEnd"`
	Verification     VerificationStatus `json:"verificationStatus"`
	UncertaintyPct   *float64           `json:"uncertainty,omitempty"`
	QualityRating    *int               `json:"dataQualityRating,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// ActivityData is a raw activity quantity from an upstream integration
// (cloud usage, meter readings, fuel purchases). It is the input side of the
// conversion pipeline.
type ActivityData struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	ActivityType   string    `json:"activityType"`
	Value          float64   `json:"value"`
	Unit           string    `json:"unit"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}

// OrganizationContext carries the sector and size signals that benchmark
// rules compare against. Supplied by the caller, never fetched by the core.
type OrganizationContext struct {
	OrganizationID string  `json:"organizationId"`
	Sector         string  `json:"sector"`
	EmployeeCount  int     `json:"employeeCount"`
	Revenue        float64 `json:"revenue"`
	Location       string  `json:"location"`
}

// MarshalJSON encodes the scope as its numeric value.
func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

// UnmarshalJSON accepts either a number (1) or a label ("scope1").
func (s *Scope) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Scope(n)
		if !s.Valid() {
			return fmt.Errorf("invalid scope %d", n)
		}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "scope1", "1":
		*s = Scope1
	case "scope2", "2":
		*s = Scope2
	case "scope3", "3":
		*s = Scope3
	default:
		return fmt.Errorf("invalid scope %q", str)
	}
	return nil
}
