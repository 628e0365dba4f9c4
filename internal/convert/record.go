package convert

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carbonlens/carbonlens/internal/logging"
	"github.com/carbonlens/carbonlens/internal/model"
)

// RecordInput describes a new emission record before conversion. GWP and
// CO2Equivalent are filled in automatically; callers never precompute them.
type RecordInput struct {
	OrganizationID   string                   `json:"organizationId"`
	FacilityID       string                   `json:"facilityId,omitempty"`
	Gas              string                   `json:"gas"`
	SpecificCompound string                   `json:"specificCompound,omitempty"`
	Scope            model.Scope              `json:"scope"`
	Source           model.SourceCategory     `json:"source"`
	Quantity         float64                  `json:"quantity"`
	Unit             string                   `json:"unit"`
	Method           model.CalculationMethod  `json:"calculationMethod,omitempty"`
	Assessment       string                   `json:"assessment,omitempty"`
	ReportingPeriod  string                   `json:"reportingPeriod"`
	PeriodStart      time.Time                `json:"periodStart"`
	PeriodEnd        time.Time                `json:"periodEnd"`
	Verification     model.VerificationStatus `json:"verificationStatus,omitempty"`
	UncertaintyPct   *float64                 `json:"uncertainty,omitempty"`
	QualityRating    *int                     `json:"dataQualityRating,omitempty"`
}

// NewRecord builds a persistable EmissionRecord from a RecordInput, invoking
// the conversion engine to derive GWP, CO2Equivalent, and the provenance
// trace. The record gets a fresh ULID and creation timestamps.
func NewRecord(ctx context.Context, in RecordInput) (model.EmissionRecord, error) {
	if !in.Scope.Valid() {
		return model.EmissionRecord{}, fmt.Errorf("invalid scope %d: must be 1, 2, or 3", int(in.Scope))
	}

	calc, err := Calculate(ctx, Input{
		Gas:        in.Gas,
		Compound:   in.SpecificCompound,
		Quantity:   in.Quantity,
		Unit:       in.Unit,
		Assessment: in.Assessment,
	})
	if err != nil {
		return model.EmissionRecord{}, err
	}

	method := in.Method
	if method == "" {
		method = model.MethodEmissionFactor
	}
	verification := in.Verification
	if verification == "" {
		verification = model.VerificationNone
	}

	now := time.Now().UTC()
	record := model.EmissionRecord{
		ID:               ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		OrganizationID:   in.OrganizationID,
		FacilityID:       in.FacilityID,
		Gas:              calc.Gas,
		SpecificCompound: calc.SpecificCompound,
		Scope:            in.Scope,
		Source:           in.Source,
		Quantity:         in.Quantity,
		Unit:             in.Unit,
		Method:           method,
		GWP:              calc.GWP,
		CO2Equivalent:    calc.CO2Equivalent,
		CalculationTrace: calc.Trace,
		ReportingPeriod:  in.ReportingPeriod,
		PeriodStart:      in.PeriodStart,
		PeriodEnd:        in.PeriodEnd,
		Verification:     verification,
		UncertaintyPct:   in.UncertaintyPct,
		QualityRating:    in.QualityRating,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	logging.FromContext(ctx).Debug().
		Str("component", "convert").
		Str("record_id", record.ID).
		Str("gas", record.Gas.String()).
		Float64("co2e", record.CO2Equivalent).
		Msg("emission record created")

	return record, nil
}

// Recalculate re-derives GWP, CO2Equivalent, and the trace for an existing
// record, optionally under a different assessment vintage, and stamps a new
// UpdatedAt. This is the only sanctioned mutation of a persisted record.
func Recalculate(ctx context.Context, record model.EmissionRecord, assessment string) (model.EmissionRecord, error) {
	calc, err := Calculate(ctx, Input{
		Gas:        record.Gas.String(),
		Compound:   record.SpecificCompound,
		Quantity:   record.Quantity,
		Unit:       record.Unit,
		Assessment: assessment,
	})
	if err != nil {
		return model.EmissionRecord{}, err
	}

	record.GWP = calc.GWP
	record.CO2Equivalent = calc.CO2Equivalent
	record.CalculationTrace = calc.Trace
	record.SpecificCompound = calc.SpecificCompound
	record.UpdatedAt = time.Now().UTC()

	return record, nil
}

// ActivityMapping resolves an activity type to the gas, scope, and source
// category its emissions are recorded under, plus an optional factor that
// converts the activity value into a gas quantity.
type ActivityMapping struct {
	Gas    string               `yaml:"gas"`
	Scope  model.Scope          `yaml:"scope"`
	Source model.SourceCategory `yaml:"source"`
}

// FromActivity converts raw activity data into a RecordInput using the
// mapping table and, when available, an emission factor from the factor set.
//
// When a factor matches, the activity value is multiplied by it and the
// factor's unit becomes the record unit (value × kgCO2-per-unit style
// factors). Without a factor the activity value and unit are taken as a
// direct gas quantity.
func FromActivity(ctx context.Context, activity model.ActivityData, mapping ActivityMapping, factors *model.FactorSet) (RecordInput, error) {
	gas, err := model.ParseGas(mapping.Gas)
	if err != nil {
		return RecordInput{}, fmt.Errorf("activity %q: %w", activity.ActivityType, err)
	}

	quantity := activity.Value
	unit := activity.Unit
	method := model.MethodMassBalance

	if factors != nil {
		if factor, ok := factors.Find(gas, mapping.Source, "", "", activity.StartDate.Year()); ok {
			quantity = activity.Value * factor.Factor
			unit = factor.Unit
			method = model.MethodEmissionFactor
		}
	}

	return RecordInput{
		OrganizationID:  activity.OrganizationID,
		Gas:             gas.String(),
		Scope:           mapping.Scope,
		Source:          mapping.Source,
		Quantity:        quantity,
		Unit:            unit,
		Method:          method,
		ReportingPeriod: activity.StartDate.UTC().Format("2006"),
		PeriodStart:     activity.StartDate,
		PeriodEnd:       activity.EndDate,
	}, nil
}
