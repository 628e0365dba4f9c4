package convert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonlens/carbonlens/internal/model"
)

func testRecordInput() RecordInput {
	return RecordInput{
		OrganizationID:  "org-1",
		Gas:             "CH4",
		Scope:           model.Scope1,
		Source:          model.SourceFugitive,
		Quantity:        50,
		Unit:            "kg",
		ReportingPeriod: "2025",
		PeriodStart:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewRecordDerivesConversion(t *testing.T) {
	record, err := NewRecord(context.Background(), testRecordInput())
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 28.0, record.GWP)
	assert.InDelta(t, 1.4, record.CO2Equivalent, 1e-9)
	assert.Equal(t, "50 kg × GWP(28) = 1.400 tonnes CO2e", record.CalculationTrace)
	assert.Equal(t, model.MethodEmissionFactor, record.Method)
	assert.Equal(t, model.VerificationNone, record.Verification)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)
}

func TestNewRecordUniqueIDs(t *testing.T) {
	first, err := NewRecord(context.Background(), testRecordInput())
	require.NoError(t, err)
	second, err := NewRecord(context.Background(), testRecordInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestNewRecordInvalidScope(t *testing.T) {
	in := testRecordInput()
	in.Scope = model.Scope(7)

	_, err := NewRecord(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scope")
}

func TestRecalculateUnderNewAssessment(t *testing.T) {
	record, err := NewRecord(context.Background(), testRecordInput())
	require.NoError(t, err)

	recalculated, err := Recalculate(context.Background(), record, "AR4")
	require.NoError(t, err)

	assert.Equal(t, 25.0, recalculated.GWP)
	assert.InDelta(t, 1.25, recalculated.CO2Equivalent, 1e-9)
	assert.Equal(t, record.ID, recalculated.ID)
	assert.False(t, recalculated.UpdatedAt.Before(record.UpdatedAt))
}

func TestFromActivityWithFactor(t *testing.T) {
	activity := model.ActivityData{
		ID:             "act-1",
		OrganizationID: "org-1",
		ActivityType:   "electricity",
		Value:          10000, // kWh
		Unit:           "kWh",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	mapping := ActivityMapping{Gas: "CO2", Scope: model.Scope2, Source: model.SourcePurchasedElectricity}
	factors := &model.FactorSet{Factors: []model.EmissionFactor{
		{Gas: model.GasCO2, Source: model.SourcePurchasedElectricity, Factor: 0.4, Unit: "kg", Year: 2025},
	}}

	in, err := FromActivity(context.Background(), activity, mapping, factors)
	require.NoError(t, err)

	assert.Equal(t, 4000.0, in.Quantity)
	assert.Equal(t, "kg", in.Unit)
	assert.Equal(t, model.MethodEmissionFactor, in.Method)
	assert.Equal(t, "2025", in.ReportingPeriod)
}

func TestFromActivityWithoutFactor(t *testing.T) {
	activity := model.ActivityData{
		OrganizationID: "org-1",
		ActivityType:   "refrigerant",
		Value:          2,
		Unit:           "kg",
		StartDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	mapping := ActivityMapping{Gas: "HFC", Scope: model.Scope1, Source: model.SourceFugitive}

	in, err := FromActivity(context.Background(), activity, mapping, nil)
	require.NoError(t, err)

	assert.Equal(t, 2.0, in.Quantity)
	assert.Equal(t, "kg", in.Unit)
	assert.Equal(t, model.MethodMassBalance, in.Method)
}
