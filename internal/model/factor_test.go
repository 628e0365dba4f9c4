package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactorSet() *FactorSet {
	return &FactorSet{Factors: []EmissionFactor{
		{Gas: GasCO2, Source: SourcePurchasedElectricity, Factor: 0.0005, Unit: "kWh"},
		{Gas: GasCO2, Source: SourcePurchasedElectricity, Region: "EU", Factor: 0.0003, Unit: "kWh"},
		{Gas: GasCO2, Source: SourcePurchasedElectricity, Region: "EU", Sector: "manufacturing", Factor: 0.00035, Unit: "kWh"},
		{Gas: GasCO2, Source: SourcePurchasedElectricity, Region: "EU", Year: 2025, Factor: 0.00028, Unit: "kWh"},
		{Gas: GasCH4, Source: SourceWaste, Factor: 0.025, Unit: "t"},
	}}
}

func TestFactorSetFindMostSpecific(t *testing.T) {
	fs := testFactorSet()

	// Region + year beats region alone.
	f, ok := fs.Find(GasCO2, SourcePurchasedElectricity, "EU", "", 2025)
	require.True(t, ok)
	assert.InDelta(t, 0.00028, f.Factor, 1e-12)

	// Region + sector beats region alone.
	f, ok = fs.Find(GasCO2, SourcePurchasedElectricity, "EU", "manufacturing", 0)
	require.True(t, ok)
	assert.InDelta(t, 0.00035, f.Factor, 1e-12)
}

func TestFactorSetFindFallsBackToGeneric(t *testing.T) {
	fs := testFactorSet()

	// No regional factor for US: the dimensionless one applies.
	f, ok := fs.Find(GasCO2, SourcePurchasedElectricity, "US", "", 0)
	require.True(t, ok)
	assert.InDelta(t, 0.0005, f.Factor, 1e-12)
}

func TestFactorSetFindNoMatch(t *testing.T) {
	fs := testFactorSet()

	_, ok := fs.Find(GasN2O, SourceWaste, "", "", 0)
	assert.False(t, ok)

	_, ok = fs.Find(GasCH4, SourceBusinessTravel, "", "", 0)
	assert.False(t, ok)
}

func TestFactorSetFindGasAndSourceAreMandatory(t *testing.T) {
	fs := testFactorSet()

	f, ok := fs.Find(GasCH4, SourceWaste, "anywhere", "any-sector", 1999)
	require.True(t, ok)
	assert.InDelta(t, 0.025, f.Factor, 1e-12)
}
