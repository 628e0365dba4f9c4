package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonlens/carbonlens/internal/model"
)

func TestParseStandard(t *testing.T) {
	tests := []struct {
		input   string
		want    Standard
		wantErr bool
	}{
		{"ghg-protocol", StandardGHGProtocol, false},
		{"GHG", StandardGHGProtocol, false},
		{"iso14064", StandardISO14064, false},
		{"eu-ets", StandardEUETS, false},
		{"tcfd", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStandard(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func fullInventory() Inventory {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return BuildInventory([]model.EmissionRecord{
		record("org-1", model.Scope1, model.SourceStationaryCombustion, model.GasCO2, 100, start),
		record("org-1", model.Scope2, model.SourcePurchasedElectricity, model.GasCO2, 50, start),
		record("org-1", model.Scope3, model.SourceBusinessTravel, model.GasCO2, 25, start),
	}, Filter{})
}

func TestComplianceGapsFullCoverage(t *testing.T) {
	gaps := ComplianceGaps(fullInventory(), StandardGHGProtocol, 1.0)

	require.GreaterOrEqual(t, len(gaps), 5)
	assert.Equal(t, GapStatusCompliant, gaps[0].Status)
	assert.Equal(t, GapStatusCompliant, gaps[1].Status)
	assert.Equal(t, GapStatusCompliant, gaps[2].Status)
}

func TestComplianceGapsMissingScope3(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := BuildInventory([]model.EmissionRecord{
		record("org-1", model.Scope1, model.SourceStationaryCombustion, model.GasCO2, 100, start),
		record("org-1", model.Scope2, model.SourcePurchasedElectricity, model.GasCO2, 50, start),
	}, Filter{})

	gaps := ComplianceGaps(inv, StandardISO14064, 0)

	assert.Equal(t, GapStatusCompliant, gaps[0].Status)
	assert.Equal(t, GapStatusGap, gaps[1].Status)
	assert.Equal(t, GapStatusGap, gaps[2].Status)
	assert.NotEmpty(t, gaps[2].Action)
}

func TestComplianceGapsPartialVerification(t *testing.T) {
	gaps := ComplianceGaps(fullInventory(), StandardEUETS, 0.4)

	assert.Equal(t, GapStatusPartial, gaps[2].Status)
}

func TestComplianceGapsStandardSpecific(t *testing.T) {
	base := len(baseGaps(fullInventory(), 1.0))

	for _, standard := range []Standard{StandardGHGProtocol, StandardISO14064, StandardEUETS} {
		gaps := ComplianceGaps(fullInventory(), standard, 1.0)
		assert.Len(t, gaps, base+2, "standard %s", standard)
	}
}

func TestScopeCoverageStatusPartial(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inv := BuildInventory([]model.EmissionRecord{
		record("org-1", model.Scope1, model.SourceStationaryCombustion, model.GasCO2, 100, start),
	}, Filter{})

	assert.Equal(t, GapStatusPartial, scopeCoverageStatus(inv, "scope1", "scope2"))
}
