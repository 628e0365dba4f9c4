package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonlens/carbonlens/internal/model"
)

const activityCSV = `id,organizationId,activityType,value,unit,startDate,endDate
act-1,org-1,natural_gas,1200.5,kg,2025-01-01,2025-01-31
act-2,org-1,electricity,250000,kWh,2025-01-01,2025-01-31
`

func TestLoadCSV(t *testing.T) {
	activities, err := LoadCSV(context.Background(), strings.NewReader(activityCSV))

	require.NoError(t, err)
	require.Len(t, activities, 2)

	first := activities[0]
	assert.Equal(t, "act-1", first.ID)
	assert.Equal(t, "org-1", first.OrganizationID)
	assert.Equal(t, "natural_gas", first.ActivityType)
	assert.InDelta(t, 1200.5, first.Value, 1e-9)
	assert.Equal(t, "kg", first.Unit)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.StartDate)
}

func TestLoadCSVBadValue(t *testing.T) {
	const doc = `id,organizationId,activityType,value,unit,startDate,endDate
act-1,org-1,diesel,not-a-number,l,2025-01-01,2025-01-31
`

	_, err := LoadCSV(context.Background(), strings.NewReader(doc))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadCSVBadDate(t *testing.T) {
	const doc = `id,organizationId,activityType,value,unit,startDate,endDate
act-1,org-1,diesel,10,l,01/01/2025,2025-01-31
`

	_, err := LoadCSV(context.Background(), strings.NewReader(doc))

	assert.Error(t, err)
}

func TestLoadCSVShortHeader(t *testing.T) {
	_, err := LoadCSV(context.Background(), strings.NewReader("id,value\n"))

	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	const doc = `[
		{"id": "act-1", "organizationId": "org-1", "activityType": "waste", "value": 12.5, "unit": "t"}
	]`

	activities, err := LoadJSON(context.Background(), strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "waste", activities[0].ActivityType)
	assert.InDelta(t, 12.5, activities[0].Value, 1e-9)
}

func TestLoadFileDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activities.csv")
	require.NoError(t, os.WriteFile(path, []byte(activityCSV), 0o600))

	activities, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, activities, 2)

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "activities.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<xml/>"), 0o600))
	_, err = LoadFile(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported activity file extension")
}

func TestToRecordInputs(t *testing.T) {
	activities := []model.ActivityData{
		{ID: "act-1", OrganizationID: "org-1", ActivityType: "Natural_Gas", Value: 100, Unit: "kg"},
		{ID: "act-2", OrganizationID: "org-1", ActivityType: "rocket_fuel", Value: 5, Unit: "t"},
	}

	inputs, unmapped := ToRecordInputs(context.Background(), activities, DefaultMappings(), nil)

	require.Len(t, inputs, 1)
	assert.Equal(t, "CO2", inputs[0].Gas)
	assert.Equal(t, model.Scope1, inputs[0].Scope)
	assert.Equal(t, []string{"rocket_fuel"}, unmapped)
}

func TestLoadFactorsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- gas: CO2
  source: purchased_electricity
  region: EU
  factor: 0.0004
  unit: kWh
  year: 2025
`), 0o600))

	factors, err := LoadFactors(path)

	require.NoError(t, err)
	require.Len(t, factors.Factors, 1)

	factor, ok := factors.Find(model.GasCO2, model.SourcePurchasedElectricity, "EU", "", 2025)
	require.True(t, ok)
	assert.InDelta(t, 0.0004, factor.Factor, 1e-12)
}

func TestLoadFactorsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"gas": "CH4", "source": "waste", "region": "", "factor": 0.025, "unit": "t", "year": 2024}
	]`), 0o600))

	factors, err := LoadFactors(path)

	require.NoError(t, err)
	require.Len(t, factors.Factors, 1)
	assert.Equal(t, model.GasCH4, factors.Factors[0].Gas)
}
