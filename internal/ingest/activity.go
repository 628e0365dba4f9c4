// Package ingest loads raw activity data batches from JSON and CSV files
// and maps them onto the conversion pipeline's record inputs.
package ingest

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carbonlens/carbonlens/internal/convert"
	"github.com/carbonlens/carbonlens/internal/logging"
	"github.com/carbonlens/carbonlens/internal/model"
)

// csv column layout for activity files.
const (
	colID = iota
	colOrganizationID
	colActivityType
	colValue
	colUnit
	colStartDate
	colEndDate
	columnCount
)

// dateLayout is the accepted date format in CSV files.
const dateLayout = "2006-01-02"

// DefaultMappings resolves common activity types to gas, scope, and source.
// Config-file mappings are merged over these.
func DefaultMappings() map[string]convert.ActivityMapping {
	return map[string]convert.ActivityMapping{
		"natural_gas": {Gas: "CO2", Scope: model.Scope1, Source: model.SourceStationaryCombustion},
		"diesel":      {Gas: "CO2", Scope: model.Scope1, Source: model.SourceMobileCombustion},
		"petrol":      {Gas: "CO2", Scope: model.Scope1, Source: model.SourceMobileCombustion},
		"refrigerant": {Gas: "HFC", Scope: model.Scope1, Source: model.SourceFugitive},
		"electricity": {Gas: "CO2", Scope: model.Scope2, Source: model.SourcePurchasedElectricity},
		"heat":        {Gas: "CO2", Scope: model.Scope2, Source: model.SourcePurchasedHeat},
		"travel":      {Gas: "CO2", Scope: model.Scope3, Source: model.SourceBusinessTravel},
		"commuting":   {Gas: "CO2", Scope: model.Scope3, Source: model.SourceEmployeeCommuting},
		"waste":       {Gas: "CH4", Scope: model.Scope3, Source: model.SourceWaste},
	}
}

// LoadFile reads activity data from a .json or .csv file, dispatching on
// the extension.
func LoadFile(ctx context.Context, path string) ([]model.ActivityData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening activity file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(ctx, f)
	case ".csv":
		return LoadCSV(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported activity file extension %q (want .json or .csv)", filepath.Ext(path))
	}
}

// LoadJSON decodes a JSON array of activity records.
func LoadJSON(ctx context.Context, r io.Reader) ([]model.ActivityData, error) {
	var activities []model.ActivityData
	if err := json.NewDecoder(r).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activity JSON: %w", err)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "ingest").
		Int("count", len(activities)).
		Msg("activity JSON loaded")

	return activities, nil
}

// LoadCSV decodes activity records from CSV with a header row of
// id,organizationId,activityType,value,unit,startDate,endDate.
func LoadCSV(ctx context.Context, r io.Reader) ([]model.ActivityData, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) < columnCount {
		return nil, fmt.Errorf("CSV header has %d columns, want %d", len(header), columnCount)
	}

	var activities []model.ActivityData
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line+1, err)
		}
		line++

		activity, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		activities = append(activities, activity)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "ingest").
		Int("count", len(activities)).
		Msg("activity CSV loaded")

	return activities, nil
}

func parseRow(row []string) (model.ActivityData, error) {
	if len(row) < columnCount {
		return model.ActivityData{}, fmt.Errorf("row has %d columns, want %d", len(row), columnCount)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(row[colValue]), 64)
	if err != nil {
		return model.ActivityData{}, fmt.Errorf("invalid value %q: %w", row[colValue], err)
	}

	start, err := time.Parse(dateLayout, strings.TrimSpace(row[colStartDate]))
	if err != nil {
		return model.ActivityData{}, fmt.Errorf("invalid start date %q: %w", row[colStartDate], err)
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(row[colEndDate]))
	if err != nil {
		return model.ActivityData{}, fmt.Errorf("invalid end date %q: %w", row[colEndDate], err)
	}

	return model.ActivityData{
		ID:             strings.TrimSpace(row[colID]),
		OrganizationID: strings.TrimSpace(row[colOrganizationID]),
		ActivityType:   strings.TrimSpace(row[colActivityType]),
		Value:          value,
		Unit:           strings.TrimSpace(row[colUnit]),
		StartDate:      start,
		EndDate:        end,
	}, nil
}

// ToRecordInputs maps loaded activities onto conversion inputs using the
// mapping table. Activities with no mapping are reported in the second
// return, not dropped silently.
func ToRecordInputs(ctx context.Context, activities []model.ActivityData, mappings map[string]convert.ActivityMapping, factors *model.FactorSet) ([]convert.RecordInput, []string) {
	inputs := make([]convert.RecordInput, 0, len(activities))
	var unmapped []string

	for _, activity := range activities {
		mapping, ok := mappings[strings.ToLower(activity.ActivityType)]
		if !ok {
			unmapped = append(unmapped, activity.ActivityType)
			logging.FromContext(ctx).Warn().
				Str("component", "ingest").
				Str("activity_type", activity.ActivityType).
				Msg("no mapping for activity type, skipping")
			continue
		}

		input, err := convert.FromActivity(ctx, activity, mapping, factors)
		if err != nil {
			unmapped = append(unmapped, activity.ActivityType)
			continue
		}
		inputs = append(inputs, input)
	}

	return inputs, unmapped
}

// LoadFactors reads an emission factor table from a YAML or JSON file.
func LoadFactors(path string) (*model.FactorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factors file: %w", err)
	}

	var factors []model.EmissionFactor
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		err = json.Unmarshal(data, &factors)
	} else {
		err = yaml.Unmarshal(data, &factors)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing factors file: %w", err)
	}

	return &model.FactorSet{Factors: factors}, nil
}
