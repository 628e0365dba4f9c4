package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonlens/carbonlens/internal/config"
	"github.com/carbonlens/carbonlens/internal/quality"
	"github.com/carbonlens/carbonlens/internal/validation"
)

// validateContextFile is the on-disk shape of the --context file: the
// organization profile plus the historical and benchmark context rules need.
type validateContextFile struct {
	Organization struct {
		OrganizationID string  `json:"organizationId"`
		Sector         string  `json:"sector"`
		EmployeeCount  int     `json:"employeeCount"`
		Revenue        float64 `json:"revenue"`
		Location       string  `json:"location"`
	} `json:"organization"`
	PreviousYear map[string]float64              `json:"previousYear"`
	Benchmarks   map[string]validation.Benchmark `json:"benchmarks"`
	History      map[string][]float64            `json:"history"`
}

// newValidateCmd builds the validation command.
func newValidateCmd(cfg *config.Config) *cobra.Command {
	var (
		dataFile    string
		contextFile string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an emissions data submission and score its quality",
		Example: `  carbonlens validate --data submission.json
  carbonlens validate --data submission.json --context context.json --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := loadDataFile(dataFile)
			if err != nil {
				return err
			}

			vctx, err := loadContextFile(contextFile)
			if err != nil {
				return err
			}

			ruleSet, err := loadRuleSet(cfg)
			if err != nil {
				return err
			}

			engine := validation.NewEngine(validation.NewStore(ruleSet))
			result := quality.Assess(cmd.Context(), engine, data, vctx, quality.ExternalSignals{})

			format, _ := cmd.Flags().GetString("format")
			if format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			renderValidationResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "emissions data JSON file")
	cmd.Flags().StringVar(&contextFile, "context", "", "organization/sector context JSON file")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func loadDataFile(path string) (validation.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	var data validation.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}
	return data, nil
}

func loadContextFile(path string) (validation.Context, error) {
	if path == "" {
		return validation.Context{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return validation.Context{}, fmt.Errorf("reading context file: %w", err)
	}
	var file validateContextFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return validation.Context{}, fmt.Errorf("parsing context file: %w", err)
	}

	vctx := validation.Context{
		PreviousYear: file.PreviousYear,
		Benchmarks:   file.Benchmarks,
		History:      file.History,
	}
	vctx.Organization.OrganizationID = file.Organization.OrganizationID
	vctx.Organization.Sector = file.Organization.Sector
	vctx.Organization.EmployeeCount = file.Organization.EmployeeCount
	vctx.Organization.Revenue = file.Organization.Revenue
	vctx.Organization.Location = file.Organization.Location

	return vctx, nil
}
