package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonlens/carbonlens/internal/aggregate"
	"github.com/carbonlens/carbonlens/internal/config"
	"github.com/carbonlens/carbonlens/internal/model"
)

// inventoryOutput is the JSON shape of the inventory command output.
type inventoryOutput struct {
	Inventory     aggregate.Inventory       `json:"inventory"`
	Trend         []aggregate.TrendPoint    `json:"trend,omitempty"`
	YearOverYear  *aggregate.YearOverYear   `json:"yearOverYear,omitempty"`
	Gaps          []aggregate.ComplianceGap `json:"complianceGaps,omitempty"`
	Equivalencies []aggregate.Equivalency   `json:"equivalencies,omitempty"`
}

// newInventoryCmd builds the inventory rollup command.
func newInventoryCmd(_ *config.Config) *cobra.Command {
	var (
		recordsFile  string
		organization string
		period       string
		trend        string
		standard     string
	)

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Roll emission records up into a GHG inventory",
		Example: `  carbonlens inventory --records records.json
  carbonlens inventory --records records.json --trend quarterly --standard ghg-protocol`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadRecordsFile(recordsFile)
			if err != nil {
				return err
			}

			filter := aggregate.Filter{OrganizationID: organization, Period: period}
			inv := aggregate.BuildInventory(records, filter)

			out := inventoryOutput{
				Inventory:     inv,
				Equivalencies: aggregate.Equivalencies(inv.TotalCO2e),
			}

			if trend != "" {
				interval, err := aggregate.ParseInterval(trend)
				if err != nil {
					return err
				}
				out.Trend = aggregate.TrendSeries(records, interval)
				if yoy, ok := aggregate.YearOverYearTrend(records); ok {
					out.YearOverYear = &yoy
				}
			}

			if standard != "" {
				parsed, err := aggregate.ParseStandard(standard)
				if err != nil {
					return err
				}
				out.Gaps = aggregate.ComplianceGaps(inv, parsed, verifiedShare(records))
			}

			format, _ := cmd.Flags().GetString("format")
			if format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(out)
			}

			renderInventory(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&recordsFile, "records", "", "emission records JSON file")
	cmd.Flags().StringVar(&organization, "organization", "", "filter by organization id")
	cmd.Flags().StringVar(&period, "period", "", "filter by reporting period")
	cmd.Flags().StringVar(&trend, "trend", "", "trend interval: daily, weekly, monthly, quarterly, yearly")
	cmd.Flags().StringVar(&standard, "standard", "", "compliance standard: ghg-protocol, iso-14064, eu-ets")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func loadRecordsFile(path string) ([]model.EmissionRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	var records []model.EmissionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parsing records file: %w", err)
	}
	return records, nil
}

// verifiedShare is the CO2e-weighted share of third-party-verified records.
func verifiedShare(records []model.EmissionRecord) float64 {
	var total, verified float64
	for _, r := range records {
		total += r.CO2Equivalent
		if r.Verification == model.VerificationThirdParty {
			verified += r.CO2Equivalent
		}
	}
	if total == 0 {
		return 0
	}
	return verified / total
}
