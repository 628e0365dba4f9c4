package cli

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/carbonlens/carbonlens/internal/config"
	"github.com/carbonlens/carbonlens/internal/convert"
	"github.com/carbonlens/carbonlens/internal/ingest"
	"github.com/carbonlens/carbonlens/internal/model"
)

// newIngestCmd builds the activity ingestion command: activity file in,
// converted emission records out.
func newIngestCmd(cfg *config.Config) *cobra.Command {
	var (
		activityFile string
		concurrency  int
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Convert an activity data file into emission records",
		Example: `  carbonlens ingest --activities usage.csv
  carbonlens ingest --activities usage.json --concurrency 16 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			activities, err := ingest.LoadFile(ctx, activityFile)
			if err != nil {
				return err
			}

			mappings := ingest.DefaultMappings()
			maps.Copy(mappings, cfg.ActivityMappings)

			var factors *model.FactorSet
			if cfg.FactorsFile != "" {
				factors, err = ingest.LoadFactors(cfg.FactorsFile)
				if err != nil {
					return err
				}
			}

			inputs, unmapped := ingest.ToRecordInputs(ctx, activities, mappings, factors)
			if len(inputs) == 0 {
				return fmt.Errorf("no convertible activities in %s", activityFile)
			}

			result, err := convert.BulkRecords(ctx, inputs, concurrency)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "converted %d/%d activities (%d failed, %d unmapped)\n",
				result.Batch.Succeeded, result.Batch.Total, result.Batch.Failed, len(unmapped))
			for _, itemErr := range result.Batch.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  item %d: %s\n", itemErr.Index, itemErr.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&activityFile, "activities", "", "activity data file (.json or .csv)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "conversion workers (0 = default)")
	_ = cmd.MarkFlagRequired("activities")

	return cmd
}
