package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonlens/carbonlens/internal/config"
	"github.com/carbonlens/carbonlens/internal/convert"
)

// newConvertCmd builds the one-shot conversion command.
func newConvertCmd(cfg *config.Config) *cobra.Command {
	var (
		gas        string
		compound   string
		quantity   float64
		unit       string
		assessment string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a gas quantity to tonnes CO2-equivalent",
		Example: `  carbonlens convert --gas CH4 --quantity 50 --unit kg
  carbonlens convert --gas HFC --compound HFC-23 --quantity 2 --unit kg --assessment AR5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if assessment == "" {
				assessment = cfg.Assessment
			}

			calc, err := convert.Calculate(cmd.Context(), convert.Input{
				Gas:        gas,
				Compound:   compound,
				Quantity:   quantity,
				Unit:       unit,
				Assessment: assessment,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(calc)
			}

			fmt.Fprintln(cmd.OutOrStdout(), calc.Trace)
			if !calc.UnitRecognized {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unit %q not recognized, quantity treated as tonnes\n", unit)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gas, "gas", "", "gas family: CO2, CH4, N2O, HFC, PFC, SF6, NF3")
	cmd.Flags().StringVar(&compound, "compound", "", "specific compound for HFC/PFC families")
	cmd.Flags().Float64Var(&quantity, "quantity", 0, "quantity to convert")
	cmd.Flags().StringVar(&unit, "unit", "kg", "mass unit: kg, g, t, lb")
	cmd.Flags().StringVar(&assessment, "assessment", "", "GWP assessment vintage: AR4, AR5, AR6 (default AR6)")
	_ = cmd.MarkFlagRequired("gas")
	_ = cmd.MarkFlagRequired("quantity")

	return cmd
}
