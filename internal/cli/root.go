// Package cli wires the carbonlens commands: conversion, validation,
// inventory rollups, rule management, and activity ingestion.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carbonlens/carbonlens/internal/config"
	"github.com/carbonlens/carbonlens/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root cobra command for the carbonlens CLI.
// It wires up config loading, logging, and the subcommands.
func NewRootCmd(version string) *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:     "carbonlens",
		Short:   "GHG emission calculation and data validation",
		Long:    "carbonlens: convert raw gas quantities to CO2-equivalents, roll them up into inventories, and validate emissions data quality",
		Version: version,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			loaded, err := config.Load(configFile)
			if err != nil {
				return err
			}
			cfg = loaded

			setupLogging(cmd, &cfg)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "project-local config file merged over the global config")
	cmd.PersistentFlags().String("format", "text", "output format: text or json")

	cmd.AddCommand(
		newConvertCmd(&cfg),
		newValidateCmd(&cfg),
		newInventoryCmd(&cfg),
		newRulesCmd(&cfg),
		newIngestCmd(&cfg),
	)

	return cmd
}

// setupLogging configures the CLI logger from config, environment, and the
// --debug flag, and embeds it in the command context for core packages.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	logCfg := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
		logCfg.Format = logging.FormatConsole
	}
	if logCfg.Format == "" && !isTerminal(os.Stderr) {
		logCfg.Format = logging.FormatJSON
	}

	root := logging.New(logCfg)
	logger = logging.ComponentLogger(root, "cli")

	ctx := logging.WithContext(cmd.Context(), root)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}

const rootCmdExample = `  # Convert 50 kg of methane to CO2-equivalent under AR6
  carbonlens convert --gas CH4 --quantity 50 --unit kg

  # Validate an emissions submission with sector context
  carbonlens validate --data submission.json --context context.json

  # Build an inventory rollup from persisted records
  carbonlens inventory --records records.json --trend monthly`
