package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/carbonlens/carbonlens/internal/config"
	"github.com/carbonlens/carbonlens/internal/validation"
)

// rulesFileName is the rules file written under the config directory when
// no explicit rulesFile is configured.
const rulesFileName = "rules.yaml"

// newRulesCmd builds the rule management command group.
func newRulesCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and toggle validation rules",
	}

	cmd.AddCommand(
		newRulesListCmd(cfg),
		newRulesShowCmd(cfg),
		newRulesToggleCmd(cfg, "enable", true),
		newRulesToggleCmd(cfg, "disable", false),
	)
	return cmd
}

// rulesPath resolves where rule mutations are persisted: the configured
// rulesFile, or rules.yaml under the config directory.
func rulesPath(cfg *config.Config) (string, error) {
	if cfg.RulesFile != "" {
		return cfg.RulesFile, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, rulesFileName), nil
}

// loadRuleSet loads the active rule set: the configured rulesFile, a
// previously saved rules.yaml in the config directory, or the built-in
// defaults.
func loadRuleSet(cfg *config.Config) (*validation.RuleSet, error) {
	path, err := rulesPath(cfg)
	if err != nil {
		return validation.DefaultRules(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if cfg.RulesFile != "" {
			return nil, fmt.Errorf("rules file %s: %w", path, err)
		}
		return validation.DefaultRules(), nil
	}
	return validation.LoadFile(path)
}

func newRulesListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured validation rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadRuleSet(cfg)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			if format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(set.Rules())
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tFIELD\tSEVERITY\tENABLED")
			for _, rule := range set.Rules() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
					rule.ID, rule.Kind(), rule.Field, rule.Severity, rule.Enabled)
			}
			return w.Flush()
		},
	}
}

func newRulesShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <rule-id>",
		Short: "Show one rule's full definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadRuleSet(cfg)
			if err != nil {
				return err
			}

			rule, ok := set.Get(args[0])
			if !ok {
				return fmt.Errorf("no rule with id %q", args[0])
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(rule)
		},
	}
}

// newRulesToggleCmd builds the enable and disable commands. The flipped
// rule set is persisted so later validation runs pick it up.
func newRulesToggleCmd(cfg *config.Config, verb string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <rule-id>",
		Short: verb + " a validation rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadRuleSet(cfg)
			if err != nil {
				return err
			}

			store := validation.NewStore(set)
			if err := store.SetEnabled(args[0], enabled); err != nil {
				return err
			}

			path, err := rulesPath(cfg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := validation.SaveFile(path, store.Snapshot()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rule %s %sd (%s)\n", args[0], verb, path)
			return nil
		},
	}
}
