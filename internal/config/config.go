// Package config loads the carbonlens YAML configuration: logging
// preferences, the rules file location, the emission factor table, and
// activity-type mappings. A global file under the user's home directory is
// shallow-merged with an optional project-local override.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/carbonlens/carbonlens/internal/convert"
)

// Default file locations under the config directory.
const (
	// DirName is the per-user configuration directory name.
	DirName = ".carbonlens"

	// FileName is the main config file name.
	FileName = "config.yaml"

	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "CARBONLENS_LOG_LEVEL"

	// EnvLogFormat overrides the configured log format.
	EnvLogFormat = "CARBONLENS_LOG_FORMAT"

	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "CARBONLENS_CONFIG_DIR"
)

// LoggingConfig is the logging section.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the full configuration document.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`

	// RulesFile points at a validation rules YAML file. Empty selects the
	// built-in default rule set.
	RulesFile string `yaml:"rulesFile"`

	// FactorsFile points at an emission factor table YAML file.
	FactorsFile string `yaml:"factorsFile"`

	// Assessment is the default GWP assessment vintage for conversions.
	Assessment string `yaml:"assessment"`

	// ActivityMappings resolves activity types to gas/scope/source for
	// ingestion. Merged over the built-in defaults.
	ActivityMappings map[string]convert.ActivityMapping `yaml:"activityMappings"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
	}
}

// Dir resolves the configuration directory: $CARBONLENS_CONFIG_DIR, or
// $HOME/.carbonlens.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// Load reads the global config file, merges a project-local override when
// projectFile is non-empty, and applies environment overrides. A missing
// file is not an error: defaults apply.
func Load(projectFile string) (Config, error) {
	cfg := Default()

	dir, err := Dir()
	if err == nil {
		if err := mergeFile(&cfg, filepath.Join(dir, FileName)); err != nil {
			return Config{}, err
		}
	}

	if projectFile != "" {
		if err := mergeFile(&cfg, projectFile); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// mergeFile shallow-merges the file's non-zero fields into cfg. A missing
// file is ignored.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	if overlay.Logging.Level != "" {
		cfg.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.Format != "" {
		cfg.Logging.Format = overlay.Logging.Format
	}
	if overlay.RulesFile != "" {
		cfg.RulesFile = overlay.RulesFile
	}
	if overlay.FactorsFile != "" {
		cfg.FactorsFile = overlay.FactorsFile
	}
	if overlay.Assessment != "" {
		cfg.Assessment = overlay.Assessment
	}
	if len(overlay.ActivityMappings) > 0 {
		if cfg.ActivityMappings == nil {
			cfg.ActivityMappings = map[string]convert.ActivityMapping{}
		}
		for name, mapping := range overlay.ActivityMappings {
			cfg.ActivityMappings[name] = mapping
		}
	}

	return nil
}

func applyEnv(cfg *Config) {
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		cfg.Logging.Format = format
	}
}
