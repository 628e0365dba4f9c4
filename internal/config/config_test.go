package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.RulesFile)
}

func TestLoadGlobalFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	writeConfig(t, dir, `
logging:
  level: debug
  format: json
rulesFile: /etc/carbonlens/rules.yaml
assessment: AR5
`)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/etc/carbonlens/rules.yaml", cfg.RulesFile)
	assert.Equal(t, "AR5", cfg.Assessment)
}

func TestLoadProjectOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	writeConfig(t, dir, "logging:\n  level: debug\nassessment: AR5\n")

	project := filepath.Join(t.TempDir(), "carbonlens.yaml")
	require.NoError(t, os.WriteFile(project, []byte("assessment: AR6\n"), 0o600))

	cfg, err := Load(project)

	require.NoError(t, err)
	// Project overlay wins where set, global survives elsewhere.
	assert.Equal(t, "AR6", cfg.Assessment)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	writeConfig(t, dir, "logging:\n  level: warn\n")
	t.Setenv(EnvLogLevel, "trace")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadActivityMappings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	writeConfig(t, dir, `
activityMappings:
  biomass:
    gas: CH4
    scope: 1
    source: stationary_combustion
`)

	cfg, err := Load("")

	require.NoError(t, err)
	mapping, ok := cfg.ActivityMappings["biomass"]
	require.True(t, ok)
	assert.Equal(t, "CH4", mapping.Gas)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	writeConfig(t, dir, "logging: [broken")

	_, err := Load("")

	assert.Error(t, err)
}

func TestDirEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/custom-config")

	dir, err := Dir()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-config", dir)
}
