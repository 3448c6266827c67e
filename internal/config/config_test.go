package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile_YieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "./content", cfg.Content.Dir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "tr", cfg.Locale.Default)
	assert.Contains(t, cfg.Locale.Supported, "az")
	assert.True(t, cfg.Rebuild.Watch)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
content:
  dir: /srv/content
server:
  addr: ":9000"
rebuild:
  watch: false
  interval: 15m
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "/srv/content", cfg.Content.Dir)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.False(t, cfg.Rebuild.Watch)
	assert.Equal(t, 15*time.Minute, cfg.Rebuild.Interval.Std())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("CATALOG_ENV", "production")
	t.Setenv("CATALOG_ADDR", ":7070")
	t.Setenv("FORCE_ONBOARDING", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.True(t, cfg.ForceOnboarding)
}

func TestLoad_InvalidEnvironment_Fails(t *testing.T) {
	t.Setenv("CATALOG_ENV", "staging")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_DefaultLocaleMustBeSupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locale:
  supported: [tr, en]
  default: fr
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locale.default")
}

func TestGateBypass(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.GateBypass(), "development without forced onboarding bypasses the gate")

	cfg.ForceOnboarding = true
	assert.False(t, cfg.GateBypass())

	cfg.ForceOnboarding = false
	cfg.Environment = EnvProduction
	assert.False(t, cfg.GateBypass())
	assert.True(t, cfg.Production())
}
