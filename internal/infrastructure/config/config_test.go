package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridstock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.Equal(t, 10, cfg.Engine.RediscoverEvery)
	assert.Equal(t, 1, cfg.Engine.RefineryEvery)
	assert.Equal(t, 3, cfg.Engine.AssemblerEvery)
	assert.Equal(t, 5, cfg.Engine.ProductionEvery)
	assert.Equal(t, int64(10000), cfg.Engine.MaxOrePerRefinery)
	assert.Equal(t, "Auto", cfg.Engine.RefineryTag)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "gridstock.db", cfg.Database.Path)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "/tmp/gridstock.sock", cfg.Daemon.SocketPath)
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
engine:
  tick_interval: 500ms
  refinery_every: 2
  refinery_tag: Managed
host:
  grid_file: base.yaml
logging:
  level: debug
  format: json
`)
	t.Setenv("GS_ENGINE_PRODUCTION_EVERY", "7")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Engine.TickInterval)
	assert.Equal(t, 2, cfg.Engine.RefineryEvery)
	assert.Equal(t, 7, cfg.Engine.ProductionEvery)
	assert.Equal(t, 10, cfg.Engine.RediscoverEvery)
	assert.Equal(t, "Managed", cfg.Engine.RefineryTag)
	assert.Equal(t, "base.yaml", cfg.Host.GridFile)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative cadence", "engine:\n  assembler_every: -1\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"file output without path", "logging:\n  output: file\n"},
		{"relative metrics path", "metrics:\n  path: metrics\n"},
		{"unknown database", "database:\n  type: oracle\n"},
		{"ore cap beyond item range", "engine:\n  max_ore_per_refinery: 10000000000000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))

			assert.Error(t, err)
		})
	}
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := config.LoadConfigOrDefault(writeConfig(t, "logging:\n  level: loud\n"))

	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestValidateConfig_OreCapMatchesItemRange(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	cfg.Engine.MaxOrePerRefinery = inventory.MaxItems
	assert.NoError(t, config.ValidateConfig(cfg))

	cfg.Engine.MaxOrePerRefinery = inventory.MaxItems + 1
	assert.Error(t, config.ValidateConfig(cfg))
}
