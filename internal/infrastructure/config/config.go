package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override (GS_ENGINE_REFINERY_EVERY...).
const EnvPrefix = "GS"

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Host     HostConfig     `mapstructure:"host"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (gridstock.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("gridstock")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/gridstock")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// bindEnv registers every key so AutomaticEnv can override values that are
// absent from the config file.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"engine.tick_interval",
		"engine.rediscover_every",
		"engine.refinery_every",
		"engine.assembler_every",
		"engine.production_every",
		"engine.max_ore_per_refinery",
		"engine.clear_idle_assembler_inputs",
		"engine.refinery_tag",
		"engine.targets_file",
		"host.grid_file",
		"host.save_grid",
		"database.type",
		"database.url",
		"database.path",
		"logging.level",
		"logging.format",
		"logging.output",
		"logging.file_path",
		"metrics.enabled",
		"metrics.host",
		"metrics.port",
		"metrics.path",
		"daemon.pid_file",
		"daemon.socket_path",
		"daemon.shutdown_timeout",
	} {
		_ = v.BindEnv(key)
	}
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}
