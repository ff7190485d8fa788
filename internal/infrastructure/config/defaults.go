package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Engine defaults
	if cfg.Engine.TickInterval == 0 {
		cfg.Engine.TickInterval = 2 * time.Second
	}
	if cfg.Engine.RediscoverEvery == 0 {
		cfg.Engine.RediscoverEvery = 10
	}
	if cfg.Engine.RefineryEvery == 0 {
		cfg.Engine.RefineryEvery = 1
	}
	if cfg.Engine.AssemblerEvery == 0 {
		cfg.Engine.AssemblerEvery = 3
	}
	if cfg.Engine.ProductionEvery == 0 {
		cfg.Engine.ProductionEvery = 5
	}
	if cfg.Engine.MaxOrePerRefinery == 0 {
		cfg.Engine.MaxOrePerRefinery = 10000
	}
	if cfg.Engine.RefineryTag == "" {
		cfg.Engine.RefineryTag = "Auto"
	}
	if cfg.Engine.TargetsFile == "" {
		cfg.Engine.TargetsFile = "targets.txt"
	}

	// Host defaults
	if cfg.Host.GridFile == "" {
		cfg.Host.GridFile = "grid.yaml"
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "gridstock.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "gridstock"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "gridstock"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/gridstock.pid"
	}
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/gridstock.sock"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}
}
