package config

import "time"

// DaemonConfig holds settings of the long-running `run` loop
type DaemonConfig struct {
	// PID file location, guards against two engines on one grid
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Unix socket on which a running engine accepts operator commands
	SocketPath string `mapstructure:"socket_path" validate:"required"`

	// Time allowed for the current tick to finish after a signal
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
