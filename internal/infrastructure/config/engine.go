package config

import "time"

// EngineConfig holds the cycle cadences and feed/production tuning
type EngineConfig struct {
	// Wall-clock time between ticks of the run loop
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// Cadences, in ticks
	RediscoverEvery int `mapstructure:"rediscover_every" validate:"min=1"`
	RefineryEvery   int `mapstructure:"refinery_every" validate:"min=1"`
	AssemblerEvery  int `mapstructure:"assembler_every" validate:"min=1"`
	ProductionEvery int `mapstructure:"production_every" validate:"min=1"`

	// Upper bound on ore loaded into one refinery per feed, in whole items;
	// capped at inventory.MaxItems
	MaxOrePerRefinery int64 `mapstructure:"max_ore_per_refinery" validate:"min=1,max=9223372036854"`

	// Also empty the input of idle assemblers when clearing
	ClearIdleAssemblerInputs bool `mapstructure:"clear_idle_assembler_inputs"`

	// Only refineries whose name contains this tag are managed
	RefineryTag string `mapstructure:"refinery_tag"`

	// Target configuration text (targets and transfer lists)
	TargetsFile string `mapstructure:"targets_file"`
}

// HostConfig points at the grid description the engine runs against
type HostConfig struct {
	// YAML grid fixture
	GridFile string `mapstructure:"grid_file" validate:"required"`

	// Write the grid back after each tick
	SaveGrid bool `mapstructure:"save_grid"`
}
