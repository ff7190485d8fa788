package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/gridstock/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect gridstock configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (GS_* prefix, DATABASE_URL)
2. Config file (gridstock.yaml)
3. Default values

Example:
  gridstock config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				color.New(color.FgYellow).Fprintf(out, "Warning: %v\nUsing default configuration.\n\n", err)
				cfg = config.LoadConfigOrDefault("")
			}

			color.New(color.FgCyan, color.Bold).Fprintln(out, "Gridstock Configuration")

			table := tablewriter.NewTable(out,
				tablewriter.WithHeader([]string{"Setting", "Value"}),
			)
			for _, row := range configRows(cfg) {
				_ = table.Append(row)
			}
			return table.Render()
		},
	}
}

func configRows(cfg *config.Config) [][]string {
	database := cfg.Database.Path
	if cfg.Database.URL != "" {
		database = "(url)"
	} else if cfg.Database.Type == "postgres" {
		database = fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	}

	return [][]string{
		{"engine.tick_interval", cfg.Engine.TickInterval.String()},
		{"engine.rediscover_every", fmt.Sprint(cfg.Engine.RediscoverEvery)},
		{"engine.refinery_every", fmt.Sprint(cfg.Engine.RefineryEvery)},
		{"engine.assembler_every", fmt.Sprint(cfg.Engine.AssemblerEvery)},
		{"engine.production_every", fmt.Sprint(cfg.Engine.ProductionEvery)},
		{"engine.max_ore_per_refinery", fmt.Sprint(cfg.Engine.MaxOrePerRefinery)},
		{"engine.clear_idle_assembler_inputs", fmt.Sprint(cfg.Engine.ClearIdleAssemblerInputs)},
		{"engine.refinery_tag", cfg.Engine.RefineryTag},
		{"engine.targets_file", cfg.Engine.TargetsFile},
		{"host.grid_file", cfg.Host.GridFile},
		{"host.save_grid", fmt.Sprint(cfg.Host.SaveGrid)},
		{"database.type", cfg.Database.Type},
		{"database", database},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.output", cfg.Logging.Output},
		{"metrics.enabled", fmt.Sprint(cfg.Metrics.Enabled)},
		{"metrics.address", fmt.Sprintf("%s:%d%s", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)},
		{"daemon.pid_file", cfg.Daemon.PIDFile},
		{"daemon.socket_path", cfg.Daemon.SocketPath},
		{"daemon.shutdown_timeout", cfg.Daemon.ShutdownTimeout.String()},
	}
}
