package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridstock",
		Short: "Gridstock - keep a base's stock sorted, refined and built",
		Long: `Gridstock runs the stock engine against a grid description: it sweeps
every inventory, files items into matching containers, feeds refineries the
scarcest ore and queues components that fall below their targets.

Configuration is loaded from gridstock.yaml, GS_* environment variables and
defaults, in increasing order of precedence for the environment.

Examples:
  gridstock run
  gridstock tick --save
  gridstock exec 'Pull "Dock 2" Ore'
  gridstock status --live
  gridstock targets check targets.txt
  gridstock snapshot export --out latest.json.zst`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default: search ./gridstock.yaml, ./configs, /etc/gridstock)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log at debug level")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewTickCommand())
	rootCmd.AddCommand(NewExecCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewTargetsCommand())
	rootCmd.AddCommand(NewSnapshotCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
