package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/infrastructure/config"
	"github.com/andrescamacho/gridstock/pkg/utils"
)

// NewTargetsCommand creates the targets command with subcommands
func NewTargetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Inspect the target configuration",
	}

	cmd.AddCommand(newTargetsCheckCommand())

	return cmd
}

func newTargetsCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Parse a targets file and report every line that fails",
		Long: `Parse the targets file and print the resulting targets and transfer
lists. Without an argument the file named by engine.targets_file is checked.
Exits non-zero when any line is rejected.

Example:
  gridstock targets check targets.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.LoadConfig(configPath)
				if err != nil {
					return err
				}
				path = cfg.Engine.TargetsFile
			}

			parsed, err := newTargetsFile(path).Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			keys := make([]inventory.MaterialKey, 0, len(parsed.Targets))
			for key := range parsed.Targets {
				keys = append(keys, key)
			}
			sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

			color.New(color.FgCyan, color.Bold).Fprintf(out, "Targets in %s\n", path)
			table := tablewriter.NewTable(out,
				tablewriter.WithHeader([]string{"Type", "Item", "Target"}),
			)
			for _, key := range keys {
				_ = table.Append([]string{key.ShortCategory(), key.Subtype, utils.FormatQuantity(parsed.Targets[key].Float64())})
			}
			_ = table.Render()

			for _, name := range parsed.ListNames() {
				list, _ := parsed.List(name)
				fmt.Fprintf(out, "List %s: %d items\n", name, list.Len())
			}

			if parsed.HasErrors() {
				for _, lineErr := range parsed.Errors {
					color.New(color.FgRed).Fprintf(out, "  %v\n", lineErr)
				}
				return fmt.Errorf("%d target lines rejected", len(parsed.Errors))
			}
			color.New(color.FgGreen).Fprintln(out, "No errors")
			return nil
		},
	}
}
