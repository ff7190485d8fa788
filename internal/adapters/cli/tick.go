package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/gridstock/internal/application/cycle"
	"github.com/andrescamacho/gridstock/pkg/utils"
)

// NewTickCommand creates the tick command
func NewTickCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run a single engine cycle against the grid file",
		Long: `Run one engine cycle: rediscover units, clear refineries and assemblers,
sweep every inventory, feed refineries and queue production. Every cadence is
due on the first cycle, so a single tick exercises all of them.

The resulting inventory is stored as the latest snapshot.

Examples:
  gridstock tick
  gridstock tick --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession("tick", sessionNeeds{grid: true, database: true})
			if err != nil {
				return err
			}
			defer s.Close()

			engine, err := s.engine(cycle.WithSnapshots(s.snapshots))
			if err != nil {
				return err
			}

			report := engine.Tick(s.context(cmd.Context()))
			printReport(cmd.OutOrStdout(), report)

			if save || s.cfg.Host.SaveGrid {
				if err := s.saveGrid(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Grid written to %s\n", s.cfg.Host.GridFile)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Write the grid back to the grid file after the cycle")

	return cmd
}

// printReport writes a short human summary of one cycle.
func printReport(w io.Writer, r cycle.CycleReport) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(w, "Cycle %s (tick %d, %s)\n", r.CycleID, r.Tick, r.Duration)

	fmt.Fprintf(w, "  Units swept:   %d (%d unreadable, %d stacks)\n", r.Sweep.Units, r.Sweep.Unreadable, r.Sweep.Stacks)
	fmt.Fprintf(w, "  Placements:    %d\n", r.Placements())
	if r.Clearing.Stranded > 0 {
		color.New(color.FgYellow).Fprintf(w, "  Stranded:      %d stacks found no container\n", r.Clearing.Stranded)
	}

	if r.Feed.Selected {
		fmt.Fprintf(w, "  Refineries:    fed %s %s ore (ratio %.2f) to %d units\n",
			utils.FormatQuantity(r.Feed.Delivered.Float64()), r.Feed.Selection.Material, r.Feed.Selection.Ratio, r.Feed.Units)
	} else if r.RefineriesCleared {
		fmt.Fprintf(w, "  Refineries:    nothing to feed\n")
	}

	if r.Scheduled {
		fmt.Fprintf(w, "  Production:    %d orders queued", r.Production.Enqueued)
		if r.Production.Leader != "" {
			fmt.Fprintf(w, " on %s", r.Production.Leader)
		}
		fmt.Fprintln(w)
		for _, err := range r.Production.Failures {
			color.New(color.FgRed).Fprintf(w, "    %v\n", err)
		}
	}
}
