package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/application/cycle"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/pkg/utils"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var live bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show stock levels against targets",
		Long: `Show the stock of the last cycle: ore and refined material side by side,
then manufactured items against their targets.

With --live the grid file is swept now instead of reading the stored
snapshot. A live sweep moves nothing.

Examples:
  gridstock status
  gridstock status --live`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if live {
				s, err := openSession("status", sessionNeeds{grid: true})
				if err != nil {
					return err
				}
				defer s.Close()

				cfg, err := s.targets.Load()
				if err != nil {
					return err
				}
				agg := cycle.NewAggregator()
				agg.Rebuild(s.context(cmd.Context()), s.world, cfg.Targets)
				renderStatus(out, &common.CycleSnapshot{
					CycleID: "live",
					Slots:   common.SnapshotFromInventory(agg.Inventory()),
				})
				return nil
			}

			s, err := openSession("status", sessionNeeds{database: true})
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := s.snapshots.Latest(s.context(cmd.Context()))
			if err != nil {
				return err
			}
			if snap == nil {
				color.New(color.FgYellow).Fprintln(out, "No snapshot yet; run 'gridstock tick' first.")
				return nil
			}
			renderStatus(out, snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&live, "live", false, "Sweep the grid file now instead of reading the last snapshot")

	return cmd
}

// materialRow pairs an ore with the ingot it refines into.
type materialRow struct {
	name    string
	ore     inventory.Amount
	refined common.SlotSnapshot
}

// renderStatus prints the snapshot as two tables.
func renderStatus(w io.Writer, snap *common.CycleSnapshot) {
	title := color.New(color.FgCyan, color.Bold)
	if snap.TakenAt.IsZero() {
		title.Fprintf(w, "Stock (%s)\n", snap.CycleID)
	} else {
		title.Fprintf(w, "Stock at %s (%s)\n", snap.TakenAt.Format("2006-01-02 15:04:05"), snap.CycleID)
	}

	rows := map[string]*materialRow{}
	var manufactured []common.SlotSnapshot
	for _, slot := range snap.Slots {
		switch slot.Key.Category {
		case inventory.CategoryOre, inventory.CategoryIngot:
			row, ok := rows[slot.Key.Subtype]
			if !ok {
				row = &materialRow{name: slot.Key.Subtype}
				rows[slot.Key.Subtype] = row
			}
			if slot.Key.Category == inventory.CategoryOre {
				row.ore = slot.Total
			} else {
				row.refined = slot
			}
		default:
			manufactured = append(manufactured, slot)
		}
	}

	names := make([]string, 0, len(rows))
	for name := range rows {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Material", "Ore", "Refined", "Target", "Ratio"}),
	)
	for _, name := range names {
		row := rows[name]
		_ = materials.Append([]string{
			row.name,
			utils.FormatQuantity(row.ore.Float64()),
			utils.FormatQuantity(row.refined.Total.Float64()),
			formatTarget(row.refined.Target),
			formatRatio(row.refined),
		})
	}
	_ = materials.Render()

	if len(manufactured) == 0 {
		return
	}
	sort.SliceStable(manufactured, func(i, j int) bool { return manufactured[i].Key.Less(manufactured[j].Key) })

	fmt.Fprintln(w)
	items := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Item", "Type", "Stock", "Target", "Ratio"}),
	)
	for _, slot := range manufactured {
		_ = items.Append([]string{
			slot.Key.Subtype,
			slot.Key.ShortCategory(),
			utils.FormatQuantity(slot.Total.Float64()),
			formatTarget(slot.Target),
			formatRatio(slot),
		})
	}
	_ = items.Render()
}

func formatTarget(target inventory.Amount) string {
	if target <= 0 {
		return "-"
	}
	return utils.FormatQuantity(target.Float64())
}

// formatRatio colours slots below half their target red and slots below
// target yellow.
func formatRatio(slot common.SlotSnapshot) string {
	if slot.Target <= 0 {
		return "-"
	}
	ratio := slot.Ratio()
	text := fmt.Sprintf("%.2f", ratio)
	switch {
	case ratio < 0.5:
		return color.New(color.FgRed).Sprint(text)
	case ratio < 1:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgGreen).Sprint(text)
	}
}
