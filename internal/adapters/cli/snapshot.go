package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/gridstock/internal/adapters/persistence"
)

// NewSnapshotCommand creates the snapshot command with subcommands
func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export and inspect stored cycle snapshots",
		Long: `The engine stores the inventory of its latest cycle. Export writes it as
compressed JSON so it can be archived or inspected elsewhere.

Examples:
  gridstock snapshot export --out latest.json.zst
  gridstock snapshot inspect latest.json.zst`,
	}

	cmd.AddCommand(newSnapshotExportCommand())
	cmd.AddCommand(newSnapshotInspectCommand())

	return cmd
}

func newSnapshotExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the latest snapshot as zstd-compressed JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession("snapshot", sessionNeeds{database: true})
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := s.snapshots.Latest(s.context(cmd.Context()))
			if err != nil {
				return err
			}
			if snap == nil {
				return fmt.Errorf("no snapshot stored yet")
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			if err := persistence.ExportSnapshot(w, snap); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d slots) to %s\n", snap.CycleID, len(snap.Slots), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: standard output)")

	return cmd
}

func newSnapshotInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print an exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			header, snap, err := persistence.ImportSnapshot(f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Export format v%d, tick %d\n", header.Version, header.Tick)
			renderStatus(cmd.OutOrStdout(), snap)
			return nil
		},
	}
}
