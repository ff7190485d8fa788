package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/gridstock/internal/adapters/grpc"
	"github.com/andrescamacho/gridstock/internal/application/commands"
	"github.com/andrescamacho/gridstock/internal/infrastructure/pidfile"
	"github.com/andrescamacho/gridstock/pkg/utils"
)

// NewExecCommand creates the exec command
func NewExecCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "exec <command>",
		Short: "Execute one Push, Pull or Sort command against the grid",
		Long: `Execute one operator command:

  Push <Connector Name> [Filter]   move items to the grid docked at the connector
  Pull <Connector Name> [Filter]   move items from the docked grid to this one
  Sort                             move misplaced items into matching containers

Filter terms are matched against item type and subtype. A filter of the form
list:<name> moves at most the quantities of the named transfer list from the
targets file. Quote names that contain spaces.

When 'gridstock run' holds the PID file, the command is sent to the running
engine over daemon.socket_path and applied to its live grid between cycles.
Otherwise the grid file is loaded, changed and written back.

Examples:
  gridstock exec Sort
  gridstock exec 'Pull "Dock 2" Ore'
  gridstock exec 'Push Dock list:Refuel'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession("exec", sessionNeeds{})
			if err != nil {
				return err
			}
			defer s.Close()

			line := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if pid, running := pidfile.New(s.cfg.Daemon.PIDFile).Running(); running {
				if dryRun {
					return fmt.Errorf("engine is running (PID %d); --dry-run needs exclusive access to the grid file", pid)
				}
				client, err := grpcAdapter.NewDaemonClient(s.cfg.Daemon.SocketPath)
				if err != nil {
					return err
				}
				defer client.Close()

				result, err := client.Execute(s.context(cmd.Context()), line)
				if err != nil {
					return err
				}
				printMoveResult(out, result)
				fmt.Fprintf(out, "Applied by the running engine (PID %d)\n", pid)
				return nil
			}

			if err := s.loadGrid(); err != nil {
				return err
			}
			lists, err := s.targets.Load()
			if err != nil {
				return err
			}

			dispatcher, err := commands.NewDispatcher(s.world, lists, s.world)
			if err != nil {
				return err
			}

			result, err := dispatcher.Execute(s.context(cmd.Context()), line)
			if err != nil {
				return err
			}
			printMoveResult(out, result)

			if dryRun {
				return nil
			}
			if err := s.saveGrid(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Grid written to %s\n", s.cfg.Host.GridFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would move without writing the grid file")

	return cmd
}

func printMoveResult(out io.Writer, result *commands.MoveResult) {
	color.New(color.FgGreen).Fprintf(out, "%s: moved %s items in %d placements from %d units\n",
		result.Verb, utils.FormatQuantity(result.Moved.Float64()), result.Placements, result.Sources)
	if result.Stranded > 0 {
		color.New(color.FgYellow).Fprintf(out, "%d stacks could not be fully placed\n", result.Stranded)
	}
}
