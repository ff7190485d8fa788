package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	grpcAdapter "github.com/andrescamacho/gridstock/internal/adapters/grpc"
	"github.com/andrescamacho/gridstock/internal/adapters/metrics"
	"github.com/andrescamacho/gridstock/internal/application/commands"
	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/application/cycle"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/infrastructure/pidfile"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var ticks int
	var readCommands bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the engine continuously",
		Long: `Run the engine in a loop, one cycle per engine.tick_interval, until
interrupted. Only one engine may run per PID file. The targets file is
re-read whenever it changes; the grid file is written back after every cycle
when host.save_grid is set.

While it runs, the engine accepts Push/Pull/Sort commands from
'gridstock exec' on daemon.socket_path and applies them to its live grid
between cycles. With --commands, lines read from standard input are executed
the same way.

When metrics are enabled the Prometheus endpoint is served on
metrics.host:metrics.port at metrics.path.

Examples:
  gridstock run
  gridstock run --ticks 100
  GS_METRICS_ENABLED=true gridstock run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession("engine", sessionNeeds{grid: true, database: true})
			if err != nil {
				return err
			}
			defer s.Close()

			pf := pidfile.New(s.cfg.Daemon.PIDFile)
			if err := pf.Acquire(); err != nil {
				return err
			}
			defer func() {
				if err := pf.Release(); err != nil {
					s.logger.Log(common.LevelWarn, "Failed to release PID file", map[string]interface{}{"error": err.Error()})
				}
			}()

			options := []cycle.EngineOption{cycle.WithSnapshots(s.snapshots)}
			if s.cfg.Metrics.Enabled {
				stop, err := startMetrics(s)
				if err != nil {
					return err
				}
				defer stop()
				options = append(options, cycle.WithMetrics(metrics.Recorder()))
			}

			engine, err := s.engine(options...)
			if err != nil {
				return err
			}

			dispatcher, err := commands.NewDispatcher(s.world, engineLists{engine}, s.world,
				metrics.PrometheusMiddleware(metrics.CommandCollector()))
			if err != nil {
				return err
			}

			queue := commands.NewQueue(16)
			server, err := grpcAdapter.NewDaemonServer(queue, s.cfg.Daemon.SocketPath, s.logger)
			if err != nil {
				return err
			}
			server.Start()
			defer func() {
				if err := server.Stop(); err != nil {
					s.logger.Log(common.LevelWarn, "Command socket stopped with error", map[string]interface{}{"error": err.Error()})
				}
			}()
			// Runs before server.Stop so waiting callers are released.
			defer queue.Close()
			s.logger.Log(common.LevelInfo, "Command socket listening", map[string]interface{}{"socket": server.Addr()})

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var inbox <-chan string
			if readCommands {
				inbox = readLines(ctx, cmd.InOrStdin())
			}

			return runLoop(s.context(ctx), s, engine, dispatcher, commandSources{inbox: inbox, queue: queue}, ticks)
		},
	}

	cmd.Flags().IntVar(&ticks, "ticks", 0, "Stop after this many cycles (0 runs until interrupted)")
	cmd.Flags().BoolVar(&readCommands, "commands", false, "Execute operator commands read from standard input")

	return cmd
}

// engineLists resolves transfer lists from the engine's current targets, so
// reloaded lists apply to the next command.
type engineLists struct {
	engine *cycle.Engine
}

func (l engineLists) List(name string) (*inventory.TransferList, bool) {
	return l.engine.Targets().List(name)
}

// readLines feeds non-empty input lines to the returned channel until r is
// exhausted or ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string, 16)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// drainCommands executes every queued command without blocking.
func drainCommands(ctx context.Context, dispatcher *commands.Dispatcher, inbox <-chan string) {
	for {
		select {
		case line, ok := <-inbox:
			if !ok {
				return
			}
			// Failures are already reported to the grid display and the log.
			_, _ = dispatcher.Execute(ctx, line)
		default:
			return
		}
	}
}

// commandSources are where operator commands reach the run loop from:
// standard input lines and the command socket. Either may be nil.
type commandSources struct {
	inbox <-chan string
	queue *commands.Queue
}

// runLoop ticks the engine at the configured pace until ctx is done or the
// tick budget is spent. Queued operator commands run before each cycle.
func runLoop(ctx context.Context, s *session, engine *cycle.Engine, dispatcher *commands.Dispatcher, sources commandSources, ticks int) error {
	logger := common.LoggerFromContext(ctx)
	limiter := rate.NewLimiter(rate.Every(s.cfg.Engine.TickInterval), 1)

	logger.Log(common.LevelInfo, "Engine started", map[string]interface{}{
		"grid":          s.cfg.Host.GridFile,
		"tick_interval": s.cfg.Engine.TickInterval.String(),
	})

	for n := 0; ticks == 0 || n < ticks; n++ {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		cfg, changed, err := s.targets.Reload()
		if err != nil {
			logger.Log(common.LevelError, "Failed to reload targets", map[string]interface{}{"error": err.Error()})
		} else if changed {
			s.reportTargetErrors(cfg)
			engine.SetTargets(cfg)
			logger.Log(common.LevelInfo, "Targets loaded", map[string]interface{}{
				"targets": len(cfg.Targets),
				"lists":   len(cfg.ListNames()),
			})
		}

		if sources.inbox != nil {
			drainCommands(ctx, dispatcher, sources.inbox)
		}
		if sources.queue != nil {
			sources.queue.Drain(ctx, dispatcher)
		}

		report := engine.Tick(ctx)
		logger.Log(common.LevelDebug, "Cycle finished", map[string]interface{}{
			"cycle_id":   report.CycleID,
			"duration":   report.Duration.String(),
			"placements": report.Placements(),
		})

		if s.cfg.Host.SaveGrid {
			if err := s.saveGrid(); err != nil {
				logger.Log(common.LevelError, "Failed to write grid file", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	logger.Log(common.LevelInfo, "Engine stopped", nil)
	return nil
}

// startMetrics initialises the registry, registers the collectors and starts
// the HTTP endpoint. The returned func stops the server.
func startMetrics(s *session) (func(), error) {
	metrics.InitRegistry()

	engineCollector := metrics.NewEngineMetricsCollector()
	if err := engineCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register engine metrics: %w", err)
	}
	metrics.SetGlobalCollector(engineCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	metrics.SetGlobalCommandCollector(commandCollector)

	srv, err := metrics.NewServer(s.cfg.Metrics)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(); err != nil {
		return nil, err
	}
	s.logger.Log(common.LevelInfo, "Metrics endpoint listening", map[string]interface{}{
		"addr": srv.Addr(),
		"path": s.cfg.Metrics.Path,
	})

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Daemon.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
