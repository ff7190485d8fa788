package cycle

import (
	"context"
	"time"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/production"
	"github.com/andrescamacho/gridstock/internal/domain/refinery"
	"github.com/andrescamacho/gridstock/internal/domain/shared"
	"github.com/andrescamacho/gridstock/internal/domain/targets"
	"github.com/andrescamacho/gridstock/pkg/utils"
)

// Options tunes the engine. Intervals are in ticks.
type Options struct {
	RediscoverEvery          int
	RefineryEvery            int
	AssemblerEvery           int
	ProductionEvery          int
	MaxOrePerRefinery        inventory.Amount
	ClearIdleAssemblerInputs bool
	RefineryTag              string
}

// DefaultOptions returns the stock cadences.
func DefaultOptions() Options {
	return Options{
		RediscoverEvery:   10,
		RefineryEvery:     1,
		AssemblerEvery:    3,
		ProductionEvery:   5,
		MaxOrePerRefinery: refinery.DefaultMaxOrePerUnit,
		RefineryTag:       DefaultRefineryTag,
	}
}

// CycleReport describes what one tick did.
type CycleReport struct {
	CycleID   string
	Tick      int64
	StartedAt time.Time
	Duration  time.Duration

	Rediscovered      bool
	RefineriesCleared bool
	AssemblersCleared bool
	Fed               bool
	Scheduled         bool

	Sweep      SweepStats
	Clearing   ClearResult
	Feed       refinery.FeedResult
	Production production.Result
}

// Placements returns the number of stack moves made while clearing.
func (r CycleReport) Placements() int { return r.Clearing.Placements }

// Engine runs the balancing cycle against a host.
type Engine struct {
	host    inventory.Host
	clock   shared.Clock
	targets *targets.Config

	aggregator *Aggregator
	registry   *Registry
	clearer    *Clearer
	feeder     *refinery.FeedScheduler
	scheduler  *production.Scheduler

	rediscover *Cadence
	refineries *Cadence
	assemblers *Cadence
	production *Cadence

	snapshots common.SnapshotRepository
	metrics   common.MetricsRecorder

	tick int64
}

// EngineOption configures optional collaborators.
type EngineOption func(*Engine)

// WithSnapshots stores the finished inventory after every tick.
func WithSnapshots(repo common.SnapshotRepository) EngineOption {
	return func(e *Engine) { e.snapshots = repo }
}

// WithMetrics records cycle figures after every tick.
func WithMetrics(rec common.MetricsRecorder) EngineOption {
	return func(e *Engine) { e.metrics = rec }
}

// WithClock replaces the real clock.
func WithClock(clock shared.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine wires an engine for host, resolving recipes through book.
func NewEngine(host inventory.Host, book inventory.RecipeBook, opts Options, options ...EngineOption) (*Engine, error) {
	if host == nil {
		return nil, shared.NewValidationError("host", "is required")
	}
	if book == nil {
		return nil, shared.NewValidationError("recipes", "is required")
	}

	cadences := make([]*Cadence, 4)
	for i, every := range []int{opts.RediscoverEvery, opts.RefineryEvery, opts.AssemblerEvery, opts.ProductionEvery} {
		c, err := NewCadence(every)
		if err != nil {
			return nil, err
		}
		cadences[i] = c
	}

	e := &Engine{
		host:       host,
		clock:      shared.NewRealClock(),
		targets:    targets.Parse(""),
		aggregator: NewAggregator(),
		registry:   NewRegistry(opts.RefineryTag),
		clearer:    NewClearer(opts.ClearIdleAssemblerInputs),
		feeder:     refinery.NewFeedScheduler(opts.MaxOrePerRefinery),
		scheduler:  production.NewScheduler(book),
		rediscover: cadences[0],
		refineries: cadences[1],
		assemblers: cadences[2],
		production: cadences[3],
	}
	for _, opt := range options {
		opt(e)
	}
	return e, nil
}

// SetTargets replaces the parsed target configuration used from the next tick.
func (e *Engine) SetTargets(cfg *targets.Config) {
	if cfg == nil {
		cfg = targets.Parse("")
	}
	e.targets = cfg
}

// Targets returns the configuration in use.
func (e *Engine) Targets() *targets.Config { return e.targets }

// Inventory returns the inventory of the last completed sweep.
func (e *Engine) Inventory() *inventory.GlobalInventory { return e.aggregator.Inventory() }

// Registry returns the structural view, rebuilding it if no tick ran yet.
func (e *Engine) Registry() *Registry {
	if !e.registry.Built() {
		e.registry.Rebuild(e.host)
	}
	return e.registry
}

// Tick runs one cycle to completion. Failures inside a tick are logged and
// never abort the cycle.
func (e *Engine) Tick(ctx context.Context) CycleReport {
	logger := common.LoggerFromContext(ctx)
	e.tick++
	report := CycleReport{
		CycleID:   utils.GenerateCycleID(e.tick),
		Tick:      e.tick,
		StartedAt: e.clock.Now(),
	}

	if e.rediscover.Due() || !e.registry.Built() {
		e.registry.Rebuild(e.host)
		report.Rediscovered = true
		logger.Log(common.LevelDebug, "Rediscovered units", map[string]interface{}{
			"containers": e.registry.ContainerCount(),
			"refineries": len(e.registry.Refineries()),
			"assemblers": len(e.registry.Assemblers()),
		})
	}

	refineryDue := e.refineries.Due()
	if refineryDue {
		report.Clearing.add(e.clearer.ClearProcessing(ctx, e.registry.Refineries(), e.registry))
		report.RefineriesCleared = true
	}
	if e.assemblers.Due() {
		report.Clearing.add(e.clearer.ClearProduction(ctx, e.registry.Assemblers(), e.registry))
		report.AssemblersCleared = true
	}

	report.Sweep = e.aggregator.Rebuild(ctx, e.host, e.targets.Targets)
	inv := e.aggregator.Inventory()

	if refineryDue {
		report.Feed = e.feeder.Feed(inv, e.registry.Refineries(), e.registry.OwnContainers())
		report.Fed = report.Feed.Selected
		if report.Feed.Selected {
			logger.Log(common.LevelInfo, "Fed refineries", map[string]interface{}{
				"material":  report.Feed.Selection.Material,
				"ratio":     report.Feed.Selection.Ratio,
				"per_unit":  report.Feed.Selection.PerUnit.String(),
				"delivered": report.Feed.Delivered.String(),
			})
		}
	}

	if e.production.Due() {
		report.Production = e.scheduler.Schedule(inv, e.registry.Assemblers())
		report.Scheduled = true
		for _, key := range report.Production.Unresolved {
			logger.Log(common.LevelDebug, "No recipe for material", map[string]interface{}{"material": key.String()})
		}
		for _, err := range report.Production.Failures {
			logger.Log(common.LevelWarn, "Build order rejected", map[string]interface{}{"error": err.Error()})
		}
		if report.Production.Enqueued > 0 {
			logger.Log(common.LevelInfo, "Queued production", map[string]interface{}{
				"leader":   report.Production.Leader,
				"enqueued": report.Production.Enqueued,
			})
		}
	}

	report.Duration = e.clock.Now().Sub(report.StartedAt)
	e.persist(ctx, report)
	e.record(report)
	return report
}

func (e *Engine) persist(ctx context.Context, report CycleReport) {
	if e.snapshots == nil {
		return
	}
	snap := &common.CycleSnapshot{
		CycleID:    report.CycleID,
		Tick:       report.Tick,
		TakenAt:    report.StartedAt,
		Placements: report.Placements(),
		Fed:        report.Feed.Delivered,
		FedOre:     report.Feed.Selection.Material,
		Enqueued:   report.Production.Enqueued,
		Slots:      common.SnapshotFromInventory(e.aggregator.Inventory()),
	}
	if err := e.snapshots.Save(ctx, snap); err != nil {
		common.LoggerFromContext(ctx).Log(common.LevelError, "Failed to save cycle snapshot", map[string]interface{}{
			"cycle_id": report.CycleID,
			"error":    err.Error(),
		})
	}
}

func (e *Engine) record(report CycleReport) {
	if e.metrics == nil {
		return
	}
	inv := e.aggregator.Inventory()
	ratios := make(map[inventory.MaterialKey]float64)
	for _, key := range inv.Keys() {
		slot := inv.Slot(key)
		if slot.HasTarget() {
			ratios[key] = slot.Ratio()
		}
	}
	e.metrics.RecordCycle(common.CycleMetrics{
		Duration:   report.Duration,
		Units:      report.Sweep.Units,
		Unreadable: report.Sweep.Unreadable,
		Placements: report.Placements(),
		Stranded:   report.Clearing.Stranded,
		Fed:        report.Feed.Delivered,
		Enqueued:   report.Production.Enqueued,
		Ratios:     ratios,
	})
}
