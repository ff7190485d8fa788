package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/gridstock/internal/adapters/grid"
	"github.com/andrescamacho/gridstock/internal/adapters/persistence"
	"github.com/andrescamacho/gridstock/internal/application/commands"
	"github.com/andrescamacho/gridstock/internal/application/cycle"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/targets"
	"github.com/andrescamacho/gridstock/test/helpers"
)

// gridContext holds one world plus whatever the scenario did to it.
type gridContext struct {
	world   *grid.World
	targets *targets.Config
	options cycle.Options

	engine *cycle.Engine
	report cycle.CycleReport

	result *commands.MoveResult
	err    error

	snapshots *persistence.GormSnapshotRepository
}

func (gc *gridContext) reset() {
	gc.world = nil
	gc.targets = targets.Parse("")
	gc.options = cycle.DefaultOptions()
	gc.engine = nil
	gc.report = cycle.CycleReport{}
	gc.result = nil
	gc.err = nil

	if err := helpers.TruncateAllTables(); err != nil {
		panic(fmt.Errorf("failed to truncate tables: %w", err))
	}
	gc.snapshots = persistence.NewGormSnapshotRepository(helpers.SharedTestDB)
}

func (gc *gridContext) theGrid(doc *godog.DocString) error {
	w, err := grid.Load([]byte(doc.Content))
	if err != nil {
		return fmt.Errorf("invalid grid: %w", err)
	}
	gc.world = w
	return nil
}

func (gc *gridContext) theTargets(doc *godog.DocString) error {
	gc.targets = targets.Parse(doc.Content)
	return nil
}

func (gc *gridContext) refineriesAreCappedAt(n int) error {
	gc.options.MaxOrePerRefinery = inventory.Items(int64(n))
	return nil
}

func (gc *gridContext) idleAssemblerInputsAreCleared() error {
	gc.options.ClearIdleAssemblerInputs = true
	return nil
}

func (gc *gridContext) theEngineRunsCycles(n int) error {
	if gc.world == nil {
		return fmt.Errorf("no grid described")
	}
	if gc.engine == nil {
		e, err := cycle.NewEngine(gc.world, gc.world, gc.options, cycle.WithSnapshots(gc.snapshots))
		if err != nil {
			return err
		}
		gc.engine = e
	}
	gc.engine.SetTargets(gc.targets)
	for i := 0; i < n; i++ {
		gc.report = gc.engine.Tick(context.Background())
	}
	return nil
}

func (gc *gridContext) theOperatorRuns(line string) error {
	if gc.world == nil {
		return fmt.Errorf("no grid described")
	}
	d, err := commands.NewDispatcher(gc.world, gc.targets, gc.world)
	if err != nil {
		return err
	}
	gc.result, gc.err = d.Execute(context.Background(), line)
	return nil
}

func (gc *gridContext) unit(name string) (inventory.Unit, error) {
	u, ok := gc.world.UnitByName(name)
	if !ok {
		return nil, fmt.Errorf("no block named %q", name)
	}
	return u, nil
}

func (gc *gridContext) unitShouldHold(name string, amount int, category, subtype string) error {
	u, err := gc.unit(name)
	if err != nil {
		return err
	}
	key := inventory.MaterialKey{Category: grid.CategoryFromShort(category), Subtype: subtype}

	var held inventory.Amount
	for _, inv := range u.Inventories() {
		held += inv.(*grid.Store).Amount(key)
	}
	if want := inventory.Items(int64(amount)); held != want {
		return fmt.Errorf("expected %s to hold %s %s but got %s", name, want, key, held)
	}
	return nil
}

func (gc *gridContext) unitShouldHoldNo(name, category, subtype string) error {
	return gc.unitShouldHold(name, 0, category, subtype)
}

func (gc *gridContext) theCycleShouldReportStranded(n int) error {
	if gc.report.Clearing.Stranded != n {
		return fmt.Errorf("expected %d stranded stacks but got %d", n, gc.report.Clearing.Stranded)
	}
	return nil
}

func (gc *gridContext) theCycleShouldFeedOre(material string) error {
	if !gc.report.Feed.Selected {
		return fmt.Errorf("expected %s ore to be fed but nothing was selected", material)
	}
	if gc.report.Feed.Selection.Material != material {
		return fmt.Errorf("expected %s ore to be fed but got %s", material, gc.report.Feed.Selection.Material)
	}
	return nil
}

func (gc *gridContext) noOreShouldBeFed() error {
	if gc.report.Feed.Selected {
		return fmt.Errorf("expected no feed but %s was selected", gc.report.Feed.Selection.Material)
	}
	return nil
}

func (gc *gridContext) assembler(name string) (*grid.Assembler, error) {
	u, err := gc.unit(name)
	if err != nil {
		return nil, err
	}
	a, ok := u.(*grid.Assembler)
	if !ok {
		return nil, fmt.Errorf("%s is not an assembler", name)
	}
	return a, nil
}

func (gc *gridContext) assemblerShouldHaveQueued(name string, amount int, category, subtype string) error {
	a, err := gc.assembler(name)
	if err != nil {
		return err
	}
	queue, err := a.Queue()
	if err != nil {
		return err
	}
	key := inventory.MaterialKey{Category: grid.CategoryFromShort(category), Subtype: subtype}

	var queued inventory.Amount
	for _, item := range queue {
		if item.Key == key {
			queued += item.Amount
		}
	}
	if want := inventory.Items(int64(amount)); queued != want {
		return fmt.Errorf("expected %s to have %s %s queued but got %s", name, want, key, queued)
	}
	return nil
}

func (gc *gridContext) assemblerShouldHaveNothingQueued(name string) error {
	a, err := gc.assembler(name)
	if err != nil {
		return err
	}
	queue, err := a.Queue()
	if err != nil {
		return err
	}
	if len(queue) != 0 {
		return fmt.Errorf("expected %s to have an empty queue but it has %d orders", name, len(queue))
	}
	return nil
}

func (gc *gridContext) assemblerShouldBeCooperative(name, not string) error {
	a, err := gc.assembler(name)
	if err != nil {
		return err
	}
	want := not == ""
	if a.Cooperative != want {
		return fmt.Errorf("expected %s cooperative=%v but got %v", name, want, a.Cooperative)
	}
	return nil
}

func (gc *gridContext) theLeaderShouldBe(name string) error {
	if gc.report.Production.Leader != name {
		return fmt.Errorf("expected leader %q but got %q", name, gc.report.Production.Leader)
	}
	return nil
}

func (gc *gridContext) theCommandShouldMove(n int) error {
	if gc.err != nil {
		return fmt.Errorf("command failed: %w", gc.err)
	}
	if want := inventory.Items(int64(n)); gc.result.Moved != want {
		return fmt.Errorf("expected %s moved but got %s", want, gc.result.Moved)
	}
	return nil
}

func (gc *gridContext) theCommandShouldFailWith(text string) error {
	if gc.err == nil {
		return fmt.Errorf("expected the command to fail with %q", text)
	}
	if !strings.Contains(gc.err.Error(), text) {
		return fmt.Errorf("expected error containing %q but got %q", text, gc.err.Error())
	}
	return nil
}

func (gc *gridContext) nothingShouldHaveMoved() error {
	if n := gc.world.Transfers(); n != 0 {
		return fmt.Errorf("expected no transfers but got %d", n)
	}
	return nil
}

func (gc *gridContext) theDisplayShouldShow(text string) error {
	for _, line := range gc.world.Output() {
		if strings.Contains(line, text) {
			return nil
		}
	}
	return fmt.Errorf("expected display output containing %q, got %q", text, gc.world.Output())
}

func (gc *gridContext) theLatestSnapshotShouldBeForTick(tick int) error {
	snap, err := gc.snapshots.Latest(context.Background())
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no snapshot stored")
	}
	if snap.Tick != int64(tick) {
		return fmt.Errorf("expected snapshot of tick %d but got %d", tick, snap.Tick)
	}
	return nil
}

func (gc *gridContext) theLatestSnapshotShouldRecord(category, subtype string, total, target int) error {
	snap, err := gc.snapshots.Latest(context.Background())
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no snapshot stored")
	}
	key := inventory.MaterialKey{Category: grid.CategoryFromShort(category), Subtype: subtype}
	for _, slot := range snap.Slots {
		if slot.Key != key {
			continue
		}
		if slot.Total != inventory.Items(int64(total)) || slot.Target != inventory.Items(int64(target)) {
			return fmt.Errorf("expected %s at %d of %d but got %s of %s", key, total, target, slot.Total, slot.Target)
		}
		return nil
	}
	return fmt.Errorf("snapshot has no slot for %s", key)
}

// InitializeGridScenario registers the engine, command and snapshot steps.
func InitializeGridScenario(sc *godog.ScenarioContext) {
	gc := &gridContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		gc.reset()
		return ctx, nil
	})

	sc.Step(`^the grid:$`, gc.theGrid)
	sc.Step(`^the targets:$`, gc.theTargets)
	sc.Step(`^refineries are capped at (\d+) ore$`, gc.refineriesAreCappedAt)
	sc.Step(`^idle assembler inputs are cleared$`, gc.idleAssemblerInputsAreCleared)

	sc.Step(`^the engine runs (\d+) cycles?$`, gc.theEngineRunsCycles)
	sc.Step(`^the operator runs '([^']*)'$`, gc.theOperatorRuns)

	sc.Step(`^"([^"]*)" should hold (\d+) (\w+) "([^"]*)"$`, gc.unitShouldHold)
	sc.Step(`^"([^"]*)" should hold no (\w+) "([^"]*)"$`, gc.unitShouldHoldNo)
	sc.Step(`^the cycle should report (\d+) stranded stacks?$`, gc.theCycleShouldReportStranded)
	sc.Step(`^the cycle should feed (\w+) ore$`, gc.theCycleShouldFeedOre)
	sc.Step(`^no ore should be fed$`, gc.noOreShouldBeFed)

	sc.Step(`^"([^"]*)" should have (\d+) (\w+) "([^"]*)" queued$`, gc.assemblerShouldHaveQueued)
	sc.Step(`^"([^"]*)" should have nothing queued$`, gc.assemblerShouldHaveNothingQueued)
	sc.Step(`^"([^"]*)" should (not )?be cooperative$`, gc.assemblerShouldBeCooperative)
	sc.Step(`^the production leader should be "([^"]*)"$`, gc.theLeaderShouldBe)

	sc.Step(`^the command should move (\d+) items?$`, gc.theCommandShouldMove)
	sc.Step(`^the command should fail with '([^']*)'$`, gc.theCommandShouldFailWith)
	sc.Step(`^nothing should have moved$`, gc.nothingShouldHaveMoved)
	sc.Step(`^the grid display should show "([^"]*)"$`, gc.theDisplayShouldShow)

	sc.Step(`^the latest snapshot should be for tick (\d+)$`, gc.theLatestSnapshotShouldBeForTick)
	sc.Step(`^the latest snapshot should record (\w+) "([^"]*)" at (\d+) of (\d+)$`, gc.theLatestSnapshotShouldRecord)
}
