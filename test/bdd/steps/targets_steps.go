package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/gridstock/internal/adapters/grid"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/targets"
)

type targetsContext struct {
	cfg *targets.Config
}

func (tc *targetsContext) reset() {
	tc.cfg = nil
}

func (tc *targetsContext) iParseTheTargetBlock(doc *godog.DocString) error {
	tc.cfg = targets.Parse(doc.Content)
	return nil
}

func key(category, subtype string) inventory.MaterialKey {
	return inventory.MaterialKey{Category: grid.CategoryFromShort(category), Subtype: subtype}
}

func (tc *targetsContext) theTargetShouldBe(category, subtype string, amount int) error {
	got := tc.cfg.Target(key(category, subtype))
	if want := inventory.Items(int64(amount)); got != want {
		return fmt.Errorf("expected target %s for %s %s but got %s", want, category, subtype, got)
	}
	return nil
}

func (tc *targetsContext) thereShouldBeTargets(n int) error {
	if len(tc.cfg.Targets) != n {
		return fmt.Errorf("expected %d targets but got %d", n, len(tc.cfg.Targets))
	}
	return nil
}

func (tc *targetsContext) theListShouldHold(name string, amount int, category, subtype string) error {
	list, ok := tc.cfg.List(name)
	if !ok {
		return fmt.Errorf("no transfer list %q", name)
	}
	got := list.Amount(key(category, subtype))
	if want := inventory.Items(int64(amount)); got != want {
		return fmt.Errorf("expected list %s to hold %s %s %s but got %s", name, want, category, subtype, got)
	}
	return nil
}

func (tc *targetsContext) theListsShouldBe(names string) error {
	got := strings.Join(tc.cfg.ListNames(), ", ")
	if got != names {
		return fmt.Errorf("expected lists %q but got %q", names, got)
	}
	return nil
}

func (tc *targetsContext) lineShouldBeRejectedWith(line int, text string) error {
	for _, e := range tc.cfg.Errors {
		if e.Line != line {
			continue
		}
		if !strings.Contains(e.Message, text) {
			return fmt.Errorf("line %d rejected with %q, expected %q", line, e.Message, text)
		}
		return nil
	}
	return fmt.Errorf("line %d was not rejected; errors: %s", line, tc.cfg.Summary())
}

func (tc *targetsContext) thereShouldBeRejectedLines(n int) error {
	if len(tc.cfg.Errors) != n {
		return fmt.Errorf("expected %d rejected lines but got %d: %s", n, len(tc.cfg.Errors), tc.cfg.Summary())
	}
	return nil
}

// InitializeTargetsScenario registers the target parser steps.
func InitializeTargetsScenario(sc *godog.ScenarioContext) {
	tc := &targetsContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	sc.Step(`^I parse the target block:$`, tc.iParseTheTargetBlock)
	sc.Step(`^the target for (\w+) "([^"]*)" should be (\d+)$`, tc.theTargetShouldBe)
	sc.Step(`^there should be (\d+) targets?$`, tc.thereShouldBeTargets)
	sc.Step(`^the transfer list "([^"]*)" should hold (\d+) (\w+) "([^"]*)"$`, tc.theListShouldHold)
	sc.Step(`^the transfer lists should be "([^"]*)"$`, tc.theListsShouldBe)
	sc.Step(`^line (\d+) should be rejected with "([^"]*)"$`, tc.lineShouldBeRejectedWith)
	sc.Step(`^there should be (\d+) rejected lines?$`, tc.thereShouldBeRejectedLines)
}
