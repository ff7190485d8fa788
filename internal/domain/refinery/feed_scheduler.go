package refinery

import (
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/placement"
)

// DefaultMaxOrePerUnit caps a single unit's share of one feed.
var DefaultMaxOrePerUnit = inventory.Items(10000)

// Selection is the material chosen for this cycle's feed.
type Selection struct {
	Material string
	Ore      inventory.MaterialKey
	Ratio    float64
	Cargo    inventory.Amount
	PerUnit  inventory.Amount
}

// FeedResult reports what a feed pass moved.
type FeedResult struct {
	Selection Selection
	Selected  bool
	Units     int
	Delivered inventory.Amount
}

// FeedScheduler picks the ore whose ingot is furthest below target and
// spreads the stored ore evenly across the active processing units.
type FeedScheduler struct {
	maxPerUnit inventory.Amount
}

// NewFeedScheduler creates a scheduler. A non-positive cap falls back to
// DefaultMaxOrePerUnit.
func NewFeedScheduler(maxPerUnit inventory.Amount) *FeedScheduler {
	if maxPerUnit <= 0 {
		maxPerUnit = DefaultMaxOrePerUnit
	}
	return &FeedScheduler{maxPerUnit: maxPerUnit}
}

// MaxPerUnit returns the per-unit cap in effect.
func (s *FeedScheduler) MaxPerUnit() inventory.Amount {
	return s.maxPerUnit
}

// Select returns the most deficient material among those with stored ore and
// an ingot target. Names are scanned in sorted order and the first minimum
// wins ties.
func (s *FeedScheduler) Select(inv *inventory.GlobalInventory, activeUnits int) (Selection, bool) {
	if activeUnits <= 0 {
		return Selection{}, false
	}

	var best Selection
	found := false
	for _, name := range inv.AvailableMaterials() {
		ore := inv.Slot(inventory.Ore(name))
		if !ore.Cargo.IsPositive() {
			continue
		}
		ingot := inv.Slot(inventory.Ingot(name))
		if !ingot.HasTarget() {
			continue
		}
		ratio := ingot.Ratio()
		if found && ratio >= best.Ratio {
			continue
		}
		best = Selection{
			Material: name,
			Ore:      inventory.Ore(name),
			Ratio:    ratio,
			Cargo:    ore.Cargo,
		}
		found = true
	}
	if !found {
		return Selection{}, false
	}

	best.PerUnit = best.Cargo.DivN(activeUnits).Min(s.maxPerUnit)
	return best, true
}

// Feed selects a material and pulls up to the per-unit share into each
// functional unit's input from the storage containers linked to it. Falling
// short is not an error; the next cycle tries again.
func (s *FeedScheduler) Feed(inv *inventory.GlobalInventory, units []inventory.ProcessingUnit, containers []placement.ContainerDescriptor) FeedResult {
	active := make([]inventory.ProcessingUnit, 0, len(units))
	for _, u := range units {
		if u.IsFunctional() {
			active = append(active, u)
		}
	}

	sel, ok := s.Select(inv, len(active))
	if !ok {
		return FeedResult{}
	}

	result := FeedResult{Selection: sel, Selected: true, Units: len(active)}
	for _, u := range active {
		input := u.Input()
		want := sel.PerUnit
		for _, c := range containers {
			if want <= 0 {
				break
			}
			if !c.Inventory.CanTransferTo(input, sel.Ore) {
				continue
			}
			moved := Pull(c.Inventory, input, sel.Ore, want)
			want -= moved
			result.Delivered += moved
		}
	}
	return result
}

// Pull moves up to want of key from src into dst, one stack at a time, and
// returns the amount actually moved.
func Pull(src, dst inventory.Inventory, key inventory.MaterialKey, want inventory.Amount) inventory.Amount {
	var moved inventory.Amount
	for moved < want {
		stacks, err := src.Stacks()
		if err != nil {
			return moved
		}
		st, ok := findStack(stacks, key)
		if !ok {
			return moved
		}

		amount := (want - moved).Min(st.Amount)
		if st.UnitVolume > 0 {
			amount = amount.Min(inventory.AmountFor(inventory.FreeVolume(dst), st.UnitVolume))
		}
		if amount <= 0 || !src.TransferTo(dst, st.Index, amount) {
			return moved
		}
		moved += amount
		// a partial take means either the request or the destination is satisfied
		if amount < st.Amount {
			return moved
		}
	}
	return moved
}

func findStack(stacks []inventory.Stack, key inventory.MaterialKey) (inventory.Stack, bool) {
	for _, st := range stacks {
		if st.Key == key && st.Amount > 0 {
			return st, true
		}
	}
	return inventory.Stack{}, false
}
