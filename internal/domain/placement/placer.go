package placement

import (
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// Result summarises one placement attempt
type Result struct {
	Placed       inventory.Amount
	Remaining    inventory.Amount
	Destinations []string
}

// Complete reports whether the whole stack left its source.
func (r Result) Complete() bool {
	return r.Remaining == 0
}

// Place moves a stack out of its source into the ranked candidates, splitting
// it across as many destinations as needed. Failed transfers are skipped;
// whatever does not fit stays in the source for the next cycle.
func Place(stack inventory.Stack, source inventory.Inventory, candidates []ContainerDescriptor) Result {
	result := Result{Remaining: stack.Amount}
	if stack.Amount <= 0 {
		return result
	}

	for _, dest := range Rank(stack, source, candidates) {
		amount := transferable(stack, result.Remaining, dest)
		if amount <= 0 {
			continue
		}
		if !source.TransferTo(dest.Inventory, stack.Index, amount) {
			continue
		}
		result.Remaining -= amount
		result.Placed += amount
		result.Destinations = append(result.Destinations, dest.Name)
		if result.Remaining <= 0 {
			result.Remaining = 0
			break
		}
	}

	return result
}

// transferable converts min(remaining volume, free volume) back to items.
func transferable(stack inventory.Stack, remaining inventory.Amount, dest ContainerDescriptor) inventory.Amount {
	if stack.UnitVolume <= 0 {
		return remaining
	}
	free := inventory.FreeVolume(dest.Inventory)
	needed := inventory.VolumeOf(remaining, stack.UnitVolume)
	if free >= needed {
		return remaining
	}
	return inventory.AmountFor(free, stack.UnitVolume).Min(remaining)
}
