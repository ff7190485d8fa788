package placement

import (
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// Score bits, combined into a 0-7 bucket key. Higher is more desirable.
const (
	scoreFits      = 1 << 0 // free volume holds the whole stack
	scoreHoldsSame = 1 << 1 // already stores this exact material
	scoreExclusive = 1 << 2 // single-purpose container for this kind

	bucketCount = 8
)

// Score returns the bucket key of a candidate that already passed filtering.
func Score(stack inventory.Stack, c ContainerDescriptor) int {
	score := 0
	if inventory.FreeVolume(c.Inventory) >= stack.Volume() {
		score |= scoreFits
	}
	if inventory.Holds(c.Inventory, stack.Key) {
		score |= scoreHoldsSame
	}
	if c.Mask.Exclusive(stack.Kind()) {
		score |= scoreExclusive
	}
	return score
}

// eligible applies the hard filters: the container must accept the kind, be
// reachable from the source, have room, and not be the source itself.
func eligible(stack inventory.Stack, source inventory.Inventory, c ContainerDescriptor) bool {
	if !c.Mask.Accepts(stack.Kind()) {
		return false
	}
	if c.Inventory == source {
		return false
	}
	if !source.CanTransferTo(c.Inventory, stack.Key) {
		return false
	}
	return inventory.FreeVolume(c.Inventory) > 0
}

// Rank orders candidate containers for a displaced stack, most desirable
// first. Candidates are bucketed by Score and buckets are emitted from 7 down
// to 0; within a bucket the discovery order of candidates is preserved.
func Rank(stack inventory.Stack, source inventory.Inventory, candidates []ContainerDescriptor) []ContainerDescriptor {
	var buckets [bucketCount][]ContainerDescriptor

	for _, c := range candidates {
		if !eligible(stack, source, c) {
			continue
		}
		key := Score(stack, c)
		buckets[key] = append(buckets[key], c)
	}

	ranked := make([]ContainerDescriptor, 0, len(candidates))
	for i := bucketCount - 1; i >= 0; i-- {
		ranked = append(ranked, buckets[i]...)
	}
	return ranked
}
