package inventory

import "fmt"

// NeutralRatio is reported for slots without a target. A slot with nothing to
// aim for is treated as exactly on target, so it never ranks as a deficit.
const NeutralRatio = 1.0

// InventorySlot aggregates one material across every unit swept this cycle.
//
// Invariants:
// - Cargo <= Total (cargo is the share of Total held in storage containers)
type InventorySlot struct {
	Total  Amount
	Cargo  Amount
	Target Amount
}

// Ratio returns Total/Target, or NeutralRatio when no target is set.
func (s *InventorySlot) Ratio() float64 {
	if s.Target <= 0 {
		return NeutralRatio
	}
	return float64(s.Total) / float64(s.Target)
}

// HasTarget reports whether the operator declared a goal for this material.
func (s *InventorySlot) HasTarget() bool {
	return s.Target > 0
}

// Deficit returns how far Total falls short of Target, or zero.
func (s *InventorySlot) Deficit() Amount {
	if s.Total >= s.Target {
		return 0
	}
	return s.Target - s.Total
}

func (s *InventorySlot) String() string {
	return fmt.Sprintf("Slot(total=%s cargo=%s target=%s)", s.Total, s.Cargo, s.Target)
}
