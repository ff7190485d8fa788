package inventory

import "sort"

// GlobalInventory is the per-cycle material snapshot. It is created empty,
// seeded with targets, filled by a single sweep and then only read.
type GlobalInventory struct {
	slots     map[MaterialKey]*InventorySlot
	available map[string]struct{}
}

// NewGlobalInventory creates an empty snapshot
func NewGlobalInventory() *GlobalInventory {
	return &GlobalInventory{
		slots:     make(map[MaterialKey]*InventorySlot),
		available: make(map[string]struct{}),
	}
}

// Reset drops every slot and available material.
func (g *GlobalInventory) Reset() {
	g.slots = make(map[MaterialKey]*InventorySlot)
	g.available = make(map[string]struct{})
}

func (g *GlobalInventory) slot(key MaterialKey) *InventorySlot {
	s, ok := g.slots[key]
	if !ok {
		s = &InventorySlot{}
		g.slots[key] = s
	}
	return s
}

// AddTarget adds to the target of a material.
func (g *GlobalInventory) AddTarget(key MaterialKey, amount Amount) {
	g.slot(key).Target += amount
}

// ApplyTargets seeds targets from a parsed configuration.
func (g *GlobalInventory) ApplyTargets(targets map[MaterialKey]Amount) {
	for key, amount := range targets {
		g.AddTarget(key, amount)
	}
}

// AddStack accounts one item stack seen during the sweep. Stacks found in
// designated storage containers also count towards Cargo.
func (g *GlobalInventory) AddStack(key MaterialKey, amount Amount, inCargo bool) {
	s := g.slot(key)
	s.Total += amount
	if inCargo {
		s.Cargo += amount
	}
	if key.Category == CategoryOre || key.Category == CategoryIngot {
		g.available[key.Subtype] = struct{}{}
	}
}

// Slot returns a copy of the slot for key. Unknown keys yield an empty slot.
func (g *GlobalInventory) Slot(key MaterialKey) InventorySlot {
	if s, ok := g.slots[key]; ok {
		return *s
	}
	return InventorySlot{}
}

// Has reports whether the key was seeded or seen this cycle.
func (g *GlobalInventory) Has(key MaterialKey) bool {
	_, ok := g.slots[key]
	return ok
}

// Keys returns every known key, sorted by category then subtype.
func (g *GlobalInventory) Keys() []MaterialKey {
	keys := make([]MaterialKey, 0, len(g.slots))
	for k := range g.slots {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// AvailableMaterials returns the ore and ingot subtypes seen this cycle,
// sorted by name.
func (g *GlobalInventory) AvailableMaterials() []string {
	names := make([]string, 0, len(g.available))
	for name := range g.available {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of slots.
func (g *GlobalInventory) Len() int {
	return len(g.slots)
}
