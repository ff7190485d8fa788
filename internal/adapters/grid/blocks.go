package grid

import (
	"fmt"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// Block is any unit of the in-memory world.
type Block struct {
	name   string
	grid   inventory.GridID
	kind   inventory.UnitKind
	stores []*Store
}

func (b *Block) Name() string { return b.name }
func (b *Block) Grid() inventory.GridID { return b.grid }
func (b *Block) Kind() inventory.UnitKind { return b.kind }
func (b *Block) Store(i int) *Store { return b.stores[i] }

// Inventories returns every inventory of the block in host order.
func (b *Block) Inventories() []inventory.Inventory {
	out := make([]inventory.Inventory, len(b.stores))
	for i, s := range b.stores {
		out[i] = s
	}
	return out
}

// Refinery is an ore-processing block with an input and an output store.
type Refinery struct {
	*Block
	Functional bool
}

func (r *Refinery) Input() inventory.Inventory { return r.stores[0] }
func (r *Refinery) Output() inventory.Inventory { return r.stores[1] }
func (r *Refinery) InputStore() *Store { return r.stores[0] }
func (r *Refinery) OutputStore() *Store { return r.stores[1] }
func (r *Refinery) IsFunctional() bool { return r.Functional }

// Assembler is a production block with a build queue.
type Assembler struct {
	*Block
	Functional  bool
	Producing   bool
	Cooperative bool
	queue       []inventory.QueueItem
}

func (a *Assembler) Input() inventory.Inventory { return a.stores[0] }
func (a *Assembler) Output() inventory.Inventory { return a.stores[1] }
func (a *Assembler) InputStore() *Store { return a.stores[0] }
func (a *Assembler) OutputStore() *Store { return a.stores[1] }
func (a *Assembler) IsFunctional() bool { return a.Functional }
func (a *Assembler) IsProducing() bool { return a.Producing }
func (a *Assembler) SetCooperative(c bool) { a.Cooperative = c }

// Queue returns a copy of the committed build orders.
func (a *Assembler) Queue() ([]inventory.QueueItem, error) {
	out := make([]inventory.QueueItem, len(a.queue))
	copy(out, a.queue)
	return out, nil
}

// Enqueue appends a build order for a blueprint known to the world.
func (a *Assembler) Enqueue(bp inventory.Blueprint, amount inventory.Amount) error {
	key, ok := a.worldOutput(bp)
	if !ok {
		return fmt.Errorf("unknown blueprint %s", bp.ID)
	}
	if !a.Functional {
		return fmt.Errorf("assembler %s is not functional", a.name)
	}
	a.queue = append(a.queue, inventory.QueueItem{Blueprint: bp, Key: key, Amount: amount})
	return nil
}

func (a *Assembler) worldOutput(bp inventory.Blueprint) (inventory.MaterialKey, bool) {
	return a.stores[0].world.recipeOutput(bp)
}

// Connector is a docking port joining its grid to another one when connected.
type Connector struct {
	*Block
	Connected bool
	Other     inventory.GridID
}

func (c *Connector) IsConnected() bool { return c.Connected }
func (c *Connector) OtherGrid() inventory.GridID { return c.Other }
