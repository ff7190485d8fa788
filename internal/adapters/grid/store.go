package grid

import (
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

type entry struct {
	key    inventory.MaterialKey
	amount inventory.Amount
}

// Store is an in-memory inventory owned by a block.
type Store struct {
	world  *World
	owner  *Block
	max    inventory.Volume
	stacks []*entry

	// ReadErr, when set, is returned by Stacks to simulate an unreadable block.
	ReadErr error
	// Sealed stores refuse every transfer in or out.
	Sealed bool
}

func newStore(w *World, owner *Block, max inventory.Volume) *Store {
	return &Store{world: w, owner: owner, max: max}
}

// Owner returns the block holding this store
func (s *Store) Owner() *Block { return s.owner }

// Put adds items, merging into an existing stack of the same key.
func (s *Store) Put(key inventory.MaterialKey, amount inventory.Amount) *Store {
	if amount <= 0 {
		return s
	}
	for _, e := range s.stacks {
		if e.key == key {
			e.amount += amount
			return s
		}
	}
	s.stacks = append(s.stacks, &entry{key: key, amount: amount})
	return s
}

// Amount returns the total of key held in this store.
func (s *Store) Amount(key inventory.MaterialKey) inventory.Amount {
	var total inventory.Amount
	for _, e := range s.stacks {
		if e.key == key {
			total += e.amount
		}
	}
	return total
}

// IsEmpty reports whether the store holds nothing
func (s *Store) IsEmpty() bool {
	return len(s.stacks) == 0
}

// Stacks lists the current item stacks.
func (s *Store) Stacks() ([]inventory.Stack, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	out := make([]inventory.Stack, 0, len(s.stacks))
	for i, e := range s.stacks {
		info := s.world.catalog.Info(e.key)
		out = append(out, inventory.Stack{
			Index:      i,
			Key:        e.key,
			Flags:      info.Flags,
			Amount:     e.amount,
			UnitVolume: info.UnitVolume,
		})
	}
	return out, nil
}

// MaxVolume returns the capacity of the store.
func (s *Store) MaxVolume() inventory.Volume { return s.max }

// CurrentVolume returns the volume currently occupied.
func (s *Store) CurrentVolume() inventory.Volume {
	var used inventory.Volume
	for _, e := range s.stacks {
		used += inventory.VolumeOf(e.amount, s.world.catalog.Info(e.key).UnitVolume)
	}
	return used
}

// CanTransferTo reports whether both stores are open and their grids are
// joined, either directly or through a connected docking port.
func (s *Store) CanTransferTo(dst inventory.Inventory, key inventory.MaterialKey) bool {
	d, ok := dst.(*Store)
	if !ok || d.world != s.world || d == s {
		return false
	}
	if s.Sealed || d.Sealed {
		return false
	}
	return s.world.linked(s.owner.grid, d.owner.grid)
}

// TransferTo moves up to amount from the stack at stackIndex into dst. The
// transfer fails when the destination lacks room for the requested amount.
func (s *Store) TransferTo(dst inventory.Inventory, stackIndex int, amount inventory.Amount) bool {
	if amount <= 0 || stackIndex < 0 || stackIndex >= len(s.stacks) {
		return false
	}
	e := s.stacks[stackIndex]
	if !s.CanTransferTo(dst, e.key) {
		return false
	}
	d := dst.(*Store)

	amount = amount.Min(e.amount)
	need := inventory.VolumeOf(amount, s.world.catalog.Info(e.key).UnitVolume)
	if inventory.FreeVolume(d) < need {
		return false
	}

	e.amount -= amount
	if e.amount <= 0 {
		s.stacks = append(s.stacks[:stackIndex], s.stacks[stackIndex+1:]...)
	}
	d.Put(e.key, amount)
	s.world.transfers++
	return true
}
