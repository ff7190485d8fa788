package placement

import (
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// ContainerDescriptor is a storage container as known to the ranker: its
// inventory plus the kinds it is willing to receive.
type ContainerDescriptor struct {
	Name      string
	Grid      inventory.GridID
	Inventory inventory.Inventory
	Mask      inventory.AcceptorMask
}

// NewContainerDescriptor derives the acceptor mask from the container's name.
func NewContainerDescriptor(name string, grid inventory.GridID, inv inventory.Inventory) ContainerDescriptor {
	return ContainerDescriptor{
		Name:      name,
		Grid:      grid,
		Inventory: inv,
		Mask:      inventory.AcceptorMaskFromName(name),
	}
}

// DescribeContainer builds a descriptor from a host container unit.
// Containers expose exactly one inventory; others are rejected.
func DescribeContainer(u inventory.Unit) (ContainerDescriptor, bool) {
	if u.Kind() != inventory.UnitContainer {
		return ContainerDescriptor{}, false
	}
	invs := u.Inventories()
	if len(invs) == 0 {
		return ContainerDescriptor{}, false
	}
	return NewContainerDescriptor(u.Name(), u.Grid(), invs[0]), true
}
