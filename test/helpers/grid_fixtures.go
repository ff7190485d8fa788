package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/adapters/grid"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/placement"
)

// BaseGrid is the grid the engine runs on in fixtures
const BaseGrid inventory.GridID = "base"

// BlueprintPrefix is prepended to recipe names by fixture recipe books
const BlueprintPrefix = grid.BlueprintPrefix

// Fixture building blocks. Tests outside the adapters use these names so the
// fake host can change without touching them.
type (
	World     = grid.World
	Store     = grid.Store
	Refinery  = grid.Refinery
	Assembler = grid.Assembler
)

// NewWorld creates an empty world running on self with no recipes.
func NewWorld(self inventory.GridID) *World {
	return grid.NewWorld(self, nil)
}

// NewBaseWorld creates an empty world on BaseGrid that knows the recipes used
// across the test suites.
func NewBaseWorld() *World {
	w := NewWorld(BaseGrid)
	w.AddRecipe("SteelPlate", inventory.Component("SteelPlate"))
	w.AddRecipe("InteriorPlate", inventory.Component("InteriorPlate"))
	w.AddRecipe("MotorComponent", inventory.Component("Motor"))
	w.AddRecipe("ComputerComponent", inventory.Component("Computer"))
	w.AddRecipe("NATO_25x184mmMagazine", inventory.Ammunition("NATO_25x184mm"))
	return w
}

// FirstStack returns the first stack of s, failing the test when s is empty.
func FirstStack(t *testing.T, s *Store) inventory.Stack {
	t.Helper()
	stacks, err := s.Stacks()
	require.NoError(t, err)
	require.NotEmpty(t, stacks)
	return stacks[0]
}

// Describe returns the placement descriptor of the container owning s.
func Describe(s *Store) placement.ContainerDescriptor {
	d, _ := placement.DescribeContainer(s.Owner())
	return d
}

// Litres is shorthand for whole-litre volumes in fixtures
func Litres(n int64) inventory.Volume { return inventory.Litres(n) }

// Items is shorthand for whole-item amounts in fixtures
func Items(n int64) inventory.Amount { return inventory.Items(n) }
