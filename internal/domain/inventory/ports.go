package inventory

// GridID names one connected structure. Units on the same grid share a
// conveyor network; docking links join grids temporarily.
type GridID string

// Stack is one item stack as read from an inventory.
type Stack struct {
	Index      int
	Key        MaterialKey
	Flags      ItemFlags
	Amount     Amount
	UnitVolume Volume
}

// Kind derives the item family from the stack's flags.
func (s Stack) Kind() ItemKind {
	return KindFromFlags(s.Flags)
}

// Volume returns the volume occupied by the whole stack.
func (s Stack) Volume() Volume {
	return VolumeOf(s.Amount, s.UnitVolume)
}

// Inventory is the host's view of a single item store.
type Inventory interface {
	// Stacks lists the current item stacks; indexes are valid until the next transfer.
	Stacks() ([]Stack, error)

	MaxVolume() Volume
	CurrentVolume() Volume

	// CanTransferTo reports whether the conveyor network links the two
	// inventories for this item type.
	CanTransferTo(dst Inventory, key MaterialKey) bool

	// TransferTo moves up to amount from the stack at stackIndex into dst.
	TransferTo(dst Inventory, stackIndex int, amount Amount) bool
}

// FreeVolume returns the unused capacity of an inventory, never negative.
func FreeVolume(inv Inventory) Volume {
	free := inv.MaxVolume() - inv.CurrentVolume()
	if free < 0 {
		return 0
	}
	return free
}

// Holds reports whether the inventory has at least one stack of key.
// Unreadable inventories are treated as not holding it.
func Holds(inv Inventory, key MaterialKey) bool {
	stacks, err := inv.Stacks()
	if err != nil {
		return false
	}
	for _, s := range stacks {
		if s.Key == key {
			return true
		}
	}
	return false
}

// UnitKind classifies host units.
type UnitKind int

const (
	UnitOther UnitKind = iota
	UnitContainer
	UnitProcessor
	UnitProduction
	UnitConnector
	UnitReactor
	UnitGasGenerator
	UnitWeapon
)

func (k UnitKind) String() string {
	switch k {
	case UnitContainer:
		return "container"
	case UnitProcessor:
		return "refinery"
	case UnitProduction:
		return "assembler"
	case UnitConnector:
		return "connector"
	case UnitReactor:
		return "reactor"
	case UnitGasGenerator:
		return "gas_generator"
	case UnitWeapon:
		return "weapon"
	default:
		return "other"
	}
}

// Unit is any block of the host that can hold inventories.
type Unit interface {
	Name() string
	Grid() GridID
	Kind() UnitKind
	Inventories() []Inventory
}

// ProcessingUnit turns ore into ingots.
type ProcessingUnit interface {
	Unit
	Input() Inventory
	Output() Inventory
	IsFunctional() bool
}

// Blueprint references a host recipe.
type Blueprint struct {
	ID string
}

// QueueItem is one build order already committed to a production unit.
type QueueItem struct {
	Blueprint Blueprint
	Key       MaterialKey
	Amount    Amount
}

// ProductionUnit assembles components and ammunition from ingots.
type ProductionUnit interface {
	Unit
	Input() Inventory
	Output() Inventory
	IsFunctional() bool
	IsProducing() bool
	Queue() ([]QueueItem, error)
	Enqueue(bp Blueprint, amount Amount) error
	SetCooperative(cooperative bool)
}

// Connector is a docking port linking the own grid to another one.
type Connector interface {
	Unit
	IsConnected() bool
	OtherGrid() GridID
}

// Host enumerates the live units of the environment.
type Host interface {
	Units() []Unit
	UnitByName(name string) (Unit, bool)
	SelfGrid() GridID
}

// RecipeBook resolves recipe names to blueprints.
type RecipeBook interface {
	Lookup(name string) (Blueprint, bool)
}

// TextSink accepts formatted diagnostic or status text.
type TextSink interface {
	WriteText(text string)
}
