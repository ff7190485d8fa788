package grid

import (
	"strings"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// BlueprintPrefix is prepended to recipe names to form blueprint IDs.
const BlueprintPrefix = "MyObjectBuilder_BlueprintDefinition/"

// World is an in-memory host: a set of grids, their blocks, the docking links
// between them and the recipes production blocks understand. It implements
// inventory.Host, inventory.RecipeBook and inventory.TextSink.
type World struct {
	self    inventory.GridID
	catalog *Catalog
	items   []ItemSpec
	units   []inventory.Unit
	byName  map[string]inventory.Unit
	recipes map[string]inventory.MaterialKey

	transfers int
	output    []string
}

// NewWorld creates an empty world whose engine runs on self
func NewWorld(self inventory.GridID, catalog *Catalog) *World {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &World{
		self:    self,
		catalog: catalog,
		byName:  make(map[string]inventory.Unit),
		recipes: make(map[string]inventory.MaterialKey),
	}
}

func (w *World) newBlock(name string, grid inventory.GridID, kind inventory.UnitKind, volumes ...inventory.Volume) *Block {
	b := &Block{name: name, grid: grid, kind: kind}
	for _, v := range volumes {
		b.stores = append(b.stores, newStore(w, b, v))
	}
	return b
}

func (w *World) register(u inventory.Unit) {
	w.units = append(w.units, u)
	if _, exists := w.byName[u.Name()]; !exists {
		w.byName[u.Name()] = u
	}
}

// AddContainer adds a cargo container and returns its store.
func (w *World) AddContainer(name string, grid inventory.GridID, volume inventory.Volume) *Store {
	b := w.newBlock(name, grid, inventory.UnitContainer, volume)
	w.register(b)
	return b.stores[0]
}

// AddBlock adds a single-inventory block of any other kind (reactor, weapon...).
func (w *World) AddBlock(name string, grid inventory.GridID, kind inventory.UnitKind, volume inventory.Volume) *Block {
	b := w.newBlock(name, grid, kind, volume)
	w.register(b)
	return b
}

// AddRefinery adds a functional refinery.
func (w *World) AddRefinery(name string, grid inventory.GridID, input, output inventory.Volume) *Refinery {
	r := &Refinery{Block: w.newBlock(name, grid, inventory.UnitProcessor, input, output), Functional: true}
	w.register(r)
	return r
}

// AddAssembler adds a functional, idle assembler.
func (w *World) AddAssembler(name string, grid inventory.GridID, input, output inventory.Volume) *Assembler {
	a := &Assembler{Block: w.newBlock(name, grid, inventory.UnitProduction, input, output), Functional: true}
	w.register(a)
	return a
}

// AddConnector adds a docking port on grid facing other.
func (w *World) AddConnector(name string, grid, other inventory.GridID, connected bool) *Connector {
	c := &Connector{Block: w.newBlock(name, grid, inventory.UnitConnector, inventory.Litres(1152)), Connected: connected, Other: other}
	w.register(c)
	return c
}

// AddRecipe makes a recipe name resolvable to a blueprint producing output.
func (w *World) AddRecipe(name string, output inventory.MaterialKey) {
	w.recipes[name] = output
}

// Catalog returns the item catalog in use.
func (w *World) Catalog() *Catalog { return w.catalog }

// Units lists every unit in discovery order.
func (w *World) Units() []inventory.Unit {
	out := make([]inventory.Unit, len(w.units))
	copy(out, w.units)
	return out
}

// UnitByName returns the first unit registered under name.
func (w *World) UnitByName(name string) (inventory.Unit, bool) {
	u, ok := w.byName[name]
	return u, ok
}

// SelfGrid returns the grid the engine runs on.
func (w *World) SelfGrid() inventory.GridID { return w.self }

// Lookup resolves a recipe name to a blueprint.
func (w *World) Lookup(name string) (inventory.Blueprint, bool) {
	if _, ok := w.recipes[name]; !ok {
		return inventory.Blueprint{}, false
	}
	return inventory.Blueprint{ID: BlueprintPrefix + name}, true
}

func (w *World) recipeOutput(bp inventory.Blueprint) (inventory.MaterialKey, bool) {
	key, ok := w.recipes[strings.TrimPrefix(bp.ID, BlueprintPrefix)]
	return key, ok
}

// WriteText records text written to the world's display.
func (w *World) WriteText(text string) {
	w.output = append(w.output, text)
}

// Output returns everything written through WriteText.
func (w *World) Output() []string {
	out := make([]string, len(w.output))
	copy(out, w.output)
	return out
}

// Transfers returns the number of successful transfers so far.
func (w *World) Transfers() int { return w.transfers }

// linked reports whether two grids share a conveyor network, directly or via
// one connected docking port.
func (w *World) linked(a, b inventory.GridID) bool {
	if a == b {
		return true
	}
	for _, u := range w.units {
		c, ok := u.(*Connector)
		if !ok || !c.Connected {
			continue
		}
		if (c.grid == a && c.Other == b) || (c.grid == b && c.Other == a) {
			return true
		}
	}
	return false
}
