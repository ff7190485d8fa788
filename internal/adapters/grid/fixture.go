package grid

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// Default block capacities in litres.
const (
	DefaultContainerVolume = 15625
	DefaultMachineVolume   = 7500
	DefaultBlockVolume     = 1000
)

// Fixture is the YAML description of a world.
type Fixture struct {
	Self    string       `yaml:"self"`
	Items   []ItemSpec   `yaml:"items,omitempty"`
	Recipes []RecipeSpec `yaml:"recipes,omitempty"`
	Blocks  []BlockSpec  `yaml:"blocks"`
}

// ItemSpec overrides the per-item volume of one item type
type ItemSpec struct {
	Category string  `yaml:"category"`
	Subtype  string  `yaml:"subtype"`
	Volume   float64 `yaml:"volume"`
}

// RecipeSpec declares a recipe name and what it produces ("Component/Motor")
type RecipeSpec struct {
	Name     string `yaml:"name"`
	Produces string `yaml:"produces"`
}

// StackSpec is one item stack inside a block
type StackSpec struct {
	Category string  `yaml:"category"`
	Subtype  string  `yaml:"subtype"`
	Amount   float64 `yaml:"amount"`
}

// QueueSpec is one committed build order
type QueueSpec struct {
	Recipe string  `yaml:"recipe"`
	Amount float64 `yaml:"amount"`
}

// BlockSpec describes a block. Type is one of container, refinery,
// assembler, connector, reactor, gas_generator, weapon, other.
type BlockSpec struct {
	Name         string      `yaml:"name"`
	Grid         string      `yaml:"grid"`
	Type         string      `yaml:"type"`
	Volume       float64     `yaml:"volume,omitempty"`
	InputVolume  float64     `yaml:"input_volume,omitempty"`
	OutputVolume float64     `yaml:"output_volume,omitempty"`
	ConnectsTo   string      `yaml:"connects_to,omitempty"`
	Connected    *bool       `yaml:"connected,omitempty"`
	Functional   *bool       `yaml:"functional,omitempty"`
	Producing    bool        `yaml:"producing,omitempty"`
	Cooperative  bool        `yaml:"cooperative,omitempty"`
	Items        []StackSpec `yaml:"items,omitempty"`
	OutputItems  []StackSpec `yaml:"output_items,omitempty"`
	Queue        []QueueSpec `yaml:"queue,omitempty"`
}

// LoadFile reads a YAML fixture from disk and builds the world.
func LoadFile(path string) (*World, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid file: %w", err)
	}
	return Load(raw)
}

// Load builds a world from YAML.
func Load(raw []byte) (*World, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse grid file: %w", err)
	}
	return f.Build()
}

// Build creates the world described by the fixture.
func (f *Fixture) Build() (*World, error) {
	if f.Self == "" {
		return nil, fmt.Errorf("grid file must name the engine's own grid in 'self'")
	}

	catalog := DefaultCatalog()
	for _, it := range f.Items {
		catalog.Set(inventory.MaterialKey{Category: CategoryFromShort(it.Category), Subtype: it.Subtype}, inventory.VolumeFromFloat(it.Volume))
	}

	w := NewWorld(inventory.GridID(f.Self), catalog)
	w.items = f.Items

	for _, r := range f.Recipes {
		key, err := parseProduces(r.Produces)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", r.Name, err)
		}
		w.AddRecipe(r.Name, key)
	}

	for i, b := range f.Blocks {
		if err := w.addSpec(b); err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, b.Name, err)
		}
	}
	return w, nil
}

func (w *World) addSpec(b BlockSpec) error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	grid := inventory.GridID(b.Grid)
	if grid == "" {
		grid = w.self
	}
	functional := b.Functional == nil || *b.Functional

	switch b.Type {
	case "container", "":
		s := w.AddContainer(b.Name, grid, litresOr(b.Volume, DefaultContainerVolume))
		putAll(s, b.Items)
	case "refinery":
		r := w.AddRefinery(b.Name, grid, litresOr(b.InputVolume, DefaultMachineVolume), litresOr(b.OutputVolume, DefaultMachineVolume))
		r.Functional = functional
		putAll(r.InputStore(), b.Items)
		putAll(r.OutputStore(), b.OutputItems)
	case "assembler":
		a := w.AddAssembler(b.Name, grid, litresOr(b.InputVolume, DefaultMachineVolume), litresOr(b.OutputVolume, DefaultMachineVolume))
		a.Functional = functional
		a.Producing = b.Producing
		a.Cooperative = b.Cooperative
		putAll(a.InputStore(), b.Items)
		putAll(a.OutputStore(), b.OutputItems)
		for _, q := range b.Queue {
			key, ok := w.recipes[q.Recipe]
			if !ok {
				return fmt.Errorf("queue references unknown recipe %s", q.Recipe)
			}
			a.queue = append(a.queue, inventory.QueueItem{
				Blueprint: inventory.Blueprint{ID: BlueprintPrefix + q.Recipe},
				Key:       key,
				Amount:    inventory.AmountFromFloat(q.Amount),
			})
		}
	case "connector":
		if b.ConnectsTo == "" {
			return fmt.Errorf("connector needs connects_to")
		}
		connected := b.Connected == nil || *b.Connected
		c := w.AddConnector(b.Name, grid, inventory.GridID(b.ConnectsTo), connected)
		putAll(c.stores[0], b.Items)
	default:
		kind, ok := kindFromName(b.Type)
		if !ok {
			return fmt.Errorf("unknown block type %q", b.Type)
		}
		blk := w.AddBlock(b.Name, grid, kind, litresOr(b.Volume, DefaultBlockVolume))
		putAll(blk.stores[0], b.Items)
	}
	return nil
}

// Fixture exports the current state of the world, so a tick's effects can be
// written back to the grid file.
func (w *World) Fixture() *Fixture {
	f := &Fixture{Self: string(w.self), Items: w.items}

	names := make([]string, 0, len(w.recipes))
	for name := range w.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		key := w.recipes[name]
		f.Recipes = append(f.Recipes, RecipeSpec{Name: name, Produces: key.ShortCategory() + "/" + key.Subtype})
	}

	for _, u := range w.units {
		f.Blocks = append(f.Blocks, specOf(u))
	}
	return f
}

// SaveFile writes the world back to a YAML fixture.
func (w *World) SaveFile(path string) error {
	raw, err := yaml.Marshal(w.Fixture())
	if err != nil {
		return fmt.Errorf("failed to encode grid file: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write grid file: %w", err)
	}
	return nil
}

func specOf(u inventory.Unit) BlockSpec {
	spec := BlockSpec{Name: u.Name(), Grid: string(u.Grid()), Type: u.Kind().String()}
	switch b := u.(type) {
	case *Refinery:
		f := b.Functional
		spec.Functional = &f
		spec.InputVolume = litresOf(b.InputStore().max)
		spec.OutputVolume = litresOf(b.OutputStore().max)
		spec.Items = stacksOf(b.InputStore())
		spec.OutputItems = stacksOf(b.OutputStore())
	case *Assembler:
		f := b.Functional
		spec.Functional = &f
		spec.Producing = b.Producing
		spec.Cooperative = b.Cooperative
		spec.InputVolume = litresOf(b.InputStore().max)
		spec.OutputVolume = litresOf(b.OutputStore().max)
		spec.Items = stacksOf(b.InputStore())
		spec.OutputItems = stacksOf(b.OutputStore())
		for _, q := range b.queue {
			spec.Queue = append(spec.Queue, QueueSpec{
				Recipe: strings.TrimPrefix(q.Blueprint.ID, BlueprintPrefix),
				Amount: q.Amount.Float64(),
			})
		}
	case *Connector:
		c := b.Connected
		spec.Connected = &c
		spec.ConnectsTo = string(b.Other)
		spec.Items = stacksOf(b.stores[0])
	case *Block:
		spec.Volume = litresOf(b.stores[0].max)
		spec.Items = stacksOf(b.stores[0])
	}
	return spec
}

func stacksOf(s *Store) []StackSpec {
	var out []StackSpec
	for _, e := range s.stacks {
		out = append(out, StackSpec{Category: e.key.ShortCategory(), Subtype: e.key.Subtype, Amount: e.amount.Float64()})
	}
	return out
}

func putAll(s *Store, stacks []StackSpec) {
	for _, st := range stacks {
		key := inventory.MaterialKey{Category: CategoryFromShort(st.Category), Subtype: st.Subtype}
		s.Put(key, inventory.AmountFromFloat(st.Amount))
	}
}

func parseProduces(s string) (inventory.MaterialKey, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return inventory.MaterialKey{}, fmt.Errorf("produces must be '<category>/<subtype>', got %q", s)
	}
	return inventory.NewMaterialKey(CategoryFromShort(parts[0]), parts[1])
}

func kindFromName(s string) (inventory.UnitKind, bool) {
	for _, k := range []inventory.UnitKind{
		inventory.UnitReactor, inventory.UnitGasGenerator, inventory.UnitWeapon, inventory.UnitOther,
	} {
		if k.String() == s {
			return k, true
		}
	}
	return inventory.UnitOther, false
}

func litresOr(v float64, def int64) inventory.Volume {
	if v <= 0 {
		return inventory.Litres(def)
	}
	return inventory.VolumeFromFloat(v)
}

func litresOf(v inventory.Volume) float64 {
	return float64(v) / inventory.Scale
}
