package grid

import (
	"strings"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// ItemInfo is the intrinsic description of an item type
type ItemInfo struct {
	Flags      inventory.ItemFlags
	UnitVolume inventory.Volume
}

// Catalog resolves per-item volumes and kind flags.
type Catalog struct {
	items map[inventory.MaterialKey]ItemInfo
}

// Per-item volumes in litres for the common vanilla items.
var defaultVolumes = map[inventory.MaterialKey]float64{
	inventory.Component("SteelPlate"):         3,
	inventory.Component("InteriorPlate"):      5,
	inventory.Component("Construction"):       2,
	inventory.Component("Girder"):             2,
	inventory.Component("SmallTube"):          2,
	inventory.Component("LargeTube"):          38,
	inventory.Component("MetalGrid"):          15,
	inventory.Component("Motor"):              8,
	inventory.Component("Computer"):           1,
	inventory.Component("Display"):            6,
	inventory.Component("BulletproofGlass"):   8,
	inventory.Component("Superconductor"):     8,
	inventory.Component("PowerCell"):          40,
	inventory.Component("RadioCommunication"): 70,
	inventory.Component("Reactor"):            8,
	inventory.Component("Thrust"):             10,
	inventory.Component("Detector"):           6,
	inventory.Component("SolarCell"):          12,
	inventory.Component("Explosives"):         2,
	inventory.Ammunition("NATO_25x184mm"):     16,
	inventory.Ammunition("NATO_5p56x45mm"):    0.2,
	inventory.Ammunition("Missile200mm"):      60,
}

// NewCatalog creates an empty catalog that falls back to category defaults
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[inventory.MaterialKey]ItemInfo)}
}

// DefaultCatalog returns a catalog preloaded with vanilla item volumes
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for key, litres := range defaultVolumes {
		c.Set(key, inventory.VolumeFromFloat(litres))
	}
	return c
}

// Set registers the per-item volume of key; flags follow the category.
func (c *Catalog) Set(key inventory.MaterialKey, unitVolume inventory.Volume) {
	c.items[key] = ItemInfo{Flags: flagsFor(key.Category), UnitVolume: unitVolume}
}

// Info returns the description of key, falling back to category defaults.
func (c *Catalog) Info(key inventory.MaterialKey) ItemInfo {
	if info, ok := c.items[key]; ok {
		return info
	}
	return ItemInfo{Flags: flagsFor(key.Category), UnitVolume: categoryVolume(key.Category)}
}

func flagsFor(category string) inventory.ItemFlags {
	switch category {
	case inventory.CategoryOre:
		return inventory.ItemFlags{IsOre: true}
	case inventory.CategoryIngot:
		return inventory.ItemFlags{IsIngot: true}
	case inventory.CategoryComponent:
		return inventory.ItemFlags{IsComponent: true}
	case inventory.CategoryAmmunition:
		return inventory.ItemFlags{IsAmmo: true}
	default:
		return inventory.ItemFlags{}
	}
}

func categoryVolume(category string) inventory.Volume {
	switch category {
	case inventory.CategoryOre:
		return inventory.VolumeFromFloat(0.37)
	case inventory.CategoryIngot:
		return inventory.VolumeFromFloat(0.127)
	case inventory.CategoryAmmunition:
		return inventory.Litres(10)
	default:
		return inventory.Litres(1)
	}
}

// CategoryFromShort expands fixture shorthands ("Ore", "Ammo") to host
// category identifiers. Fully qualified identifiers pass through.
func CategoryFromShort(s string) string {
	if strings.HasPrefix(s, "MyObjectBuilder_") {
		return s
	}
	switch strings.ToLower(s) {
	case "ammo", "ammunition", "ammomagazine":
		return inventory.CategoryAmmunition
	}
	return "MyObjectBuilder_" + s
}
