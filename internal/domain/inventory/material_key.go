package inventory

import (
	"fmt"
	"strings"
)

// Host category identifiers for the item families the engine reasons about.
const (
	CategoryOre        = "MyObjectBuilder_Ore"
	CategoryIngot      = "MyObjectBuilder_Ingot"
	CategoryComponent  = "MyObjectBuilder_Component"
	CategoryAmmunition = "MyObjectBuilder_AmmoMagazine"
)

// MaterialKey identifies one specific kind of item by category and subtype,
// e.g. (MyObjectBuilder_Ore, Iron).
type MaterialKey struct {
	Category string
	Subtype  string
}

// NewMaterialKey creates a material key with validation
func NewMaterialKey(category, subtype string) (MaterialKey, error) {
	if category == "" {
		return MaterialKey{}, &ErrInvalidMaterialKey{Category: category, Subtype: subtype, Reason: "category cannot be empty"}
	}
	if subtype == "" {
		return MaterialKey{}, &ErrInvalidMaterialKey{Category: category, Subtype: subtype, Reason: "subtype cannot be empty"}
	}
	return MaterialKey{Category: category, Subtype: subtype}, nil
}

// Ore returns the ore key for a subtype
func Ore(subtype string) MaterialKey {
	return MaterialKey{Category: CategoryOre, Subtype: subtype}
}

// Ingot returns the ingot key for a subtype
func Ingot(subtype string) MaterialKey {
	return MaterialKey{Category: CategoryIngot, Subtype: subtype}
}

// Component returns the component key for a subtype
func Component(subtype string) MaterialKey {
	return MaterialKey{Category: CategoryComponent, Subtype: subtype}
}

// Ammunition returns the ammunition key for a subtype
func Ammunition(subtype string) MaterialKey {
	return MaterialKey{Category: CategoryAmmunition, Subtype: subtype}
}

// IsManufactured reports whether items of this key come out of production units.
func (k MaterialKey) IsManufactured() bool {
	return k.Category == CategoryComponent || k.Category == CategoryAmmunition
}

// Matches reports whether any filter term occurs in the category or subtype.
// An empty filter matches every key.
func (k MaterialKey) Matches(filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, term := range filter {
		if strings.Contains(k.Category, term) || strings.Contains(k.Subtype, term) {
			return true
		}
	}
	return false
}

// ShortCategory strips the host's object-builder prefix for display.
func (k MaterialKey) ShortCategory() string {
	return strings.TrimPrefix(k.Category, "MyObjectBuilder_")
}

// Less orders keys by category, then subtype.
func (k MaterialKey) Less(other MaterialKey) bool {
	if k.Category != other.Category {
		return k.Category < other.Category
	}
	return k.Subtype < other.Subtype
}

func (k MaterialKey) String() string {
	return fmt.Sprintf("%s/%s", k.ShortCategory(), k.Subtype)
}
