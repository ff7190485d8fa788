package production

import (
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// recipeSuffixes are tried in order after the bare subtype. Some components
// and most magazines are built from recipes named differently from the item.
var recipeSuffixes = []string{"", "Component", "Magazine"}

// RecipeCandidates lists the recipe names tried for a subtype, in order.
func RecipeCandidates(subtype string) []string {
	names := make([]string, len(recipeSuffixes))
	for i, suffix := range recipeSuffixes {
		names[i] = subtype + suffix
	}
	return names
}

// ResolveRecipe returns the first blueprint the book knows for key.
func ResolveRecipe(book inventory.RecipeBook, key inventory.MaterialKey) (inventory.Blueprint, string, bool) {
	for _, name := range RecipeCandidates(key.Subtype) {
		if bp, ok := book.Lookup(name); ok {
			return bp, name, true
		}
	}
	return inventory.Blueprint{}, "", false
}
