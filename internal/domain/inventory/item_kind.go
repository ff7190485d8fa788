package inventory

import "strings"

// ItemKind is the coarse family of an item, derived from its intrinsic flags.
// Values are single bits so they can be tested against an AcceptorMask.
type ItemKind int

const (
	KindOre        ItemKind = 1
	KindIngot      ItemKind = 2
	KindComponent  ItemKind = 4
	KindAmmunition ItemKind = 8
	KindOther      ItemKind = 16
)

// ItemFlags are the category flags the host reports for an item type.
type ItemFlags struct {
	IsOre       bool
	IsIngot     bool
	IsComponent bool
	IsAmmo      bool
}

// KindFromFlags derives the item kind. The first matching flag wins.
func KindFromFlags(f ItemFlags) ItemKind {
	switch {
	case f.IsOre:
		return KindOre
	case f.IsIngot:
		return KindIngot
	case f.IsComponent:
		return KindComponent
	case f.IsAmmo:
		return KindAmmunition
	default:
		return KindOther
	}
}

func (k ItemKind) String() string {
	switch k {
	case KindOre:
		return "ore"
	case KindIngot:
		return "ingot"
	case KindComponent:
		return "component"
	case KindAmmunition:
		return "ammunition"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// AcceptorMask is a bitset over ItemKind describing what a container takes.
type AcceptorMask int

// AcceptAll is the mask of a container with no recognised naming tag.
const AcceptAll AcceptorMask = 255

// AcceptorMaskFromName infers the mask from a container's display name.
//
//	"Material"             => ore | ingot
//	"Ore", "Ingot"         => that kind
//	"Component"            => component
//	"Ammo" / "Ammunition"  => ammunition
//
// Tags combine; a name without any tag accepts everything.
func AcceptorMaskFromName(name string) AcceptorMask {
	var mask AcceptorMask
	if strings.Contains(name, "Material") {
		mask |= AcceptorMask(KindOre) | AcceptorMask(KindIngot)
	}
	if strings.Contains(name, "Ore") {
		mask |= AcceptorMask(KindOre)
	}
	if strings.Contains(name, "Ingot") {
		mask |= AcceptorMask(KindIngot)
	}
	if strings.Contains(name, "Component") {
		mask |= AcceptorMask(KindComponent)
	}
	if strings.Contains(name, "Ammo") || strings.Contains(name, "Ammunition") {
		mask |= AcceptorMask(KindAmmunition)
	}
	if mask == 0 {
		return AcceptAll
	}
	return mask
}

// Accepts reports whether the mask includes the kind.
func (m AcceptorMask) Accepts(kind ItemKind) bool {
	return int(m)&int(kind) != 0
}

// Exclusive reports whether the mask accepts this kind and nothing else.
func (m AcceptorMask) Exclusive(kind ItemKind) bool {
	return int(m) == int(kind)
}
