package inventory

import "fmt"

// ErrInvalidMaterialKey indicates a key with a missing part
type ErrInvalidMaterialKey struct {
	Category string
	Subtype  string
	Reason   string
}

func (e *ErrInvalidMaterialKey) Error() string {
	return fmt.Sprintf("invalid material key %q/%q: %s", e.Category, e.Subtype, e.Reason)
}

// ErrUnreadableInventory indicates the host could not list a unit's stacks
type ErrUnreadableInventory struct {
	UnitName string
	Cause    error
}

func (e *ErrUnreadableInventory) Error() string {
	return fmt.Sprintf("inventory of %s could not be read: %v", e.UnitName, e.Cause)
}

func (e *ErrUnreadableInventory) Unwrap() error {
	return e.Cause
}
