package production

import "fmt"

// ErrEnqueueFailed is returned when a production unit refuses a build order
type ErrEnqueueFailed struct {
	UnitName string
	Recipe   string
	Cause    error
}

func (e *ErrEnqueueFailed) Error() string {
	return fmt.Sprintf("unit %s refused recipe %s: %v", e.UnitName, e.Recipe, e.Cause)
}

func (e *ErrEnqueueFailed) Unwrap() error {
	return e.Cause
}
