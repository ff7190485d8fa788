package commands

import "fmt"

// ErrEmptyCommand is returned for a blank command line
type ErrEmptyCommand struct{}

func (e *ErrEmptyCommand) Error() string {
	return "empty command"
}

// ErrUnknownCommand is returned when the verb is not Push, Pull or Sort
type ErrUnknownCommand struct {
	Verb string
}

func (e *ErrUnknownCommand) Error() string {
	return fmt.Sprintf("unknown command %q", e.Verb)
}

// ErrCommandSyntax is returned when a verb has the wrong number of arguments
type ErrCommandSyntax struct {
	Verb  string
	Usage string
}

func (e *ErrCommandSyntax) Error() string {
	return fmt.Sprintf("wrong syntax for command %q: %s", e.Verb, e.Usage)
}

// ErrUnitNotFound is returned when no connector has the given name
type ErrUnitNotFound struct {
	Name string
}

func (e *ErrUnitNotFound) Error() string {
	return fmt.Sprintf("no connector named %q found", e.Name)
}

// ErrConnectorNotConnected is returned when the named connector is not docked
type ErrConnectorNotConnected struct {
	Name string
}

func (e *ErrConnectorNotConnected) Error() string {
	return fmt.Sprintf("connector %q is not connected", e.Name)
}

// ErrListNotFound is returned when a list: filter names an undeclared list
type ErrListNotFound struct {
	Name string
}

func (e *ErrListNotFound) Error() string {
	return fmt.Sprintf("no transfer list named %q", e.Name)
}
