package commands

import (
	"strings"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

const (
	VerbPush = "Push"
	VerbPull = "Pull"
	VerbSort = "Sort"

	listPrefix = "list:"
)

// PushCommand moves items from the connector's grid to the docked grid.
type PushCommand struct {
	Connector string
	Filter    []string
	List      string
}

// PullCommand moves items from the docked grid to the connector's grid.
type PullCommand struct {
	Connector string
	Filter    []string
	List      string
}

// SortCommand moves misplaced items on the own grid into suitable containers.
type SortCommand struct{}

// MoveResult is the response of every bulk move.
type MoveResult struct {
	Verb       string
	Sources    int
	Placements int
	Moved      inventory.Amount
	Stranded   int
}

// ParseCommand turns a command line into a request for the mediator.
func ParseCommand(line string) (common.Request, error) {
	args := Tokenize(line)
	if len(args) == 0 {
		return nil, &ErrEmptyCommand{}
	}

	switch args[0] {
	case VerbPush, VerbPull:
		if len(args) < 2 || len(args) > 3 {
			return nil, &ErrCommandSyntax{Verb: args[0], Usage: args[0] + " <Connector Name> [Filter]"}
		}
		var filter []string
		list := ""
		if len(args) == 3 {
			if strings.HasPrefix(args[2], listPrefix) {
				list = strings.TrimPrefix(args[2], listPrefix)
			} else {
				filter = Tokenize(args[2])
			}
		}
		if args[0] == VerbPush {
			return &PushCommand{Connector: args[1], Filter: filter, List: list}, nil
		}
		return &PullCommand{Connector: args[1], Filter: filter, List: list}, nil
	case VerbSort:
		if len(args) != 1 {
			return nil, &ErrCommandSyntax{Verb: VerbSort, Usage: VerbSort}
		}
		return &SortCommand{}, nil
	default:
		return nil, &ErrUnknownCommand{Verb: args[0]}
	}
}
