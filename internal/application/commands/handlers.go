package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/application/cycle"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/placement"
)

// ListSource resolves named transfer lists.
type ListSource interface {
	List(name string) (*inventory.TransferList, bool)
}

// skipped reports unit kinds whose inventories hold fuel or ammunition in use
// and must never be emptied by a bulk move.
func skipped(kind inventory.UnitKind) bool {
	switch kind {
	case inventory.UnitReactor, inventory.UnitGasGenerator, inventory.UnitWeapon:
		return true
	}
	return false
}

// picker decides how much of a stack a move takes; zero leaves it alone.
// Placed is told how much actually left the source.
type picker interface {
	Pick(unit inventory.Unit, st inventory.Stack) inventory.Amount
	Placed(key inventory.MaterialKey, placed inventory.Amount)
}

type filterPicker struct {
	filter []string
}

func (p filterPicker) Pick(_ inventory.Unit, st inventory.Stack) inventory.Amount {
	if st.Key.Matches(p.filter) {
		return st.Amount
	}
	return 0
}

func (filterPicker) Placed(inventory.MaterialKey, inventory.Amount) {}

// listPicker takes at most the declared quantity of each listed material
// across the whole move.
type listPicker struct {
	remaining map[inventory.MaterialKey]inventory.Amount
}

func newListPicker(list *inventory.TransferList) *listPicker {
	p := &listPicker{remaining: make(map[inventory.MaterialKey]inventory.Amount)}
	for _, key := range list.Keys() {
		p.remaining[key] = list.Amount(key)
	}
	return p
}

func (p *listPicker) Pick(_ inventory.Unit, st inventory.Stack) inventory.Amount {
	return p.remaining[st.Key].Min(st.Amount)
}

func (p *listPicker) Placed(key inventory.MaterialKey, placed inventory.Amount) {
	p.remaining[key] -= placed
}

// misplacedPicker selects everything outside containers, and whatever a
// container's name says it should not hold.
type misplacedPicker struct{}

func (misplacedPicker) Pick(u inventory.Unit, st inventory.Stack) inventory.Amount {
	if u.Kind() != inventory.UnitContainer {
		return st.Amount
	}
	if !inventory.AcceptorMaskFromName(u.Name()).Accepts(st.Kind()) {
		return st.Amount
	}
	return 0
}

func (misplacedPicker) Placed(inventory.MaterialKey, inventory.Amount) {}

// TransferHandler executes Push and Pull.
type TransferHandler struct {
	host  inventory.Host
	lists ListSource
}

// NewTransferHandler creates a handler resolving list: filters through lists.
func NewTransferHandler(host inventory.Host, lists ListSource) *TransferHandler {
	return &TransferHandler{host: host, lists: lists}
}

func (h *TransferHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	switch cmd := request.(type) {
	case *PushCommand:
		return h.transfer(ctx, VerbPush, cmd.Connector, cmd.Filter, cmd.List, true)
	case *PullCommand:
		return h.transfer(ctx, VerbPull, cmd.Connector, cmd.Filter, cmd.List, false)
	default:
		return nil, fmt.Errorf("invalid request type %T", request)
	}
}

func (h *TransferHandler) transfer(ctx context.Context, verb, name string, filter []string, listName string, push bool) (*MoveResult, error) {
	u, ok := h.host.UnitByName(name)
	if !ok {
		return nil, &ErrUnitNotFound{Name: name}
	}
	conn, ok := u.(inventory.Connector)
	if !ok || u.Kind() != inventory.UnitConnector {
		return nil, &ErrUnitNotFound{Name: name}
	}
	if !conn.IsConnected() {
		return nil, &ErrConnectorNotConnected{Name: name}
	}

	from, to := conn.Grid(), conn.OtherGrid()
	if !push {
		from, to = to, from
	}

	var pick picker = filterPicker{filter: filter}
	if listName != "" {
		if h.lists == nil {
			return nil, &ErrListNotFound{Name: listName}
		}
		list, ok := h.lists.List(listName)
		if !ok {
			return nil, &ErrListNotFound{Name: listName}
		}
		pick = newListPicker(list)
	}

	result := moveAll(ctx, h.host, from, cycle.ContainersOf(h.host, to), pick)
	result.Verb = verb
	return result, nil
}

// SortHandler executes Sort.
type SortHandler struct {
	host inventory.Host
}

// NewSortHandler creates a sort handler for host
func NewSortHandler(host inventory.Host) *SortHandler {
	return &SortHandler{host: host}
}

func (h *SortHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*SortCommand); !ok {
		return nil, fmt.Errorf("invalid request type %T", request)
	}

	self := h.host.SelfGrid()

	result := moveAll(ctx, h.host, self, cycle.ContainersOf(h.host, self), misplacedPicker{})
	result.Verb = VerbSort
	return result, nil
}

// moveAll visits every eligible unit of grid and places what pick selects
// into candidates. Stacks are walked from the highest index down so earlier
// indexes survive emptied stacks.
func moveAll(ctx context.Context, host inventory.Host, grid inventory.GridID, candidates []placement.ContainerDescriptor, pick picker) *MoveResult {
	logger := common.LoggerFromContext(ctx)
	result := &MoveResult{}

	for _, u := range host.Units() {
		if u.Grid() != grid || skipped(u.Kind()) {
			continue
		}
		invs := u.Inventories()
		if len(invs) == 0 {
			continue
		}
		result.Sources++

		for _, inv := range invs {
			stacks, err := inv.Stacks()
			if err != nil {
				logger.Log(common.LevelWarn, "Skipping unreadable inventory", map[string]interface{}{
					"unit":  u.Name(),
					"error": err.Error(),
				})
				continue
			}
			for i := len(stacks) - 1; i >= 0; i-- {
				st := stacks[i]
				take := pick.Pick(u, st)
				if take <= 0 {
					continue
				}
				st.Amount = take
				placed := placement.Place(st, inv, candidates)
				pick.Placed(st.Key, placed.Placed)
				result.Placements += len(placed.Destinations)
				result.Moved += placed.Placed
				if !placed.Complete() {
					result.Stranded++
				}
			}
		}
	}
	return result
}
