package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
)

// Dispatcher parses operator command lines and routes them through the
// mediator to the Push/Pull/Sort handlers. Every failure is also written to
// the diagnostic sink.
type Dispatcher struct {
	mediator common.Mediator
	sink     inventory.TextSink
}

// NewDispatcher registers the bulk-move handlers for host. lists resolves
// list: filters and may be nil; sink may be nil. Extra middleware runs inside
// the logging middleware.
func NewDispatcher(host inventory.Host, lists ListSource, sink inventory.TextSink, middleware ...common.Middleware) (*Dispatcher, error) {
	m := common.NewMediator()
	m.Use(common.LoggingMiddleware)
	for _, mw := range middleware {
		m.Use(mw)
	}

	transfer := NewTransferHandler(host, lists)
	if err := common.RegisterHandler[*PushCommand](m, transfer); err != nil {
		return nil, fmt.Errorf("failed to register push handler: %w", err)
	}
	if err := common.RegisterHandler[*PullCommand](m, transfer); err != nil {
		return nil, fmt.Errorf("failed to register pull handler: %w", err)
	}
	if err := common.RegisterHandler[*SortCommand](m, NewSortHandler(host)); err != nil {
		return nil, fmt.Errorf("failed to register sort handler: %w", err)
	}

	return &Dispatcher{mediator: m, sink: sink}, nil
}

// Execute runs one command line. Syntax and lookup errors have no side
// effects.
func (d *Dispatcher) Execute(ctx context.Context, line string) (*MoveResult, error) {
	request, err := ParseCommand(line)
	if err != nil {
		return nil, d.report(err)
	}

	resp, err := d.mediator.Send(ctx, request)
	if err != nil {
		return nil, d.report(err)
	}

	result, ok := resp.(*MoveResult)
	if !ok {
		return nil, d.report(fmt.Errorf("unexpected response type %T", resp))
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "Command completed", map[string]interface{}{
		"verb":       result.Verb,
		"placements": result.Placements,
		"moved":      result.Moved.String(),
		"stranded":   result.Stranded,
	})
	return result, nil
}

func (d *Dispatcher) report(err error) error {
	if d.sink != nil {
		d.sink.WriteText("Error: " + err.Error())
	}
	return err
}
