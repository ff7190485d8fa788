package commands

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueClosed is returned once the goroutine owning the grid has stopped
// draining commands.
var ErrQueueClosed = errors.New("engine is shutting down")

type queuedCommand struct {
	line  string
	reply chan queuedReply
}

type queuedReply struct {
	result *MoveResult
	err    error
}

// Queue hands command lines from other goroutines to the goroutine that owns
// the grid. Execute blocks until the owner drains the line with Drain.
type Queue struct {
	requests chan queuedCommand
	done     chan struct{}
	once     sync.Once
}

// NewQueue creates a queue holding up to size pending commands.
func NewQueue(size int) *Queue {
	return &Queue{
		requests: make(chan queuedCommand, size),
		done:     make(chan struct{}),
	}
}

// Execute queues line and waits for its result.
func (q *Queue) Execute(ctx context.Context, line string) (*MoveResult, error) {
	cmd := queuedCommand{line: line, reply: make(chan queuedReply, 1)}

	select {
	case q.requests <- cmd:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.done:
		return nil, ErrQueueClosed
	}

	select {
	case r := <-cmd.reply:
		return r.result, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.done:
		// The owner may have answered just before closing.
		select {
		case r := <-cmd.reply:
			return r.result, r.err
		default:
			return nil, ErrQueueClosed
		}
	}
}

// Drain executes every pending command through d without blocking and
// returns how many ran.
func (q *Queue) Drain(ctx context.Context, d *Dispatcher) int {
	n := 0
	for {
		select {
		case cmd := <-q.requests:
			result, err := d.Execute(ctx, cmd.line)
			cmd.reply <- queuedReply{result: result, err: err}
			n++
		default:
			return n
		}
	}
}

// Close fails pending and future Execute calls with ErrQueueClosed.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}
