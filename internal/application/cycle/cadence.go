package cycle

import (
	"github.com/andrescamacho/gridstock/internal/domain/shared"
)

// Cadence staggers an expensive subsystem: it fires on the first tick and
// then once every Interval ticks.
type Cadence struct {
	interval int
	since    int
	started  bool
}

// NewCadence creates a cadence firing every interval ticks.
func NewCadence(interval int) (*Cadence, error) {
	if interval < 1 {
		return nil, shared.NewValidationError("interval", "must be at least 1")
	}
	return &Cadence{interval: interval}, nil
}

// Due advances the cadence by one tick and reports whether it fires.
func (c *Cadence) Due() bool {
	if !c.started {
		c.started = true
		c.since = 0
		return true
	}
	c.since++
	if c.since >= c.interval {
		c.since = 0
		return true
	}
	return false
}

// Interval returns the configured period in ticks.
func (c *Cadence) Interval() int { return c.interval }
