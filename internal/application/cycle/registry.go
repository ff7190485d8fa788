package cycle

import (
	"strings"

	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/domain/placement"
)

// DefaultRefineryTag marks processing units the engine may feed and clear.
const DefaultRefineryTag = "Auto"

// Registry is the structural view of the host, rebuilt on the slow cadence:
// containers grouped by grid plus the processing and production units of the
// engine's own grid.
type Registry struct {
	tag string

	self       inventory.GridID
	containers map[inventory.GridID][]placement.ContainerDescriptor
	refineries []inventory.ProcessingUnit
	assemblers []inventory.ProductionUnit
	built      bool
}

// NewRegistry creates an empty registry. Processing units are only managed
// when their name contains tag; an empty tag manages all of them.
func NewRegistry(tag string) *Registry {
	return &Registry{tag: tag, containers: make(map[inventory.GridID][]placement.ContainerDescriptor)}
}

// Rebuild rediscovers units from the host, keeping host discovery order.
func (r *Registry) Rebuild(host inventory.Host) {
	r.self = host.SelfGrid()
	r.containers = make(map[inventory.GridID][]placement.ContainerDescriptor)
	r.refineries = nil
	r.assemblers = nil

	for _, u := range host.Units() {
		switch u.Kind() {
		case inventory.UnitContainer:
			if d, ok := placement.DescribeContainer(u); ok {
				r.containers[d.Grid] = append(r.containers[d.Grid], d)
			}
		case inventory.UnitProcessor:
			p, ok := u.(inventory.ProcessingUnit)
			if ok && u.Grid() == r.self && strings.Contains(u.Name(), r.tag) {
				r.refineries = append(r.refineries, p)
			}
		case inventory.UnitProduction:
			p, ok := u.(inventory.ProductionUnit)
			if ok && u.Grid() == r.self {
				r.assemblers = append(r.assemblers, p)
			}
		}
	}
	r.built = true
}

// ContainersOf describes the storage containers of one grid in host order,
// without a full rediscovery.
func ContainersOf(host inventory.Host, grid inventory.GridID) []placement.ContainerDescriptor {
	var out []placement.ContainerDescriptor
	for _, u := range host.Units() {
		if u.Kind() != inventory.UnitContainer || u.Grid() != grid {
			continue
		}
		if d, ok := placement.DescribeContainer(u); ok {
			out = append(out, d)
		}
	}
	return out
}

// Built reports whether Rebuild ran at least once.
func (r *Registry) Built() bool { return r.built }

// Containers returns the storage containers of one grid.
func (r *Registry) Containers(grid inventory.GridID) []placement.ContainerDescriptor {
	return r.containers[grid]
}

// OwnContainers returns the storage containers of the engine's grid.
func (r *Registry) OwnContainers() []placement.ContainerDescriptor {
	return r.containers[r.self]
}

// ContainerCount returns the number of containers across all grids.
func (r *Registry) ContainerCount() int {
	n := 0
	for _, cs := range r.containers {
		n += len(cs)
	}
	return n
}

func (r *Registry) Refineries() []inventory.ProcessingUnit { return r.refineries }
func (r *Registry) Assemblers() []inventory.ProductionUnit { return r.assemblers }
