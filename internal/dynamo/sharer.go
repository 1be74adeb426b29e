package dynamo

import "fmt"

// Sharer is the unit of composition: an interface of named ports paired
// with a system whose port map ties each port to a state index.
type Sharer struct {
	Iface Interface
	Sys   System
}

func NewSharer(iface Interface, sys System) Sharer {
	return Sharer{Iface: iface, Sys: sys}
}

func (x Sharer) NPorts() int    { return x.Iface.NPorts() }
func (x Sharer) NStates() int   { return x.Sys.NStates() }
func (x Sharer) PortMap() []int { return x.Sys.PortMap() }
func (x Sharer) Block() int     { return x.Iface.Block() }

// Validate checks the structural invariants: one port map entry per
// interface port, every entry within [0, nstates).
func (x Sharer) Validate() error {
	pm := x.Sys.PortMap()
	if len(pm) != x.Iface.NPorts() {
		return fmt.Errorf("%w: %d ports, %d portmap entries", ErrArityMismatch, x.Iface.NPorts(), len(pm))
	}
	n := x.Sys.NStates()
	for i, s := range pm {
		if s < 0 || s >= n {
			return fmt.Errorf("%w: port %d maps to state %d of %d", ErrPortOutOfRange, i, s, n)
		}
	}
	return nil
}

// ExposedStates slices u at the port map, yielding one block per port
// in interface order.
func (x Sharer) ExposedStates(u State) (State, error) {
	b := x.Block()
	if len(u) != x.NStates()*b {
		return nil, fmt.Errorf("%w: state has %d values, want %d", ErrDimensionMismatch, len(u), x.NStates()*b)
	}
	pm := x.Sys.PortMap()
	out := make(State, 0, len(pm)*b)
	for _, s := range pm {
		out = append(out, u[s*b:(s+1)*b]...)
	}
	return out, nil
}
