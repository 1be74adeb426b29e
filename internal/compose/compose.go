// Package compose implements the composition engine: given an undirected
// wiring diagram and one sharer per box, it computes the merged state
// space (a pushout of the subsystem state sets along shared junctions),
// the composite's exposed-port map, and a composite dynamics callable
// equivalent to running every subsystem independently and summing the
// contributions that meet at each junction.
package compose

import (
	"fmt"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/wiring"
)

// parallelBoxes is the box count above which per-box evaluation fans
// out across workers. Boxes read and write disjoint slices, so the only
// cost is goroutine overhead on small diagrams.
const parallelBoxes = 64

// Fills reports whether the sharer's port count matches the box arity.
func Fills(x dynamo.Sharer, d *wiring.Diagram, b int) bool {
	return x.NPorts() == d.Arity(b)
}

// Composite is a composed sharer together with the bookkeeping of the
// merge, for callers that map junctions or subsystem states to merged
// indices (initial conditions, labeling, inspection).
type Composite struct {
	Sharer dynamo.Sharer

	// StateMap sends each pre-merge global state index to its merged
	// class; Preimages is its inverse, classes in canonical order.
	StateMap  []int
	Preimages [][]int

	// Offsets[b] is the first global state index of box b.
	Offsets []int

	// JunctionClass[j] is the merged class behind junction j, or -1 for
	// a junction no port attaches to.
	JunctionClass []int
}

// Compose glues the sharers along the diagram, one sharer per box in
// box order. It fails before building any dynamics if a sharer's arity
// disagrees with its box, a port map is out of range, the sharers mix
// system variants or block sizes, or an outer port exposes a junction
// with no state behind it.
func Compose(d *wiring.Diagram, xs []dynamo.Sharer) (*Composite, error) {
	if len(xs) != d.NBoxes() {
		return nil, fmt.Errorf("%w: %d boxes, %d sharers", dynamo.ErrUnfilledBox, d.NBoxes(), len(xs))
	}
	for b, x := range xs {
		if !Fills(x, d, b) {
			return nil, fmt.Errorf("%w: box %q has arity %d, sharer exposes %d ports",
				dynamo.ErrArityMismatch, d.BoxName(b), d.Arity(b), x.NPorts())
		}
		if err := x.Validate(); err != nil {
			return nil, fmt.Errorf("box %q: %w", d.BoxName(b), err)
		}
	}

	block := 1
	if len(xs) > 0 {
		block = xs[0].Block()
		for b, x := range xs[1:] {
			if x.Block() != block {
				return nil, fmt.Errorf("%w: box %q has block %d, box %q has block %d",
					dynamo.ErrBlockMismatch, d.BoxName(0), block, d.BoxName(b+1), x.Block())
			}
		}
	}

	q, err := buildQuotient(d, xs)
	if err != nil {
		return nil, err
	}

	iface, ports, err := outerInterface(d, q, block)
	if err != nil {
		return nil, err
	}

	sys, err := compositeSystem(d, xs, q, ports, block)
	if err != nil {
		return nil, err
	}

	return &Composite{
		Sharer:        dynamo.NewSharer(iface, sys),
		StateMap:      q.stateMap,
		Preimages:     q.preimages,
		Offsets:       q.offsets,
		JunctionClass: q.junctions,
	}, nil
}

// ComposeMap resolves sharers by box name instead of position.
func ComposeMap(d *wiring.Diagram, m map[string]dynamo.Sharer) (*Composite, error) {
	xs := make([]dynamo.Sharer, d.NBoxes())
	for b := 0; b < d.NBoxes(); b++ {
		x, ok := m[d.BoxName(b)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", dynamo.ErrUnfilledBox, d.BoxName(b))
		}
		xs[b] = x
	}
	return Compose(d, xs)
}

// outerInterface derives the composite's ports: one per outer port,
// labelled by the outer-port name when present, mapped to the merged
// class of its junction.
func outerInterface(d *wiring.Diagram, q *quotient, block int) (dynamo.Interface, []int, error) {
	labels := make([]dynamo.Port, d.NOuter())
	ports := make([]int, d.NOuter())
	for o := 0; o < d.NOuter(); o++ {
		j := d.OuterJunction(o)
		cls := q.junctions[j]
		if cls < 0 {
			return dynamo.Interface{}, nil, fmt.Errorf("%w: outer port %d, junction %d",
				dynamo.ErrDanglingOuterPort, o, j)
		}
		name := d.OuterName(o)
		if name == "" {
			name = fmt.Sprintf("j%d", j)
		}
		labels[o] = dynamo.Port(name)
		ports[o] = cls
	}
	if block > 1 {
		return dynamo.NewBlockInterface(block, labels...), ports, nil
	}
	return dynamo.NewInterface(labels...), ports, nil
}

func compositeSystem(d *wiring.Diagram, xs []dynamo.Sharer, q *quotient, ports []int, block int) (dynamo.System, error) {
	if len(xs) == 0 {
		return dynamo.Continuous{States: 0, Ports: ports,
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return dynamo.State{}, nil
			}}, nil
	}

	switch xs[0].Sys.(type) {
	case dynamo.Continuous:
		fields := make([]dynamo.VectorField, len(xs))
		for b, x := range xs {
			c, ok := x.Sys.(dynamo.Continuous)
			if !ok {
				return nil, mixed(d, b, xs)
			}
			fields[b] = c.F
		}
		e := &evaluator{d: d, q: q, block: block}
		return dynamo.Continuous{States: q.nMerged(), Ports: ports,
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return e.rates(u, p, t, func(b int, local dynamo.State) (dynamo.State, error) {
					return fields[b](local, p, t)
				})
			}}, nil

	case dynamo.Discrete:
		maps := make([]dynamo.UpdateMap, len(xs))
		for b, x := range xs {
			m, ok := x.Sys.(dynamo.Discrete)
			if !ok {
				return nil, mixed(d, b, xs)
			}
			maps[b] = m.F
		}
		e := &evaluator{d: d, q: q, block: block}
		return dynamo.Discrete{States: q.nMerged(), Ports: ports,
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return e.updates(u, p, t, maps)
			}}, nil

	case dynamo.Delay:
		fields := make([]dynamo.DelayField, len(xs))
		for b, x := range xs {
			f, ok := x.Sys.(dynamo.Delay)
			if !ok {
				return nil, mixed(d, b, xs)
			}
			fields[b] = f.F
		}
		e := &evaluator{d: d, q: q, block: block}
		return dynamo.Delay{States: q.nMerged(), Ports: ports,
			F: func(u dynamo.State, h dynamo.History, p dynamo.Params, t float64) (dynamo.State, error) {
				return e.rates(u, p, t, func(b int, local dynamo.State) (dynamo.State, error) {
					return fields[b](local, e.project(h, b), p, t)
				})
			}}, nil
	}
	return nil, fmt.Errorf("%w: unknown system variant %T", dynamo.ErrMixedSystems, xs[0].Sys)
}

func mixed(d *wiring.Diagram, b int, xs []dynamo.Sharer) error {
	return fmt.Errorf("%w: box %q holds %T, box %q holds %T",
		dynamo.ErrMixedSystems, d.BoxName(0), xs[0].Sys, d.BoxName(b), xs[b].Sys)
}
