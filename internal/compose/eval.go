package compose

import (
	"fmt"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/wiring"
)

// evaluator implements the expand / per-box / fold contract shared by
// all three composite variants. Every call allocates fresh buffers:
// callers never alias engine state and the evaluator itself is
// stateless, so a composite is safe for concurrent evaluation.
type evaluator struct {
	d     *wiring.Diagram
	q     *quotient
	block int
}

// expand broadcasts each merged value back to every pre-merge global
// index that folds into it.
func (e *evaluator) expand(u dynamo.State) dynamo.State {
	g := make(dynamo.State, e.q.total*e.block)
	for i, cls := range e.q.stateMap {
		copy(g[i*e.block:(i+1)*e.block], u[cls*e.block:(cls+1)*e.block])
	}
	return g
}

func (e *evaluator) boxSlice(b int) (lo, hi int) {
	lo = e.q.offsets[b] * e.block
	if b+1 < len(e.q.offsets) {
		hi = e.q.offsets[b+1] * e.block
	} else {
		hi = e.q.total * e.block
	}
	return lo, hi
}

// perBox evaluates every box on its slice of the expanded state and
// writes the result into the matching slice of out. Boxes touch
// disjoint slices only, so the loop fans out for large diagrams with a
// barrier before the caller folds.
func (e *evaluator) perBox(g, out dynamo.State, eval func(b int, local dynamo.State) (dynamo.State, error)) error {
	n := e.d.NBoxes()
	errs := make([]error, n)
	run := func(b int) {
		lo, hi := e.boxSlice(b)
		v, err := eval(b, g[lo:hi])
		if err != nil {
			errs[b] = err
			return
		}
		if len(v) != hi-lo {
			errs[b] = fmt.Errorf("%w: box %q returned %d values, want %d",
				dynamo.ErrDimensionMismatch, e.d.BoxName(b), len(v), hi-lo)
			return
		}
		copy(out[lo:hi], v)
	}
	if n >= parallelBoxes {
		dynamo.ParallelFor(n, 1, func(start, end int) {
			for b := start; b < end; b++ {
				run(b)
			}
		})
	} else {
		for b := 0; b < n; b++ {
			run(b)
		}
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) checkInput(u dynamo.State) error {
	if want := e.q.nMerged() * e.block; len(u) != want {
		return fmt.Errorf("%w: composite state has %d values, want %d",
			dynamo.ErrDimensionMismatch, len(u), want)
	}
	return nil
}

// rates is the continuous (and delay) contract: expand, evaluate every
// box, then sum the per-box rates meeting at each merged state. A
// shared wire's rate of change is the sum of every connected
// subsystem's contribution.
func (e *evaluator) rates(u dynamo.State, p dynamo.Params, t float64, eval func(b int, local dynamo.State) (dynamo.State, error)) (dynamo.State, error) {
	if err := e.checkInput(u); err != nil {
		return nil, err
	}
	g := e.expand(u)
	dg := make(dynamo.State, len(g))
	if err := e.perBox(g, dg, eval); err != nil {
		return nil, err
	}
	out := make(dynamo.State, e.q.nMerged()*e.block)
	e.fold(out, dg)
	return out, nil
}

// updates is the discrete contract: each box computes a next state, and
// the composite adds the summed per-box deltas onto the previous merged
// value. Summing deltas rather than next states keeps "absolute value
// plus incremental contributions" semantics at shared junctions.
func (e *evaluator) updates(u dynamo.State, p dynamo.Params, t float64, maps []dynamo.UpdateMap) (dynamo.State, error) {
	if err := e.checkInput(u); err != nil {
		return nil, err
	}
	g := e.expand(u)
	g1 := make(dynamo.State, len(g))
	err := e.perBox(g, g1, func(b int, local dynamo.State) (dynamo.State, error) {
		return maps[b](local, p, t)
	})
	if err != nil {
		return nil, err
	}
	for i := range g1 {
		g1[i] -= g[i]
	}
	out := u.Clone()
	e.fold(out, g1)
	return out, nil
}

// fold accumulates each global contribution onto its merged class.
func (e *evaluator) fold(out, contrib dynamo.State) {
	for cls, pre := range e.q.preimages {
		for _, g := range pre {
			for k := 0; k < e.block; k++ {
				out[cls*e.block+k] += contrib[g*e.block+k]
			}
		}
	}
}

// project narrows a composite history function to one box: expand the
// merged history value, then slice out the box's states. Histories are
// caller-supplied and the closure has no error channel, so a vector of
// the wrong length is padded with zeros or truncated to the merged
// length before expanding.
func (e *evaluator) project(h dynamo.History, b int) dynamo.History {
	return func(p dynamo.Params, t float64) dynamo.State {
		v := h(p, t)
		if want := e.q.nMerged() * e.block; len(v) != want {
			fitted := make(dynamo.State, want)
			copy(fitted, v)
			v = fitted
		}
		g := e.expand(v)
		lo, hi := e.boxSlice(b)
		return g[lo:hi]
	}
}
