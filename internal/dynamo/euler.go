package dynamo

import "fmt"

// EulerApprox discretizes a continuous sharer with a fixed step h:
// u' = u + h*f(u, p, t). Interface and port map carry over unchanged.
func EulerApprox(x Sharer, h float64) (Sharer, error) {
	c, ok := x.Sys.(Continuous)
	if !ok {
		return Sharer{}, fmt.Errorf("%w: euler approximation needs a vector field", ErrNotContinuous)
	}
	return Sharer{Iface: x.Iface, Sys: Discrete{
		States: c.States,
		Ports:  clonePorts(c.Ports),
		F:      eulerStep(c.F, func(Params) (float64, Params) { return h, nil }),
	}}, nil
}

// EulerApproxVar is the parametrized form: the step size is read from
// the last entry of the parameter vector at evaluation time, and the
// wrapped field sees the parameters without it. This allows step-size
// sweeps without rebuilding the sharer.
func EulerApproxVar(x Sharer) (Sharer, error) {
	c, ok := x.Sys.(Continuous)
	if !ok {
		return Sharer{}, fmt.Errorf("%w: euler approximation needs a vector field", ErrNotContinuous)
	}
	return Sharer{Iface: x.Iface, Sys: Discrete{
		States: c.States,
		Ports:  clonePorts(c.Ports),
		F: eulerStep(c.F, func(p Params) (float64, Params) {
			if len(p) == 0 {
				return 0, nil
			}
			return p[len(p)-1], p[:len(p)-1]
		}),
	}}, nil
}

// EulerApproxAll applies EulerApprox pointwise, preserving order.
func EulerApproxAll(xs []Sharer, h float64) ([]Sharer, error) {
	out := make([]Sharer, len(xs))
	for i, x := range xs {
		d, err := EulerApprox(x, h)
		if err != nil {
			return nil, fmt.Errorf("sharer %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

// EulerApproxMap applies EulerApprox pointwise over a name-keyed
// collection, preserving keys.
func EulerApproxMap(xs map[string]Sharer, h float64) (map[string]Sharer, error) {
	out := make(map[string]Sharer, len(xs))
	for name, x := range xs {
		d, err := EulerApprox(x, h)
		if err != nil {
			return nil, fmt.Errorf("sharer %q: %w", name, err)
		}
		out[name] = d
	}
	return out, nil
}

func eulerStep(f VectorField, step func(Params) (float64, Params)) UpdateMap {
	return func(u State, p Params, t float64) (State, error) {
		h, inner := step(p)
		du, err := f(u, inner, t)
		if err != nil {
			return nil, err
		}
		if len(du) != len(u) {
			return nil, fmt.Errorf("%w: field returned %d values, want %d", ErrDimensionMismatch, len(du), len(u))
		}
		next := make(State, len(u))
		for i := range u {
			next[i] = u[i] + h*du[i]
		}
		return next, nil
	}
}

func clonePorts(ports []int) []int {
	out := make([]int, len(ports))
	copy(out, ports)
	return out
}
