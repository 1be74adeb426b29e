package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// Params is the parameter vector threaded unchanged through every
// subsystem of a composite at evaluation time.
type Params []float64

func (p Params) Clone() Params {
	c := make(Params, len(p))
	copy(c, p)
	return c
}

// History supplies past states to a delay system. For a composite the
// returned vector must have the composite's merged length; the engine
// projects it down to each box.
type History func(p Params, t float64) State

// VectorField is the calling convention of a continuous system: it maps
// state, parameters, and time to a rate of change.
type VectorField func(u State, p Params, t float64) (State, error)

// UpdateMap is the calling convention of a discrete-time system: it maps
// the current state to the next state.
type UpdateMap func(u State, p Params, t float64) (State, error)

// DelayField is the calling convention of a delay-differential system.
type DelayField func(u State, h History, p Params, t float64) (State, error)
