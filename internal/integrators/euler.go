// Package integrators provides the explicit steppers that drive a
// composed sharer's vector field through time. The composition engine
// treats these as an external collaborator: it only promises a
// right-hand-side callable.
package integrators

import "github.com/san-kum/dynwire/internal/dynamo"

type Stepper interface {
	Step(f dynamo.VectorField, u dynamo.State, p dynamo.Params, t, dt float64) (dynamo.State, error)
}

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.VectorField, u dynamo.State, p dynamo.Params, t, dt float64) (dynamo.State, error) {
	du, err := f(u, p, t)
	if err != nil {
		return nil, err
	}
	result := make(dynamo.State, len(u))
	for i := range u {
		result[i] = u[i] + dt*du[i]
	}
	return result, nil
}
