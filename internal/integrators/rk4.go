package integrators

import "github.com/san-kum/dynwire/internal/dynamo"

type RK4 struct {
	scratch dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) != n {
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(f dynamo.VectorField, u dynamo.State, p dynamo.Params, t, dt float64) (dynamo.State, error) {
	n := len(u)
	r.ensureScratch(n)

	k1, err := f(u, p, t)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = u[i] + dt*0.5*k1[i]
	}
	k2, err := f(r.scratch, p, t+dt*0.5)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = u[i] + dt*0.5*k2[i]
	}
	k3, err := f(r.scratch, p, t+dt*0.5)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		r.scratch[i] = u[i] + dt*k3[i]
	}
	k4, err := f(r.scratch, p, t+dt)
	if err != nil {
		return nil, err
	}

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = u[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result, nil
}
