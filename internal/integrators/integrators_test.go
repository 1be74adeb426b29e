package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dynwire/internal/dynamo"
)

func decay(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
	return dynamo.State{-u[0]}, nil
}

func TestEulerStep(t *testing.T) {
	e := NewEuler()
	got, err := e.Step(decay, dynamo.State{1}, nil, 0, 0.1)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if math.Abs(got[0]-0.9) > 1e-12 {
		t.Errorf("got %v, want 0.9", got[0])
	}
}

func TestRK4Accuracy(t *testing.T) {
	// du/dt = -u from 1.0; RK4 should track exp(-t) much tighter than Euler.
	u, v := dynamo.State{1}, dynamo.State{1}
	euler, rk4 := NewEuler(), NewRK4()
	dt := 0.1
	steps := 10

	var err error
	for i := 0; i < steps; i++ {
		tNow := float64(i) * dt
		if u, err = euler.Step(decay, u, nil, tNow, dt); err != nil {
			t.Fatalf("euler: %v", err)
		}
		if v, err = rk4.Step(decay, v, nil, tNow, dt); err != nil {
			t.Fatalf("rk4: %v", err)
		}
	}

	exact := math.Exp(-1)
	if errRK := math.Abs(v[0] - exact); errRK > 1e-6 {
		t.Errorf("rk4 error %.2e too large", errRK)
	}
	if math.Abs(v[0]-exact) >= math.Abs(u[0]-exact) {
		t.Error("rk4 should beat euler")
	}
}

func TestStepPropagatesFieldError(t *testing.T) {
	boom := errors.New("boom")
	bad := func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
		return nil, boom
	}
	if _, err := NewEuler().Step(bad, dynamo.State{1}, nil, 0, 0.1); !errors.Is(err, boom) {
		t.Errorf("euler: got %v", err)
	}
	if _, err := NewRK4().Step(bad, dynamo.State{1}, nil, 0, 0.1); !errors.Is(err, boom) {
		t.Errorf("rk4: got %v", err)
	}
}
