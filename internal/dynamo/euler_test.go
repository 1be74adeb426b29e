package dynamo

import (
	"errors"
	"math"
	"testing"
)

func decaySharer(c float64) Sharer {
	return NewSharer(
		NewInterface("x"),
		Continuous{States: 1, Ports: []int{0},
			F: func(u State, p Params, t float64) (State, error) {
				return State{-c * u[0]}, nil
			}},
	)
}

func TestEulerApproxEquivalence(t *testing.T) {
	x := decaySharer(0.5)
	h := 0.1
	d, err := EulerApprox(x, h)
	if err != nil {
		t.Fatalf("EulerApprox: %v", err)
	}

	f := x.Sys.(Continuous).F
	step := d.Sys.(Discrete).F

	for _, u0 := range []float64{-3, 0, 1, 7.5} {
		u := State{u0}
		du, _ := f(u, nil, 0)
		want := u[0] + h*du[0]
		got, err := step(u, nil, 0)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		if math.Abs(got[0]-want) > 1e-15 {
			t.Errorf("u0=%v: got %v, want %v", u0, got[0], want)
		}
	}

	if d.NPorts() != x.NPorts() || d.Sys.PortMap()[0] != x.Sys.PortMap()[0] {
		t.Error("interface or portmap changed under discretization")
	}
}

func TestEulerApproxVar(t *testing.T) {
	// Field reads its one parameter; the step rides as the last entry.
	x := NewSharer(
		NewInterface("x"),
		Continuous{States: 1, Ports: []int{0},
			F: func(u State, p Params, t float64) (State, error) {
				return State{p[0] * u[0]}, nil
			}},
	)
	d, err := EulerApproxVar(x)
	if err != nil {
		t.Fatalf("EulerApproxVar: %v", err)
	}
	step := d.Sys.(Discrete).F

	for _, h := range []float64{0.01, 0.1, 1.0} {
		got, err := step(State{2}, Params{3, h}, 0)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		want := 2 + h*3*2
		if math.Abs(got[0]-want) > 1e-15 {
			t.Errorf("h=%v: got %v, want %v", h, got[0], want)
		}
	}
}

func TestEulerApproxRejectsDiscrete(t *testing.T) {
	d := NewSharer(NewInterface("x"), Discrete{States: 1, Ports: []int{0}})
	if _, err := EulerApprox(d, 0.1); !errors.Is(err, ErrNotContinuous) {
		t.Errorf("got %v, want ErrNotContinuous", err)
	}
	if _, err := EulerApproxVar(d); !errors.Is(err, ErrNotContinuous) {
		t.Errorf("got %v, want ErrNotContinuous", err)
	}
}

func TestEulerApproxAll(t *testing.T) {
	xs := []Sharer{decaySharer(1), decaySharer(2), decaySharer(3)}
	ds, err := EulerApproxAll(xs, 0.1)
	if err != nil {
		t.Fatalf("EulerApproxAll: %v", err)
	}
	if len(ds) != 3 {
		t.Fatalf("got %d sharers", len(ds))
	}
	// Order preserved: each discretized element matches its source rate.
	for i, d := range ds {
		got, _ := d.Sys.(Discrete).F(State{1}, nil, 0)
		want := 1 - 0.1*float64(i+1)
		if math.Abs(got[0]-want) > 1e-15 {
			t.Errorf("element %d: got %v, want %v", i, got[0], want)
		}
	}

	xs[1] = NewSharer(NewInterface("x"), Discrete{States: 1, Ports: []int{0}})
	if _, err := EulerApproxAll(xs, 0.1); !errors.Is(err, ErrNotContinuous) {
		t.Errorf("got %v, want ErrNotContinuous", err)
	}
}

func TestEulerApproxMap(t *testing.T) {
	xs := map[string]Sharer{"slow": decaySharer(1), "fast": decaySharer(10)}
	ds, err := EulerApproxMap(xs, 0.01)
	if err != nil {
		t.Fatalf("EulerApproxMap: %v", err)
	}
	for _, key := range []string{"slow", "fast"} {
		if _, ok := ds[key]; !ok {
			t.Errorf("key %q missing", key)
		}
	}
}
