package models

import (
	"math"
	"testing"

	"github.com/san-kum/dynwire/internal/dynamo"
)

func TestModelsValidate(t *testing.T) {
	all := map[string]dynamo.Sharer{
		"growth":       Growth(1),
		"decay":        Decay(1),
		"logistic":     Logistic(1, 10),
		"predation":    Predation(0.1, 0.05),
		"infection":    Infection(0.3),
		"recovery":     Recovery(0.1),
		"diffusion":    Diffusion(0.5),
		"counter":      Counter(1),
		"delayedDecay": DelayedDecay(1, 0.5),
	}
	for name, x := range all {
		if err := x.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestLogistic(t *testing.T) {
	x := Logistic(2, 10)
	f := x.Sys.(dynamo.Continuous).F

	tests := []struct {
		u, want float64
	}{
		{0, 0},
		{10, 0},
		{5, 5},
	}
	for _, tt := range tests {
		got, err := f(dynamo.State{tt.u}, nil, 0)
		if err != nil {
			t.Fatalf("f(%v): %v", tt.u, err)
		}
		if math.Abs(got[0]-tt.want) > 1e-12 {
			t.Errorf("f(%v) = %v, want %v", tt.u, got[0], tt.want)
		}
	}
}

func TestPredation(t *testing.T) {
	x := Predation(0.1, 0.05)
	got, err := x.Sys.(dynamo.Continuous).F(dynamo.State{10, 4}, nil, 0)
	if err != nil {
		t.Fatalf("f: %v", err)
	}
	if math.Abs(got[0]+4) > 1e-12 || math.Abs(got[1]-2) > 1e-12 {
		t.Errorf("got %v, want [-4 2]", got)
	}
}

func TestDiffusionConserves(t *testing.T) {
	x := Diffusion(0.5)
	got, err := x.Sys.(dynamo.Continuous).F(dynamo.State{2, 8}, nil, 0)
	if err != nil {
		t.Fatalf("f: %v", err)
	}
	if math.Abs(got[0]+got[1]) > 1e-12 {
		t.Errorf("fluxes %v do not cancel", got)
	}
	if got[0] <= 0 {
		t.Errorf("flux should run toward the emptier side, got %v", got[0])
	}
}

func TestCounter(t *testing.T) {
	x := Counter(3)
	got, err := x.Sys.(dynamo.Discrete).F(dynamo.State{5}, nil, 0)
	if err != nil {
		t.Fatalf("f: %v", err)
	}
	if got[0] != 8 {
		t.Errorf("got %v, want 8", got[0])
	}
}

func TestDelayedDecayReadsHistory(t *testing.T) {
	x := DelayedDecay(2, 1)
	h := func(p dynamo.Params, t float64) dynamo.State {
		return dynamo.State{t} // identity history so the lag is observable
	}
	got, err := x.Sys.(dynamo.Delay).F(dynamo.State{99}, h, nil, 3)
	if err != nil {
		t.Fatalf("f: %v", err)
	}
	if math.Abs(got[0]+4) > 1e-12 {
		t.Errorf("got %v, want -2*h(2) = -4", got[0])
	}
}
