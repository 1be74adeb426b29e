package store

import (
	"math"
	"testing"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		States: []dynamo.State{{1, 2}, {0.5, 2.5}},
		Times:  []float64{0, 0.1},
		Ports:  [][]float64{{2, 2.5}},
		Labels: []string{"pop"},
		Metrics: map[string]float64{
			"peak": 2.5,
		},
		StepsTaken: 1,
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := s.Save("test-net", 0.1, 0.1, "euler", sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Network != "test-net" || meta.Integrator != "euler" {
		t.Errorf("meta = %+v", meta)
	}
	if meta.States != 2 {
		t.Errorf("states = %d, want 2", meta.States)
	}
	if len(meta.Ports) != 1 || meta.Ports[0] != "pop" {
		t.Errorf("ports = %v", meta.Ports)
	}
	if meta.Metrics["peak"] != 2.5 {
		t.Errorf("metrics = %v", meta.Metrics)
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}

	if _, err := s.Save("net", 0.1, 0.1, "rk4", sampleResult()); err != nil {
		t.Fatalf("save: %v", err)
	}
	runs, err = s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	s := New("/nonexistent/dynwire-store")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestLoadSeries(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	runID, err := s.Save("net", 0.1, 0.1, "euler", sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	times, cols, header, err := s.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series: %v", err)
	}
	want := []string{"x0", "x1", "pop"}
	if len(header) != len(want) {
		t.Fatalf("header = %v", header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header = %v, want %v", header, want)
		}
	}
	if len(times) != 2 || len(cols) != 3 {
		t.Fatalf("got %d times, %d cols", len(times), len(cols))
	}
	if math.Abs(cols[0][1]-0.5) > 1e-6 {
		t.Errorf("x0[1] = %v, want 0.5", cols[0][1])
	}
	if math.Abs(cols[2][0]-2) > 1e-6 {
		t.Errorf("pop[0] = %v, want 2", cols[2][0])
	}
}
