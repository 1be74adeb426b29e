// Package sim drives a sharer through time: continuous systems via a
// stepper, discrete systems by iterating the update map, delay systems
// by the method of steps over an interpolated trajectory buffer.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/integrators"
	"github.com/san-kum/dynwire/internal/metrics"
)

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	States     []dynamo.State
	Times      []float64
	Ports      [][]float64 // one series per exposed port, first block component
	Labels     []string
	Metrics    map[string]float64
	StepsTaken int
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

type Driver struct {
	metrics []metrics.Metric
}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) AddMetric(m metrics.Metric) { d.metrics = append(d.metrics, m) }

// Solve integrates a continuous sharer from u0. The context is checked
// between steps; the core dynamics itself has no notion of cancellation.
func (d *Driver) Solve(ctx context.Context, x dynamo.Sharer, u0 dynamo.State, p dynamo.Params, cfg Config, step integrators.Stepper) (*Result, error) {
	c, ok := x.Sys.(dynamo.Continuous)
	if !ok {
		return nil, fmt.Errorf("%w: Solve needs a vector field", dynamo.ErrNotContinuous)
	}
	return d.run(ctx, x, u0, cfg, func(u dynamo.State, t float64) (dynamo.State, error) {
		return step.Step(c.F, u, p, t, cfg.Dt)
	})
}

// Iterate runs a discrete sharer's update map once per dt.
func (d *Driver) Iterate(ctx context.Context, x dynamo.Sharer, u0 dynamo.State, p dynamo.Params, cfg Config) (*Result, error) {
	m, ok := x.Sys.(dynamo.Discrete)
	if !ok {
		return nil, fmt.Errorf("dynwire: Iterate needs a discrete system, got %T", x.Sys)
	}
	return d.run(ctx, x, u0, cfg, func(u dynamo.State, t float64) (dynamo.State, error) {
		return m.F(u, p, t)
	})
}

// SolveDelay integrates a delay sharer by explicit Euler steps. h0
// supplies states for t <= 0; later lookups interpolate the trajectory
// computed so far.
func (d *Driver) SolveDelay(ctx context.Context, x dynamo.Sharer, u0 dynamo.State, h0 dynamo.History, p dynamo.Params, cfg Config) (*Result, error) {
	f, ok := x.Sys.(dynamo.Delay)
	if !ok {
		return nil, fmt.Errorf("dynwire: SolveDelay needs a delay system, got %T", x.Sys)
	}

	var past *history
	h := func(hp dynamo.Params, ht float64) dynamo.State {
		if ht <= 0 {
			return h0(hp, ht)
		}
		return past.at(ht)
	}

	return d.run(ctx, x, u0, cfg, func(u dynamo.State, t float64) (dynamo.State, error) {
		du, err := f.F(u, h, p, t)
		if err != nil {
			return nil, err
		}
		next := make(dynamo.State, len(u))
		for i := range u {
			next[i] = u[i] + cfg.Dt*du[i]
		}
		past.push(t+cfg.Dt, next)
		return next, nil
	}, func(r *Result) {
		past = &history{times: []float64{0}, states: []dynamo.State{u0.Clone()}}
	})
}

func (d *Driver) run(ctx context.Context, x dynamo.Sharer, u0 dynamo.State, cfg Config, advance func(u dynamo.State, t float64) (dynamo.State, error), setup ...func(*Result)) (*Result, error) {
	if err := d.validate(x, u0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]dynamo.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Labels:  portLabels(x),
		Ports:   make([][]float64, x.NPorts()),
		Metrics: make(map[string]float64),
	}
	for _, fn := range setup {
		fn(result)
	}
	for _, m := range d.metrics {
		m.Reset()
	}

	u := u0.Clone()
	t := 0.0
	d.record(result, x, u, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range d.metrics {
			m.Observe(u, t)
		}

		next, err := advance(u, t)
		if err != nil {
			return result, err
		}
		if cfg.ValidateState && !next.IsValid() {
			return result, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}

		u = next
		t += cfg.Dt
		result.StepsTaken++
		d.record(result, x, u, t)
	}

	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (d *Driver) validate(x dynamo.Sharer, u0 dynamo.State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if want := x.NStates() * x.Block(); len(u0) != want {
		return fmt.Errorf("%w: initial state has %d values, want %d", dynamo.ErrDimensionMismatch, len(u0), want)
	}
	return nil
}

func (d *Driver) record(r *Result, x dynamo.Sharer, u dynamo.State, t float64) {
	r.States = append(r.States, u.Clone())
	r.Times = append(r.Times, t)
	b := x.Block()
	for i, s := range x.PortMap() {
		r.Ports[i] = append(r.Ports[i], u[s*b])
	}
}

func portLabels(x dynamo.Sharer) []string {
	labels := make([]string, x.NPorts())
	for i := range labels {
		labels[i] = string(x.Iface.Port(i))
	}
	return labels
}

// history is the growing trajectory buffer behind SolveDelay, with
// linear interpolation between recorded samples.
type history struct {
	times  []float64
	states []dynamo.State
}

func (h *history) push(t float64, u dynamo.State) {
	h.times = append(h.times, t)
	h.states = append(h.states, u.Clone())
}

func (h *history) at(t float64) dynamo.State {
	n := len(h.times)
	if n == 0 {
		return nil
	}
	if t >= h.times[n-1] {
		return h.states[n-1].Clone()
	}
	lo, hi := 0, n-1
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if h.times[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	t0, t1 := h.times[lo], h.times[hi]
	frac := 0.0
	if t1 > t0 {
		frac = (t - t0) / (t1 - t0)
	}
	u0, u1 := h.states[lo], h.states[hi]
	out := make(dynamo.State, len(u0))
	for i := range out {
		out[i] = u0[i] + frac*(u1[i]-u0[i])
	}
	return out
}
