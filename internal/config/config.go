// Package config reads and writes YAML network descriptions: named
// junctions, boxes assigning a model to a junction tuple, exposed outer
// ports, and simulation settings. Configs describe diagrams for the
// construction layer; they are not consumed by the composition core.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynwire/internal/compose"
	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/experiment"
	"github.com/san-kum/dynwire/internal/wiring"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
)

type Config struct {
	Name      string             `yaml:"name"`
	Junctions []string           `yaml:"junctions"`
	Boxes     []BoxConfig        `yaml:"boxes"`
	Outer     []OuterConfig      `yaml:"outer"`
	Init      map[string]float64 `yaml:"init"`
	Sim       SimConfig          `yaml:"sim"`
}

type BoxConfig struct {
	Name      string             `yaml:"name"`
	Model     string             `yaml:"model"`
	Params    map[string]float64 `yaml:"params"`
	Junctions []string           `yaml:"junctions"`
}

type OuterConfig struct {
	Name     string `yaml:"name"`
	Junction string `yaml:"junction"`
}

type SimConfig struct {
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Integrator string  `yaml:"integrator"`
}

func Default() *Config {
	return &Config{
		Sim: SimConfig{Dt: DefaultDt, Duration: DefaultDuration, Integrator: "rk4"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	// Files written from a zero-valued Config carry explicit zeros, so
	// missing or unset sim settings are backfilled after unmarshalling.
	if cfg.Sim.Dt <= 0 {
		cfg.Sim.Dt = DefaultDt
	}
	if cfg.Sim.Duration <= 0 {
		cfg.Sim.Duration = DefaultDuration
	}
	if cfg.Sim.Integrator == "" {
		cfg.Sim.Integrator = "rk4"
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs the wiring diagram and the box-ordered sharer list
// described by the config, resolving model names through the registry.
func (c *Config) Build(reg *experiment.Registry) (*wiring.Diagram, []dynamo.Sharer, error) {
	jid := make(map[string]int, len(c.Junctions))
	for i, name := range c.Junctions {
		if _, dup := jid[name]; dup {
			return nil, nil, fmt.Errorf("duplicate junction name %q", name)
		}
		jid[name] = i
	}

	d := wiring.New(len(c.Junctions))
	xs := make([]dynamo.Sharer, 0, len(c.Boxes))
	for _, b := range c.Boxes {
		js := make([]int, len(b.Junctions))
		for i, name := range b.Junctions {
			j, ok := jid[name]
			if !ok {
				return nil, nil, fmt.Errorf("box %q: unknown junction %q", b.Name, name)
			}
			js[i] = j
		}
		d.AddBox(b.Name, js...)

		x, err := reg.GetModel(b.Model, b.Params)
		if err != nil {
			return nil, nil, fmt.Errorf("box %q: %w", b.Name, err)
		}
		xs = append(xs, x)
	}

	for _, o := range c.Outer {
		j, ok := jid[o.Junction]
		if !ok {
			return nil, nil, fmt.Errorf("outer port %q: unknown junction %q", o.Name, o.Junction)
		}
		d.Expose(o.Name, j)
	}
	return d, xs, nil
}

// InitialState maps the config's per-junction initial values onto the
// merged state space of a composite built from the same config.
func (c *Config) InitialState(comp *compose.Composite) (dynamo.State, error) {
	block := comp.Sharer.Block()
	u0 := make(dynamo.State, comp.Sharer.NStates()*block)
	jid := make(map[string]int, len(c.Junctions))
	for i, name := range c.Junctions {
		jid[name] = i
	}
	for name, v := range c.Init {
		j, ok := jid[name]
		if !ok {
			return nil, fmt.Errorf("init: unknown junction %q", name)
		}
		cls := comp.JunctionClass[j]
		if cls < 0 {
			return nil, fmt.Errorf("init: junction %q has no state", name)
		}
		for k := 0; k < block; k++ {
			u0[cls*block+k] = v
		}
	}
	return u0, nil
}
