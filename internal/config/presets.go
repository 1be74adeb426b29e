package config

import "sort"

var Presets = map[string]*Config{
	"lotka": {
		Name:      "lotka",
		Junctions: []string{"rabbits", "foxes"},
		Boxes: []BoxConfig{
			{Name: "growth", Model: "growth", Params: map[string]float64{"a": 0.3}, Junctions: []string{"rabbits"}},
			{Name: "predation", Model: "predation", Params: map[string]float64{"b": 0.015, "c": 0.015}, Junctions: []string{"rabbits", "foxes"}},
			{Name: "mortality", Model: "decay", Params: map[string]float64{"c": 0.7}, Junctions: []string{"foxes"}},
		},
		Outer: []OuterConfig{
			{Name: "rabbits", Junction: "rabbits"},
			{Name: "foxes", Junction: "foxes"},
		},
		Init: map[string]float64{"rabbits": 10.0, "foxes": 100.0},
		Sim:  SimConfig{Dt: 0.01, Duration: 60.0, Integrator: "rk4"},
	},
	"sir": {
		Name:      "sir",
		Junctions: []string{"S", "I", "R"},
		Boxes: []BoxConfig{
			{Name: "infection", Model: "infection", Params: map[string]float64{"beta": 0.4}, Junctions: []string{"S", "I"}},
			{Name: "recovery", Model: "recovery", Params: map[string]float64{"gamma": 0.25}, Junctions: []string{"I", "R"}},
		},
		Outer: []OuterConfig{
			{Name: "S", Junction: "S"},
			{Name: "I", Junction: "I"},
			{Name: "R", Junction: "R"},
		},
		Init: map[string]float64{"S": 0.99, "I": 0.01, "R": 0.0},
		Sim:  SimConfig{Dt: 0.01, Duration: 80.0, Integrator: "rk4"},
	},
	"chain": {
		Name:      "chain",
		Junctions: []string{"c0", "c1", "c2", "c3"},
		Boxes: []BoxConfig{
			{Name: "d01", Model: "diffusion", Params: map[string]float64{"k": 1.0}, Junctions: []string{"c0", "c1"}},
			{Name: "d12", Model: "diffusion", Params: map[string]float64{"k": 1.0}, Junctions: []string{"c1", "c2"}},
			{Name: "d23", Model: "diffusion", Params: map[string]float64{"k": 1.0}, Junctions: []string{"c2", "c3"}},
		},
		Outer: []OuterConfig{
			{Name: "c0", Junction: "c0"},
			{Name: "c3", Junction: "c3"},
		},
		Init: map[string]float64{"c0": 1.0},
		Sim:  SimConfig{Dt: 0.005, Duration: 5.0, Integrator: "rk4"},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
