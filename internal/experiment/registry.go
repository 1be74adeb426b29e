package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/integrators"
	"github.com/san-kum/dynwire/internal/models"
)

// Registry maps model and integrator names, as they appear in network
// configs, to constructors.
type Registry struct {
	models      map[string]func(map[string]float64) dynamo.Sharer
	integrators map[string]func() integrators.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(map[string]float64) dynamo.Sharer),
		integrators: make(map[string]func() integrators.Stepper),
	}

	r.models["growth"] = func(p map[string]float64) dynamo.Sharer {
		return models.Growth(param(p, "a", 1.0))
	}
	r.models["decay"] = func(p map[string]float64) dynamo.Sharer {
		return models.Decay(param(p, "c", 1.0))
	}
	r.models["logistic"] = func(p map[string]float64) dynamo.Sharer {
		return models.Logistic(param(p, "r", 1.0), param(p, "k", 10.0))
	}
	r.models["predation"] = func(p map[string]float64) dynamo.Sharer {
		return models.Predation(param(p, "b", 0.1), param(p, "c", 0.05))
	}
	r.models["infection"] = func(p map[string]float64) dynamo.Sharer {
		return models.Infection(param(p, "beta", 0.5))
	}
	r.models["recovery"] = func(p map[string]float64) dynamo.Sharer {
		return models.Recovery(param(p, "gamma", 0.25))
	}
	r.models["diffusion"] = func(p map[string]float64) dynamo.Sharer {
		return models.Diffusion(param(p, "k", 1.0))
	}
	r.models["counter"] = func(p map[string]float64) dynamo.Sharer {
		return models.Counter(param(p, "step", 1.0))
	}

	r.integrators["euler"] = func() integrators.Stepper { return integrators.NewEuler() }
	r.integrators["rk4"] = func() integrators.Stepper { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetModel(name string, params map[string]float64) (dynamo.Sharer, error) {
	fn, ok := r.models[name]
	if !ok {
		return dynamo.Sharer{}, fmt.Errorf("unknown model: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetIntegrator(name string) (integrators.Stepper, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func param(p map[string]float64, name string, fallback float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return fallback
}
