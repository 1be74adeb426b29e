// Package models provides the stock resource sharers used by presets,
// the CLI, and tests. Each constructor captures its parameters and
// returns an immutable sharer; coupling between models happens only
// through composition, never inside a model.
package models

import "github.com/san-kum/dynwire/internal/dynamo"

// Growth is exponential growth du/dt = a*u on a single shared variable.
func Growth(a float64) dynamo.Sharer {
	return continuous1("pop", func(u float64) float64 { return a * u })
}

// Decay is exponential decay du/dt = -c*u.
func Decay(c float64) dynamo.Sharer {
	return continuous1("pop", func(u float64) float64 { return -c * u })
}

// Logistic is du/dt = r*u*(1 - u/k).
func Logistic(r, k float64) dynamo.Sharer {
	return continuous1("pop", func(u float64) float64 { return r * u * (1 - u/k) })
}

// Predation is the Lotka-Volterra interaction term: prey is consumed at
// rate b*prey*pred, predators grow at rate c*prey*pred. Both variables
// are exposed so growth and decay models can share them.
func Predation(b, c float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface("prey", "pred"),
		dynamo.Continuous{States: 2, Ports: []int{0, 1},
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return dynamo.State{-b * u[0] * u[1], c * u[0] * u[1]}, nil
			}},
	)
}

// Infection is the S-I mass-action flow: dS/dt = -beta*S*I,
// dI/dt = beta*S*I.
func Infection(beta float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface("S", "I"),
		dynamo.Continuous{States: 2, Ports: []int{0, 1},
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return dynamo.State{-beta * u[0] * u[1], beta * u[0] * u[1]}, nil
			}},
	)
}

// Recovery is the I-R flow: dI/dt = -gamma*I, dR/dt = gamma*I.
func Recovery(gamma float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface("I", "R"),
		dynamo.Continuous{States: 2, Ports: []int{0, 1},
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return dynamo.State{-gamma * u[0], gamma * u[0]}, nil
			}},
	)
}

// Diffusion exchanges two shared variables at rate k*(u1-u0) each way,
// conserving their sum. Chains of these model transport over a line.
func Diffusion(k float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface("left", "right"),
		dynamo.Continuous{States: 2, Ports: []int{0, 1},
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				flux := k * (u[1] - u[0])
				return dynamo.State{flux, -flux}, nil
			}},
	)
}

// Counter is a discrete accumulator: u' = u + step.
func Counter(step float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface("count"),
		dynamo.Discrete{States: 1, Ports: []int{0},
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return dynamo.State{u[0] + step}, nil
			}},
	)
}

// DelayedDecay decays toward the state seen tau time units ago:
// du/dt = -c * u(t - tau).
func DelayedDecay(c, tau float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface("pop"),
		dynamo.Delay{States: 1, Ports: []int{0},
			F: func(u dynamo.State, h dynamo.History, p dynamo.Params, t float64) (dynamo.State, error) {
				past := h(p, t-tau)
				return dynamo.State{-c * past[0]}, nil
			}},
	)
}

func continuous1(port dynamo.Port, f func(u float64) float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface(port),
		dynamo.Continuous{States: 1, Ports: []int{0},
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return dynamo.State{f(u[0])}, nil
			}},
	)
}
