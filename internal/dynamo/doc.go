// Package dynamo provides the core primitives for open dynamical systems.
//
// An open system is described by a [Sharer]: an ordered [Interface] of
// named ports paired with a [System], one of three variants:
//
//   - [Continuous]: du/dt = f(u, p, t)
//   - [Discrete]:   u' = f(u, p, t)
//   - [Delay]:      du/dt = f(u, h, p, t) with history h(p, t)
//
// The port map ties each interface port to the state index it exposes.
// Sharers are immutable value objects; composing them (see the compose
// package) produces new sharers and never mutates the inputs, so a sharer
// may be reused across any number of compositions, concurrently.
package dynamo
