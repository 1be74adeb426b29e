// Package metrics provides trajectory metrics observed by the sim
// driver and reported in Result.Metrics.
package metrics

import "github.com/san-kum/dynwire/internal/dynamo"

type Metric interface {
	Name() string
	Observe(u dynamo.State, t float64)
	Value() float64
	Reset()
}
