package metrics

import "github.com/san-kum/dynwire/internal/dynamo"

// Peak tracks the largest state norm seen over a run.
type Peak struct {
	max float64
}

func NewPeak() *Peak {
	return &Peak{}
}

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(u dynamo.State, t float64) {
	if n := u.Norm(); n > p.max {
		p.max = n
	}
}

func (p *Peak) Value() float64 { return p.max }
func (p *Peak) Reset()         { p.max = 0 }
