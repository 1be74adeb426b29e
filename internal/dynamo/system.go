package dynamo

// System is the closed set of dynamics variants. Exactly three types
// implement it: Continuous, Discrete, and Delay. Code that needs
// variant-specific behavior switches on the concrete type.
type System interface {
	NStates() int
	PortMap() []int
	system()
}

// Continuous is a vector field du/dt = F(u, p, t).
type Continuous struct {
	States int
	Ports  []int
	F      VectorField
}

func (s Continuous) NStates() int   { return s.States }
func (s Continuous) PortMap() []int { return s.Ports }
func (Continuous) system()          {}

// Discrete is an update map u' = F(u, p, t).
type Discrete struct {
	States int
	Ports  []int
	F      UpdateMap
}

func (s Discrete) NStates() int   { return s.States }
func (s Discrete) PortMap() []int { return s.Ports }
func (Discrete) system()          {}

// Delay is a delay-differential field du/dt = F(u, h, p, t).
type Delay struct {
	States int
	Ports  []int
	F      DelayField
}

func (s Delay) NStates() int   { return s.States }
func (s Delay) PortMap() []int { return s.Ports }
func (Delay) system()          {}
