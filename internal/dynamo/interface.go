package dynamo

// Port identifies one exposed variable of a sharer. Identity is the
// label; position in the interface defines the vector layout.
type Port string

// Interface is an ordered sequence of ports. Block is the fixed
// dimension of every port: 1 for scalar ports, N for vector-valued
// ports where all state indexing acts on N-blocks.
type Interface struct {
	ports []Port
	block int
}

func NewInterface(ports ...Port) Interface {
	return Interface{ports: ports, block: 1}
}

// NewBlockInterface builds an interface whose ports each carry a block
// of n state components. n < 1 is treated as 1.
func NewBlockInterface(n int, ports ...Port) Interface {
	if n < 1 {
		n = 1
	}
	return Interface{ports: ports, block: n}
}

func (f Interface) NPorts() int { return len(f.ports) }

func (f Interface) Block() int {
	if f.block < 1 {
		return 1
	}
	return f.block
}

func (f Interface) Port(i int) Port { return f.ports[i] }

func (f Interface) Ports() []Port {
	out := make([]Port, len(f.ports))
	copy(out, f.ports)
	return out
}

// PortIndex returns the position of the first port with the given
// label, or -1 when absent.
func (f Interface) PortIndex(p Port) int {
	for i, q := range f.ports {
		if q == p {
			return i
		}
	}
	return -1
}
