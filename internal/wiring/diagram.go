// Package wiring holds the undirected wiring diagrams that describe how
// sharers are glued: boxes with ordered ports, junctions grouping ports
// into shared wires, and outer ports exposing junctions to the outside.
// Diagrams are built once and then consumed read-only; box, port, and
// outer-port enumeration order is construction order.
package wiring

import "fmt"

type box struct {
	name      string
	junctions []int
}

type outerPort struct {
	name     string
	junction int
}

type Diagram struct {
	njunctions int
	boxes      []box
	outer      []outerPort
}

func New(njunctions int) *Diagram {
	if njunctions < 0 {
		njunctions = 0
	}
	return &Diagram{njunctions: njunctions}
}

// AddJunction appends a fresh junction and returns its id.
func (d *Diagram) AddJunction() int {
	d.njunctions++
	return d.njunctions - 1
}

// AddBox appends a box whose ports attach, in order, to the given
// junctions, and returns the box index. Junction ids must already
// exist; the caller owns diagram well-formedness beyond that.
func (d *Diagram) AddBox(name string, junctions ...int) int {
	for i, j := range junctions {
		if j < 0 || j >= d.njunctions {
			panic(fmt.Sprintf("wiring: box %q port %d: junction %d out of range [0,%d)", name, i, j, d.njunctions))
		}
	}
	js := make([]int, len(junctions))
	copy(js, junctions)
	d.boxes = append(d.boxes, box{name: name, junctions: js})
	return len(d.boxes) - 1
}

// Expose appends an outer port attached to the given junction and
// returns its index. The name may be empty for anonymous outer ports.
func (d *Diagram) Expose(name string, junction int) int {
	if junction < 0 || junction >= d.njunctions {
		panic(fmt.Sprintf("wiring: outer port %q: junction %d out of range [0,%d)", name, junction, d.njunctions))
	}
	d.outer = append(d.outer, outerPort{name: name, junction: junction})
	return len(d.outer) - 1
}

func (d *Diagram) NBoxes() int     { return len(d.boxes) }
func (d *Diagram) NJunctions() int { return d.njunctions }
func (d *Diagram) NOuter() int     { return len(d.outer) }

// Arity is the number of ports on a box.
func (d *Diagram) Arity(b int) int { return len(d.boxes[b].junctions) }

func (d *Diagram) BoxName(b int) string { return d.boxes[b].name }

// BoxJunctions returns the junction of each port of box b, in port order.
func (d *Diagram) BoxJunctions(b int) []int {
	js := make([]int, len(d.boxes[b].junctions))
	copy(js, d.boxes[b].junctions)
	return js
}

func (d *Diagram) OuterJunction(o int) int { return d.outer[o].junction }
func (d *Diagram) OuterName(o int) string  { return d.outer[o].name }

// BoxIndex returns the index of the first box with the given name, or -1.
func (d *Diagram) BoxIndex(name string) int {
	for i, b := range d.boxes {
		if b.name == name {
			return i
		}
	}
	return -1
}
