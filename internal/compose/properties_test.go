package compose

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/wiring"
)

// linear1 is a one-state sharer with du/dt = a*u + b.
func linear1(a, b float64) dynamo.Sharer {
	return dynamo.NewSharer(
		dynamo.NewInterface("x"),
		dynamo.Continuous{States: 1, Ports: []int{0},
			F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
				return dynamo.State{a*u[0] + b}, nil
			}},
	)
}

var _ = Describe("Compose", func() {
	Describe("identity composition", func() {
		It("preserves states, ports, and dynamics of a single boxed sharer", func() {
			x := dynamo.NewSharer(
				dynamo.NewInterface("p", "q"),
				dynamo.Continuous{States: 2, Ports: []int{1, 0},
					F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
						return dynamo.State{u[1], -u[0]}, nil
					}},
			)
			d := wiring.New(2)
			d.AddBox("only", 0, 1)
			d.Expose("p", 0)
			d.Expose("q", 1)

			comp, err := Compose(d, []dynamo.Sharer{x})
			Expect(err).NotTo(HaveOccurred())
			Expect(comp.Sharer.NStates()).To(Equal(x.NStates()))
			Expect(comp.Sharer.NPorts()).To(Equal(2))

			u := dynamo.State{3, 5}
			got, err := comp.Sharer.Sys.(dynamo.Continuous).F(u, nil, 0)
			Expect(err).NotTo(HaveOccurred())
			want, _ := x.Sys.(dynamo.Continuous).F(u, nil, 0)
			Expect(got).To(Equal(want))

			// Exposed ports observe the same states the original exposed.
			Expect(comp.Sharer.PortMap()).To(Equal([]int{1, 0}))
		})
	})

	Describe("junction summation", func() {
		It("sums the rates of every subsystem on a shared wire", func() {
			a, b := 2.5, -0.75
			d := wiring.New(1)
			d.AddBox("x1", 0)
			d.AddBox("x2", 0)

			comp, err := Compose(d, []dynamo.Sharer{linear1(0, a), linear1(0, b)})
			Expect(err).NotTo(HaveOccurred())
			Expect(comp.Sharer.NStates()).To(Equal(1))
			Expect(comp.Sharer.NPorts()).To(BeZero())

			for _, u := range []float64{0, 1, -4} {
				for _, t := range []float64{0, 2} {
					du, err := comp.Sharer.Sys.(dynamo.Continuous).F(dynamo.State{u}, dynamo.Params{9}, t)
					Expect(err).NotTo(HaveOccurred())
					Expect(du[0]).To(BeNumerically("~", a+b, 1e-12))
				}
			}
		})
	})

	Describe("discrete delta accumulation", func() {
		It("adds every box's increment onto the previous merged value", func() {
			d := wiring.New(1)
			d.AddBox("inc1", 0)
			d.AddBox("inc2", 0)
			d.Expose("count", 0)

			comp, err := Compose(d, []dynamo.Sharer{stepBy(1), stepBy(2)})
			Expect(err).NotTo(HaveOccurred())
			Expect(comp.Sharer.NStates()).To(Equal(1))

			next, err := comp.Sharer.Sys.(dynamo.Discrete).F(dynamo.State{5}, nil, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(next[0]).To(BeNumerically("~", 8, 1e-12))
		})
	})

	Describe("associativity", func() {
		It("gives the same composite whether built nested or flat", func() {
			couple := dynamo.NewSharer(
				dynamo.NewInterface("u", "v"),
				dynamo.Continuous{States: 2, Ports: []int{0, 1},
					F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
						return dynamo.State{-u[0] * u[1], u[0] * u[1]}, nil
					}},
			)
			grow := linear1(0.5, 1)
			drain := linear1(-0.25, 0)

			// Nested: inner diagram joins couple and grow on one wire,
			// exposing both wires; the outer diagram adds drain.
			inner := wiring.New(2)
			inner.AddBox("couple", 0, 1)
			inner.AddBox("grow", 0)
			inner.Expose("u", 0)
			inner.Expose("v", 1)
			c, err := Compose(inner, []dynamo.Sharer{couple, grow})
			Expect(err).NotTo(HaveOccurred())

			outer := wiring.New(2)
			outer.AddBox("inner", 0, 1)
			outer.AddBox("drain", 1)
			outer.Expose("u", 0)
			outer.Expose("v", 1)
			nested, err := Compose(outer, []dynamo.Sharer{c.Sharer, drain})
			Expect(err).NotTo(HaveOccurred())

			flatD := wiring.New(2)
			flatD.AddBox("couple", 0, 1)
			flatD.AddBox("grow", 0)
			flatD.AddBox("drain", 1)
			flatD.Expose("u", 0)
			flatD.Expose("v", 1)
			flat, err := Compose(flatD, []dynamo.Sharer{couple, grow, drain})
			Expect(err).NotTo(HaveOccurred())

			Expect(nested.Sharer.NStates()).To(Equal(flat.Sharer.NStates()))
			Expect(nested.Sharer.PortMap()).To(Equal(flat.Sharer.PortMap()))

			for _, u := range []dynamo.State{{1, 1}, {2, 0.5}, {-1, 3}} {
				dn, err := nested.Sharer.Sys.(dynamo.Continuous).F(u, nil, 0)
				Expect(err).NotTo(HaveOccurred())
				df, err := flat.Sharer.Sys.(dynamo.Continuous).F(u, nil, 0)
				Expect(err).NotTo(HaveOccurred())
				for i := range dn {
					Expect(dn[i]).To(BeNumerically("~", df[i], 1e-12))
				}
			}
		})
	})

	Describe("determinism", func() {
		It("produces the same partition on repeated composition", func() {
			d := wiring.New(3)
			d.AddBox("a", 0, 1)
			d.AddBox("b", 1, 2)
			d.AddBox("c", 2)
			d.Expose("left", 0)
			d.Expose("right", 2)

			pair := dynamo.NewSharer(
				dynamo.NewInterface("l", "r"),
				dynamo.Continuous{States: 2, Ports: []int{0, 1},
					F: func(u dynamo.State, p dynamo.Params, t float64) (dynamo.State, error) {
						return dynamo.State{0, 0}, nil
					}},
			)
			xs := []dynamo.Sharer{pair, pair, linear1(1, 0)}

			first, err := Compose(d, xs)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 5; i++ {
				again, err := Compose(d, xs)
				Expect(err).NotTo(HaveOccurred())
				Expect(again.StateMap).To(Equal(first.StateMap))
				Expect(again.Preimages).To(Equal(first.Preimages))
				Expect(again.Sharer.PortMap()).To(Equal(first.Sharer.PortMap()))
			}
		})
	})
})
