package compose

import (
	"fmt"

	"github.com/san-kum/dynwire/internal/dynamo"
	"github.com/san-kum/dynwire/internal/wiring"
)

// unionFind is a disjoint-set over dense int ids, with iterative path
// compression and union by rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		u.parent[ra] = rb
		return
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// quotient is the merged state space: the disjoint union of the
// subsystem state sets modulo the junction-induced equivalence.
type quotient struct {
	offsets   []int   // box -> first global state index
	total     int     // size of the disjoint union
	stateMap  []int   // global index -> merged class
	preimages [][]int // merged class -> global indices, ascending
	junctions []int   // junction -> merged class, -1 when no port attaches
}

func (q *quotient) nMerged() int { return len(q.preimages) }

// buildQuotient computes the disjoint union of the sharers' state sets
// and quotients it by the junction relation: two global states are
// identified when ports sharing a junction map onto them. Classes are
// numbered by first appearance in global index order, so the numbering
// is reproducible for identical inputs.
func buildQuotient(d *wiring.Diagram, xs []dynamo.Sharer) (*quotient, error) {
	q := &quotient{offsets: make([]int, len(xs))}
	for b, x := range xs {
		q.offsets[b] = q.total
		q.total += x.NStates()
	}

	uf := newUnionFind(q.total)
	anchor := make([]int, d.NJunctions())
	for j := range anchor {
		anchor[j] = -1
	}

	// Total port-to-global-state map, unioned junction by junction.
	for b, x := range xs {
		pm := x.PortMap()
		for i, j := range d.BoxJunctions(b) {
			s := pm[i]
			if s < 0 || s >= x.NStates() {
				return nil, fmt.Errorf("%w: box %q port %d maps to state %d of %d",
					dynamo.ErrPortOutOfRange, d.BoxName(b), i, s, x.NStates())
			}
			g := q.offsets[b] + s
			if anchor[j] < 0 {
				anchor[j] = g
			} else {
				uf.union(anchor[j], g)
			}
		}
	}

	q.stateMap = make([]int, q.total)
	classOf := make(map[int]int, q.total)
	for g := 0; g < q.total; g++ {
		root := uf.find(g)
		cls, ok := classOf[root]
		if !ok {
			cls = len(q.preimages)
			classOf[root] = cls
			q.preimages = append(q.preimages, nil)
		}
		q.stateMap[g] = cls
		q.preimages[cls] = append(q.preimages[cls], g)
	}

	q.junctions = make([]int, d.NJunctions())
	for j, g := range anchor {
		if g < 0 {
			q.junctions[j] = -1
		} else {
			q.junctions[j] = q.stateMap[uf.find(g)]
		}
	}
	return q, nil
}
