package mtxmq

import (
	"fmt"

	"github.com/samber/lo"
)

// Triple holds the three loop extents of one contraction:
// C is NI×NJ, A is NK×NI and B is NK×NJ.
type Triple struct {
	NI, NJ, NK int
}

// String formats the triple as "ni nj nk".
func (t Triple) String() string {
	return fmt.Sprintf("%d %d %d", t.NI, t.NJ, t.NK)
}

// Valid reports whether every extent is non-negative.
func (t Triple) Valid() bool {
	return t.NI >= 0 && t.NJ >= 0 && t.NK >= 0
}

// Flops is the floating-point operation count of one contraction:
// one multiply and one add per inner-loop element.
func (t Triple) Flops() float64 {
	return 2 * float64(t.NI) * float64(t.NJ) * float64(t.NK)
}

// Extents are the buffer lengths, in elements, needed to run a set of
// triples.
type Extents struct {
	A, B, C int
}

// Need returns the extents one contraction of t touches.
func (t Triple) Need() Extents {
	return Extents{A: t.NK * t.NI, B: t.NK * t.NJ, C: t.NI * t.NJ}
}

// Union returns the element-wise maximum of e and o.
func (e Extents) Union(o Extents) Extents {
	return Extents{A: max(e.A, o.A), B: max(e.B, o.B), C: max(e.C, o.C)}
}

// Covers reports whether e is at least as large as o in every buffer.
func (e Extents) Covers(o Extents) bool {
	return e.A >= o.A && e.B >= o.B && e.C >= o.C
}

// Axis is a half-open arithmetic range [Start, Stop) with a positive Step.
type Axis struct {
	Start, Stop, Step int
}

// Values lists the axis points in increasing order.
func (a Axis) Values() []int {
	if a.Step <= 0 || a.Stop <= a.Start {
		return nil
	}
	return lo.RangeWithSteps(a.Start, a.Stop, a.Step)
}

// Grid is the cartesian product of three axes.
type Grid struct {
	I, J, K Axis
}

// DefaultGrid is the correctness grid: ni from 2 to 58 in steps of 2,
// nj and nk from 2 to 98 in steps of 6.
func DefaultGrid() Grid {
	return Grid{
		I: Axis{Start: SweepIMin, Stop: SweepIStop, Step: SweepIStep},
		J: Axis{Start: SweepJKMin, Stop: SweepJKStop, Step: SweepJKStep},
		K: Axis{Start: SweepJKMin, Stop: SweepJKStop, Step: SweepJKStep},
	}
}

// Triples enumerates the grid with ni outermost and nk innermost.
func (g Grid) Triples() []Triple {
	is, js, ks := g.I.Values(), g.J.Values(), g.K.Values()
	out := make([]Triple, 0, len(is)*len(js)*len(ks))
	for _, ni := range is {
		for _, nj := range js {
			for _, nk := range ks {
				out = append(out, Triple{NI: ni, NJ: nj, NK: nk})
			}
		}
	}
	return out
}

// Extents returns the buffer lengths needed by every triple in the grid.
func (g Grid) Extents() Extents {
	return ExtentsOf(g.Triples())
}

// ExtentsOf returns the union of the extents of ts.
func ExtentsOf(ts []Triple) Extents {
	return lo.Reduce(ts, func(acc Extents, t Triple, _ int) Extents {
		return acc.Union(t.Need())
	}, Extents{})
}
