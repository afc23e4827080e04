package mtxmq

import (
	"github.com/samber/lo"
)

// Suite is a named sequence of benchmark cases sharing one invocation mode.
type Suite struct {
	Name    string // short identifier, used in the JSON report
	Label   string // printed in the first report column
	Mode    Mode
	Triples []Triple
}

// Extents returns the buffer lengths the suite needs.
func (s Suite) Extents() Extents {
	return lo.Reduce(s.Triples, func(acc Extents, t Triple, _ int) Extents {
		return acc.Union(modeExtents(s.Mode, t))
	}, Extents{})
}

// DefaultSuites are the four standard suites in report order.
func DefaultSuites() []Suite {
	return []Suite{
		SquareSuite(),
		RectangularSuite(),
		ChainedSuite(),
		FixedLargeSuite(),
	}
}

// SquareSuite times ni = nj = nk = m for m from 2 to 58 in steps of 2.
func SquareSuite() Suite {
	return Suite{
		Name:  "square",
		Label: "(m*m)T*(m*m)",
		Mode:  Single,
		Triples: lo.Map(lo.RangeWithSteps(2, 60, 2), func(m, _ int) Triple {
			return Triple{NI: m, NJ: m, NK: m}
		}),
	}
}

// RectangularSuite times (m², m, m) for m from 2 to 30 in steps of 2, the
// shape of applying a one-dimensional operator to a three-index tensor.
func RectangularSuite() Suite {
	return Suite{
		Name:    "rectangular",
		Label:   "(m*m,m)T*(m*m)",
		Mode:    Single,
		Triples: tensorTriples(),
	}
}

// ChainedSuite times the rectangular shapes in chained mode, three
// transformations in a row as in a full tensor transform.
func ChainedSuite() Suite {
	return Suite{
		Name:    "chained",
		Label:   "tran(m,m,m)",
		Mode:    Chained,
		Triples: tensorTriples(),
	}
}

// FixedLargeSuite times (400, m, 20) for m from 2 to 20 in steps of 2.
func FixedLargeSuite() Suite {
	return Suite{
		Name:  "fixed",
		Label: "(20*20,20)T*(20,m)",
		Mode:  Single,
		Triples: lo.Map(lo.RangeWithSteps(2, 22, 2), func(m, _ int) Triple {
			return Triple{NI: 20 * 20, NJ: m, NK: 20}
		}),
	}
}

func tensorTriples() []Triple {
	return lo.Map(lo.RangeWithSteps(2, 32, 2), func(m, _ int) Triple {
		return Triple{NI: m * m, NJ: m, NK: m}
	})
}
