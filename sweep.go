package mtxmq

import (
	"fmt"

	"github.com/samber/lo"
)

// Sweep checks candidate kernels against a reference over a grid of
// dimension triples.
//
// For every triple the reference runs once into a zeroed C; then each
// candidate runs into a zeroed D over the same A and B, and the ni×nj
// output regions are compared element by element. Outputs are zeroed
// before every run because the contraction accumulates.
type Sweep struct {
	Reference  KernelFunc
	Candidates []Kernel
	Tolerance  ToleranceConfig
	Mode       SweepMode
}

// SweepReport is the outcome of a sweep.
type SweepReport struct {
	Triples     int              // triples evaluated
	Comparisons int              // kernel outputs compared
	Failures    []*MismatchError // one per failing (triple, kernel)
}

// OK reports whether every comparison passed.
func (r *SweepReport) OK() bool {
	return len(r.Failures) == 0
}

// FailuresByKernel groups failures by kernel name.
func (r *SweepReport) FailuresByKernel() map[string][]*MismatchError {
	return lo.GroupBy(r.Failures, func(m *MismatchError) string {
		return m.Kernel
	})
}

// Run sweeps the grid. See RunTriples.
func (s *Sweep) Run(grid Grid, bufs *Buffers) (*SweepReport, error) {
	return s.RunTriples(grid.Triples(), bufs)
}

// RunTriples sweeps ts in order.
//
// In FailFast mode the first element outside tolerance stops the sweep and
// the returned error is that *MismatchError. In CollectAll mode every
// triple is evaluated, each failing (triple, kernel) pair records its worst
// element, and the returned error wraps the first failure. Either way the
// report describes everything evaluated so far.
func (s *Sweep) RunTriples(ts []Triple, bufs *Buffers) (*SweepReport, error) {
	if s.Reference == nil {
		return nil, NewInvalidArgError("Sweep", "no reference kernel")
	}
	if len(s.Candidates) == 0 {
		return nil, NewInvalidArgError("Sweep", "no candidate kernels")
	}
	if err := bufs.Check("Sweep", ts); err != nil {
		return nil, err
	}

	report := &SweepReport{}
	for _, t := range ts {
		report.Triples++
		n := t.NI * t.NJ
		c, d := bufs.C[:n], bufs.D[:n]

		Zero(c)
		s.Reference(t.NI, t.NJ, t.NK, c, bufs.A, bufs.B)

		for _, k := range s.Candidates {
			Zero(d)
			k.Fn(t.NI, t.NJ, t.NK, d, bufs.A, bufs.B)
			report.Comparisons++

			m := s.compare(k.Name, t, c, d)
			if m == nil {
				continue
			}
			report.Failures = append(report.Failures, m)
			if s.Mode == FailFast {
				return report, m
			}
		}
	}

	if !report.OK() {
		return report, fmt.Errorf("mtxmq: %d of %d comparisons failed, first: %w",
			len(report.Failures), report.Comparisons, report.Failures[0])
	}
	return report, nil
}

// compare returns nil when got matches want within tolerance. Otherwise it
// describes the first offending element in FailFast mode, or the worst one
// in CollectAll mode. NaN counts as an infinite error.
func (s *Sweep) compare(kernel string, t Triple, want, got []float64) *MismatchError {
	res := verifyFloat64(want, got, s.Tolerance, s.Mode == FailFast)
	if res.IsAcceptable() {
		return nil
	}
	// With a finite tolerance every element outside it has a larger error
	// than any element inside it, so the worst element is an offender.
	idx := res.WorstIndex
	if s.Mode == FailFast {
		idx = res.FirstError
	}
	return &MismatchError{
		Kernel:    kernel,
		Triple:    t,
		Index:     idx,
		Expected:  want[idx],
		Actual:    got[idx],
		AbsError:  absError(want[idx], got[idx]),
		ULPError:  ULPDiff(want[idx], got[idx]),
		Tolerance: s.Tolerance.AbsTol,
	}
}
