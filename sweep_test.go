package mtxmq

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallGrid has 5×3×3 triples, ni in {2,4,6,8,10}.
var smallGrid = Grid{
	I: Axis{Start: 2, Stop: 12, Step: 2},
	J: Axis{Start: 2, Stop: 20, Step: 6},
	K: Axis{Start: 2, Stop: 20, Step: 6},
}

func sweepBuffers(t *testing.T, ts ...Triple) *Buffers {
	t.Helper()
	bufs, err := NewBuffers(ExtentsOf(ts), DefaultAlignment)
	require.NoError(t, err)
	bufs.Fill(NewGenerator(DefaultSeed))
	return bufs
}

func newSweep(mode SweepMode, candidates ...Kernel) *Sweep {
	return &Sweep{
		Reference:  ReferenceKernel.Fn,
		Candidates: candidates,
		Tolerance:  DefaultTolerance(),
		Mode:       mode,
	}
}

// brokenOn wraps the kernel under test and corrupts one output element of
// every contraction with the given ni.
func brokenOn(ni int) Kernel {
	return Kernel{Name: "broken", Fn: func(dimi, dimj, dimk int, c, a, b []float64) {
		UnderTest.Fn(dimi, dimj, dimk, c, a, b)
		if dimi == ni {
			c[dimj+1] += 1e-6
		}
	}}
}

func TestSweepSmallestTriple(t *testing.T) {
	tr := Triple{NI: 2, NJ: 2, NK: 2}
	bufs := sweepBuffers(t, tr)

	report, err := newSweep(FailFast, UnderTest).RunTriples([]Triple{tr}, bufs)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Triples)
	assert.Equal(t, 1, report.Comparisons)
}

func TestSweepLargestTriple(t *testing.T) {
	tr := Triple{NI: 58, NJ: 98, NK: 98}
	bufs := sweepBuffers(t, tr)

	report, err := newSweep(FailFast, UnderTest).RunTriples([]Triple{tr}, bufs)
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestSweepDefaultGrid(t *testing.T) {
	if testing.Short() {
		t.Skip("full grid sweep")
	}
	g := DefaultGrid()
	bufs, err := NewBuffers(g.Extents(), DefaultAlignment)
	require.NoError(t, err)
	bufs.Fill(NewGenerator(DefaultSeed))

	report, err := newSweep(FailFast, UnderTest).Run(g, bufs)
	require.NoError(t, err)
	assert.Equal(t, 29*17*17, report.Triples)
}

func TestSweepZeroExtents(t *testing.T) {
	ts := []Triple{{0, 0, 0}, {0, 4, 4}, {4, 0, 4}, {4, 4, 0}}
	bufs := sweepBuffers(t, Triple{NI: 4, NJ: 4, NK: 4})

	report, err := newSweep(FailFast, UnderTest, ReferenceKernel).RunTriples(ts, bufs)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Triples)
	assert.Equal(t, 8, report.Comparisons)
}

func TestSweepFailFast(t *testing.T) {
	bufs := sweepBuffers(t, smallGrid.Triples()...)

	report, err := newSweep(FailFast, brokenOn(10)).Run(smallGrid, bufs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMismatch)

	m, ok := AsMismatch(err)
	require.True(t, ok)
	assert.Equal(t, "broken", m.Kernel)
	assert.Equal(t, Triple{NI: 10, NJ: 2, NK: 2}, m.Triple)
	assert.Equal(t, 3, m.Index)
	assert.Equal(t, 1, m.Row())
	assert.Equal(t, 1, m.Col())
	assert.InDelta(t, 1e-6, m.AbsError, 1e-12)
	assert.Greater(t, m.ULPError, int64(0))

	// the sweep stopped at the first failing triple
	assert.Equal(t, 4*9+1, report.Triples)
	assert.Len(t, report.Failures, 1)
}

func TestSweepCollectAll(t *testing.T) {
	bufs := sweepBuffers(t, smallGrid.Triples()...)

	report, err := newSweep(CollectAll, UnderTest, brokenOn(10)).Run(smallGrid, bufs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMismatch)

	assert.Equal(t, 45, report.Triples)
	assert.Equal(t, 90, report.Comparisons)
	require.Len(t, report.Failures, 9)
	for _, m := range report.Failures {
		assert.Equal(t, 10, m.Triple.NI)
		assert.Equal(t, m.Triple.NJ+1, m.Index)
	}

	byKernel := report.FailuresByKernel()
	assert.Len(t, byKernel["broken"], 9)
	assert.NotContains(t, byKernel, "mtxmq")

	first, ok := AsMismatch(err)
	require.True(t, ok)
	assert.Same(t, report.Failures[0], first)
}

func TestSweepCollectAllReportsWorst(t *testing.T) {
	tr := Triple{NI: 4, NJ: 4, NK: 4}
	bufs := sweepBuffers(t, tr)
	k := Kernel{Name: "two-errors", Fn: func(dimi, dimj, dimk int, c, a, b []float64) {
		UnderTest.Fn(dimi, dimj, dimk, c, a, b)
		c[2] += 1e-9
		c[7] = math.NaN()
	}}

	report, err := newSweep(CollectAll, k).RunTriples([]Triple{tr}, bufs)
	require.Error(t, err)
	require.Len(t, report.Failures, 1)
	m := report.Failures[0]
	assert.Equal(t, 7, m.Index)
	assert.True(t, math.IsInf(m.AbsError, 1))

	// fail-fast reports the first offender instead
	_, err = newSweep(FailFast, k).RunTriples([]Triple{tr}, bufs)
	m, ok := AsMismatch(err)
	require.True(t, ok)
	assert.Equal(t, 2, m.Index)
}

func TestSweepAlternates(t *testing.T) {
	alts, err := Alternates([]string{"gonum", "ddot"})
	require.NoError(t, err)

	bufs := sweepBuffers(t, smallGrid.Triples()...)
	s := newSweep(CollectAll, alts...)
	s.Tolerance = ToleranceConfig{AbsTol: 1e-12}

	report, err := s.Run(smallGrid, bufs)
	require.NoError(t, err)
	assert.Equal(t, 90, report.Comparisons)
}

func TestSweepInvalid(t *testing.T) {
	bufs := sweepBuffers(t, Triple{NI: 2, NJ: 2, NK: 2})

	_, err := (&Sweep{Candidates: []Kernel{UnderTest}}).RunTriples(nil, bufs)
	assert.True(t, IsInvalidArgError(err))

	_, err = newSweep(FailFast).RunTriples(nil, bufs)
	assert.True(t, IsInvalidArgError(err))

	_, err = newSweep(FailFast, UnderTest).RunTriples([]Triple{{NI: 4, NJ: 4, NK: 4}}, bufs)
	assert.True(t, IsInvalidArgError(err))
	assert.False(t, errors.Is(err, ErrMismatch))
}
