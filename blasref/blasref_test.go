package blasref

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mtxmNaive(dimi, dimj, dimk int, c, a, b []float64) {
	for k := 0; k < dimk; k++ {
		for j := 0; j < dimj; j++ {
			for i := 0; i < dimi; i++ {
				c[i*dimj+j] += a[k*dimi+i] * b[k*dimj+j]
			}
		}
	}
}

func randomSlice(rng *rand.Rand, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = rng.Float64()
	}
	return s
}

func TestNamesAndLookup(t *testing.T) {
	assert.Equal(t, []string{Ddot, Gonum}, Names())

	for _, name := range Names() {
		fn, ok := Lookup(name)
		assert.True(t, ok, name)
		assert.NotNil(t, fn, name)
	}

	_, ok := Lookup("mkl")
	assert.False(t, ok)
}

func TestAlternatesMatchNaive(t *testing.T) {
	shapes := [][3]int{
		{1, 1, 1},
		{2, 2, 2},
		{3, 7, 5},
		{16, 4, 4},
		{58, 98, 98},
		{400, 20, 20},
	}
	approx := cmpopts.EquateApprox(1e-12, 1e-12)

	for _, name := range Names() {
		fn, _ := Lookup(name)
		for _, s := range shapes {
			ni, nj, nk := s[0], s[1], s[2]
			t.Run(fmt.Sprintf("%s/%dx%dx%d", name, ni, nj, nk), func(t *testing.T) {
				rng := rand.New(rand.NewSource(int64(ni*10000 + nj*100 + nk)))
				a := randomSlice(rng, nk*ni)
				b := randomSlice(rng, nk*nj)
				start := randomSlice(rng, ni*nj)

				want := append([]float64(nil), start...)
				got := append([]float64(nil), start...)
				mtxmNaive(ni, nj, nk, want, a, b)
				fn(ni, nj, nk, got, a, b)

				if diff := cmp.Diff(want, got, approx); diff != "" {
					t.Errorf("%s mismatch (-naive +%s):\n%s", name, name, diff)
				}
			})
		}
	}
}

func TestAlternatesOversizedBuffers(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ni, nj, nk := 6, 8, 4
	a := randomSlice(rng, 900*100)
	b := randomSlice(rng, 100*100)

	for _, name := range Names() {
		fn, _ := Lookup(name)
		c := make([]float64, 900*100)
		want := make([]float64, 900*100)
		mtxmNaive(ni, nj, nk, want, a, b)
		fn(ni, nj, nk, c, a, b)

		require.InDeltaSlice(t, want, c, 1e-12, name)
	}
}

func TestAlternatesZeroExtents(t *testing.T) {
	for _, name := range Names() {
		fn, _ := Lookup(name)
		c := []float64{4, 5}
		assert.NotPanics(t, func() { fn(0, 3, 3, c, nil, nil) }, name)
		assert.NotPanics(t, func() { fn(3, 0, 3, c, nil, nil) }, name)
		assert.NotPanics(t, func() { fn(3, 3, 0, c, nil, nil) }, name)
		assert.Equal(t, []float64{4, 5}, c, name)
	}
}
