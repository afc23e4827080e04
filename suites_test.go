package mtxmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSuites(t *testing.T) {
	suites := DefaultSuites()
	require.Len(t, suites, 4)

	tests := []struct {
		label string
		mode  Mode
		count int
		first Triple
		last  Triple
	}{
		{"(m*m)T*(m*m)", Single, 29, Triple{2, 2, 2}, Triple{58, 58, 58}},
		{"(m*m,m)T*(m*m)", Single, 15, Triple{4, 2, 2}, Triple{900, 30, 30}},
		{"tran(m,m,m)", Chained, 15, Triple{4, 2, 2}, Triple{900, 30, 30}},
		{"(20*20,20)T*(20,m)", Single, 10, Triple{400, 2, 20}, Triple{400, 20, 20}},
	}
	for i, tt := range tests {
		s := suites[i]
		t.Run(s.Name, func(t *testing.T) {
			assert.Equal(t, tt.label, s.Label)
			assert.Equal(t, tt.mode, s.Mode)
			require.Len(t, s.Triples, tt.count)
			assert.Equal(t, tt.first, s.Triples[0])
			assert.Equal(t, tt.last, s.Triples[len(s.Triples)-1])
			for _, tr := range s.Triples {
				assert.Positive(t, tr.Flops())
			}
		})
	}
}

func TestSuiteExtents(t *testing.T) {
	assert.Equal(t, Extents{A: 27000, B: 900, C: 27000}, RectangularSuite().Extents())
	assert.Equal(t, Extents{A: 27000, B: 900, C: 27000}, ChainedSuite().Extents())
	assert.Equal(t, Extents{A: 8000, B: 400, C: 8000}, FixedLargeSuite().Extents())

	// chained mode sizes A and C for both roles
	s := Suite{Mode: Chained, Triples: []Triple{{NI: 4, NJ: 8, NK: 2}}}
	assert.Equal(t, Extents{A: 32, B: 16, C: 32}, s.Extents())
}

func TestDriverPlanCoversEverything(t *testing.T) {
	cfg := DefaultConfig()
	plan := NewDriver(cfg, nil, nil).Plan()

	assert.True(t, plan.Covers(cfg.Grid.Extents()))
	for _, s := range cfg.Suites {
		assert.True(t, plan.Covers(s.Extents()), s.Name)
	}
	assert.Equal(t, Extents{A: 27000, B: 98 * 98, C: 27000}, plan)
}
