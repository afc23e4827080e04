package cycles

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("sundial")
	assert.Error(t, err)
}

func TestDefaultCounter(t *testing.T) {
	c := Default()
	defer c.Close()

	if runtime.GOARCH == "amd64" {
		assert.Equal(t, "tsc", c.Name())
		assert.Equal(t, "cycles", c.Unit())
	} else {
		assert.Equal(t, "monotonic", c.Name())
		assert.Equal(t, "ns", c.Unit())
	}
}

func TestMonotonicAdvances(t *testing.T) {
	c, err := New(Monotonic)
	require.NoError(t, err)
	defer c.Close()

	start := c.Ticks()
	sum := 0.0
	for i := 0; i < 100000; i++ {
		sum += float64(i)
	}
	end := c.Ticks()

	elapsed, ok := Elapsed(start, end)
	assert.True(t, ok, "monotonic clock ran backwards")
	assert.Greater(t, elapsed, uint64(0))
	assert.Greater(t, sum, 0.0)
}

func TestTSC(t *testing.T) {
	c, err := New(TSC)
	if runtime.GOARCH != "amd64" {
		assert.True(t, errors.Is(err, ErrUnsupported))
		return
	}
	require.NoError(t, err)
	defer c.Close()

	a := c.Ticks()
	b := c.Ticks()
	assert.GreaterOrEqual(t, b, a)
}

func TestPerf(t *testing.T) {
	c, err := New(Perf)
	if runtime.GOOS != "linux" {
		assert.True(t, errors.Is(err, ErrUnsupported))
		return
	}
	if err != nil {
		// Containers and CI runners commonly forbid perf_event_open.
		t.Skipf("perf counter unavailable: %v", err)
	}
	defer c.Close()

	a := c.Ticks()
	x := 1.0
	for i := 0; i < 100000; i++ {
		x *= 1.0000001
	}
	b := c.Ticks()
	assert.Greater(t, b, a)
	assert.Greater(t, x, 1.0)
	assert.Equal(t, "cycles", c.Unit())
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name       string
		start, end uint64
		want       uint64
		ok         bool
	}{
		{"forward", 10, 25, 15, true},
		{"equal", 7, 7, 0, true},
		{"backwards", 25, 10, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Elapsed(tc.start, tc.end)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New(Kind("hourglass"))
	assert.Error(t, err)
}
