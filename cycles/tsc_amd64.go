//go:build amd64
// +build amd64

package cycles

// rdtsc reads the processor timestamp counter.
func rdtsc() uint64

type tscCounter struct{}

func newTSC() (Counter, error) {
	return tscCounter{}, nil
}

func (tscCounter) Ticks() uint64 { return rdtsc() }
func (tscCounter) Name() string  { return string(TSC) }
func (tscCounter) Unit() string  { return "cycles" }
func (tscCounter) Close() error  { return nil }
