// Package cycles provides monotonic tick sources for micro-benchmarking.
//
// A Counter is an opaque, monotonically increasing tick source. Ticks are
// only meaningful as differences taken on the same goroutine within a
// single trial; they are not calendar time and are not comparable across
// processes or cores.
//
// Backends are selected by Kind:
//   - TSC: the processor timestamp counter (amd64 only)
//   - Perf: the hardware CPU-cycle counter via perf_event_open (linux only)
//   - Monotonic: a raw monotonic clock in nanoseconds (all platforms)
//
// Auto picks TSC where the instruction exists and Monotonic otherwise.
package cycles

import (
	"errors"
	"fmt"
)

// Kind names a counter backend.
type Kind string

const (
	Auto      Kind = "auto"
	TSC       Kind = "tsc"
	Perf      Kind = "perf"
	Monotonic Kind = "monotonic"
)

// ErrUnsupported is returned when a backend is not available on this platform.
var ErrUnsupported = errors.New("cycles: backend not supported on this platform")

// Counter is a monotonic tick source.
type Counter interface {
	// Ticks returns the current tick count.
	Ticks() uint64
	// Name identifies the backend, e.g. "tsc".
	Name() string
	// Unit describes one tick, e.g. "cycles" or "ns".
	Unit() string
	// Close releases any resources held by the backend.
	Close() error
}

// Kinds returns every selectable backend name.
func Kinds() []Kind {
	return []Kind{Auto, TSC, Perf, Monotonic}
}

// ParseKind converts a flag value into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("cycles: unknown counter %q", s)
}

// New opens a counter of the given kind.
func New(kind Kind) (Counter, error) {
	switch kind {
	case Auto, "":
		return Default(), nil
	case TSC:
		return newTSC()
	case Perf:
		return newPerf()
	case Monotonic:
		return newMonotonic(), nil
	default:
		return nil, fmt.Errorf("cycles: unknown counter %q", kind)
	}
}

// Default returns the best counter for the platform. It never fails:
// platforms without a timestamp instruction get the monotonic clock.
func Default() Counter {
	if c, err := newTSC(); err == nil {
		return c
	}
	return newMonotonic()
}

// Elapsed returns end-start and whether the counter moved forward.
// A counter read on a different core can appear to run backwards; such
// intervals are reported as not ok rather than wrapping around.
func Elapsed(start, end uint64) (uint64, bool) {
	if end < start {
		return 0, false
	}
	return end - start, true
}
