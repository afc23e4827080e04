//go:build linux
// +build linux

package cycles

import (
	"time"

	"golang.org/x/sys/unix"
)

// monotonicCounter reads CLOCK_MONOTONIC_RAW, which is not slewed by NTP.
// If the raw clock is unavailable it falls back to the runtime monotonic
// clock for the lifetime of the counter.
type monotonicCounter struct {
	raw   bool
	epoch time.Time
}

func newMonotonic() Counter {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts)
	return &monotonicCounter{raw: err == nil, epoch: time.Now()}
}

func (m *monotonicCounter) Ticks() uint64 {
	if !m.raw {
		return uint64(time.Since(m.epoch))
	}
	var ts unix.Timespec
	unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts)
	return uint64(ts.Nano())
}

func (m *monotonicCounter) Name() string { return string(Monotonic) }
func (m *monotonicCounter) Unit() string { return "ns" }
func (m *monotonicCounter) Close() error { return nil }
