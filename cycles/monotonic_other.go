//go:build !linux
// +build !linux

package cycles

import "time"

// monotonicCounter uses the runtime's monotonic clock reading carried by
// time.Time.
type monotonicCounter struct {
	epoch time.Time
}

func newMonotonic() Counter {
	return &monotonicCounter{epoch: time.Now()}
}

func (m *monotonicCounter) Ticks() uint64 { return uint64(time.Since(m.epoch)) }
func (m *monotonicCounter) Name() string  { return string(Monotonic) }
func (m *monotonicCounter) Unit() string  { return "ns" }
func (m *monotonicCounter) Close() error  { return nil }
