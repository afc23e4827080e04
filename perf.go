package mtxmq

import (
	"fmt"
	"log"
	"math"

	"github.com/LynnColeArt/mtxmq/cycles"
)

// Mode is the invocation pattern of one trial.
type Mode int

const (
	// Single times one kernel call per trial
	Single Mode = iota
	// Chained times ChainLength calls per trial with rotated operands:
	// C←Aᵗ·B, then A←Cᵗ·B, then C←Aᵗ·B again
	Chained
)

func (m Mode) String() string {
	if m == Chained {
		return "chained"
	}
	return "single"
}

// Calls is the number of kernel invocations per trial.
func (m Mode) Calls() int {
	if m == Chained {
		return ChainLength
	}
	return 1
}

// AnomalyReason says why a trial was kept out of the best-of-N maximum.
type AnomalyReason string

const (
	ZeroElapsed AnomalyReason = "zero elapsed ticks"
	Backwards   AnomalyReason = "counter ran backwards"
	ZeroRate    AnomalyReason = "zero rate"
	NonFinite   AnomalyReason = "non-finite rate"
)

// Anomaly records a trial whose rate could not be trusted.
type Anomaly struct {
	Trial  int
	Ticks  uint64
	Rate   float64
	Reason AnomalyReason
}

// Rate is the best-of-N throughput of one kernel for one case, in flops
// per counter tick.
type Rate struct {
	Kernel    string
	Best      float64
	Trials    int
	Anomalies []Anomaly
}

// Valid reports whether at least one trial produced a usable rate.
func (r Rate) Valid() bool {
	return r.Best > 0 && !math.IsInf(r.Best, 0) && !math.IsNaN(r.Best)
}

// Measurement holds the rates of every kernel for one case.
type Measurement struct {
	Label  string
	Mode   Mode
	Triple Triple
	Unit   string // counter tick unit
	Rates  []Rate
}

// Anomalies counts flagged trials across all kernels.
func (m Measurement) Anomalies() int {
	n := 0
	for _, r := range m.Rates {
		n += len(r.Anomalies)
	}
	return n
}

// Harness times kernels with a cycle counter and keeps the best rate over
// a fixed number of trials. It runs everything on the calling goroutine.
type Harness struct {
	Counter cycles.Counter
	Trials  int
	Kernels []Kernel

	// Log receives one line per anomalous trial; nil discards them
	Log *log.Logger
}

// Measure times every kernel on t in the given mode.
//
// Before each trial, outside the timed region, the output region of C is
// zeroed and, in chained mode, A is restored from its pristine copy. This
// keeps operand magnitudes fixed from trial to trial so repeated
// accumulation cannot drift towards overflow.
//
// The rate of a trial is flops divided by elapsed ticks. Trials with zero
// or backwards intervals, or a zero or non-finite rate, are recorded as
// anomalies and never enter the maximum.
func (h *Harness) Measure(label string, mode Mode, t Triple, bufs *Buffers) (Measurement, error) {
	if h.Counter == nil {
		return Measurement{}, NewTimerError("Measure", "no cycle counter", nil)
	}
	if h.Trials <= 0 {
		return Measurement{}, NewInvalidArgError("Measure", "trials must be positive")
	}
	if len(h.Kernels) == 0 {
		return Measurement{}, NewInvalidArgError("Measure", "no kernels to time")
	}
	if !t.Valid() || t.Flops() == 0 {
		return Measurement{}, NewInvalidArgError("Measure",
			fmt.Sprintf("%s: %v has no floating-point work to time", label, t))
	}
	if err := bufs.CheckExtents("Measure", modeExtents(mode, t)); err != nil {
		return Measurement{}, err
	}

	flops := t.Flops() * float64(mode.Calls())
	m := Measurement{
		Label:  label,
		Mode:   mode,
		Triple: t,
		Unit:   h.Counter.Unit(),
		Rates:  make([]Rate, 0, len(h.Kernels)),
	}

	for _, k := range h.Kernels {
		r := Rate{Kernel: k.Name, Trials: h.Trials}
		for trial := 0; trial < h.Trials; trial++ {
			ticks, forward := h.trial(k.Fn, mode, t, bufs)

			rate := flops / float64(ticks)
			var reason AnomalyReason
			switch {
			case !forward:
				reason, rate = Backwards, 0
			case ticks == 0:
				reason = ZeroElapsed
			case math.IsNaN(rate) || math.IsInf(rate, 0):
				reason = NonFinite
			case rate <= 0:
				reason = ZeroRate
			}

			if reason != "" {
				r.Anomalies = append(r.Anomalies, Anomaly{Trial: trial, Ticks: ticks, Rate: rate, Reason: reason})
				if h.Log != nil {
					h.Log.Printf("%s %v: %s trial %d: %s (ticks %d, rate %e)",
						label, t, k.Name, trial, reason, ticks, rate)
				}
				continue
			}
			if rate > r.Best {
				r.Best = rate
			}
		}
		m.Rates = append(m.Rates, r)
	}
	return m, nil
}

// trial runs one timed invocation pattern and returns the elapsed ticks.
func (h *Harness) trial(fn KernelFunc, mode Mode, t Triple, bufs *Buffers) (uint64, bool) {
	ni, nj, nk := t.NI, t.NJ, t.NK
	a, b, c := bufs.A, bufs.B, bufs.C

	if mode == Chained {
		bufs.RestoreA()
		Zero(c[:max(ni*nj, nk*ni)])

		start := h.Counter.Ticks()
		fn(ni, nj, nk, c, a, b)
		fn(ni, nj, nk, a, c, b)
		fn(ni, nj, nk, c, a, b)
		end := h.Counter.Ticks()
		return cycles.Elapsed(start, end)
	}

	Zero(c[:ni*nj])
	start := h.Counter.Ticks()
	fn(ni, nj, nk, c, a, b)
	end := h.Counter.Ticks()
	return cycles.Elapsed(start, end)
}

// modeExtents is what one trial of mode touches. In chained mode A and C
// each serve as both input and output.
func modeExtents(mode Mode, t Triple) Extents {
	need := t.Need()
	if mode == Chained {
		ac := max(need.A, need.C)
		need.A, need.C = ac, ac
	}
	return need
}
