// Package mtxmq configuration constants
package mtxmq

import (
	"github.com/LynnColeArt/mtxmq/cycles"
)

// Data generation
const (
	// DefaultSeed seeds the input generator
	DefaultSeed uint64 = 76521
)

// Buffer layout
const (
	// DefaultAlignment is the start-address alignment of every buffer in
	// bytes; two doubles, the width of an SSE2 register
	DefaultAlignment = 16
)

// Correctness grid bounds (Stop values are exclusive)
const (
	SweepIMin  = 2
	SweepIStop = 60
	SweepIStep = 2

	SweepJKMin  = 2
	SweepJKStop = 100
	SweepJKStep = 6
)

// Performance harness
const (
	// DefaultTrials is the number of timed trials per case; the best rate wins
	DefaultTrials = 30

	// ChainLength is the number of kernel calls per chained trial
	ChainLength = 3
)

// SweepMode selects how the correctness sweep reacts to a mismatch.
type SweepMode int

const (
	// FailFast stops at the first element outside tolerance
	FailFast SweepMode = iota
	// CollectAll evaluates the whole grid and records every failing case
	CollectAll
)

func (m SweepMode) String() string {
	if m == CollectAll {
		return "collect-all"
	}
	return "fail-fast"
}

// Config holds every tunable of a harness run. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	// Seed for the input generator
	Seed uint64

	// Trials per benchmark case
	Trials int

	// Tolerance for the correctness sweep
	Tolerance ToleranceConfig

	// Alignment of every buffer in bytes
	Alignment int

	// Grid of the correctness sweep
	Grid Grid

	// Suites run after a successful sweep
	Suites []Suite

	// Timer selects the cycle counter backend
	Timer cycles.Kind

	// Kernel is the implementation under test
	Kernel Kernel

	// Alternates are extra implementations timed next to Kernel,
	// by name (see blasref.Names)
	Alternates []string

	// VerifyAlternates adds the alternates to the correctness sweep
	VerifyAlternates bool

	// Mode of the correctness sweep
	Mode SweepMode

	// SkipBench stops after the correctness sweep
	SkipBench bool

	// ReportPath, if set, receives a JSON log of every measurement
	ReportPath string

	// Verbose adds progress details to the diagnostic log
	Verbose bool
}

// DefaultConfig reproduces the reference run: fixed seed, 30 trials,
// architecture default tolerance, 16-byte alignment, the full grid and the
// four standard suites, fail-fast, no alternates.
func DefaultConfig() Config {
	return Config{
		Seed:      DefaultSeed,
		Trials:    DefaultTrials,
		Tolerance: DefaultTolerance(),
		Alignment: DefaultAlignment,
		Grid:      DefaultGrid(),
		Suites:    DefaultSuites(),
		Timer:     cycles.Auto,
		Kernel:    UnderTest,
		Mode:      FailFast,
	}
}

// Validate checks the configuration before any buffer is allocated.
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return NewInvalidArgError("Config", "trials must be positive")
	}
	if !(c.Tolerance.AbsTol >= 0) {
		return NewInvalidArgError("Config", "tolerance must be a non-negative number")
	}
	if !validAlignment(c.Alignment) {
		return ErrInvalidAlignment
	}
	if c.Kernel.Fn == nil {
		return NewInvalidArgError("Config", "no kernel under test")
	}
	for _, name := range c.Alternates {
		if _, err := Alternate(name); err != nil {
			return err
		}
	}
	return nil
}
