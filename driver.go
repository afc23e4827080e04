package mtxmq

import (
	"fmt"
	"io"
	"log"

	"github.com/LynnColeArt/mtxmq/cycles"
)

// SuiteResult holds the measurements of one suite in run order.
type SuiteResult struct {
	Suite        string
	Measurements []Measurement
}

// Result is everything a run produced.
type Result struct {
	Sweep      *SweepReport
	Timer      string // counter backend used, empty if the benchmark was skipped
	Suites     []SuiteResult
	ReportPath string
}

// Driver runs the correctness sweep and then the benchmark suites on one
// shared set of buffers.
type Driver struct {
	cfg Config
	out io.Writer
	log *log.Logger
}

// NewDriver returns a driver printing report lines to out and diagnostics
// to logger. A nil logger discards diagnostics.
func NewDriver(cfg Config, out io.Writer, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Driver{cfg: cfg, out: out, log: logger}
}

// Plan returns the buffer extents needed by the sweep grid and every suite.
func (d *Driver) Plan() Extents {
	ext := d.cfg.Grid.Extents()
	for _, s := range d.cfg.Suites {
		ext = ext.Union(s.Extents())
	}
	return ext
}

// Run executes the harness.
//
// A failed sweep returns the sweep error (a *MismatchError in fail-fast
// mode) before anything is timed. The Result is non-nil whenever the
// sweep ran, so callers can inspect partial outcomes.
func (d *Driver) Run() (*Result, error) {
	cfg := d.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	alts, err := Alternates(cfg.Alternates)
	if err != nil {
		return nil, err
	}

	version, _ := Version()
	if version == "" {
		version = "(devel)"
	}
	d.log.Printf("version %s, %s", version, CPUInfo())

	ext := d.Plan()
	bufs, err := NewBuffers(ext, cfg.Alignment)
	if err != nil {
		return nil, err
	}
	bufs.Fill(NewGenerator(cfg.Seed))
	if cfg.Verbose {
		d.log.Printf("buffers A=%d B=%d C=%d doubles, %d-byte aligned, seed %d",
			ext.A, ext.B, ext.C, cfg.Alignment, cfg.Seed)
	}

	candidates := []Kernel{cfg.Kernel}
	if cfg.VerifyAlternates {
		candidates = append(candidates, alts...)
	}
	sweep := &Sweep{
		Reference:  ReferenceKernel.Fn,
		Candidates: candidates,
		Tolerance:  cfg.Tolerance,
		Mode:       cfg.Mode,
	}

	fmt.Fprint(d.out, "Starting to test ... \n")
	report, err := sweep.Run(cfg.Grid, bufs)
	res := &Result{Sweep: report}
	if err != nil {
		return res, err
	}
	fmt.Fprint(d.out, "... OK!\n")
	if cfg.Verbose {
		d.log.Printf("sweep: %d triples, %d comparisons, tolerance %e (%s)",
			report.Triples, report.Comparisons, cfg.Tolerance.AbsTol, cfg.Mode)
	}
	if cfg.SkipBench {
		return res, nil
	}

	counter, err := cycles.New(cfg.Timer)
	if err != nil {
		return res, NewTimerError("Run", fmt.Sprintf("cannot open %s counter", cfg.Timer), err)
	}
	defer counter.Close()
	res.Timer = counter.Name()

	reportLog, err := NewReportLog(cfg.ReportPath, counter.Name())
	if err != nil {
		return res, err
	}

	h := &Harness{
		Counter: counter,
		Trials:  cfg.Trials,
		Kernels: append([]Kernel{cfg.Kernel}, alts...),
		Log:     d.log,
	}
	d.log.Print(FormatHeader(KernelNames(h.Kernels), counter.Unit()))

	for _, s := range cfg.Suites {
		sr := SuiteResult{Suite: s.Name}
		for _, t := range s.Triples {
			m, err := h.Measure(s.Label, s.Mode, t, bufs)
			if err != nil {
				return res, err
			}
			fmt.Fprintln(d.out, FormatLine(m))
			sr.Measurements = append(sr.Measurements, m)
			if err := reportLog.Add(s.Name, m); err != nil {
				return res, err
			}
		}
		res.Suites = append(res.Suites, sr)
	}

	res.ReportPath = reportLog.Path()
	if res.ReportPath != "" {
		d.log.Printf("report written to %s", res.ReportPath)
	}
	return res, nil
}
