package mtxmq

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ReportEntry is one kernel's result for one benchmark case.
type ReportEntry struct {
	Suite     string    `json:"suite"`
	Label     string    `json:"label"`
	Mode      string    `json:"mode"`
	NI        int       `json:"ni"`
	NJ        int       `json:"nj"`
	NK        int       `json:"nk"`
	Kernel    string    `json:"kernel"`
	Rate      float64   `json:"rate"`
	Valid     bool      `json:"valid"`
	Unit      string    `json:"unit"` // "flops/cycles" or "flops/ns"
	Anomalies int       `json:"anomalies,omitempty"`
	Timer     string    `json:"timer"`
	Timestamp time.Time `json:"timestamp"`
}

// Key identifies the case and kernel independent of when it ran.
func (e ReportEntry) Key() string {
	return fmt.Sprintf("%s/%s/%d,%d,%d", e.Suite, e.Kernel, e.NI, e.NJ, e.NK)
}

// ReportLog accumulates report entries and mirrors them to a JSON file.
type ReportLog struct {
	mu      sync.Mutex
	entries []ReportEntry
	path    string
	timer   string
}

// NewReportLog starts a log for measurements taken with the named timer.
// An empty path keeps the entries in memory only.
func NewReportLog(path, timer string) (*ReportLog, error) {
	l := &ReportLog{entries: []ReportEntry{}, path: path, timer: timer}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	// Write initial file
	return l, l.flush()
}

// Add records every kernel rate of m under the given suite name. The file
// is rewritten immediately so an interrupted run keeps what it measured.
func (l *ReportLog) Add(suite string, m Measurement) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for _, r := range m.Rates {
		l.entries = append(l.entries, ReportEntry{
			Suite:     suite,
			Label:     m.Label,
			Mode:      m.Mode.String(),
			NI:        m.Triple.NI,
			NJ:        m.Triple.NJ,
			NK:        m.Triple.NK,
			Kernel:    r.Kernel,
			Rate:      r.Best,
			Valid:     r.Valid(),
			Unit:      "flops/" + m.Unit,
			Anomalies: len(r.Anomalies),
			Timer:     l.timer,
			Timestamp: now,
		})
	}
	return l.flush()
}

// Entries returns a copy of everything logged so far.
func (l *ReportLog) Entries() []ReportEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ReportEntry(nil), l.entries...)
}

// Path returns the file the log is written to, or "".
func (l *ReportLog) Path() string {
	return l.path
}

func (l *ReportLog) flush() error {
	if l.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(l.path, data, 0644)
}

// LoadReport reads a file written by ReportLog.
func LoadReport(path string) ([]ReportEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []ReportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
