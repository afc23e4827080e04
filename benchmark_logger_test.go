package mtxmq

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportLogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.json")
	l, err := NewReportLog(path, "tsc")
	require.NoError(t, err)

	entries, err := LoadReport(path)
	require.NoError(t, err)
	assert.Empty(t, entries)

	m := Measurement{
		Label:  "tran(m,m,m)",
		Mode:   Chained,
		Triple: Triple{NI: 16, NJ: 4, NK: 4},
		Unit:   "cycles",
		Rates: []Rate{
			{Kernel: "mtxmq", Best: 2.5},
			{Kernel: "gonum", Anomalies: []Anomaly{{Reason: ZeroElapsed}}},
		},
	}
	require.NoError(t, l.Add("chained", m))

	want := []ReportEntry{
		{Suite: "chained", Label: "tran(m,m,m)", Mode: "chained", NI: 16, NJ: 4, NK: 4,
			Kernel: "mtxmq", Rate: 2.5, Valid: true, Unit: "flops/cycles", Timer: "tsc"},
		{Suite: "chained", Label: "tran(m,m,m)", Mode: "chained", NI: 16, NJ: 4, NK: 4,
			Kernel: "gonum", Rate: 0, Valid: false, Unit: "flops/cycles", Anomalies: 1, Timer: "tsc"},
	}
	ignoreTime := cmpopts.IgnoreFields(ReportEntry{}, "Timestamp")

	if diff := cmp.Diff(want, l.Entries(), ignoreTime); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}

	loaded, err := LoadReport(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, loaded, ignoreTime); diff != "" {
		t.Errorf("file (-want +got):\n%s", diff)
	}
	assert.Equal(t, "chained/mtxmq/16,4,4", loaded[0].Key())
}

func TestReportLogInMemory(t *testing.T) {
	l, err := NewReportLog("", "monotonic")
	require.NoError(t, err)
	require.NoError(t, l.Add("square", Measurement{Rates: []Rate{{Kernel: "mtxmq", Best: 1}}}))
	assert.Len(t, l.Entries(), 1)
	assert.Empty(t, l.Path())
}

func TestLoadReportErrors(t *testing.T) {
	_, err := LoadReport(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
