package mtxmq

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// FormatHeader returns the column header for report lines of the given
// kernels. Rates are in flops per tick of unit.
func FormatHeader(kernels []string, unit string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%20s %3s %3s %3s", "flops/"+unit, "ni", "nj", "nk")
	for _, k := range kernels {
		fmt.Fprintf(&sb, " %8.8s", k)
	}
	return sb.String()
}

// FormatLine renders one measurement as a report line: the label and the
// three extents, then the best rate of each kernel to two decimals. A
// kernel with no trustworthy trial prints "-", and flagged trials are
// counted at the end of the line.
func FormatLine(m Measurement) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%20s %3d %3d %3d", m.Label, m.Triple.NI, m.Triple.NJ, m.Triple.NK)
	for _, r := range m.Rates {
		if r.Valid() {
			fmt.Fprintf(&sb, " %8.2f", r.Best)
		} else {
			fmt.Fprintf(&sb, " %8s", "-")
		}
	}
	if n := m.Anomalies(); n > 0 {
		fmt.Fprintf(&sb, "  (%d flagged)", n)
	}
	return sb.String()
}

// KernelNames lists the names of ks in order.
func KernelNames(ks []Kernel) []string {
	return lo.Map(ks, func(k Kernel, _ int) string {
		return k.Name
	})
}
