// Copyright ©2024 The MTXMQ Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command compare compares a benchmark report against a baseline report
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/LynnColeArt/mtxmq"
)

// ComparisonResult is the verdict for one (suite, kernel, triple) case
type ComparisonResult struct {
	Key    string
	Status string // "PASS", "SLOWER", "FASTER", "MISSING", "INVALID"

	BaselineRate float64
	CurrentRate  float64
	Ratio        float64 // current / baseline

	Message string
}

// Failed reports whether the case should fail the comparison.
func (c ComparisonResult) Failed() bool {
	return c.Status == "SLOWER" || c.Status == "MISSING" || c.Status == "INVALID"
}

var command = &cobra.Command{
	Use:           "compare --baseline a.json --current b.json",
	Short:         "Compare mtxmq-bench reports for rate regressions",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		baselineFile, _ := cmd.PersistentFlags().GetString("baseline")
		currentFile, _ := cmd.PersistentFlags().GetString("current")
		regress, _ := cmd.PersistentFlags().GetFloat64("regress")
		if regress <= 0 {
			return fmt.Errorf("regress threshold must be positive, got %g", regress)
		}

		baseline, err := mtxmq.LoadReport(baselineFile)
		if err != nil {
			return fmt.Errorf("failed to load baseline: %w", err)
		}
		current, err := mtxmq.LoadReport(currentFile)
		if err != nil {
			return fmt.Errorf("failed to load current results: %w", err)
		}

		comparisons := compareReports(baseline, current, regress)
		printSummary(os.Stdout, comparisons)

		// Exit with error if any failures
		if lo.SomeBy(comparisons, ComparisonResult.Failed) {
			os.Exit(1)
		}
		return nil
	},
}

func compareReports(baseline, current []mtxmq.ReportEntry, regress float64) []ComparisonResult {
	currentMap := lo.KeyBy(current, mtxmq.ReportEntry.Key)

	comparisons := make([]ComparisonResult, 0, len(baseline))
	for _, base := range baseline {
		comp := ComparisonResult{
			Key:          base.Key(),
			BaselineRate: base.Rate,
		}

		curr, exists := currentMap[comp.Key]
		switch {
		case !exists:
			comp.Status = "MISSING"
			comp.Message = "case missing in current results"
		case !curr.Valid:
			comp.Status = "INVALID"
			comp.CurrentRate = curr.Rate
			comp.Message = fmt.Sprintf("no trustworthy trial (%d flagged)", curr.Anomalies)
		case !base.Valid || base.Rate <= 0:
			// Nothing to compare against
			comp.Status = "PASS"
			comp.CurrentRate = curr.Rate
		default:
			comp.CurrentRate = curr.Rate
			comp.Ratio = curr.Rate / base.Rate
			switch {
			case base.Unit != curr.Unit:
				comp.Status = "INVALID"
				comp.Message = fmt.Sprintf("units differ: %s vs %s", base.Unit, curr.Unit)
			case comp.Ratio < regress:
				comp.Status = "SLOWER"
				comp.Message = fmt.Sprintf("rate regression: %.2fx of baseline", comp.Ratio)
			case comp.Ratio > 1.2:
				comp.Status = "FASTER"
				comp.Message = fmt.Sprintf("rate improvement: %.2fx of baseline", comp.Ratio)
			default:
				comp.Status = "PASS"
			}
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

func printSummary(w io.Writer, comparisons []ComparisonResult) {
	fmt.Fprintln(w, "=== mtxmq Report Comparison ===")
	fmt.Fprintln(w)

	statusCount := lo.CountValuesBy(comparisons, func(c ComparisonResult) string {
		return c.Status
	})

	fmt.Fprintf(w, "Total cases: %d\n", len(comparisons))
	for _, s := range []string{"PASS", "FASTER", "SLOWER", "MISSING", "INVALID"} {
		fmt.Fprintf(w, "  %-8s %d\n", s+":", statusCount[s])
	}

	notable := lo.Filter(comparisons, func(c ComparisonResult, _ int) bool {
		return c.Status != "PASS"
	})
	if len(notable) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 62))
	for _, c := range notable {
		fmt.Fprintf(w, "%-8s %-40s %s\n", c.Status, c.Key, c.Message)
	}
}

func init() {
	command.PersistentFlags().String("baseline", "baseline.json", "baseline report file")
	command.PersistentFlags().String("current", "current.json", "current report file")
	command.PersistentFlags().Float64("regress", 0.9, "fail when current/baseline rate drops below this ratio")
}

func main() {
	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
