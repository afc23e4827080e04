// Package mtxmq tolerance-based verification for floating-point comparisons
package mtxmq

import (
	"fmt"
	"math"
)

// ToleranceConfig defines tolerance parameters for floating-point comparison.
//
// The bound is absolute and per element. Whether a kernel meets a given
// bound depends on how both it and the reference were compiled (operation
// contraction into FMA in particular), so it is a tunable, not a constant.
type ToleranceConfig struct {
	// AbsTol is the largest accepted |actual - expected|
	AbsTol float64
}

// Within reports whether actual is within tolerance of expected. A NaN on
// either side is never within tolerance.
func (tol ToleranceConfig) Within(expected, actual float64) bool {
	return math.Abs(actual-expected) <= tol.AbsTol
}

// VerificationResult summarizes an element-wise comparison
type VerificationResult struct {
	MaxAbsError float64
	MaxULPError int64
	NumErrors   int
	TotalItems  int
	FirstError  int // Index of first error, -1 if none
	WorstIndex  int // Index of the largest absolute error, -1 if none
}

// VerifyFloat64 compares two float64 arrays and returns detailed results
func VerifyFloat64(expected, actual []float64, tol ToleranceConfig) VerificationResult {
	return verifyFloat64(expected, actual, tol, false)
}

// verifyFloat64 is VerifyFloat64 with an option to stop at the first
// element outside tolerance. When it stops early the maxima only cover
// the elements scanned so far.
func verifyFloat64(expected, actual []float64, tol ToleranceConfig, stopAtFirst bool) VerificationResult {
	result := VerificationResult{
		TotalItems: len(expected),
		FirstError: -1,
		WorstIndex: -1,
	}

	if len(expected) != len(actual) {
		// Arrays have different lengths
		result.NumErrors = len(expected)
		return result
	}

	for i := range expected {
		absDiff := absError(expected[i], actual[i])
		if absDiff > result.MaxAbsError {
			result.MaxAbsError = absDiff
			result.WorstIndex = i
		}
		if ulp := ULPDiff(expected[i], actual[i]); ulp > result.MaxULPError {
			result.MaxULPError = ulp
		}
		if !tol.Within(expected[i], actual[i]) {
			result.NumErrors++
			if result.FirstError == -1 {
				result.FirstError = i
			}
			if stopAtFirst {
				break
			}
		}
	}

	return result
}

// absError is |actual - expected| with NaN mapped to +Inf.
func absError(expected, actual float64) float64 {
	d := math.Abs(actual - expected)
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return d
}

// IsAcceptable returns true if the verification result is within tolerance
func (r VerificationResult) IsAcceptable() bool {
	return r.NumErrors == 0
}

// String formats the verification result for display
func (r VerificationResult) String() string {
	if r.NumErrors == 0 {
		return "PASS: All values match within tolerance"
	}

	errorRate := float64(r.NumErrors) / float64(r.TotalItems) * 100
	return fmt.Sprintf("FAIL: %d/%d values differ (%.2f%%)\n"+
		"  Max absolute error: %e\n"+
		"  Max ULP difference: %d\n"+
		"  First error at index: %d",
		r.NumErrors, r.TotalItems, errorRate,
		r.MaxAbsError, r.MaxULPError, r.FirstError)
}
