package mtxmq

import (
	"math"
)

// ULPDiff computes the ULP (Units in Last Place) distance between a and b:
// the number of representable doubles separating them. NaN on either side
// gives math.MaxInt64; values of opposite sign are measured through zero.
func ULPDiff(a, b float64) int64 {
	if a == b {
		return 0
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.MaxInt64
	}

	ia := orderedBits(a)
	ib := orderedBits(b)
	if ia > ib {
		ia, ib = ib, ia
	}
	d := uint64(ib) - uint64(ia)
	if d > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(d)
}

// orderedBits maps a double onto an int64 whose ordering matches the
// ordering of the doubles, with -0 and +0 both at 0.
func orderedBits(x float64) int64 {
	bits := int64(math.Float64bits(x))
	if bits < 0 {
		return math.MinInt64 - bits
	}
	return bits
}
