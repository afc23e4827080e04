// Package mtxmq reference implementations for verification
package mtxmq

// Reference contains the simple, correct implementation of the contraction.
// It is the ground truth for the correctness sweep and is deliberately
// never blocked, unrolled or vectorized.
type Reference struct{}

// Mtxm performs c += aᵗ·b (reference implementation).
//
// a is dimk rows by dimi columns, b is dimk rows by dimj columns and c is
// dimi rows by dimj columns, all row-major. Zero extents do nothing.
// Slices shorter than the extents imply panic on the first out-of-range
// access.
func (r Reference) Mtxm(dimi, dimj, dimk int, c, a, b []float64) {
	for k := 0; k < dimk; k++ {
		for j := 0; j < dimj; j++ {
			for i := 0; i < dimi; i++ {
				c[i*dimj+j] += a[k*dimi+i] * b[k*dimj+j]
			}
		}
	}
}

// ReferenceKernel is Reference.Mtxm as a named Kernel.
var ReferenceKernel = Kernel{Name: "reference", Fn: Reference{}.Mtxm}
