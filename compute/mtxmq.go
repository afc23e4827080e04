// Package compute holds the optimized transpose-multiply-accumulate kernel.
//
// Mtxmq computes
//
//	c[i*dimj+j] += sum_k a[k*dimi+i] * b[k*dimj+j]
//
// that is C += Aᵗ·B with A stored dimk×dimi and B stored dimk×dimj, both
// row-major. The kernel walks C in 4×4 register tiles and keeps the
// sixteen accumulators live across the whole k extent, so each element of
// C is loaded and stored once per call. Products are added to each
// accumulator in increasing k, starting from the value already in C,
// which is the same summation order as the naive triple loop.
package compute

// Micro-tile shape.
const (
	mr = 4 // rows of C (columns of A) per tile
	nr = 4 // columns of C (columns of B) per tile
)

// Mtxmq accumulates Aᵗ·B into c. Zero extents are a no-op. It panics
// before writing anything if a slice is shorter than the extents imply.
func Mtxmq(dimi, dimj, dimk int, c, a, b []float64) {
	if dimi <= 0 || dimj <= 0 || dimk <= 0 {
		return
	}
	if len(a) < dimk*dimi {
		panic("compute: A slice too short")
	}
	if len(b) < dimk*dimj {
		panic("compute: B slice too short")
	}
	if len(c) < dimi*dimj {
		panic("compute: C slice too short")
	}

	mi := dimi / mr * mr
	nj := dimj / nr * nr

	for i := 0; i < mi; i += mr {
		for j := 0; j < nj; j += nr {
			kernel4x4(i, j, dimi, dimj, dimk, c, a, b)
		}
		for j := nj; j < dimj; j++ {
			kernel4x1(i, j, dimi, dimj, dimk, c, a, b)
		}
	}

	// Remaining rows, fewer than mr.
	for i := mi; i < dimi; i++ {
		for j := 0; j < nj; j += nr {
			kernel1x4(i, j, dimi, dimj, dimk, c, a, b)
		}
		for j := nj; j < dimj; j++ {
			kernel1x1(i, j, dimi, dimj, dimk, c, a, b)
		}
	}
}

func kernel4x4(i, j, dimi, dimj, dimk int, c, a, b []float64) {
	r0 := c[i*dimj+j : i*dimj+j+nr : i*dimj+j+nr]
	r1 := c[(i+1)*dimj+j : (i+1)*dimj+j+nr : (i+1)*dimj+j+nr]
	r2 := c[(i+2)*dimj+j : (i+2)*dimj+j+nr : (i+2)*dimj+j+nr]
	r3 := c[(i+3)*dimj+j : (i+3)*dimj+j+nr : (i+3)*dimj+j+nr]

	c00, c01, c02, c03 := r0[0], r0[1], r0[2], r0[3]
	c10, c11, c12, c13 := r1[0], r1[1], r1[2], r1[3]
	c20, c21, c22, c23 := r2[0], r2[1], r2[2], r2[3]
	c30, c31, c32, c33 := r3[0], r3[1], r3[2], r3[3]

	for k := 0; k < dimk; k++ {
		ak := a[k*dimi+i : k*dimi+i+mr : k*dimi+i+mr]
		bk := b[k*dimj+j : k*dimj+j+nr : k*dimj+j+nr]
		a0, a1, a2, a3 := ak[0], ak[1], ak[2], ak[3]
		b0, b1, b2, b3 := bk[0], bk[1], bk[2], bk[3]

		c00 += a0 * b0
		c01 += a0 * b1
		c02 += a0 * b2
		c03 += a0 * b3
		c10 += a1 * b0
		c11 += a1 * b1
		c12 += a1 * b2
		c13 += a1 * b3
		c20 += a2 * b0
		c21 += a2 * b1
		c22 += a2 * b2
		c23 += a2 * b3
		c30 += a3 * b0
		c31 += a3 * b1
		c32 += a3 * b2
		c33 += a3 * b3
	}

	r0[0], r0[1], r0[2], r0[3] = c00, c01, c02, c03
	r1[0], r1[1], r1[2], r1[3] = c10, c11, c12, c13
	r2[0], r2[1], r2[2], r2[3] = c20, c21, c22, c23
	r3[0], r3[1], r3[2], r3[3] = c30, c31, c32, c33
}

func kernel4x1(i, j, dimi, dimj, dimk int, c, a, b []float64) {
	c0 := c[i*dimj+j]
	c1 := c[(i+1)*dimj+j]
	c2 := c[(i+2)*dimj+j]
	c3 := c[(i+3)*dimj+j]

	for k := 0; k < dimk; k++ {
		ak := a[k*dimi+i : k*dimi+i+mr : k*dimi+i+mr]
		bkj := b[k*dimj+j]
		c0 += ak[0] * bkj
		c1 += ak[1] * bkj
		c2 += ak[2] * bkj
		c3 += ak[3] * bkj
	}

	c[i*dimj+j] = c0
	c[(i+1)*dimj+j] = c1
	c[(i+2)*dimj+j] = c2
	c[(i+3)*dimj+j] = c3
}

func kernel1x4(i, j, dimi, dimj, dimk int, c, a, b []float64) {
	r := c[i*dimj+j : i*dimj+j+nr : i*dimj+j+nr]
	c0, c1, c2, c3 := r[0], r[1], r[2], r[3]

	for k := 0; k < dimk; k++ {
		aki := a[k*dimi+i]
		bk := b[k*dimj+j : k*dimj+j+nr : k*dimj+j+nr]
		c0 += aki * bk[0]
		c1 += aki * bk[1]
		c2 += aki * bk[2]
		c3 += aki * bk[3]
	}

	r[0], r[1], r[2], r[3] = c0, c1, c2, c3
}

func kernel1x1(i, j, dimi, dimj, dimk int, c, a, b []float64) {
	sum := c[i*dimj+j]
	for k := 0; k < dimk; k++ {
		sum += a[k*dimi+i] * b[k*dimj+j]
	}
	c[i*dimj+j] = sum
}
