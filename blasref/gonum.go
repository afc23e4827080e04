package blasref

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// GonumDgemm computes C += Aᵗ·B with a single Dgemm call:
// transA = Trans, transB = NoTrans, alpha = 1, beta = 1.
//
// The slices are wrapped as row-major blas64.General views sized to the
// extents, so buffers longer than needed are fine.
func GonumDgemm(dimi, dimj, dimk int, c, a, b []float64) {
	if dimi <= 0 || dimj <= 0 || dimk <= 0 {
		return
	}
	am := blas64.General{Rows: dimk, Cols: dimi, Stride: dimi, Data: a[:dimk*dimi]}
	bm := blas64.General{Rows: dimk, Cols: dimj, Stride: dimj, Data: b[:dimk*dimj]}
	cm := blas64.General{Rows: dimi, Cols: dimj, Stride: dimj, Data: c[:dimi*dimj]}
	blas64.Gemm(blas.Trans, blas.NoTrans, 1, am, bm, 1, cm)
}
