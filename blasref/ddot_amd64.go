//go:build amd64
// +build amd64

package blasref

import (
	"github.com/ziutek/blas"
)

func ddot(n int, x []float64, incX int, y []float64, incY int) float64 {
	return blas.Ddot(n, x, incX, y, incY)
}
