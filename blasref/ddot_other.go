//go:build !amd64
// +build !amd64

package blasref

func ddot(n int, x []float64, incX int, y []float64, incY int) float64 {
	var sum float64
	for k := 0; k < n; k++ {
		sum += x[k*incX] * y[k*incY]
	}
	return sum
}
