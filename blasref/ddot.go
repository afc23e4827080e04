package blasref

// StridedDot computes each element of C as one strided dot product:
// column i of A (stride dimi) against column j of B (stride dimj).
func StridedDot(dimi, dimj, dimk int, c, a, b []float64) {
	if dimi <= 0 || dimj <= 0 || dimk <= 0 {
		return
	}
	for i := 0; i < dimi; i++ {
		row := c[i*dimj : i*dimj+dimj]
		for j := range row {
			row[j] += ddot(dimk, a[i:], dimi, b[j:], dimj)
		}
	}
}
