// Package blasref provides alternate implementations of the
// transpose-multiply-accumulate contraction built on BLAS routines. They
// play the role of the vendor library comparison: each has the same
// signature and accumulate semantics as the kernel under test,
//
//	c[i*dimj+j] += sum_k a[k*dimi+i] * b[k*dimj+j]
//
// so the harness can time and verify them interchangeably.
package blasref

import "sort"

// Func is the contraction signature shared by every implementation.
type Func func(dimi, dimj, dimk int, c, a, b []float64)

const (
	// Gonum is the gonum Dgemm based implementation.
	Gonum = "gonum"
	// Ddot is the strided dot-product based implementation.
	Ddot = "ddot"
)

var registry = map[string]Func{
	Gonum: GonumDgemm,
	Ddot:  StridedDot,
}

// Names returns the registered implementation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the implementation registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}
