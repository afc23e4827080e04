package mtxmq

import (
	"fmt"
	"strings"

	"github.com/LynnColeArt/mtxmq/blasref"
	"github.com/LynnColeArt/mtxmq/compute"
)

// KernelFunc is the contraction contract every implementation satisfies:
//
//	c[i*dimj+j] += sum_k a[k*dimi+i] * b[k*dimj+j]
//
// for i < dimi, j < dimj. The output is accumulated into, never
// overwritten.
type KernelFunc func(dimi, dimj, dimk int, c, a, b []float64)

// Kernel is a named implementation. The harness never looks inside Fn.
type Kernel struct {
	Name string
	Fn   KernelFunc
}

// UnderTest is the optimized kernel this harness exists to validate.
var UnderTest = Kernel{Name: "mtxmq", Fn: compute.Mtxmq}

// Alternate returns the alternate implementation registered under name.
func Alternate(name string) (Kernel, error) {
	fn, ok := blasref.Lookup(name)
	if !ok {
		return Kernel{}, NewInvalidArgError("Alternate",
			fmt.Sprintf("unknown implementation %q (have %s)", name, strings.Join(blasref.Names(), ", ")))
	}
	return Kernel{Name: name, Fn: KernelFunc(fn)}, nil
}

// Alternates resolves a list of names, preserving order.
func Alternates(names []string) ([]Kernel, error) {
	out := make([]Kernel, 0, len(names))
	for _, name := range names {
		k, err := Alternate(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
