package mtxmq

import (
	"fmt"
	"math"
	"unsafe"
)

const float64Size = int(unsafe.Sizeof(float64(0)))

func validAlignment(align int) bool {
	return align >= float64Size && align&(align-1) == 0
}

// AllocAligned returns a zeroed slice of n float64s whose first element
// starts on an align-byte boundary. The Go heap does not move objects, so
// the alignment holds for the lifetime of the slice.
//
// The capacity equals n, so appending never silently reallocates into
// unaligned memory.
//
// Example:
//
//	a, err := AllocAligned(900*100, 16)
//	if err != nil {
//	    return err
//	}
func AllocAligned(n, align int) ([]float64, error) {
	if !validAlignment(align) {
		return nil, ErrInvalidAlignment
	}
	pad := align/float64Size - 1
	if n < 0 || n > math.MaxInt/float64Size-pad {
		return nil, ErrInvalidSize
	}
	if n == 0 {
		return []float64{}, nil
	}

	raw := make([]float64, n+pad)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(align)); rem != 0 {
		off = (align - rem) / float64Size
	}
	return raw[off : off+n : off+n], nil
}

// IsAligned reports whether s starts on an align-byte boundary. Empty
// slices are trivially aligned; an invalid alignment never matches.
func IsAligned(s []float64, align int) bool {
	if !validAlignment(align) {
		return false
	}
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%uintptr(align) == 0
}

// Zero clears s.
func Zero(s []float64) {
	clear(s)
}

// Buffers are the harness working set: inputs A and B, outputs C and D,
// and a pristine copy of A for restoring it between chained trials. They
// are allocated once for the largest case and never resized.
type Buffers struct {
	A, B, C, D []float64

	pristineA []float64
	extents   Extents
	align     int
}

// NewBuffers allocates buffers covering ext. A and C are both sized to
// max(ext.A, ext.C) because chained trials swap their roles.
func NewBuffers(ext Extents, align int) (*Buffers, error) {
	ac := max(ext.A, ext.C)
	bufs := &Buffers{
		extents: Extents{A: ac, B: ext.B, C: ac},
		align:   align,
	}

	var firstErr error
	alloc := func(n int) []float64 {
		s, err := AllocAligned(n, align)
		if err != nil && firstErr == nil {
			firstErr = NewMemoryError("NewBuffers", fmt.Sprintf("cannot allocate %d doubles", n), err)
		}
		return s
	}
	bufs.A = alloc(ac)
	bufs.B = alloc(ext.B)
	bufs.C = alloc(ac)
	bufs.D = alloc(ac)
	bufs.pristineA = alloc(ac)
	if firstErr != nil {
		return nil, firstErr
	}
	return bufs, nil
}

// Fill seeds A then B from g and snapshots A.
func (b *Buffers) Fill(g *Generator) {
	g.Fill(b.A)
	g.Fill(b.B)
	copy(b.pristineA, b.A)
}

// RestoreA copies the snapshot taken by Fill back into A.
func (b *Buffers) RestoreA() {
	copy(b.A, b.pristineA)
}

// Extents returns the usable length of each buffer.
func (b *Buffers) Extents() Extents {
	return b.extents
}

// Alignment returns the byte alignment the buffers were allocated with.
func (b *Buffers) Alignment() int {
	return b.align
}

// Check verifies the buffers can hold every contraction of ts.
func (b *Buffers) Check(op string, ts []Triple) error {
	for _, t := range ts {
		if !t.Valid() {
			return NewInvalidArgError(op, fmt.Sprintf("negative extent in %v", t))
		}
	}
	return b.CheckExtents(op, ExtentsOf(ts))
}

// CheckExtents verifies the buffers are at least need long.
func (b *Buffers) CheckExtents(op string, need Extents) error {
	if !b.extents.Covers(need) || len(b.D) < need.C {
		return NewInvalidArgError(op, fmt.Sprintf("buffers %+v too small for %+v", b.extents, need))
	}
	return nil
}
