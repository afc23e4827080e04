//go:build !linux
// +build !linux

package cycles

func newPerf() (Counter, error) {
	return nil, ErrUnsupported
}
