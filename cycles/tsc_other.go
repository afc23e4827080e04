//go:build !amd64
// +build !amd64

package cycles

func newTSC() (Counter, error) {
	return nil, ErrUnsupported
}
