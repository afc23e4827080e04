// Package mtxmq structured error types for better error handling
package mtxmq

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Memory errors
	ErrTypeMemory ErrorType = iota
	// Invalid argument errors
	ErrTypeInvalidArg
	// Numerical errors
	ErrTypeNumerical
	// Timer errors
	ErrTypeTimer
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Op      string      // Operation that failed
	Message string      // Human-readable message
	Err     error       // Underlying error if any
	Context interface{} // Additional context
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mtxmq %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("mtxmq %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeMemory:
		return "Memory"
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeNumerical:
		return "Numerical"
	case ErrTypeTimer:
		return "Timer"
	default:
		return "Unknown"
	}
}

// NewMemoryError creates a memory-related error
func NewMemoryError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeMemory,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &Error{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewTimerError creates a cycle counter error
func NewTimerError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeTimer,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

var (
	// ErrInvalidSize indicates a negative or overflowing buffer length
	ErrInvalidSize = NewInvalidArgError("AllocAligned", "size must be non-negative and addressable")

	// ErrInvalidAlignment indicates an alignment that is not a power of two multiple of 8
	ErrInvalidAlignment = NewInvalidArgError("AllocAligned", "alignment must be a power of two and a multiple of 8")

	// ErrMismatch is matched by every *MismatchError via errors.Is
	ErrMismatch = &Error{Type: ErrTypeNumerical, Op: "Sweep", Message: "numerical mismatch"}
)

// MismatchError reports a kernel whose output disagrees with the reference
// beyond the configured tolerance. It is the only numerical failure the
// harness models.
type MismatchError struct {
	Kernel    string
	Triple    Triple
	Index     int     // flat index into the ni×nj output region
	Expected  float64 // reference value
	Actual    float64 // kernel value
	AbsError  float64
	ULPError  int64
	Tolerance float64
}

// Row and Col locate Index within the output region.
func (e *MismatchError) Row() int { return e.Index / e.Triple.NJ }
func (e *MismatchError) Col() int { return e.Index % e.Triple.NJ }

// Error implements the error interface
func (e *MismatchError) Error() string {
	return fmt.Sprintf("mtxmq: %s mismatch at %d %d %d [%d,%d]: expected %.17g got %.17g (error %e, %d ulp, tolerance %e)",
		e.Kernel, e.Triple.NI, e.Triple.NJ, e.Triple.NK, e.Row(), e.Col(),
		e.Expected, e.Actual, e.AbsError, e.ULPError, e.Tolerance)
}

// Is makes errors.Is(err, ErrMismatch) true for any mismatch
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// IsMemoryError checks if an error is a memory error
func IsMemoryError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrTypeMemory
}

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrTypeInvalidArg
}

// IsTimerError checks if an error is a cycle counter error
func IsTimerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrTypeTimer
}

// AsMismatch extracts the first mismatch in err's chain
func AsMismatch(err error) (*MismatchError, bool) {
	var m *MismatchError
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}
