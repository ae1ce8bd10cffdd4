package trace

import (
	"errors"
	"fmt"
)

// Contract violations. These indicate a faulty algorithm adapter, not a
// runtime condition: the builder goes sticky on the first one and Finalize
// fails rather than producing a corrupt trace.
var (
	// ErrAlreadyFinalized indicates record or finalize after Finalize.
	ErrAlreadyFinalized = errors.New("trace: builder already finalized")

	// ErrIndexOutOfRange indicates an operation referencing a position
	// outside the array.
	ErrIndexOutOfRange = errors.New("trace: operation index out of range")

	// ErrSettledMutation indicates a compare/swap/write touching a position
	// already settled as sorted.
	ErrSettledMutation = errors.New("trace: operation touches settled position")

	// ErrEmptyLabel indicates a boundary mark without a name.
	ErrEmptyLabel = errors.New("trace: boundary mark requires a label")
)

// BuildError wraps a contract violation with the operation that caused it.
type BuildError struct {
	Op      Op
	Seq     int
	Wrapped error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%v (op %d: %s)", e.Wrapped, e.Seq, e.Op)
}

func (e *BuildError) Unwrap() error {
	return e.Wrapped
}
