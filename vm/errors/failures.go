package errors

import (
	"fmt"

	"github.com/quillvm/quill-go/model/vmstatus"
)

// InvariantViolationFailure reports a bug in the VM or verifier itself. It
// wraps the underlying cause so the consumer can log the full chain before
// abandoning the operation.
type InvariantViolationFailure struct {
	code vmstatus.InvariantViolationCode
	err  error
}

func (f *InvariantViolationFailure) Error() string {
	return fmt.Sprintf("[%s] invariant violated: %s", f.code, f.err)
}

// FailureCode returns the invariant violation registry code.
func (f *InvariantViolationFailure) FailureCode() vmstatus.InvariantViolationCode {
	return f.code
}

// Unwrap returns the wrapped cause.
func (f *InvariantViolationFailure) Unwrap() error {
	return f.err
}

// NewUnknownFailure wraps an error that escaped a pipeline stage without a
// coded identity. It carries the registry's Unknown sentinel, the
// defensive fallback for exactly this situation.
func NewUnknownFailure(err error) *InvariantViolationFailure {
	return &InvariantViolationFailure{
		code: vmstatus.InvariantViolationUnknown,
		err:  err,
	}
}

// NewOutOfBoundsIndexFailure reports an internal index out of bounds after
// verification claimed otherwise.
func NewOutOfBoundsIndexFailure(table string, idx, size int) *InvariantViolationFailure {
	return &InvariantViolationFailure{
		code: vmstatus.InvariantOutOfBoundsIndex,
		err:  fmt.Errorf("index %d out of bounds for %s of size %d", idx, table, size),
	}
}

// NewEmptyValueStackFailure reports a pop from an empty value stack.
func NewEmptyValueStackFailure() *InvariantViolationFailure {
	return &InvariantViolationFailure{
		code: vmstatus.InvariantEmptyValueStack,
		err:  fmt.Errorf("pop from empty value stack"),
	}
}

// NewPCOverflowFailure reports the program counter running past the end of
// a code unit.
func NewPCOverflowFailure(pc, codeLen int) *InvariantViolationFailure {
	return &InvariantViolationFailure{
		code: vmstatus.InvariantPCOverflow,
		err:  fmt.Errorf("program counter %d past end of code unit of length %d", pc, codeLen),
	}
}

// NewStorageFailure reports a misbehaving backing store.
func NewStorageFailure(err error) *InvariantViolationFailure {
	return &InvariantViolationFailure{
		code: vmstatus.InvariantStorageError,
		err:  fmt.Errorf("storage error: %w", err),
	}
}
