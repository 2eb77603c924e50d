package vmstatus

import (
	"fmt"
)

// ArithmeticErrorKind is the sub-kind of an arithmetic execution fault.
type ArithmeticErrorKind uint32

const (
	// ArithmeticUnknown is the reserved forward-compatibility sentinel.
	ArithmeticUnknown ArithmeticErrorKind = iota
	// ArithmeticUnderflow indicates a subtraction below zero.
	ArithmeticUnderflow
	// ArithmeticOverflow indicates a result exceeding the integer range.
	ArithmeticOverflow
	// ArithmeticDivisionByZero indicates a division or modulo by zero.
	ArithmeticDivisionByZero

	maxArithmeticErrorKind = ArithmeticDivisionByZero
)

// String returns the registry name of the kind.
func (k ArithmeticErrorKind) String() string {
	if k > maxArithmeticErrorKind {
		k = ArithmeticUnknown
	}
	return [...]string{"UnknownArithmeticError", "Underflow", "Overflow", "DivisionByZero"}[k]
}

// ArithmeticErrorKindFromWire maps a decoded numeric id to an arithmetic
// error kind, clamping unknown ids to the Unknown sentinel.
func ArithmeticErrorKindFromWire(v uint64) ArithmeticErrorKind {
	if v > uint64(maxArithmeticErrorKind) {
		return ArithmeticUnknown
	}
	return ArithmeticErrorKind(v)
}

// DynamicReferenceErrorKind is the sub-kind of a reference-safety fault
// detected at run time rather than by the static verifier.
type DynamicReferenceErrorKind uint32

const (
	// DynamicReferenceUnknown is the reserved forward-compatibility
	// sentinel.
	DynamicReferenceUnknown DynamicReferenceErrorKind = iota
	// DynamicReferenceMoveOfBorrowedResource indicates a move of a
	// resource while a reference into it is still live.
	DynamicReferenceMoveOfBorrowedResource
	// DynamicReferenceGlobalAlreadyReleased indicates a release of a
	// global reference that was already released.
	DynamicReferenceGlobalAlreadyReleased
	// DynamicReferenceMissingRelease indicates a global reference that was
	// never released before its frame exited.
	DynamicReferenceMissingRelease
	// DynamicReferenceGlobalAlreadyBorrowed indicates a borrow of a global
	// that is already mutably borrowed.
	DynamicReferenceGlobalAlreadyBorrowed

	maxDynamicReferenceErrorKind = DynamicReferenceGlobalAlreadyBorrowed
)

// String returns the registry name of the kind.
func (k DynamicReferenceErrorKind) String() string {
	if k > maxDynamicReferenceErrorKind {
		k = DynamicReferenceUnknown
	}
	return [...]string{
		"UnknownDynamicReferenceError",
		"MoveOfBorrowedResource",
		"GlobalAlreadyReleased",
		"MissingRelease",
		"GlobalAlreadyBorrowed",
	}[k]
}

// DynamicReferenceErrorKindFromWire maps a decoded numeric id to a dynamic
// reference error kind, clamping unknown ids to the Unknown sentinel.
func DynamicReferenceErrorKindFromWire(v uint64) DynamicReferenceErrorKind {
	if v > uint64(maxDynamicReferenceErrorKind) {
		return DynamicReferenceUnknown
	}
	return DynamicReferenceErrorKind(v)
}

// ExecutionStatusKind discriminates the populated branch of an
// ExecutionStatus.
type ExecutionStatusKind uint8

const (
	// ExecutionKindUnset marks a zero-value ExecutionStatus, which is
	// malformed: every completed execution must carry exactly one branch.
	ExecutionKindUnset ExecutionStatusKind = iota
	// ExecutionKindRuntime carries a plain RuntimeStatusCode.
	ExecutionKindRuntime
	// ExecutionKindAssertionFailure carries a user-supplied assertion
	// code.
	ExecutionKindAssertionFailure
	// ExecutionKindArithmeticError carries an ArithmeticErrorKind.
	ExecutionKindArithmeticError
	// ExecutionKindDynamicReferenceError carries a
	// DynamicReferenceErrorKind.
	ExecutionKindDynamicReferenceError
)

// String returns the branch name.
func (k ExecutionStatusKind) String() string {
	switch k {
	case ExecutionKindRuntime:
		return "RuntimeStatus"
	case ExecutionKindAssertionFailure:
		return "AssertionFailure"
	case ExecutionKindArithmeticError:
		return "ArithmeticError"
	case ExecutionKindDynamicReferenceError:
		return "DynamicReferenceError"
	default:
		return "Unset"
	}
}

// ExecutionStatus is the outcome of the execution stage. Exactly one branch
// is populated; the constructors below are the only way to build one, which
// makes zero- and multi-branch states unrepresentable. A successful
// execution is the runtime branch with RuntimeExecuted, never an absent
// status.
type ExecutionStatus struct {
	kind          ExecutionStatusKind
	runtime       RuntimeStatusCode
	assertionCode uint64
	arithmetic    ArithmeticErrorKind
	reference     DynamicReferenceErrorKind
}

// NewRuntimeStatus returns an ExecutionStatus carrying a plain runtime
// status code.
func NewRuntimeStatus(code RuntimeStatusCode) ExecutionStatus {
	return ExecutionStatus{kind: ExecutionKindRuntime, runtime: code}
}

// NewAssertionFailure returns an ExecutionStatus carrying the user-supplied
// assertion code of a failed assertion.
func NewAssertionFailure(code uint64) ExecutionStatus {
	return ExecutionStatus{kind: ExecutionKindAssertionFailure, assertionCode: code}
}

// NewArithmeticError returns an ExecutionStatus carrying an arithmetic
// fault sub-kind.
func NewArithmeticError(kind ArithmeticErrorKind) ExecutionStatus {
	return ExecutionStatus{kind: ExecutionKindArithmeticError, arithmetic: kind}
}

// NewDynamicReferenceError returns an ExecutionStatus carrying a dynamic
// reference fault sub-kind.
func NewDynamicReferenceError(kind DynamicReferenceErrorKind) ExecutionStatus {
	return ExecutionStatus{kind: ExecutionKindDynamicReferenceError, reference: kind}
}

// Kind returns the populated branch.
func (s ExecutionStatus) Kind() ExecutionStatusKind {
	return s.kind
}

// Runtime returns the runtime status code and whether that branch is the
// populated one.
func (s ExecutionStatus) Runtime() (RuntimeStatusCode, bool) {
	return s.runtime, s.kind == ExecutionKindRuntime
}

// AssertionCode returns the assertion code and whether that branch is the
// populated one.
func (s ExecutionStatus) AssertionCode() (uint64, bool) {
	return s.assertionCode, s.kind == ExecutionKindAssertionFailure
}

// Arithmetic returns the arithmetic sub-kind and whether that branch is the
// populated one.
func (s ExecutionStatus) Arithmetic() (ArithmeticErrorKind, bool) {
	return s.arithmetic, s.kind == ExecutionKindArithmeticError
}

// Reference returns the dynamic reference sub-kind and whether that branch
// is the populated one.
func (s ExecutionStatus) Reference() (DynamicReferenceErrorKind, bool) {
	return s.reference, s.kind == ExecutionKindDynamicReferenceError
}

// Succeeded reports whether the status represents successful execution.
func (s ExecutionStatus) Succeeded() bool {
	return s.kind == ExecutionKindRuntime && s.runtime == RuntimeExecuted
}

// CheckWellFormed returns an error if no branch is populated. Values built
// through the constructors always pass; the check exists for values arriving
// from outside, e.g. the zero value or a decode in progress.
func (s ExecutionStatus) CheckWellFormed() error {
	if s.kind == ExecutionKindUnset {
		return fmt.Errorf("execution status has no populated branch")
	}
	return nil
}

// String renders the status for logs.
func (s ExecutionStatus) String() string {
	switch s.kind {
	case ExecutionKindRuntime:
		return fmt.Sprintf("RuntimeStatus(%s)", s.runtime)
	case ExecutionKindAssertionFailure:
		return fmt.Sprintf("AssertionFailure(%d)", s.assertionCode)
	case ExecutionKindArithmeticError:
		return fmt.Sprintf("ArithmeticError(%s)", s.arithmetic)
	case ExecutionKindDynamicReferenceError:
		return fmt.Sprintf("DynamicReferenceError(%s)", s.reference)
	default:
		return "ExecutionStatus(unset)"
	}
}
