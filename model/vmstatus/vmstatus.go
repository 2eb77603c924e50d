package vmstatus

import (
	"fmt"
)

// VMStatusKind discriminates the populated branch of a VMStatus.
type VMStatusKind uint8

const (
	// VMStatusKindUnset marks a zero-value VMStatus, which is malformed.
	VMStatusKindUnset VMStatusKind = iota
	// VMStatusKindValidation reports a prologue fault.
	VMStatusKindValidation
	// VMStatusKindVerification reports the findings of a verification run.
	VMStatusKindVerification
	// VMStatusKindInvariantViolation reports an internal VM or verifier
	// bug.
	VMStatusKindInvariantViolation
	// VMStatusKindBinary reports a binary deserialization fault.
	VMStatusKindBinary
	// VMStatusKindExecution reports an execution outcome, including
	// success.
	VMStatusKindExecution
)

// String returns the branch name.
func (k VMStatusKind) String() string {
	switch k {
	case VMStatusKindValidation:
		return "Validation"
	case VMStatusKindVerification:
		return "Verification"
	case VMStatusKindInvariantViolation:
		return "InvariantViolation"
	case VMStatusKindBinary:
		return "Binary"
	case VMStatusKindExecution:
		return "Execution"
	default:
		return "Unset"
	}
}

// VMStatus is the single value type the VM hands across its outer boundary:
// one terminal, fully formed outcome per transaction-level operation.
// Exactly one branch is populated; the constructors are the only way to
// build one. Consumers switch exhaustively over the five kinds and treat an
// unset kind as malformed input, never as a reportable outcome.
type VMStatus struct {
	kind         VMStatusKind
	validation   ValidationStatusCode
	verification VerificationStatusList
	invariant    InvariantViolationCode
	binary       BinaryErrorCode
	execution    ExecutionStatus
}

// NewValidationStatus returns a VMStatus reporting a prologue fault.
func NewValidationStatus(code ValidationStatusCode) VMStatus {
	return VMStatus{kind: VMStatusKindValidation, validation: code}
}

// NewVerificationStatus returns a VMStatus reporting a verification run.
// The list may be empty, which reports that verification ran and found
// nothing. The list is copied so the status stays immutable if the caller
// keeps appending to its slice.
func NewVerificationStatus(list VerificationStatusList) VMStatus {
	owned := make(VerificationStatusList, len(list))
	copy(owned, list)
	return VMStatus{kind: VMStatusKindVerification, verification: owned}
}

// NewInvariantViolationStatus returns a VMStatus reporting an internal VM
// or verifier bug.
func NewInvariantViolationStatus(code InvariantViolationCode) VMStatus {
	return VMStatus{kind: VMStatusKindInvariantViolation, invariant: code}
}

// NewBinaryStatus returns a VMStatus reporting a binary deserialization
// fault.
func NewBinaryStatus(code BinaryErrorCode) VMStatus {
	return VMStatus{kind: VMStatusKindBinary, binary: code}
}

// NewExecutionStatusReport returns a VMStatus carrying an execution
// outcome.
func NewExecutionStatusReport(status ExecutionStatus) VMStatus {
	return VMStatus{kind: VMStatusKindExecution, execution: status}
}

// Kind returns the populated branch.
func (s VMStatus) Kind() VMStatusKind {
	return s.kind
}

// Validation returns the validation code and whether that branch is the
// populated one.
func (s VMStatus) Validation() (ValidationStatusCode, bool) {
	return s.validation, s.kind == VMStatusKindValidation
}

// Verification returns the findings list and whether that branch is the
// populated one. The returned slice must not be mutated.
func (s VMStatus) Verification() (VerificationStatusList, bool) {
	return s.verification, s.kind == VMStatusKindVerification
}

// InvariantViolation returns the invariant violation code and whether that
// branch is the populated one.
func (s VMStatus) InvariantViolation() (InvariantViolationCode, bool) {
	return s.invariant, s.kind == VMStatusKindInvariantViolation
}

// Binary returns the binary error code and whether that branch is the
// populated one.
func (s VMStatus) Binary() (BinaryErrorCode, bool) {
	return s.binary, s.kind == VMStatusKindBinary
}

// Execution returns the execution status and whether that branch is the
// populated one.
func (s VMStatus) Execution() (ExecutionStatus, bool) {
	return s.execution, s.kind == VMStatusKindExecution
}

// Succeeded reports whether the status is the explicit success outcome:
// the execution branch carrying RuntimeExecuted.
func (s VMStatus) Succeeded() bool {
	return s.kind == VMStatusKindExecution && s.execution.Succeeded()
}

// CheckWellFormed returns an error if no branch is populated, or if the
// execution branch carries a branchless execution status. Values built
// through the constructors always pass.
func (s VMStatus) CheckWellFormed() error {
	switch s.kind {
	case VMStatusKindValidation,
		VMStatusKindVerification,
		VMStatusKindInvariantViolation,
		VMStatusKindBinary:
		return nil
	case VMStatusKindExecution:
		if err := s.execution.CheckWellFormed(); err != nil {
			return fmt.Errorf("execution branch: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("vm status has no populated branch")
	}
}

// String renders the status for logs.
func (s VMStatus) String() string {
	switch s.kind {
	case VMStatusKindValidation:
		return fmt.Sprintf("Validation(%s)", s.validation)
	case VMStatusKindVerification:
		return fmt.Sprintf("Verification(%d findings)", len(s.verification))
	case VMStatusKindInvariantViolation:
		return fmt.Sprintf("InvariantViolation(%s)", s.invariant)
	case VMStatusKindBinary:
		return fmt.Sprintf("Binary(%s)", s.binary)
	case VMStatusKindExecution:
		return fmt.Sprintf("Execution(%s)", s.execution)
	default:
		return "VMStatus(unset)"
	}
}
