package errors

import (
	"fmt"

	"github.com/quillvm/quill-go/model/vmstatus"
)

// ExecutionError is a fault raised while executing a transaction that
// passed validation and any required verification. Every ExecutionError
// maps to the execution branch of VMStatus.
type ExecutionError struct {
	status vmstatus.ExecutionStatus
	msg    string
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("[%s] %s", e.status, e.msg)
}

// ExecutionStatus returns the execution-stage outcome for this fault.
func (e ExecutionError) ExecutionStatus() vmstatus.ExecutionStatus {
	return e.status
}

// Status returns the execution-branch VMStatus for this fault.
func (e ExecutionError) Status() vmstatus.VMStatus {
	return vmstatus.NewExecutionStatusReport(e.status)
}

// NewOutOfGasError indicates execution exhausted the gas budget.
func NewOutOfGasError(limit uint64) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewRuntimeStatus(vmstatus.RuntimeOutOfGas),
		msg:    fmt.Sprintf("gas limit %d exhausted", limit),
	}
}

// NewResourceDoesNotExistError indicates an access to an unpublished
// resource.
func NewResourceDoesNotExistError(tag string) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewRuntimeStatus(vmstatus.RuntimeResourceDoesNotExist),
		msg:    fmt.Sprintf("resource %s does not exist under the account", tag),
	}
}

// NewResourceAlreadyExistsError indicates a publish of an already published
// resource.
func NewResourceAlreadyExistsError(tag string) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewRuntimeStatus(vmstatus.RuntimeResourceAlreadyExists),
		msg:    fmt.Sprintf("resource %s already exists under the account", tag),
	}
}

// NewDuplicateModuleNameError indicates a module publish under an occupied
// name.
func NewDuplicateModuleNameError(name string) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewRuntimeStatus(vmstatus.RuntimeDuplicateModuleName),
		msg:    fmt.Sprintf("account already holds a module named %s", name),
	}
}

// NewRuntimeStatusError wraps any runtime registry code that needs no
// dedicated constructor.
func NewRuntimeStatusError(code vmstatus.RuntimeStatusCode, msg string) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewRuntimeStatus(code),
		msg:    msg,
	}
}

// NewAssertionFailureError carries the user-supplied code of a failed
// assertion.
func NewAssertionFailureError(code uint64) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewAssertionFailure(code),
		msg:    fmt.Sprintf("assertion failed with code %d", code),
	}
}

// NewArithmeticError carries an arithmetic fault sub-kind.
func NewArithmeticError(kind vmstatus.ArithmeticErrorKind) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewArithmeticError(kind),
		msg:    "arithmetic operation failed",
	}
}

// NewDynamicReferenceError carries a runtime reference-safety fault
// sub-kind.
func NewDynamicReferenceError(kind vmstatus.DynamicReferenceErrorKind) ExecutionError {
	return ExecutionError{
		status: vmstatus.NewDynamicReferenceError(kind),
		msg:    "reference safety violated at run time",
	}
}
