// Package errors gives the VM's pipeline stages coded error identities and
// converts them to the vmstatus model at the boundary.
//
// Two severities live here. CodedError is a user-facing fault: the
// operation's definitive result, surfaced to the submitter. Failure is an
// invariant violation inside the VM or verifier: fatal to the operation,
// never to the process. SplitErrorTypes assigns any error to exactly one of
// the two.
package errors

import (
	"errors"
	"fmt"

	"github.com/quillvm/quill-go/model/vmstatus"
)

// CodedError is a user-facing fault that maps to a terminal VMStatus.
type CodedError interface {
	error

	// Status returns the single-branch VMStatus reporting this fault.
	Status() vmstatus.VMStatus
}

// Failure is an invariant violation: a bug in the VM or verifier itself.
type Failure interface {
	error

	// FailureCode returns the invariant violation registry code.
	FailureCode() vmstatus.InvariantViolationCode
}

// IsFailure returns true if the error chain contains a Failure, or if the
// error is not coded at all. An uncoded error escaping a pipeline stage is
// itself an invariant violation.
func IsFailure(err error) bool {
	if err == nil {
		return false
	}
	var failure Failure
	if errors.As(err, &failure) {
		return true
	}
	var coded CodedError
	return !errors.As(err, &coded)
}

// SplitErrorTypes classifies an error as exactly one of user-facing coded
// error or internal failure. A Failure anywhere in the chain wins over a
// CodedError; an error that is neither becomes an unknown failure carrying
// the registry's defensive-fallback sentinel.
func SplitErrorTypes(err error) (CodedError, Failure) {
	if err == nil {
		return nil, nil
	}
	var failure Failure
	if errors.As(err, &failure) {
		return nil, failure
	}
	var coded CodedError
	if errors.As(err, &coded) {
		return coded, nil
	}
	return nil, NewUnknownFailure(err)
}

// VMStatusFromError converts the outcome of a pipeline stage into the
// single-branch VMStatus that reports it. A nil error is the success
// outcome and reports RuntimeExecuted explicitly; "no status" is never a
// representable result.
func VMStatusFromError(err error) vmstatus.VMStatus {
	if err == nil {
		return vmstatus.NewExecutionStatusReport(
			vmstatus.NewRuntimeStatus(vmstatus.RuntimeExecuted))
	}
	coded, failure := SplitErrorTypes(err)
	if failure != nil {
		return vmstatus.NewInvariantViolationStatus(failure.FailureCode())
	}
	return coded.Status()
}

// ValidationError is a prologue fault.
type ValidationError struct {
	code vmstatus.ValidationStatusCode
	msg  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.code, e.msg)
}

// Code returns the validation registry code.
func (e ValidationError) Code() vmstatus.ValidationStatusCode {
	return e.code
}

// Status returns the validation-branch VMStatus for this fault.
func (e ValidationError) Status() vmstatus.VMStatus {
	return vmstatus.NewValidationStatus(e.code)
}

// NewInvalidSignatureError indicates the transaction signature does not
// verify against the sender's key.
func NewInvalidSignatureError() ValidationError {
	return ValidationError{
		code: vmstatus.ValidationInvalidSignature,
		msg:  "transaction signature does not verify",
	}
}

// NewSequenceNumberTooOldError indicates a replayed or stale sequence
// number.
func NewSequenceNumberTooOldError(current, submitted uint64) ValidationError {
	return ValidationError{
		code: vmstatus.ValidationSequenceNumberTooOld,
		msg:  fmt.Sprintf("sequence number %d is below the account's current %d", submitted, current),
	}
}

// NewSequenceNumberTooNewError indicates a sequence number ahead of the
// account's current one.
func NewSequenceNumberTooNewError(current, submitted uint64) ValidationError {
	return ValidationError{
		code: vmstatus.ValidationSequenceNumberTooNew,
		msg:  fmt.Sprintf("sequence number %d is ahead of the account's current %d", submitted, current),
	}
}

// NewTransactionExpiredError indicates the transaction's expiration time
// has passed.
func NewTransactionExpiredError(expirationTime uint64) ValidationError {
	return ValidationError{
		code: vmstatus.ValidationTransactionExpired,
		msg:  fmt.Sprintf("transaction expired at %d", expirationTime),
	}
}

// NewSendingAccountDoesNotExistError indicates an unknown sending account.
func NewSendingAccountDoesNotExistError(address string) ValidationError {
	return ValidationError{
		code: vmstatus.ValidationSendingAccountDoesNotExist,
		msg:  fmt.Sprintf("sending account %s does not exist", address),
	}
}

// NewGasUnitPriceBelowBoundError indicates a gas unit price under the
// network minimum.
func NewGasUnitPriceBelowBoundError(price, bound uint64) ValidationError {
	return ValidationError{
		code: vmstatus.ValidationGasUnitPriceBelowMinBound,
		msg:  fmt.Sprintf("gas unit price %d is below the minimum %d", price, bound),
	}
}

// NewGasUnitPriceAboveBoundError indicates a gas unit price over the
// network maximum.
func NewGasUnitPriceAboveBoundError(price, bound uint64) ValidationError {
	return ValidationError{
		code: vmstatus.ValidationGasUnitPriceAboveMaxBound,
		msg:  fmt.Sprintf("gas unit price %d is above the maximum %d", price, bound),
	}
}

// BinaryDecodeError is a fault found while deserializing a compiled module
// or script binary.
type BinaryDecodeError struct {
	code vmstatus.BinaryErrorCode
	msg  string
}

func (e BinaryDecodeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.code, e.msg)
}

// Code returns the binary registry code.
func (e BinaryDecodeError) Code() vmstatus.BinaryErrorCode {
	return e.code
}

// Status returns the binary-branch VMStatus for this fault.
func (e BinaryDecodeError) Status() vmstatus.VMStatus {
	return vmstatus.NewBinaryStatus(e.code)
}

// NewBadMagicError indicates the binary does not start with the expected
// magic bytes.
func NewBadMagicError() BinaryDecodeError {
	return BinaryDecodeError{
		code: vmstatus.BinaryBadMagic,
		msg:  "binary does not start with the expected magic",
	}
}

// NewUnknownVersionError indicates an unsupported binary format version.
func NewUnknownVersionError(version uint32) BinaryDecodeError {
	return BinaryDecodeError{
		code: vmstatus.BinaryUnknownVersion,
		msg:  fmt.Sprintf("unsupported binary format version %d", version),
	}
}

// NewUnknownOpcodeError indicates an unrecognized instruction opcode.
func NewUnknownOpcodeError(opcode byte) BinaryDecodeError {
	return BinaryDecodeError{
		code: vmstatus.BinaryUnknownOpcode,
		msg:  fmt.Sprintf("unrecognized opcode 0x%02x", opcode),
	}
}

// NewDuplicateTableError indicates the same table kind declared twice.
func NewDuplicateTableError(kind uint8) BinaryDecodeError {
	return BinaryDecodeError{
		code: vmstatus.BinaryDuplicateTable,
		msg:  fmt.Sprintf("table kind %d declared more than once", kind),
	}
}

// NewMalformedBinaryErrorf covers format violations no more specific code
// describes.
func NewMalformedBinaryErrorf(msg string, args ...interface{}) BinaryDecodeError {
	return BinaryDecodeError{
		code: vmstatus.BinaryMalformed,
		msg:  fmt.Sprintf(msg, args...),
	}
}
