// Package vmstatus defines the status model reported by the Quill VM for
// every transaction-level operation: one terminal, categorized outcome per
// pipeline stage (binary decoding, validation, bytecode verification,
// execution).
//
// All values in this package are immutable once constructed and safe to
// share across goroutines without synchronization.
package vmstatus

// The numeric values below are a wire compatibility contract and must never
// be renumbered. Within every registry, value 0 is a reserved Unknown
// sentinel: it is never the intended result of a decision and exists so
// that codes introduced by a newer producer decode to something an older
// consumer can handle.

// ValidationStatusCode identifies a prologue (pre-execution validation)
// fault.
type ValidationStatusCode uint32

const (
	// ValidationUnknown is the reserved forward-compatibility sentinel.
	ValidationUnknown ValidationStatusCode = iota
	// ValidationInvalidSignature indicates the transaction signature does
	// not verify against the sender's public key.
	ValidationInvalidSignature
	// ValidationInvalidAuthKey indicates the sender's authentication key
	// does not match the key registered under the sending account.
	ValidationInvalidAuthKey
	// ValidationSequenceNumberTooOld indicates the transaction's sequence
	// number is lower than the sending account's current one.
	ValidationSequenceNumberTooOld
	// ValidationSequenceNumberTooNew indicates the transaction's sequence
	// number is ahead of the sending account's current one.
	ValidationSequenceNumberTooNew
	// ValidationInsufficientBalanceForTransactionFee indicates the sender
	// cannot cover the maximum transaction fee.
	ValidationInsufficientBalanceForTransactionFee
	// ValidationTransactionExpired indicates the transaction's expiration
	// time has passed.
	ValidationTransactionExpired
	// ValidationSendingAccountDoesNotExist indicates the sending account
	// could not be found.
	ValidationSendingAccountDoesNotExist
	// ValidationExceedsMaxTransactionSize indicates the raw transaction is
	// larger than the admission limit.
	ValidationExceedsMaxTransactionSize
	// ValidationUnknownScript indicates the script is not on the allowlist
	// of known scripts.
	ValidationUnknownScript
	// ValidationUnknownModule indicates module publishing is not allowed
	// for the sender.
	ValidationUnknownModule
	// ValidationMaxGasUnitsExceedsBound indicates the declared maximum gas
	// units exceed the per-transaction bound.
	ValidationMaxGasUnitsExceedsBound
	// ValidationMaxGasUnitsBelowMinimum indicates the declared maximum gas
	// units cannot cover the intrinsic cost of any transaction.
	ValidationMaxGasUnitsBelowMinimum
	// ValidationGasUnitPriceBelowMinBound indicates the offered gas unit
	// price is below the network minimum.
	ValidationGasUnitPriceBelowMinBound
	// ValidationGasUnitPriceAboveMaxBound indicates the offered gas unit
	// price is above the network maximum.
	ValidationGasUnitPriceAboveMaxBound

	maxValidationStatusCode = ValidationGasUnitPriceAboveMaxBound
)

var validationStatusStrings = [...]string{
	"UnknownValidationStatus",
	"InvalidSignature",
	"InvalidAuthKey",
	"SequenceNumberTooOld",
	"SequenceNumberTooNew",
	"InsufficientBalanceForTransactionFee",
	"TransactionExpired",
	"SendingAccountDoesNotExist",
	"ExceedsMaxTransactionSize",
	"UnknownScript",
	"UnknownModule",
	"MaxGasUnitsExceedsBound",
	"MaxGasUnitsBelowMinimum",
	"GasUnitPriceBelowMinBound",
	"GasUnitPriceAboveMaxBound",
}

// String returns the registry name of the code.
func (c ValidationStatusCode) String() string {
	if c > maxValidationStatusCode {
		return validationStatusStrings[ValidationUnknown]
	}
	return validationStatusStrings[c]
}

// ValidationStatusCodeFromWire maps a decoded numeric id to a validation
// status code. Ids above the highest known code decode to the Unknown
// sentinel rather than failing, so a newer producer's output remains
// readable.
func ValidationStatusCodeFromWire(v uint64) ValidationStatusCode {
	if v > uint64(maxValidationStatusCode) {
		return ValidationUnknown
	}
	return ValidationStatusCode(v)
}

// VerificationErrorCode identifies a bytecode verification fault found at
// module or script publish time.
type VerificationErrorCode uint32

const (
	// VerificationUnknown is the reserved forward-compatibility sentinel.
	VerificationUnknown VerificationErrorCode = iota
	// VerificationIndexOutOfBounds indicates an index into one of the
	// binary's tables is out of bounds.
	VerificationIndexOutOfBounds
	// VerificationRangeOutOfBounds indicates a (start, length) range into
	// one of the binary's tables is out of bounds.
	VerificationRangeOutOfBounds
	// VerificationNoModuleHandles indicates the binary declares no module
	// handles at all.
	VerificationNoModuleHandles
	// VerificationModuleAddressDoesNotMatchSender indicates a published
	// module declares an address other than the sending account.
	VerificationModuleAddressDoesNotMatchSender
	// VerificationInvalidSignatureToken indicates a malformed type
	// signature token.
	VerificationInvalidSignatureToken
	// VerificationRecursiveStructDefinition indicates a struct definition
	// that directly or transitively contains itself.
	VerificationRecursiveStructDefinition
	// VerificationInvalidResourceField indicates a resource held in a
	// non-resource container.
	VerificationInvalidResourceField
	// VerificationInvalidFallThrough indicates a basic block that falls
	// through past the end of the code unit.
	VerificationInvalidFallThrough
	// VerificationJoinFailure indicates abstract states at a control-flow
	// join could not be reconciled.
	VerificationJoinFailure
	// VerificationNegativeStackSizeWithinBlock indicates a basic block
	// pops more values than it has available.
	VerificationNegativeStackSizeWithinBlock
	// VerificationUnbalancedStack indicates a block leaves the value stack
	// at a different height than it entered with.
	VerificationUnbalancedStack
	// VerificationInvalidMainFunctionSignature indicates a script entry
	// point with a disallowed signature.
	VerificationInvalidMainFunctionSignature
	// VerificationDuplicateElement indicates a table entry that must be
	// unique appears more than once.
	VerificationDuplicateElement
	// VerificationInvalidModuleHandle indicates a module handle that does
	// not resolve to a declared module.
	VerificationInvalidModuleHandle
	// VerificationUnimplementedHandle indicates a function or struct
	// handle with no matching definition in the declaring module.
	VerificationUnimplementedHandle
	// VerificationInconsistentFields indicates struct field definitions
	// inconsistent with the struct's declared field count.
	VerificationInconsistentFields
	// VerificationLookupFailed indicates a name could not be resolved in
	// a dependency.
	VerificationLookupFailed
	// VerificationVisibilityMismatch indicates a call to a function whose
	// declared visibility forbids it.
	VerificationVisibilityMismatch
	// VerificationTypeResolutionFailure indicates a type could not be
	// resolved against the declaring module.
	VerificationTypeResolutionFailure
	// VerificationTypeMismatch indicates an operand type differs from the
	// type the instruction requires.
	VerificationTypeMismatch
	// VerificationMissingDependency indicates a dependency module is not
	// present in storage.
	VerificationMissingDependency
	// VerificationPopResourceError indicates an attempt to pop a resource
	// value, which would destroy it.
	VerificationPopResourceError
	// VerificationBorrowFieldBadField indicates a field borrow that names a
	// field the struct does not declare.
	VerificationBorrowFieldBadField
	// VerificationMoveLocUnavailable indicates a move from a local that
	// holds no value.
	VerificationMoveLocUnavailable
	// VerificationGlobalReferenceEscapes indicates a reference into global
	// storage that outlives the enclosing instruction sequence.
	VerificationGlobalReferenceEscapes

	maxVerificationErrorCode = VerificationGlobalReferenceEscapes
)

var verificationErrorStrings = [...]string{
	"UnknownVerificationError",
	"IndexOutOfBounds",
	"RangeOutOfBounds",
	"NoModuleHandles",
	"ModuleAddressDoesNotMatchSender",
	"InvalidSignatureToken",
	"RecursiveStructDefinition",
	"InvalidResourceField",
	"InvalidFallThrough",
	"JoinFailure",
	"NegativeStackSizeWithinBlock",
	"UnbalancedStack",
	"InvalidMainFunctionSignature",
	"DuplicateElement",
	"InvalidModuleHandle",
	"UnimplementedHandle",
	"InconsistentFields",
	"LookupFailed",
	"VisibilityMismatch",
	"TypeResolutionFailure",
	"TypeMismatch",
	"MissingDependency",
	"PopResourceError",
	"BorrowFieldBadField",
	"MoveLocUnavailable",
	"GlobalReferenceEscapes",
}

// String returns the registry name of the code.
func (c VerificationErrorCode) String() string {
	if c > maxVerificationErrorCode {
		return verificationErrorStrings[VerificationUnknown]
	}
	return verificationErrorStrings[c]
}

// VerificationErrorCodeFromWire maps a decoded numeric id to a verification
// error code, clamping unknown ids to the Unknown sentinel.
func VerificationErrorCodeFromWire(v uint64) VerificationErrorCode {
	if v > uint64(maxVerificationErrorCode) {
		return VerificationUnknown
	}
	return VerificationErrorCode(v)
}

// InvariantViolationCode identifies a bug in the VM or verifier itself, as
// opposed to a fault in submitted code. Consumers must log these with full
// context and treat them as fatal to the operation, never to the process.
type InvariantViolationCode uint32

const (
	// InvariantViolationUnknown is the reserved forward-compatibility
	// sentinel, doubling as the defensive fallback for internal errors
	// that escaped classification.
	InvariantViolationUnknown InvariantViolationCode = iota
	// InvariantOutOfBoundsIndex indicates an internal table index out of
	// bounds after verification claimed otherwise.
	InvariantOutOfBoundsIndex
	// InvariantOutOfBoundsRange indicates an internal table range out of
	// bounds after verification claimed otherwise.
	InvariantOutOfBoundsRange
	// InvariantEmptyValueStack indicates a pop from an empty value stack.
	InvariantEmptyValueStack
	// InvariantEmptyCallStack indicates a return with no frame to return
	// to.
	InvariantEmptyCallStack
	// InvariantPCOverflow indicates the program counter ran past the end
	// of a code unit.
	InvariantPCOverflow
	// InvariantLinkerError indicates a resolution failure for a handle
	// that verification had already resolved.
	InvariantLinkerError
	// InvariantLocalReferenceError indicates an inconsistency in the
	// interpreter's local reference accounting.
	InvariantLocalReferenceError
	// InvariantStorageError indicates the backing store misbehaved in a
	// way the VM cannot attribute to the transaction.
	InvariantStorageError

	maxInvariantViolationCode = InvariantStorageError
)

var invariantViolationStrings = [...]string{
	"UnknownInvariantViolationError",
	"OutOfBoundsIndex",
	"OutOfBoundsRange",
	"EmptyValueStack",
	"EmptyCallStack",
	"PCOverflow",
	"LinkerError",
	"LocalReferenceError",
	"StorageError",
}

// String returns the registry name of the code.
func (c InvariantViolationCode) String() string {
	if c > maxInvariantViolationCode {
		return invariantViolationStrings[InvariantViolationUnknown]
	}
	return invariantViolationStrings[c]
}

// InvariantViolationCodeFromWire maps a decoded numeric id to an invariant
// violation code, clamping unknown ids to the Unknown sentinel.
func InvariantViolationCodeFromWire(v uint64) InvariantViolationCode {
	if v > uint64(maxInvariantViolationCode) {
		return InvariantViolationUnknown
	}
	return InvariantViolationCode(v)
}

// BinaryErrorCode identifies a fault found while deserializing a compiled
// module or script binary.
type BinaryErrorCode uint32

const (
	// BinaryUnknown is the reserved forward-compatibility sentinel.
	BinaryUnknown BinaryErrorCode = iota
	// BinaryMalformed indicates a binary that violates the format in a way
	// no more specific code covers.
	BinaryMalformed
	// BinaryBadMagic indicates the binary does not start with the expected
	// magic bytes.
	BinaryBadMagic
	// BinaryUnknownVersion indicates a format version this VM does not
	// support.
	BinaryUnknownVersion
	// BinaryUnknownTableType indicates a table header with an unrecognized
	// table kind.
	BinaryUnknownTableType
	// BinaryUnknownSignatureType indicates an unrecognized signature kind
	// byte.
	BinaryUnknownSignatureType
	// BinaryUnknownSerializedType indicates an unrecognized serialized
	// type tag.
	BinaryUnknownSerializedType
	// BinaryUnknownOpcode indicates an unrecognized instruction opcode.
	BinaryUnknownOpcode
	// BinaryBadHeaderTable indicates a malformed table header section.
	BinaryBadHeaderTable
	// BinaryUnexpectedSignatureType indicates a signature kind that is
	// valid in general but illegal in the position it appears.
	BinaryUnexpectedSignatureType
	// BinaryDuplicateTable indicates the same table kind declared twice.
	BinaryDuplicateTable

	maxBinaryErrorCode = BinaryDuplicateTable
)

var binaryErrorStrings = [...]string{
	"UnknownBinaryError",
	"Malformed",
	"BadMagic",
	"UnknownVersion",
	"UnknownTableType",
	"UnknownSignatureType",
	"UnknownSerializedType",
	"UnknownOpcode",
	"BadHeaderTable",
	"UnexpectedSignatureType",
	"DuplicateTable",
}

// String returns the registry name of the code.
func (c BinaryErrorCode) String() string {
	if c > maxBinaryErrorCode {
		return binaryErrorStrings[BinaryUnknown]
	}
	return binaryErrorStrings[c]
}

// BinaryErrorCodeFromWire maps a decoded numeric id to a binary error code,
// clamping unknown ids to the Unknown sentinel.
func BinaryErrorCodeFromWire(v uint64) BinaryErrorCode {
	if v > uint64(maxBinaryErrorCode) {
		return BinaryUnknown
	}
	return BinaryErrorCode(v)
}

// RuntimeStatusCode identifies the outcome of executing a transaction that
// passed validation and any required verification. RuntimeExecuted is the
// success code; success is always reported explicitly, never by omission.
type RuntimeStatusCode uint32

const (
	// RuntimeUnknown is the reserved forward-compatibility sentinel.
	RuntimeUnknown RuntimeStatusCode = iota
	// RuntimeExecuted indicates the transaction executed successfully.
	RuntimeExecuted
	// RuntimeOutOfGas indicates execution exhausted the transaction's gas
	// budget.
	RuntimeOutOfGas
	// RuntimeResourceDoesNotExist indicates an access to a resource that
	// is not published under the given account.
	RuntimeResourceDoesNotExist
	// RuntimeResourceAlreadyExists indicates a publish of a resource that
	// already exists under the given account.
	RuntimeResourceAlreadyExists
	// RuntimeEvictedAccountAccess indicates an access to an account that
	// has been evicted.
	RuntimeEvictedAccountAccess
	// RuntimeAccountAddressAlreadyExists indicates an attempt to create an
	// account at an occupied address.
	RuntimeAccountAddressAlreadyExists
	// RuntimeTypeError indicates a runtime type confusion that the
	// verifier could not rule out statically.
	RuntimeTypeError
	// RuntimeMissingData indicates data expected under a storage key was
	// absent.
	RuntimeMissingData
	// RuntimeDataFormatError indicates stored data could not be decoded.
	RuntimeDataFormatError
	// RuntimeInvalidData indicates stored data decoded to a value invalid
	// for its declared type.
	RuntimeInvalidData
	// RuntimeRemoteDataError indicates the remote state source returned an
	// error.
	RuntimeRemoteDataError
	// RuntimeCannotWriteExistingResource indicates a write-set style write
	// to a resource slot that is already occupied.
	RuntimeCannotWriteExistingResource
	// RuntimeValueSerializationError indicates a VM value could not be
	// serialized for storage.
	RuntimeValueSerializationError
	// RuntimeValueDeserializationError indicates a stored VM value could
	// not be deserialized.
	RuntimeValueDeserializationError
	// RuntimeDuplicateModuleName indicates a module publish under a name
	// the account already uses.
	RuntimeDuplicateModuleName

	maxRuntimeStatusCode = RuntimeDuplicateModuleName
)

var runtimeStatusStrings = [...]string{
	"UnknownRuntimeStatus",
	"Executed",
	"OutOfGas",
	"ResourceDoesNotExist",
	"ResourceAlreadyExists",
	"EvictedAccountAccess",
	"AccountAddressAlreadyExists",
	"TypeError",
	"MissingData",
	"DataFormatError",
	"InvalidData",
	"RemoteDataError",
	"CannotWriteExistingResource",
	"ValueSerializationError",
	"ValueDeserializationError",
	"DuplicateModuleName",
}

// String returns the registry name of the code.
func (c RuntimeStatusCode) String() string {
	if c > maxRuntimeStatusCode {
		return runtimeStatusStrings[RuntimeUnknown]
	}
	return runtimeStatusStrings[c]
}

// RuntimeStatusCodeFromWire maps a decoded numeric id to a runtime status
// code, clamping unknown ids to the Unknown sentinel.
func RuntimeStatusCodeFromWire(v uint64) RuntimeStatusCode {
	if v > uint64(maxRuntimeStatusCode) {
		return RuntimeUnknown
	}
	return RuntimeStatusCode(v)
}
