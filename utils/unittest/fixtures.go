// Package unittest holds fixtures shared by tests across the module.
package unittest

import (
	"github.com/quillvm/quill-go/model/transaction"
	"github.com/quillvm/quill-go/model/vmstatus"
)

func ValidationStatusFixture() vmstatus.VMStatus {
	return vmstatus.NewValidationStatus(vmstatus.ValidationSequenceNumberTooOld)
}

func VerificationStatusFixture() vmstatus.VMStatus {
	return vmstatus.NewVerificationStatus(vmstatus.VerificationStatusList{
		VerificationEntryFixture(),
		ModuleVerificationEntryFixture(2, vmstatus.VerificationIndexOutOfBounds),
	})
}

func EmptyVerificationStatusFixture() vmstatus.VMStatus {
	return vmstatus.NewVerificationStatus(vmstatus.VerificationStatusList{})
}

func InvariantViolationStatusFixture() vmstatus.VMStatus {
	return vmstatus.NewInvariantViolationStatus(vmstatus.InvariantPCOverflow)
}

func BinaryStatusFixture() vmstatus.VMStatus {
	return vmstatus.NewBinaryStatus(vmstatus.BinaryBadMagic)
}

func ExecutedStatusFixture() vmstatus.VMStatus {
	return vmstatus.NewExecutionStatusReport(
		vmstatus.NewRuntimeStatus(vmstatus.RuntimeExecuted))
}

func OutOfGasStatusFixture() vmstatus.VMStatus {
	return vmstatus.NewExecutionStatusReport(
		vmstatus.NewRuntimeStatus(vmstatus.RuntimeOutOfGas))
}

func VerificationEntryFixture() vmstatus.VerificationEntry {
	return vmstatus.VerificationEntry{
		Kind:      vmstatus.VerificationTargetModule,
		ModuleIdx: 0,
		ErrorKind: vmstatus.VerificationTypeMismatch,
		Message:   "operand type does not match instruction",
	}
}

func ModuleVerificationEntryFixture(moduleIdx uint32, kind vmstatus.VerificationErrorCode) vmstatus.VerificationEntry {
	return vmstatus.VerificationEntry{
		Kind:      vmstatus.VerificationTargetModule,
		ModuleIdx: moduleIdx,
		ErrorKind: kind,
	}
}

func ScriptVerificationEntryFixture() vmstatus.VerificationEntry {
	return vmstatus.VerificationEntry{
		Kind:      vmstatus.VerificationTargetScript,
		ErrorKind: vmstatus.VerificationUnbalancedStack,
		Message:   "script leaves the value stack unbalanced",
	}
}

func SignedTransactionFixture() transaction.SignedTransaction {
	// Deliberately non-canonical bytes: nothing in the envelope layer may
	// assume the payload parses, let alone re-encode it.
	raw := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x42, 0x42, 0x01}
	tx, err := transaction.NewSignedTransaction(
		raw,
		[]byte("sender-public-key"),
		[]byte("sender-signature"),
	)
	if err != nil {
		panic(err)
	}
	return tx
}
