// Package wire encodes and decodes the vmstatus model in protobuf wire
// format. The field numbers below are the interoperability contract shared
// with every other implementation of the schema; they must never change.
//
// Decoding is forward compatible: unknown field numbers are skipped and
// registry ids above the highest known code clamp to the registry's Unknown
// sentinel. The only hard decode failures are structural: truncated input,
// a wire type that contradicts the schema, or a oneof with zero or more
// than one populated branch.
package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/quillvm/quill-go/model/vmstatus"
)

// VMStatus message fields.
const (
	fieldVMStatusValidation   = protowire.Number(1) // varint, ValidationStatusCode
	fieldVMStatusVerification = protowire.Number(2) // bytes, VerificationStatusList message
	fieldVMStatusInvariant    = protowire.Number(3) // varint, InvariantViolationCode
	fieldVMStatusBinary       = protowire.Number(4) // varint, BinaryErrorCode
	fieldVMStatusExecution    = protowire.Number(5) // bytes, ExecutionStatus message
)

// VerificationStatusList message fields.
const (
	fieldVerificationListEntry = protowire.Number(1) // repeated bytes, VerificationEntry message
)

// VerificationEntry message fields.
const (
	fieldVerificationEntryKind      = protowire.Number(1) // varint, VerificationTargetKind
	fieldVerificationEntryModuleIdx = protowire.Number(2) // varint, uint32
	fieldVerificationEntryErrorKind = protowire.Number(3) // varint, VerificationErrorCode
	fieldVerificationEntryMessage   = protowire.Number(4) // bytes, string
)

// ExecutionStatus message fields.
const (
	fieldExecutionRuntime   = protowire.Number(1) // varint, RuntimeStatusCode
	fieldExecutionAssertion = protowire.Number(2) // bytes, AssertionFailure message
	fieldExecutionArith     = protowire.Number(3) // bytes, ArithmeticError message
	fieldExecutionReference = protowire.Number(4) // bytes, DynamicReferenceError message
)

// AssertionFailure, ArithmeticError and DynamicReferenceError each carry a
// single field.
const (
	fieldAssertionCode = protowire.Number(1) // varint, uint64
	fieldArithKind     = protowire.Number(1) // varint, ArithmeticErrorKind
	fieldReferenceKind = protowire.Number(1) // varint, DynamicReferenceErrorKind
)

var (
	// ErrNoBranch reports a oneof with no populated branch. "No outcome"
	// is never a representable state, so this is malformed input, not a
	// status.
	ErrNoBranch = errors.New("status oneof has no populated branch")

	// ErrMultipleBranches reports a oneof with more than one populated
	// branch.
	ErrMultipleBranches = errors.New("status oneof has multiple populated branches")
)

// MarshalVMStatus encodes a VMStatus.
func MarshalVMStatus(s vmstatus.VMStatus) ([]byte, error) {
	return AppendVMStatus(nil, s)
}

// AppendVMStatus appends the encoding of a VMStatus to buf. The populated
// branch is always emitted, even when its payload is the zero value, so
// the branch choice survives the round trip.
func AppendVMStatus(buf []byte, s vmstatus.VMStatus) ([]byte, error) {
	if err := s.CheckWellFormed(); err != nil {
		return nil, fmt.Errorf("cannot encode vm status: %w", err)
	}
	switch s.Kind() {
	case vmstatus.VMStatusKindValidation:
		code, _ := s.Validation()
		buf = protowire.AppendTag(buf, fieldVMStatusValidation, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(code))
	case vmstatus.VMStatusKindVerification:
		list, _ := s.Verification()
		buf = protowire.AppendTag(buf, fieldVMStatusVerification, protowire.BytesType)
		buf = protowire.AppendBytes(buf, appendVerificationList(nil, list))
	case vmstatus.VMStatusKindInvariantViolation:
		code, _ := s.InvariantViolation()
		buf = protowire.AppendTag(buf, fieldVMStatusInvariant, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(code))
	case vmstatus.VMStatusKindBinary:
		code, _ := s.Binary()
		buf = protowire.AppendTag(buf, fieldVMStatusBinary, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(code))
	case vmstatus.VMStatusKindExecution:
		es, _ := s.Execution()
		payload, err := AppendExecutionStatus(nil, es)
		if err != nil {
			return nil, err
		}
		buf = protowire.AppendTag(buf, fieldVMStatusExecution, protowire.BytesType)
		buf = protowire.AppendBytes(buf, payload)
	}
	return buf, nil
}

// UnmarshalVMStatus decodes a VMStatus. Exactly one branch must be present;
// a repeat of the same branch field follows protobuf last-one-wins, while a
// second distinct branch is ErrMultipleBranches.
func UnmarshalVMStatus(data []byte) (vmstatus.VMStatus, error) {
	var (
		status vmstatus.VMStatus
		seen   vmstatus.VMStatusKind
	)

	setBranch := func(kind vmstatus.VMStatusKind, s vmstatus.VMStatus) error {
		if seen != vmstatus.VMStatusKindUnset && seen != kind {
			return fmt.Errorf("vm status: %w: %s and %s", ErrMultipleBranches, seen, kind)
		}
		seen = kind
		status = s
		return nil
	}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return vmstatus.VMStatus{}, fmt.Errorf("vm status: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldVMStatusValidation:
			v, n, err := consumeVarintField(data, typ, "validation")
			if err != nil {
				return vmstatus.VMStatus{}, err
			}
			data = data[n:]
			if err := setBranch(
				vmstatus.VMStatusKindValidation,
				vmstatus.NewValidationStatus(vmstatus.ValidationStatusCodeFromWire(v)),
			); err != nil {
				return vmstatus.VMStatus{}, err
			}

		case fieldVMStatusVerification:
			payload, n, err := consumeBytesField(data, typ, "verification list")
			if err != nil {
				return vmstatus.VMStatus{}, err
			}
			data = data[n:]
			list, err := UnmarshalVerificationList(payload)
			if err != nil {
				return vmstatus.VMStatus{}, err
			}
			if err := setBranch(
				vmstatus.VMStatusKindVerification,
				vmstatus.NewVerificationStatus(list),
			); err != nil {
				return vmstatus.VMStatus{}, err
			}

		case fieldVMStatusInvariant:
			v, n, err := consumeVarintField(data, typ, "invariant violation")
			if err != nil {
				return vmstatus.VMStatus{}, err
			}
			data = data[n:]
			if err := setBranch(
				vmstatus.VMStatusKindInvariantViolation,
				vmstatus.NewInvariantViolationStatus(vmstatus.InvariantViolationCodeFromWire(v)),
			); err != nil {
				return vmstatus.VMStatus{}, err
			}

		case fieldVMStatusBinary:
			v, n, err := consumeVarintField(data, typ, "binary error")
			if err != nil {
				return vmstatus.VMStatus{}, err
			}
			data = data[n:]
			if err := setBranch(
				vmstatus.VMStatusKindBinary,
				vmstatus.NewBinaryStatus(vmstatus.BinaryErrorCodeFromWire(v)),
			); err != nil {
				return vmstatus.VMStatus{}, err
			}

		case fieldVMStatusExecution:
			payload, n, err := consumeBytesField(data, typ, "execution status")
			if err != nil {
				return vmstatus.VMStatus{}, err
			}
			data = data[n:]
			es, err := UnmarshalExecutionStatus(payload)
			if err != nil {
				return vmstatus.VMStatus{}, err
			}
			if err := setBranch(
				vmstatus.VMStatusKindExecution,
				vmstatus.NewExecutionStatusReport(es),
			); err != nil {
				return vmstatus.VMStatus{}, err
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return vmstatus.VMStatus{}, fmt.Errorf("vm status: malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	if seen == vmstatus.VMStatusKindUnset {
		return vmstatus.VMStatus{}, fmt.Errorf("vm status: %w", ErrNoBranch)
	}
	return status, nil
}

// MarshalExecutionStatus encodes an ExecutionStatus.
func MarshalExecutionStatus(s vmstatus.ExecutionStatus) ([]byte, error) {
	return AppendExecutionStatus(nil, s)
}

// AppendExecutionStatus appends the encoding of an ExecutionStatus to buf.
func AppendExecutionStatus(buf []byte, s vmstatus.ExecutionStatus) ([]byte, error) {
	if err := s.CheckWellFormed(); err != nil {
		return nil, fmt.Errorf("cannot encode execution status: %w", err)
	}
	switch s.Kind() {
	case vmstatus.ExecutionKindRuntime:
		code, _ := s.Runtime()
		buf = protowire.AppendTag(buf, fieldExecutionRuntime, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(code))
	case vmstatus.ExecutionKindAssertionFailure:
		code, _ := s.AssertionCode()
		var inner []byte
		inner = protowire.AppendTag(inner, fieldAssertionCode, protowire.VarintType)
		inner = protowire.AppendVarint(inner, code)
		buf = protowire.AppendTag(buf, fieldExecutionAssertion, protowire.BytesType)
		buf = protowire.AppendBytes(buf, inner)
	case vmstatus.ExecutionKindArithmeticError:
		kind, _ := s.Arithmetic()
		var inner []byte
		inner = protowire.AppendTag(inner, fieldArithKind, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(kind))
		buf = protowire.AppendTag(buf, fieldExecutionArith, protowire.BytesType)
		buf = protowire.AppendBytes(buf, inner)
	case vmstatus.ExecutionKindDynamicReferenceError:
		kind, _ := s.Reference()
		var inner []byte
		inner = protowire.AppendTag(inner, fieldReferenceKind, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(kind))
		buf = protowire.AppendTag(buf, fieldExecutionReference, protowire.BytesType)
		buf = protowire.AppendBytes(buf, inner)
	}
	return buf, nil
}

// UnmarshalExecutionStatus decodes an ExecutionStatus under the same oneof
// rules as UnmarshalVMStatus.
func UnmarshalExecutionStatus(data []byte) (vmstatus.ExecutionStatus, error) {
	var (
		status vmstatus.ExecutionStatus
		seen   vmstatus.ExecutionStatusKind
	)

	setBranch := func(kind vmstatus.ExecutionStatusKind, s vmstatus.ExecutionStatus) error {
		if seen != vmstatus.ExecutionKindUnset && seen != kind {
			return fmt.Errorf("execution status: %w: %s and %s", ErrMultipleBranches, seen, kind)
		}
		seen = kind
		status = s
		return nil
	}

	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return vmstatus.ExecutionStatus{}, fmt.Errorf("execution status: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldExecutionRuntime:
			v, n, err := consumeVarintField(data, typ, "runtime status")
			if err != nil {
				return vmstatus.ExecutionStatus{}, err
			}
			data = data[n:]
			if err := setBranch(
				vmstatus.ExecutionKindRuntime,
				vmstatus.NewRuntimeStatus(vmstatus.RuntimeStatusCodeFromWire(v)),
			); err != nil {
				return vmstatus.ExecutionStatus{}, err
			}

		case fieldExecutionAssertion:
			payload, n, err := consumeBytesField(data, typ, "assertion failure")
			if err != nil {
				return vmstatus.ExecutionStatus{}, err
			}
			data = data[n:]
			code, err := unmarshalSingleVarint(payload, fieldAssertionCode, "assertion failure")
			if err != nil {
				return vmstatus.ExecutionStatus{}, err
			}
			if err := setBranch(
				vmstatus.ExecutionKindAssertionFailure,
				vmstatus.NewAssertionFailure(code),
			); err != nil {
				return vmstatus.ExecutionStatus{}, err
			}

		case fieldExecutionArith:
			payload, n, err := consumeBytesField(data, typ, "arithmetic error")
			if err != nil {
				return vmstatus.ExecutionStatus{}, err
			}
			data = data[n:]
			kind, err := unmarshalSingleVarint(payload, fieldArithKind, "arithmetic error")
			if err != nil {
				return vmstatus.ExecutionStatus{}, err
			}
			if err := setBranch(
				vmstatus.ExecutionKindArithmeticError,
				vmstatus.NewArithmeticError(vmstatus.ArithmeticErrorKindFromWire(kind)),
			); err != nil {
				return vmstatus.ExecutionStatus{}, err
			}

		case fieldExecutionReference:
			payload, n, err := consumeBytesField(data, typ, "reference error")
			if err != nil {
				return vmstatus.ExecutionStatus{}, err
			}
			data = data[n:]
			kind, err := unmarshalSingleVarint(payload, fieldReferenceKind, "reference error")
			if err != nil {
				return vmstatus.ExecutionStatus{}, err
			}
			if err := setBranch(
				vmstatus.ExecutionKindDynamicReferenceError,
				vmstatus.NewDynamicReferenceError(vmstatus.DynamicReferenceErrorKindFromWire(kind)),
			); err != nil {
				return vmstatus.ExecutionStatus{}, err
			}

		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return vmstatus.ExecutionStatus{}, fmt.Errorf("execution status: malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	if seen == vmstatus.ExecutionKindUnset {
		return vmstatus.ExecutionStatus{}, fmt.Errorf("execution status: %w", ErrNoBranch)
	}
	return status, nil
}

// MarshalVerificationList encodes a VerificationStatusList. An empty list
// encodes to empty bytes and round-trips back to an empty list.
func MarshalVerificationList(list vmstatus.VerificationStatusList) []byte {
	return appendVerificationList(nil, list)
}

func appendVerificationList(buf []byte, list vmstatus.VerificationStatusList) []byte {
	for _, entry := range list {
		buf = protowire.AppendTag(buf, fieldVerificationListEntry, protowire.BytesType)
		buf = protowire.AppendBytes(buf, appendVerificationEntry(nil, entry))
	}
	return buf
}

// UnmarshalVerificationList decodes a VerificationStatusList, preserving
// entry order and duplicates exactly as encoded.
func UnmarshalVerificationList(data []byte) (vmstatus.VerificationStatusList, error) {
	list := vmstatus.VerificationStatusList{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("verification list: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		if num != fieldVerificationListEntry {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("verification list: malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		payload, n, err := consumeBytesField(data, typ, "verification entry")
		if err != nil {
			return nil, err
		}
		data = data[n:]
		entry, err := unmarshalVerificationEntry(payload)
		if err != nil {
			return nil, err
		}
		list = append(list, entry)
	}
	return list, nil
}

func appendVerificationEntry(buf []byte, e vmstatus.VerificationEntry) []byte {
	buf = protowire.AppendTag(buf, fieldVerificationEntryKind, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(e.Kind))
	buf = protowire.AppendTag(buf, fieldVerificationEntryModuleIdx, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(e.ModuleIdx))
	buf = protowire.AppendTag(buf, fieldVerificationEntryErrorKind, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(e.ErrorKind))
	if e.Message != "" {
		buf = protowire.AppendTag(buf, fieldVerificationEntryMessage, protowire.BytesType)
		buf = protowire.AppendString(buf, e.Message)
	}
	return buf
}

func unmarshalVerificationEntry(data []byte) (vmstatus.VerificationEntry, error) {
	var entry vmstatus.VerificationEntry
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return entry, fmt.Errorf("verification entry: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldVerificationEntryKind:
			v, n, err := consumeVarintField(data, typ, "entry kind")
			if err != nil {
				return entry, err
			}
			data = data[n:]
			// Unrecognized target kinds keep their raw value so the
			// entry round-trips unchanged.
			entry.Kind = vmstatus.VerificationTargetKind(v)
		case fieldVerificationEntryModuleIdx:
			v, n, err := consumeVarintField(data, typ, "module index")
			if err != nil {
				return entry, err
			}
			data = data[n:]
			entry.ModuleIdx = uint32(v)
		case fieldVerificationEntryErrorKind:
			v, n, err := consumeVarintField(data, typ, "error kind")
			if err != nil {
				return entry, err
			}
			data = data[n:]
			entry.ErrorKind = vmstatus.VerificationErrorCodeFromWire(v)
		case fieldVerificationEntryMessage:
			payload, n, err := consumeBytesField(data, typ, "message")
			if err != nil {
				return entry, err
			}
			data = data[n:]
			entry.Message = string(payload)
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return entry, fmt.Errorf("verification entry: malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return entry, nil
}

func consumeVarintField(data []byte, typ protowire.Type, what string) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("%s: unexpected wire type %d, want varint", what, typ)
	}
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return 0, 0, fmt.Errorf("%s: malformed varint: %w", what, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeBytesField(data []byte, typ protowire.Type, what string) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("%s: unexpected wire type %d, want bytes", what, typ)
	}
	payload, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, fmt.Errorf("%s: malformed length-delimited field: %w", what, protowire.ParseError(n))
	}
	return payload, n, nil
}

// unmarshalSingleVarint decodes a message that carries one varint field,
// skipping any unknown fields. A missing field defaults to zero, matching
// protobuf semantics for scalar fields.
func unmarshalSingleVarint(data []byte, field protowire.Number, what string) (uint64, error) {
	var value uint64
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, fmt.Errorf("%s: malformed tag: %w", what, protowire.ParseError(n))
		}
		data = data[n:]

		if num != field {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return 0, fmt.Errorf("%s: malformed field %d: %w", what, num, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}

		v, n, err := consumeVarintField(data, typ, what)
		if err != nil {
			return 0, err
		}
		data = data[n:]
		value = v
	}
	return value, nil
}
