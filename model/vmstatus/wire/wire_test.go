package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/quillvm/quill-go/model/vmstatus"
	"github.com/quillvm/quill-go/utils/unittest"
)

func TestVMStatusRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		status vmstatus.VMStatus
	}{
		{"validation", unittest.ValidationStatusFixture()},
		{"verification", unittest.VerificationStatusFixture()},
		{"empty verification", unittest.EmptyVerificationStatusFixture()},
		{"invariant violation", unittest.InvariantViolationStatusFixture()},
		{"binary", unittest.BinaryStatusFixture()},
		{"execution", unittest.OutOfGasStatusFixture()},
		{"execution success", unittest.ExecutedStatusFixture()},
		{
			"assertion failure",
			vmstatus.NewExecutionStatusReport(vmstatus.NewAssertionFailure(77)),
		},
		{
			"assertion failure with zero code",
			vmstatus.NewExecutionStatusReport(vmstatus.NewAssertionFailure(0)),
		},
		{
			"arithmetic error",
			vmstatus.NewExecutionStatusReport(
				vmstatus.NewArithmeticError(vmstatus.ArithmeticDivisionByZero)),
		},
		{
			"reference error",
			vmstatus.NewExecutionStatusReport(
				vmstatus.NewDynamicReferenceError(vmstatus.DynamicReferenceGlobalAlreadyBorrowed)),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := MarshalVMStatus(tc.status)
			require.NoError(t, err)

			decoded, err := UnmarshalVMStatus(data)
			require.NoError(t, err)
			require.Equal(t, tc.status, decoded)
			require.NoError(t, decoded.CheckWellFormed())
		})
	}
}

// The sentinel branch choice must survive encoding even though its payload
// varint is zero.
func TestVMStatusBranchSurvivesZeroPayload(t *testing.T) {
	status := vmstatus.NewValidationStatus(vmstatus.ValidationUnknown)

	data, err := MarshalVMStatus(status)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalVMStatus(data)
	require.NoError(t, err)
	require.Equal(t, vmstatus.VMStatusKindValidation, decoded.Kind())
}

func TestVMStatusMalformedOneof(t *testing.T) {
	t.Run("zero branches", func(t *testing.T) {
		_, err := UnmarshalVMStatus(nil)
		require.ErrorIs(t, err, ErrNoBranch)

		// A blob holding only unknown fields still has no branch.
		var data []byte
		data = protowire.AppendTag(data, 99, protowire.VarintType)
		data = protowire.AppendVarint(data, 7)
		_, err = UnmarshalVMStatus(data)
		require.ErrorIs(t, err, ErrNoBranch)
	})

	t.Run("two distinct branches", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, fieldVMStatusValidation, protowire.VarintType)
		data = protowire.AppendVarint(data, uint64(vmstatus.ValidationInvalidSignature))
		data = protowire.AppendTag(data, fieldVMStatusBinary, protowire.VarintType)
		data = protowire.AppendVarint(data, uint64(vmstatus.BinaryBadMagic))

		_, err := UnmarshalVMStatus(data)
		require.ErrorIs(t, err, ErrMultipleBranches)
	})

	t.Run("same branch repeated is last-one-wins", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, fieldVMStatusValidation, protowire.VarintType)
		data = protowire.AppendVarint(data, uint64(vmstatus.ValidationInvalidSignature))
		data = protowire.AppendTag(data, fieldVMStatusValidation, protowire.VarintType)
		data = protowire.AppendVarint(data, uint64(vmstatus.ValidationTransactionExpired))

		decoded, err := UnmarshalVMStatus(data)
		require.NoError(t, err)
		code, ok := decoded.Validation()
		require.True(t, ok)
		require.Equal(t, vmstatus.ValidationTransactionExpired, code)
	})

	t.Run("execution branch with empty payload", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, fieldVMStatusExecution, protowire.BytesType)
		data = protowire.AppendBytes(data, nil)

		_, err := UnmarshalVMStatus(data)
		require.ErrorIs(t, err, ErrNoBranch)
	})

	t.Run("wrong wire type for a branch field", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, fieldVMStatusValidation, protowire.BytesType)
		data = protowire.AppendBytes(data, []byte{0x01})

		_, err := UnmarshalVMStatus(data)
		require.Error(t, err)
	})

	t.Run("cannot encode the zero value", func(t *testing.T) {
		_, err := MarshalVMStatus(vmstatus.VMStatus{})
		require.Error(t, err)
	})
}

func TestVMStatusForwardCompatibility(t *testing.T) {
	t.Run("registry id above highest known decodes to sentinel", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, fieldVMStatusValidation, protowire.VarintType)
		data = protowire.AppendVarint(data, 50_000)

		decoded, err := UnmarshalVMStatus(data)
		require.NoError(t, err)
		code, ok := decoded.Validation()
		require.True(t, ok)
		require.Equal(t, vmstatus.ValidationUnknown, code)
	})

	t.Run("unknown fields alongside a branch are skipped", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, fieldVMStatusBinary, protowire.VarintType)
		data = protowire.AppendVarint(data, uint64(vmstatus.BinaryUnknownOpcode))
		data = protowire.AppendTag(data, 12, protowire.BytesType)
		data = protowire.AppendBytes(data, []byte("future payload"))
		data = protowire.AppendTag(data, 13, protowire.Fixed32Type)
		data = protowire.AppendFixed32(data, 0xabcd)

		decoded, err := UnmarshalVMStatus(data)
		require.NoError(t, err)
		code, ok := decoded.Binary()
		require.True(t, ok)
		require.Equal(t, vmstatus.BinaryUnknownOpcode, code)
	})
}

func TestExecutionStatusOneof(t *testing.T) {
	t.Run("zero branches", func(t *testing.T) {
		_, err := UnmarshalExecutionStatus(nil)
		require.ErrorIs(t, err, ErrNoBranch)
	})

	t.Run("two distinct branches", func(t *testing.T) {
		var data []byte
		data = protowire.AppendTag(data, fieldExecutionRuntime, protowire.VarintType)
		data = protowire.AppendVarint(data, uint64(vmstatus.RuntimeExecuted))

		var inner []byte
		inner = protowire.AppendTag(inner, fieldAssertionCode, protowire.VarintType)
		inner = protowire.AppendVarint(inner, 9)
		data = protowire.AppendTag(data, fieldExecutionAssertion, protowire.BytesType)
		data = protowire.AppendBytes(data, inner)

		_, err := UnmarshalExecutionStatus(data)
		require.ErrorIs(t, err, ErrMultipleBranches)
	})

	t.Run("unknown sub-kind clamps to sentinel", func(t *testing.T) {
		var inner []byte
		inner = protowire.AppendTag(inner, fieldArithKind, protowire.VarintType)
		inner = protowire.AppendVarint(inner, 500)

		var data []byte
		data = protowire.AppendTag(data, fieldExecutionArith, protowire.BytesType)
		data = protowire.AppendBytes(data, inner)

		decoded, err := UnmarshalExecutionStatus(data)
		require.NoError(t, err)
		kind, ok := decoded.Arithmetic()
		require.True(t, ok)
		require.Equal(t, vmstatus.ArithmeticUnknown, kind)
	})
}

func TestVerificationListSemantics(t *testing.T) {
	t.Run("empty list is distinct from absent branch", func(t *testing.T) {
		data, err := MarshalVMStatus(unittest.EmptyVerificationStatusFixture())
		require.NoError(t, err)
		// The branch tag is on the wire even though the list is empty.
		require.NotEmpty(t, data)

		decoded, err := UnmarshalVMStatus(data)
		require.NoError(t, err)
		list, ok := decoded.Verification()
		require.True(t, ok)
		require.Empty(t, list)

		// Another branch does not grow a verification list.
		other, err := UnmarshalVMStatus(mustMarshal(t, unittest.BinaryStatusFixture()))
		require.NoError(t, err)
		_, ok = other.Verification()
		require.False(t, ok)
	})

	t.Run("order and duplicates are preserved", func(t *testing.T) {
		list := vmstatus.VerificationStatusList{
			unittest.ModuleVerificationEntryFixture(5, vmstatus.VerificationLookupFailed),
			unittest.ModuleVerificationEntryFixture(1, vmstatus.VerificationTypeMismatch),
			unittest.ModuleVerificationEntryFixture(5, vmstatus.VerificationLookupFailed),
		}

		decoded, err := UnmarshalVerificationList(MarshalVerificationList(list))
		require.NoError(t, err)
		require.Equal(t, list, decoded)
	})
}

// Scenario: the executor runs out of gas.
func TestOutOfGasReport(t *testing.T) {
	decoded, err := UnmarshalVMStatus(mustMarshal(t, unittest.OutOfGasStatusFixture()))
	require.NoError(t, err)

	execution, ok := decoded.Execution()
	require.True(t, ok)
	code, ok := execution.Runtime()
	require.True(t, ok)
	require.Equal(t, vmstatus.RuntimeOutOfGas, code)
}

// Scenario: the verifier reports two module findings in discovery order.
func TestVerifierReportOrder(t *testing.T) {
	status := vmstatus.NewVerificationStatus(vmstatus.VerificationStatusList{
		unittest.ModuleVerificationEntryFixture(0, vmstatus.VerificationTypeMismatch),
		unittest.ModuleVerificationEntryFixture(2, vmstatus.VerificationIndexOutOfBounds),
	})

	decoded, err := UnmarshalVMStatus(mustMarshal(t, status))
	require.NoError(t, err)

	list, ok := decoded.Verification()
	require.True(t, ok)
	require.Len(t, list, 2)
	require.Equal(t, vmstatus.VerificationTypeMismatch, list[0].ErrorKind)
	require.Equal(t, uint32(0), list[0].ModuleIdx)
	require.Equal(t, vmstatus.VerificationIndexOutOfBounds, list[1].ErrorKind)
	require.Equal(t, uint32(2), list[1].ModuleIdx)
}

// Scenario: a script finding's module index is meaningless but still
// round-trips unchanged.
func TestScriptFindingKeepsRawModuleIdx(t *testing.T) {
	entry := unittest.ScriptVerificationEntryFixture()
	entry.ModuleIdx = 7777

	decoded, err := UnmarshalVerificationList(
		MarshalVerificationList(vmstatus.VerificationStatusList{entry}))
	require.NoError(t, err)
	require.Equal(t, uint32(7777), decoded[0].ModuleIdx)
	require.Equal(t, vmstatus.VerificationTargetScript, decoded[0].Kind)
}

// Scenario: a successful transaction reports Executed, never "no status".
func TestSuccessIsExplicit(t *testing.T) {
	decoded, err := UnmarshalVMStatus(mustMarshal(t, unittest.ExecutedStatusFixture()))
	require.NoError(t, err)
	require.True(t, decoded.Succeeded())

	execution, ok := decoded.Execution()
	require.True(t, ok)
	code, ok := execution.Runtime()
	require.True(t, ok)
	require.Equal(t, vmstatus.RuntimeExecuted, code)
}

func mustMarshal(t *testing.T, status vmstatus.VMStatus) []byte {
	t.Helper()
	data, err := MarshalVMStatus(status)
	require.NoError(t, err)
	return data
}
