package vmstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionStatusExactlyOneBranch(t *testing.T) {
	cases := []struct {
		name   string
		status ExecutionStatus
		kind   ExecutionStatusKind
	}{
		{"runtime", NewRuntimeStatus(RuntimeOutOfGas), ExecutionKindRuntime},
		{"assertion failure", NewAssertionFailure(42), ExecutionKindAssertionFailure},
		{"arithmetic error", NewArithmeticError(ArithmeticDivisionByZero), ExecutionKindArithmeticError},
		{"reference error", NewDynamicReferenceError(DynamicReferenceMissingRelease), ExecutionKindDynamicReferenceError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.status.CheckWellFormed())
			require.Equal(t, tc.kind, tc.status.Kind())

			populated := 0
			if _, ok := tc.status.Runtime(); ok {
				populated++
			}
			if _, ok := tc.status.AssertionCode(); ok {
				populated++
			}
			if _, ok := tc.status.Arithmetic(); ok {
				populated++
			}
			if _, ok := tc.status.Reference(); ok {
				populated++
			}
			require.Equal(t, 1, populated)
		})
	}

	t.Run("zero value is malformed", func(t *testing.T) {
		var status ExecutionStatus
		require.Error(t, status.CheckWellFormed())
	})
}

func TestExecutionStatusSuccess(t *testing.T) {
	// Success is the explicit Executed code; no other value qualifies.
	require.True(t, NewRuntimeStatus(RuntimeExecuted).Succeeded())
	require.False(t, NewRuntimeStatus(RuntimeOutOfGas).Succeeded())
	require.False(t, NewAssertionFailure(0).Succeeded())

	var unset ExecutionStatus
	require.False(t, unset.Succeeded())
}

func TestVMStatusExactlyOneBranch(t *testing.T) {
	cases := []struct {
		name   string
		status VMStatus
		kind   VMStatusKind
	}{
		{"validation", NewValidationStatus(ValidationInvalidSignature), VMStatusKindValidation},
		{"verification", NewVerificationStatus(VerificationStatusList{}), VMStatusKindVerification},
		{"invariant violation", NewInvariantViolationStatus(InvariantEmptyValueStack), VMStatusKindInvariantViolation},
		{"binary", NewBinaryStatus(BinaryUnknownVersion), VMStatusKindBinary},
		{"execution", NewExecutionStatusReport(NewRuntimeStatus(RuntimeExecuted)), VMStatusKindExecution},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.status.CheckWellFormed())
			require.Equal(t, tc.kind, tc.status.Kind())

			populated := 0
			if _, ok := tc.status.Validation(); ok {
				populated++
			}
			if _, ok := tc.status.Verification(); ok {
				populated++
			}
			if _, ok := tc.status.InvariantViolation(); ok {
				populated++
			}
			if _, ok := tc.status.Binary(); ok {
				populated++
			}
			if _, ok := tc.status.Execution(); ok {
				populated++
			}
			require.Equal(t, 1, populated)
		})
	}

	t.Run("zero value is malformed", func(t *testing.T) {
		var status VMStatus
		require.Error(t, status.CheckWellFormed())
	})

	t.Run("execution branch with unset execution status is malformed", func(t *testing.T) {
		status := NewExecutionStatusReport(ExecutionStatus{})
		require.Error(t, status.CheckWellFormed())
	})
}

func TestVMStatusSuccess(t *testing.T) {
	require.True(t, NewExecutionStatusReport(NewRuntimeStatus(RuntimeExecuted)).Succeeded())
	require.False(t, NewExecutionStatusReport(NewRuntimeStatus(RuntimeOutOfGas)).Succeeded())

	// An empty verification report means "verification found nothing",
	// which is not the execution success outcome.
	require.False(t, NewVerificationStatus(VerificationStatusList{}).Succeeded())
}

func TestVerificationStatusIsolatedFromCallerSlice(t *testing.T) {
	list := VerificationStatusList{
		{Kind: VerificationTargetModule, ModuleIdx: 1, ErrorKind: VerificationTypeMismatch},
	}
	status := NewVerificationStatus(list)

	list[0].ErrorKind = VerificationUnbalancedStack

	got, ok := status.Verification()
	require.True(t, ok)
	require.Equal(t, VerificationTypeMismatch, got[0].ErrorKind)
}

func TestVerificationStatusList(t *testing.T) {
	t.Run("empty list means a clean run", func(t *testing.T) {
		require.False(t, VerificationStatusList{}.Failed())
	})

	t.Run("duplicates are preserved", func(t *testing.T) {
		entry := VerificationEntry{
			Kind:      VerificationTargetModule,
			ModuleIdx: 3,
			ErrorKind: VerificationDuplicateElement,
		}
		list := VerificationStatusList{entry, entry}
		require.True(t, list.Failed())
		require.Len(t, list, 2)
		require.Equal(t, list[0], list[1])
	})
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, "Validation(InvalidSignature)", NewValidationStatus(ValidationInvalidSignature).String())
	assert.Equal(t, "Binary(BadMagic)", NewBinaryStatus(BinaryBadMagic).String())
	assert.Equal(t, "Execution(RuntimeStatus(Executed))", NewExecutionStatusReport(NewRuntimeStatus(RuntimeExecuted)).String())
	assert.Equal(t, "Verification(2 findings)", NewVerificationStatus(VerificationStatusList{{}, {}}).String())
	assert.Equal(t, "VMStatus(unset)", VMStatus{}.String())
}
