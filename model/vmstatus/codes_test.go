package vmstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySentinels(t *testing.T) {
	// Value 0 is the reserved Unknown sentinel in every registry.
	require.Equal(t, ValidationStatusCode(0), ValidationUnknown)
	require.Equal(t, VerificationErrorCode(0), VerificationUnknown)
	require.Equal(t, InvariantViolationCode(0), InvariantViolationUnknown)
	require.Equal(t, BinaryErrorCode(0), BinaryUnknown)
	require.Equal(t, RuntimeStatusCode(0), RuntimeUnknown)

	// Success is an explicit positive code, never the sentinel.
	require.NotEqual(t, RuntimeUnknown, RuntimeExecuted)
}

func TestRegistryForwardCompatibility(t *testing.T) {
	t.Run("ids above the highest known code clamp to Unknown", func(t *testing.T) {
		require.Equal(t, ValidationUnknown, ValidationStatusCodeFromWire(uint64(maxValidationStatusCode)+1))
		require.Equal(t, VerificationUnknown, VerificationErrorCodeFromWire(uint64(maxVerificationErrorCode)+1))
		require.Equal(t, InvariantViolationUnknown, InvariantViolationCodeFromWire(uint64(maxInvariantViolationCode)+1))
		require.Equal(t, BinaryUnknown, BinaryErrorCodeFromWire(uint64(maxBinaryErrorCode)+1))
		require.Equal(t, RuntimeUnknown, RuntimeStatusCodeFromWire(uint64(maxRuntimeStatusCode)+1))

		require.Equal(t, ValidationUnknown, ValidationStatusCodeFromWire(1<<40))
	})

	t.Run("known ids map to themselves", func(t *testing.T) {
		require.Equal(t, ValidationTransactionExpired, ValidationStatusCodeFromWire(uint64(ValidationTransactionExpired)))
		require.Equal(t, RuntimeExecuted, RuntimeStatusCodeFromWire(uint64(RuntimeExecuted)))
		require.Equal(t, BinaryDuplicateTable, BinaryErrorCodeFromWire(uint64(BinaryDuplicateTable)))
	})
}

func TestRegistryStrings(t *testing.T) {
	assert.Equal(t, "UnknownValidationStatus", ValidationUnknown.String())
	assert.Equal(t, "InvalidSignature", ValidationInvalidSignature.String())
	assert.Equal(t, "GasUnitPriceAboveMaxBound", ValidationGasUnitPriceAboveMaxBound.String())

	assert.Equal(t, "TypeMismatch", VerificationTypeMismatch.String())
	assert.Equal(t, "ModuleAddressDoesNotMatchSender", VerificationModuleAddressDoesNotMatchSender.String())

	assert.Equal(t, "PCOverflow", InvariantPCOverflow.String())
	assert.Equal(t, "StorageError", InvariantStorageError.String())

	assert.Equal(t, "BadMagic", BinaryBadMagic.String())
	assert.Equal(t, "DuplicateTable", BinaryDuplicateTable.String())

	assert.Equal(t, "Executed", RuntimeExecuted.String())
	assert.Equal(t, "OutOfGas", RuntimeOutOfGas.String())
	assert.Equal(t, "DuplicateModuleName", RuntimeDuplicateModuleName.String())

	// Out-of-range values render as the sentinel instead of panicking.
	assert.Equal(t, "UnknownRuntimeStatus", RuntimeStatusCode(9999).String())
}

func TestRegistryStringTablesCoverAllCodes(t *testing.T) {
	require.Len(t, validationStatusStrings, int(maxValidationStatusCode)+1)
	require.Len(t, verificationErrorStrings, int(maxVerificationErrorCode)+1)
	require.Len(t, invariantViolationStrings, int(maxInvariantViolationCode)+1)
	require.Len(t, binaryErrorStrings, int(maxBinaryErrorCode)+1)
	require.Len(t, runtimeStatusStrings, int(maxRuntimeStatusCode)+1)
}
