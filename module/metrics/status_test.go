package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quillvm/quill-go/model/vmstatus"
	"github.com/quillvm/quill-go/utils/unittest"
)

func TestStatusCollector(t *testing.T) {
	collector := NewStatusCollector(zerolog.Nop(), prometheus.NewRegistry())

	collector.StatusReported(unittest.ExecutedStatusFixture())
	collector.StatusReported(unittest.ExecutedStatusFixture())
	collector.StatusReported(unittest.OutOfGasStatusFixture())
	collector.StatusReported(unittest.BinaryStatusFixture())
	collector.StatusReported(unittest.InvariantViolationStatusFixture())
	collector.StatusReported(unittest.VerificationStatusFixture())
	collector.StatusReported(unittest.EmptyVerificationStatusFixture())

	require.Equal(t, float64(2),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Execution", "Executed")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Execution", "OutOfGas")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Binary", "BadMagic")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("InvariantViolation", "PCOverflow")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Verification", "TypeMismatch")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Verification", "Clean")))

	require.Equal(t, float64(2), testutil.ToFloat64(collector.verifyFindings))
	require.Equal(t, float64(1), testutil.ToFloat64(collector.invariantsTotal))
}

func TestStatusCollectorExecutionLabels(t *testing.T) {
	collector := NewStatusCollector(zerolog.Nop(), prometheus.NewRegistry())

	collector.StatusReported(vmstatus.NewExecutionStatusReport(vmstatus.NewAssertionFailure(7)))
	collector.StatusReported(vmstatus.NewExecutionStatusReport(
		vmstatus.NewArithmeticError(vmstatus.ArithmeticDivisionByZero)))
	collector.StatusReported(vmstatus.NewExecutionStatusReport(
		vmstatus.NewDynamicReferenceError(vmstatus.DynamicReferenceMoveOfBorrowedResource)))

	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Execution", "AssertionFailure")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Execution", "DivisionByZero")))
	require.Equal(t, float64(1),
		testutil.ToFloat64(collector.statusReported.WithLabelValues("Execution", "MoveOfBorrowedResource")))
}
