// Package metrics provides consumer-side instrumentation for VM status
// values.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/quillvm/quill-go/model/vmstatus"
)

const (
	namespaceQuill = "quill"
	subsystemVM    = "vm"
)

// StatusCollector counts reported VM statuses by branch and code.
// Invariant violations additionally get logged at error level with full
// context: they indicate a bug in the VM, fatal to the operation but never
// to the process.
type StatusCollector struct {
	log             zerolog.Logger
	statusReported  *prometheus.CounterVec
	verifyFindings  prometheus.Counter
	invariantsTotal prometheus.Counter
}

// NewStatusCollector registers the status metrics with registerer and
// returns the collector.
func NewStatusCollector(log zerolog.Logger, registerer prometheus.Registerer) *StatusCollector {
	factory := promauto.With(registerer)
	return &StatusCollector{
		log: log,
		statusReported: factory.NewCounterVec(prometheus.CounterOpts{
			Name:      "status_reported_total",
			Namespace: namespaceQuill,
			Subsystem: subsystemVM,
			Help:      "number of terminal VM statuses reported, by branch and code",
		}, []string{"branch", "code"}),
		verifyFindings: factory.NewCounter(prometheus.CounterOpts{
			Name:      "verification_findings_total",
			Namespace: namespaceQuill,
			Subsystem: subsystemVM,
			Help:      "number of bytecode verification findings across all reports",
		}),
		invariantsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:      "invariant_violations_total",
			Namespace: namespaceQuill,
			Subsystem: subsystemVM,
			Help:      "number of internal invariant violations reported by the VM",
		}),
	}
}

// StatusReported records one terminal status.
func (c *StatusCollector) StatusReported(status vmstatus.VMStatus) {
	branch := status.Kind().String()

	switch status.Kind() {
	case vmstatus.VMStatusKindValidation:
		code, _ := status.Validation()
		c.statusReported.WithLabelValues(branch, code.String()).Inc()

	case vmstatus.VMStatusKindVerification:
		list, _ := status.Verification()
		for _, entry := range list {
			c.statusReported.WithLabelValues(branch, entry.ErrorKind.String()).Inc()
		}
		c.verifyFindings.Add(float64(len(list)))
		if !list.Failed() {
			c.statusReported.WithLabelValues(branch, "Clean").Inc()
		}

	case vmstatus.VMStatusKindInvariantViolation:
		code, _ := status.InvariantViolation()
		c.statusReported.WithLabelValues(branch, code.String()).Inc()
		c.invariantsTotal.Inc()
		c.log.Error().
			Str("code", code.String()).
			Str("status", status.String()).
			Msg("vm reported an invariant violation")

	case vmstatus.VMStatusKindBinary:
		code, _ := status.Binary()
		c.statusReported.WithLabelValues(branch, code.String()).Inc()

	case vmstatus.VMStatusKindExecution:
		execution, _ := status.Execution()
		c.statusReported.WithLabelValues(branch, executionCodeLabel(execution)).Inc()

	default:
		// A malformed status should have been rejected at decode time.
		c.log.Error().Msg("status collector received a branchless vm status")
	}
}

func executionCodeLabel(s vmstatus.ExecutionStatus) string {
	switch s.Kind() {
	case vmstatus.ExecutionKindRuntime:
		code, _ := s.Runtime()
		return code.String()
	case vmstatus.ExecutionKindAssertionFailure:
		return "AssertionFailure"
	case vmstatus.ExecutionKindArithmeticError:
		kind, _ := s.Arithmetic()
		return kind.String()
	case vmstatus.ExecutionKindDynamicReferenceError:
		kind, _ := s.Reference()
		return kind.String()
	default:
		return "Unset"
	}
}
