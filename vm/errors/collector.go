package errors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/quillvm/quill-go/model/vmstatus"
)

// VerificationFinding is one bytecode verification fault, coded against the
// verification registry and locatable as a script or module finding.
type VerificationFinding struct {
	entry vmstatus.VerificationEntry
}

func (f VerificationFinding) Error() string {
	return f.entry.String()
}

// Entry returns the finding as a verification list entry.
func (f VerificationFinding) Entry() vmstatus.VerificationEntry {
	return f.entry
}

// NewScriptFinding reports a fault in the transaction script.
func NewScriptFinding(kind vmstatus.VerificationErrorCode, msg string) VerificationFinding {
	return VerificationFinding{
		entry: vmstatus.VerificationEntry{
			Kind:      vmstatus.VerificationTargetScript,
			ErrorKind: kind,
			Message:   msg,
		},
	}
}

// NewModuleFinding reports a fault in the published module at moduleIdx
// (module-handle order).
func NewModuleFinding(kind vmstatus.VerificationErrorCode, moduleIdx uint32, msg string) VerificationFinding {
	return VerificationFinding{
		entry: vmstatus.VerificationEntry{
			Kind:      vmstatus.VerificationTargetModule,
			ModuleIdx: moduleIdx,
			ErrorKind: kind,
			Message:   msg,
		},
	}
}

// FindingsCollector accumulates verification findings for one run, in
// discovery order: the verifier walks module handles in order and the code
// in each module in instruction order, and the collector keeps exactly that
// sequence. Duplicates are kept; they are independent faults at the same
// location. The zero value is ready to use. Not safe for concurrent use;
// one collector serves one verification run.
type FindingsCollector struct {
	findings vmstatus.VerificationStatusList
	errs     *multierror.Error
}

// Collect appends a finding.
func (c *FindingsCollector) Collect(f VerificationFinding) {
	c.findings = append(c.findings, f.Entry())
	c.errs = multierror.Append(c.errs, f)
}

// HasFindings reports whether the run found anything so far.
func (c *FindingsCollector) HasFindings() bool {
	return len(c.findings) > 0
}

// ErrorOrNil aggregates the findings into one error, or nil for a clean
// run.
func (c *FindingsCollector) ErrorOrNil() error {
	return c.errs.ErrorOrNil()
}

// Status returns the verification report for the run. An empty list is a
// valid report: verification ran and found nothing.
func (c *FindingsCollector) Status() vmstatus.VMStatus {
	return vmstatus.NewVerificationStatus(c.findings)
}

// StatusList returns a copy of the findings in discovery order.
func (c *FindingsCollector) StatusList() vmstatus.VerificationStatusList {
	out := make(vmstatus.VerificationStatusList, len(c.findings))
	copy(out, c.findings)
	return out
}

// CheckNoFindings returns an error naming the finding count if the run was
// not clean, for callers that require a clean run to proceed.
func (c *FindingsCollector) CheckNoFindings() error {
	if len(c.findings) == 0 {
		return nil
	}
	return fmt.Errorf("verification produced %d findings: %w", len(c.findings), c.ErrorOrNil())
}
