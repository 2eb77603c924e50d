package vmstatus

import (
	"fmt"
)

// VerificationTargetKind says whether a verification finding is about the
// transaction script or one of the published modules.
type VerificationTargetKind uint32

const (
	// VerificationTargetScript marks a finding in the transaction script.
	VerificationTargetScript VerificationTargetKind = iota
	// VerificationTargetModule marks a finding in a published module.
	VerificationTargetModule
)

// String returns the target kind name.
func (k VerificationTargetKind) String() string {
	switch k {
	case VerificationTargetScript:
		return "Script"
	case VerificationTargetModule:
		return "Module"
	default:
		return fmt.Sprintf("VerificationTargetKind(%d)", uint32(k))
	}
}

// VerificationEntry is one bytecode verification finding.
//
// ModuleIdx identifies the offending module (in module-handle order) when
// Kind is VerificationTargetModule. For script findings the field carries no
// meaning: it round-trips unchanged but consumers must not branch on it.
type VerificationEntry struct {
	Kind      VerificationTargetKind
	ModuleIdx uint32
	ErrorKind VerificationErrorCode
	// Message is an optional diagnostic for humans. It carries no
	// semantics and no stability guarantee.
	Message string
}

// String renders the entry for logs.
func (e VerificationEntry) String() string {
	var location string
	switch e.Kind {
	case VerificationTargetScript:
		location = "script"
	case VerificationTargetModule:
		location = fmt.Sprintf("module %d", e.ModuleIdx)
	default:
		location = e.Kind.String()
	}
	if e.Message != "" {
		return fmt.Sprintf("%s in %s: %s", e.ErrorKind, location, e.Message)
	}
	return fmt.Sprintf("%s in %s", e.ErrorKind, location)
}

// VerificationStatusList is the ordered list of findings from one
// verification run, in discovery order: module-handle order first, then
// in-module instruction order. The order is preserved through
// serialization; duplicates are legal and represent independent faults at
// the same location. An empty list means verification ran and found
// nothing, which is distinct from a status that is not about verification
// at all.
type VerificationStatusList []VerificationEntry

// Failed reports whether the run produced any finding.
func (l VerificationStatusList) Failed() bool {
	return len(l) > 0
}
