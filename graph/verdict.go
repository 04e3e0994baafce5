package graph

import "fmt"

// VerdictKind is the tag of a validation verdict.
type VerdictKind int

const (
	// VerdictValid allows the run to proceed.
	VerdictValid VerdictKind = iota

	// VerdictNeedsClarification halts the run and returns a question to the
	// caller. A subsequent call with augmented input starts a fresh run.
	VerdictNeedsClarification

	// VerdictInvalid rejects the run.
	VerdictInvalid
)

// String returns the string representation of VerdictKind.
func (k VerdictKind) String() string {
	switch k {
	case VerdictValid:
		return "valid"
	case VerdictNeedsClarification:
		return "needs_clarification"
	case VerdictInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Verdict is the parsed output of a validation gate. It is produced once per
// run and consumed by the executor to choose the next transition; the gate
// never self-transitions more than once.
type Verdict struct {
	Kind VerdictKind

	// Fields holds extracted request details when Kind is VerdictValid.
	Fields map[string]string

	// Missing names the absent details when Kind is VerdictNeedsClarification.
	Missing []string

	// Question is the clarification question for the caller when Kind is
	// VerdictNeedsClarification.
	Question string

	// Reason explains rejection when Kind is VerdictInvalid.
	Reason string
}
