package domain

// CaseFailure represents a failed case as persisted for the failures viewer
type CaseFailure struct {
	Label     string `json:"label"`
	Input     string `json:"input"`
	Expected  string `json:"expected"`
	Candidate string `json:"candidate"`
	Found     bool   `json:"found"`
	Kind      Kind   `json:"kind"`
	Error     string `json:"error,omitempty"`
	Resolved  bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// NewCaseFailure converts a failed CaseResult into its persisted form
func NewCaseFailure(r CaseResult) CaseFailure {
	f := CaseFailure{
		Label:     r.Label,
		Input:     r.Input,
		Expected:  r.Expected,
		Candidate: r.Candidate,
		Found:     r.Found,
		Kind:      r.Kind,
	}
	if r.Err != nil {
		f.Error = r.Err.Error()
	}
	return f
}
