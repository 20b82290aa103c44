package types

// Outcome reports what a bootstrap run did to the destination.
type Outcome string

// Bootstrap outcomes.
const (
	// OutcomeCreated means the file was absent and is now present.
	OutcomeCreated Outcome = "created"
	// OutcomeNoOp means a file already existed and was left untouched.
	OutcomeNoOp Outcome = "noop"
)

// BootstrapResult describes a completed bootstrap run.
type BootstrapResult struct {
	Outcome  Outcome `json:"outcome"`
	Path     string  `json:"path"`
	Snapshot string  `json:"snapshot"`
	RunID    string  `json:"run_id"`
}

// Created reports whether the run created the database file.
func (r BootstrapResult) Created() bool {
	return r.Outcome == OutcomeCreated
}
