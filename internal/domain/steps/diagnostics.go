package steps

import "github.com/google/uuid"

// Diagnostics accumulates what went wrong during one resolution run. A
// fresh value is created at the start of every run; nothing is shared
// across runs.
type Diagnostics struct {
	// RunID identifies one resolution run in log output.
	RunID string

	// InputErrors counts problems traceable to command-line-supplied names:
	// skip or selection requests that matched nothing.
	InputErrors int

	// ConfigErrors counts problems traceable to configuration content:
	// skip-list entries matching nothing, universe entries that resolve to
	// nothing executable, and instantiation failures.
	ConfigErrors int

	// EmptyOptOut records that opt-out mode was invoked with zero names.
	EmptyOptOut bool

	// IgnoredByConfig counts command-line names dropped solely because the
	// configuration's skip list also named them.
	IgnoredByConfig int
}

// newDiagnostics creates the per-run accumulator.
func newDiagnostics() *Diagnostics {
	return &Diagnostics{RunID: uuid.NewString()}
}

// clean reports whether the run finished without anything to report.
func (d *Diagnostics) clean() bool {
	return d.InputErrors == 0 && d.ConfigErrors == 0 && !d.EmptyOptOut
}
