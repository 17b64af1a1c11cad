package steps

import (
	"fmt"
	"strings"
)

// Resolution is the outcome of one Resolve call: the ordered, instantiated
// steps plus the run's diagnostics and their user-facing summary.
type Resolution struct {
	steps []Step
	diag  *Diagnostics
}

// Steps returns the resolved steps in execution order.
func (r *Resolution) Steps() []Step {
	return r.steps
}

// Diagnostics returns the per-run error accounting.
func (r *Resolution) Diagnostics() Diagnostics {
	return *r.diag
}

// Message returns the advisory summary of everything that went wrong, or ""
// when the run was clean. The caller prints it and continues with whatever
// resolved.
func (r *Resolution) Message() string {
	return composeMessage(r.diag, false)
}

// FatalMessage returns the summary variant for callers that are about to
// abort because the resolution is unusable.
func (r *Resolution) FatalMessage() string {
	return composeMessage(r.diag, true)
}

// composeMessage renders the diagnostic summary. The clauses have a strict
// priority: names ignored through the configuration skip list preempt
// everything, a clean run is silent, and the empty-opt-out condition
// short-circuits before configuration errors are mentioned.
func composeMessage(d *Diagnostics, fatal bool) string {
	if d.IgnoredByConfig > 0 {
		if d.IgnoredByConfig == 1 {
			return `One given step name will be ignored: the "skip-steps" configuration disables it.` +
				" Use the ignore-skip-config flag to select it anyway."
		}
		return fmt.Sprintf(
			`%d given step names will be ignored: the "skip-steps" configuration disables them.`+
				" Use the ignore-skip-config flag to select them anyway.", d.IgnoredByConfig)
	}

	if d.clean() {
		return ""
	}

	var parts []string
	if fatal {
		parts = append(parts, "No valid step to run found.")
	}

	if d.InputErrors > 0 {
		clause := countPhrase(d.InputErrors, "invalid step name was", "invalid step names were") +
			" provided via command input"
		if !fatal {
			clause += " and will be ignored"
		}
		parts = append(parts, clause+".")
	}

	if d.EmptyOptOut {
		parts = append(parts, "Command input was expecting one or more step names.")
		return strings.Join(parts, " ")
	}

	if d.ConfigErrors > 0 {
		clause := countPhrase(d.ConfigErrors, "invalid step setting was", "invalid step settings were") +
			" found in configuration"
		if d.InputErrors > 0 {
			clause = "Also, " + lowerFirst(clause)
		}
		if !fatal {
			clause += " and will be ignored as well"
		}
		parts = append(parts, clause+".")
	}

	return strings.Join(parts, " ")
}

func countPhrase(n int, singular, plural string) string {
	if n == 1 {
		return "One " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
