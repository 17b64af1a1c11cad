// Package steps resolves declarative configuration plus command-line input
// into a concrete, ordered list of executable steps. The resolver never
// fails fast: every invalid entry is individually counted and reported
// while valid entries still produce a usable result.
package steps

import (
	"context"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// Step is one executable unit of the setup. A step has a stable name,
// independent of the type implementing it, and is constructed from the
// shared run context.
type Step interface {
	// Name returns the stable step name. It must equal the name the step
	// was registered and selected under.
	Name() string

	// Run performs the step's work.
	Run(ctx context.Context, rc *RunContext) error
}

// RunContext is the shared locator steps are constructed from and run with.
type RunContext struct {
	// Root is the project root directory.
	Root   string
	Config *config.Config
	FS     ports.FileSystem
	Runner ports.CommandRunner
	Logger ports.Logger
}

// Factory constructs a step from the shared run context.
type Factory func(rc *RunContext) (Step, error)

// Registration ties a step kind to its factory. RunsLast marks the
// distinguished kind that is deferred to the end of the resolved list; it
// is a registry flag so the resolver never has to know concrete step types.
type Registration struct {
	Factory  Factory
	RunsLast bool
}
