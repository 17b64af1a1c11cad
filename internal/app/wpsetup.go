// Package app provides the main application logic for wpsetup.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/felixgeelhaar/wpsetup/internal/adapters/command"
	"github.com/felixgeelhaar/wpsetup/internal/adapters/filesystem"
	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/domain/validate"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
	"github.com/felixgeelhaar/wpsetup/internal/ui"
	"github.com/felixgeelhaar/wpsetup/internal/wpstep"
)

// WpSetup is the main application orchestrator: it loads configuration,
// resolves the step list and runs it against the project.
type WpSetup struct {
	fs     ports.FileSystem
	runner ports.CommandRunner
	logger ports.Logger
	out    io.Writer
	styles ui.Styles
}

// New creates a new WpSetup application backed by the real file system and
// command runner.
func New(out io.Writer, logger ports.Logger) *WpSetup {
	return &WpSetup{
		fs:     filesystem.NewOSFileSystem(),
		runner: command.NewExecRunner(),
		logger: logger,
		out:    out,
		styles: ui.DefaultStyles(),
	}
}

// WithFileSystem swaps the file system, for tests.
func (w *WpSetup) WithFileSystem(fs ports.FileSystem) *WpSetup {
	w.fs = fs
	return w
}

// WithRunner swaps the command runner, for tests.
func (w *WpSetup) WithRunner(runner ports.CommandRunner) *WpSetup {
	w.runner = runner
	return w
}

// Resolve loads configuration and resolves the step list for the project
// at root. configPath overrides configuration file discovery when set.
// Resolution problems do not surface as errors here; they live in the
// returned Resolution's diagnostics.
func (w *WpSetup) Resolve(
	ctx context.Context,
	root, configPath string,
	flags steps.Flags,
	names ...string,
) (*steps.Resolution, *steps.RunContext, error) {
	raw, err := w.loadConfig(root, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	rc := &steps.RunContext{
		Root:   root,
		Config: config.New(raw, validate.NewValidator(w.fs, root)),
		FS:     w.fs,
		Runner: w.runner,
		Logger: w.logger,
	}

	selector := steps.NewSelector(wpstep.DefaultSteps(), wpstep.Kinds(), w.logger)
	return selector.Resolve(ctx, rc, flags, names...), rc, nil
}

func (w *WpSetup) loadConfig(root, configPath string) (map[string]any, error) {
	loader := config.NewLoader(w.fs)
	if configPath != "" {
		return loader.LoadFile(configPath)
	}
	return loader.Load(root)
}

// Run executes the resolved steps in order. A failing step does not stop
// the ones after it; all failures come back joined.
func (w *WpSetup) Run(ctx context.Context, resolution *steps.Resolution, rc *steps.RunContext) error {
	var failures []error
	for _, step := range resolution.Steps() {
		w.printf("  %s %s\n", w.styles.Muted.Render("→"), step.Name())
		if err := step.Run(ctx, rc); err != nil {
			failures = append(failures, fmt.Errorf("step %s: %w", step.Name(), err))
			w.printf("  %s %s: %v\n", w.styles.Error.Render("✗"), step.Name(), err)
			continue
		}
		w.printf("  %s %s\n", w.styles.Success.Render("✓"), step.Name())
	}
	return errors.Join(failures...)
}

// PrintPlan outputs a human-readable summary of the resolution.
func (w *WpSetup) PrintPlan(resolution *steps.Resolution) {
	w.printf("\n%s\n\n", w.styles.Title.Render("wpsetup Plan"))

	resolved := resolution.Steps()
	if len(resolved) == 0 {
		w.printf("%s\n", w.styles.Warning.Render("No step to run."))
	} else {
		w.printf("Steps: %d to run\n\n", len(resolved))
		for _, step := range resolved {
			w.printf("  + %s\n", step.Name())
		}
	}

	if message := resolution.Message(); message != "" {
		w.printf("\n%s\n", w.styles.Warning.Render(message))
	}
}

func (w *WpSetup) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}
