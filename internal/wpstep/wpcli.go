package wpstep

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/domain/validate"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// WpCli executes the configured WP-CLI files and commands through the
// command runner, files first. Forcing the wp-cli-commands outcome here is
// what finally reads a file-backed command list. The step runs last by
// registration so every other step has prepared the install it acts on.
type WpCli struct {
	runner ports.CommandRunner
}

// NewWpCli is the step factory. It fails when the run context carries no
// command runner, which surfaces as a config error in resolution
// diagnostics instead of a crash at execution time.
func NewWpCli(rc *steps.RunContext) (steps.Step, error) {
	if rc.Runner == nil {
		return nil, errors.New("the wp-cli step needs a command runner")
	}
	return &WpCli{runner: rc.Runner}, nil
}

func (s *WpCli) Name() string {
	return steps.WpCliStepName
}

func (s *WpCli) Run(ctx context.Context, rc *steps.RunContext) error {
	files, err := s.files(rc.Config)
	if err != nil {
		return err
	}
	commands, err := s.commands(rc.Config)
	if err != nil {
		return err
	}

	for _, file := range files {
		args := append([]string{"eval-file", file.File}, file.Args...)
		if file.SkipWordpress {
			args = append(args, "--skip-wordpress")
		}
		if err := s.execute(ctx, rc, args); err != nil {
			return err
		}
	}
	for _, command := range commands {
		if err := s.execute(ctx, rc, strings.Split(command, " ")); err != nil {
			return err
		}
	}
	return nil
}

func (s *WpCli) files(cfg *config.Config) ([]validate.WpCliFile, error) {
	result := cfg.Get(config.KeyWpCliFiles)
	if result.IsNone() {
		return nil, nil
	}
	value, err := result.Unwrap()
	if err != nil {
		return nil, fmt.Errorf("invalid wp-cli-files setting: %w", err)
	}
	files, _ := value.([]validate.WpCliFile)
	return files, nil
}

func (s *WpCli) commands(cfg *config.Config) ([]string, error) {
	result := cfg.Get(config.KeyWpCliCommands)
	if result.IsNone() {
		return nil, nil
	}
	value, err := result.Unwrap()
	if err != nil {
		return nil, fmt.Errorf("invalid wp-cli-commands setting: %w", err)
	}
	commands, _ := value.([]string)
	return commands, nil
}

func (s *WpCli) execute(ctx context.Context, rc *steps.RunContext, args []string) error {
	rc.Logger.Info(ctx, "running WP-CLI command", ports.F("args", strings.Join(args, " ")))

	result, err := s.runner.Run(ctx, "wp", args...)
	if err != nil {
		return fmt.Errorf("running wp %s: %w", strings.Join(args, " "), err)
	}
	if !result.Success() {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(result.Stdout)
		}
		return fmt.Errorf("wp %s exited with code %d: %s",
			strings.Join(args, " "), result.ExitCode, detail)
	}
	return nil
}
