package main

import (
	"errors"
	"os"

	"github.com/felixgeelhaar/wpsetup/internal/app"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/spf13/cobra"
)

var (
	optOut           bool
	skipCustom       bool
	ignoreSkipConfig bool
	dryRun           bool
)

var stepsCmd = &cobra.Command{
	Use:   "steps [step-name...]",
	Short: "Resolve and run the project's setup steps",
	Long: `Steps resolves configuration and command input into an ordered step list and runs it.

Without arguments every configured step runs. Naming steps runs only those;
with --opt-out the named steps are excluded instead.`,
	RunE: runSteps,
}

func init() {
	stepsCmd.Flags().BoolVar(&optOut, "opt-out", false, "treat step names as exclusions")
	stepsCmd.Flags().BoolVar(&skipCustom, "skip-custom", false, "leave custom steps out of the run")
	stepsCmd.Flags().BoolVar(&ignoreSkipConfig, "ignore-skip-config", false, "disregard the skip-steps configuration")
	stepsCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without running anything")

	rootCmd.AddCommand(stepsCmd)
}

func runSteps(cmd *cobra.Command, args []string) error {
	flags := resolveFlags(args)

	root, err := os.Getwd()
	if err != nil {
		return err
	}

	application := app.New(cmd.OutOrStdout(), newLogger())
	resolution, rc, err := application.Resolve(cmd.Context(), root, cfgFile, flags, args...)
	if err != nil {
		printError(err)
		return err
	}

	application.PrintPlan(resolution)

	if len(resolution.Steps()) == 0 {
		if message := resolution.FatalMessage(); message != "" {
			err := errors.New(message)
			printError(err)
			return err
		}
		return nil
	}

	if dryRun {
		return nil
	}

	if err := application.Run(cmd.Context(), resolution, rc); err != nil {
		printError(err)
		return err
	}
	return nil
}

// resolveFlags maps the command line onto the resolver's mode bitmask.
// Naming steps (or asking for opt-out) switches to command mode; the other
// selection flags only take effect there.
func resolveFlags(args []string) steps.Flags {
	var flags steps.Flags
	if len(args) > 0 || optOut {
		flags |= steps.ModeCommand
	}
	if optOut {
		flags |= steps.ModeOptOut
	}
	if skipCustom {
		flags |= steps.ModeSkipCustom
	}
	if ignoreSkipConfig {
		flags |= steps.ModeIgnoreSkipConfig
	}
	return flags
}
