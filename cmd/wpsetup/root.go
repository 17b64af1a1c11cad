package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/wpsetup/internal/adapters/logging"
	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "wpsetup",
	Short: "A WordPress project bootstrapper",
	Long: `Wpsetup turns declarative configuration into a ready WordPress project layout.

It validates every configuration value against a typed contract, resolves
configuration and command input into an ordered list of steps and runs them:
  Validate → Resolve → Plan → Run`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: wpsetup.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Complete --config with the supported config formats
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml", "json"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the CLI logger; verbose runs log at debug level.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
	)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
