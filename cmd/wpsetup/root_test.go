package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "steps")
	assert.Contains(t, names, "version")
}

func TestFormatError_PlainError(t *testing.T) {
	assert.Equal(t, "boom", formatError(errors.New("boom")))
}

func TestFormatError_UserError(t *testing.T) {
	err := &config.UserError{
		Code:       config.ErrCodeConfigParse,
		Message:    "Configuration file cannot be parsed",
		Context:    "wpsetup.yaml",
		Suggestion: "Check the file for syntax errors",
	}

	msg := formatError(err)
	assert.Contains(t, msg, "Configuration file cannot be parsed")
	assert.Contains(t, msg, "(at wpsetup.yaml)")
	assert.Contains(t, msg, "Suggestion: Check the file for syntax errors")
}

func TestPrintErrorTo(t *testing.T) {
	var out bytes.Buffer
	printErrorTo(&out, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", out.String())
}

func TestResolveFlags(t *testing.T) {
	tests := []struct {
		name             string
		args             []string
		optOut           bool
		skipCustom       bool
		ignoreSkipConfig bool
		want             steps.Flags
	}{
		{name: "no input", want: 0},
		{name: "names imply command mode", args: []string{"dropins"}, want: steps.ModeCommand},
		{
			name:   "opt-out implies command mode",
			optOut: true,
			want:   steps.ModeCommand | steps.ModeOptOut,
		},
		{
			name:             "all selection flags",
			args:             []string{"dropins"},
			skipCustom:       true,
			ignoreSkipConfig: true,
			want:             steps.ModeCommand | steps.ModeSkipCustom | steps.ModeIgnoreSkipConfig,
		},
		// The resolver itself ignores the bit outside command mode.
		{name: "flags without names do not force command mode", skipCustom: true, want: steps.ModeSkipCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			optOut = tt.optOut
			skipCustom = tt.skipCustom
			ignoreSkipConfig = tt.ignoreSkipConfig
			t.Cleanup(func() {
				optOut, skipCustom, ignoreSkipConfig = false, false, false
			})

			require.Equal(t, tt.want, resolveFlags(tt.args))
		})
	}
}
