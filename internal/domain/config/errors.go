package config

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse    = "CONFIG_PARSE"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
)

// UserError is a user-facing error with an actionable suggestion.
type UserError struct {
	Code       string
	Message    string
	Context    string
	Suggestion string
	Underlying error
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() on error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewConfigNotFoundError reports a missing configuration file.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    "configuration file not found",
		Context:    path,
		Suggestion: "create a wpsetup.yaml (or .toml/.json) in the project root",
	}
}

// NewParseError reports an unreadable configuration file.
func NewParseError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "configuration file cannot be parsed",
		Context:    path,
		Suggestion: "check the file for syntax errors",
		Underlying: err,
	}
}
