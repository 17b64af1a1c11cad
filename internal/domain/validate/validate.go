// Package validate turns untyped configuration input (anything a JSON or
// YAML document can hold) into typed, guaranteed-valid domain values. Every
// validator is total: it returns an outcome.Result and never fails abruptly.
// Absent or empty input yields None, which is distinct from a validation
// failure; whether an absent value is acceptable is decided by the caller.
//
// Validators for broader types delegate to narrower ones in a fixed order
// and return the first non-empty result.
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/wpsetup/internal/domain/outcome"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// Ask is the sentinel accepted wherever a boolean setting may instead defer
// the decision to an interactive prompt.
const Ask = "ask"

// Validator is the library of named validation functions. Path-existence
// checks go through the file system port; everything else is pure.
type Validator struct {
	fs   ports.FileSystem
	root string
}

// NewValidator creates a Validator. root is the project root used as the
// fallback base for relative path-existence checks.
func NewValidator(fs ports.FileSystem, root string) *Validator {
	return &Validator{fs: fs, root: root}
}

// Bool coerces a raw value to a boolean. Unlike most validators, nil and
// the empty string are rejected outright rather than treated as absent:
// a boolean setting that is present but empty is a configuration mistake.
// Accepted shapes: booleans, the strings "true"/"false"/"yes"/"no"/"on"/
// "off"/"1"/"0" (case-insensitive) and the integers 0 and 1.
func (v *Validator) Bool(value any) outcome.Result[bool] {
	b, isAsk, err := coerceBool(value)
	if err != nil {
		return outcome.Err[bool](err)
	}
	if isAsk {
		return outcome.Errorf[bool]("%q is not a valid boolean", Ask)
	}
	return outcome.Ok(b)
}

// BoolOrAsk coerces like Bool but lets the literal sentinel "ask" through
// unchanged.
func (v *Validator) BoolOrAsk(value any) outcome.Result[any] {
	b, isAsk, err := coerceBool(value)
	if err != nil {
		return outcome.Err[any](err)
	}
	if isAsk {
		return outcome.Ok[any](Ask)
	}
	return outcome.Ok[any](b)
}

// URL validates an absolute URL with a scheme and host.
func (v *Validator) URL(value any) outcome.Result[string] {
	s, ok := asString(value)
	if !ok {
		return outcome.Errorf[string]("URL must be a string, got %T", value)
	}
	if s == "" {
		return outcome.None[string]()
	}

	parsed, err := url.Parse(s)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return outcome.Errorf[string]("%q is not a valid URL", s)
	}
	return outcome.Ok(s)
}

// URLOrPath accepts a URL first, then an existing path.
func (v *Validator) URLOrPath(value any) outcome.Result[any] {
	if r := v.URL(value); r.NotEmpty() {
		return widen(r)
	}
	return widen(v.Path(value))
}

// BoolOrAskOrURLOrPath tries bool-or-ask, then URL, then path, in that fixed
// order, and reports an error only when all three come back empty.
func (v *Validator) BoolOrAskOrURLOrPath(value any) outcome.Result[any] {
	if r := v.BoolOrAsk(value); r.NotEmpty() {
		return r
	}
	if r := v.URL(value); r.NotEmpty() {
		return widen(r)
	}
	if r := v.Path(value); r.NotEmpty() {
		return widen(r)
	}
	if value == nil {
		return outcome.None[any]()
	}
	return outcome.Errorf[any]("%v is not a boolean, %q, a URL nor an existing path", value, Ask)
}

// widen converts a Result over a concrete type to a Result over any.
func widen[T any](r outcome.Result[T]) outcome.Result[any] {
	value, err := r.Unwrap()
	if err == nil {
		return outcome.Ok[any](value)
	}
	if cause := r.ErrCause(); cause != nil {
		return outcome.Err[any](cause)
	}
	return outcome.None[any]()
}

// coerceBool implements the shared boolean coercion. The second return is
// true when the value is the "ask" sentinel.
func coerceBool(value any) (b bool, isAsk bool, err error) {
	switch typed := value.(type) {
	case nil:
		return false, false, fmt.Errorf("a boolean setting cannot be empty")
	case bool:
		return typed, false, nil
	case int:
		return intBool(int64(typed))
	case int64:
		return intBool(typed)
	case float64:
		if typed == 0 || typed == 1 {
			return typed == 1, false, nil
		}
		return false, false, fmt.Errorf("%v is not a valid boolean", typed)
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "":
			return false, false, fmt.Errorf("a boolean setting cannot be empty")
		case Ask:
			return false, true, nil
		case "true", "yes", "on", "1":
			return true, false, nil
		case "false", "no", "off", "0":
			return false, false, nil
		default:
			return false, false, fmt.Errorf("%q is not a valid boolean", typed)
		}
	default:
		return false, false, fmt.Errorf("%v (%T) is not a valid boolean", value, value)
	}
}

func intBool(n int64) (bool, bool, error) {
	if n == 0 || n == 1 {
		return n == 1, false, nil
	}
	return false, false, fmt.Errorf("%d is not a valid boolean", n)
}

// asString reports the value as a string. nil counts as the empty string so
// absent input funnels into the None branch of string validators.
func asString(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", true
	case string:
		return typed, true
	default:
		return "", false
	}
}
