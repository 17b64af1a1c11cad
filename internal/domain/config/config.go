// Package config holds the raw wpsetup configuration and validates it on
// demand. Raw values are fixed once at load time; the validated form of
// each key is computed by the matching validator on first access and cached
// for the process lifetime.
package config

import (
	"github.com/felixgeelhaar/wpsetup/internal/domain/outcome"
	"github.com/felixgeelhaar/wpsetup/internal/domain/validate"
)

// Configuration keys.
const (
	KeyCustomSteps         = "custom-steps"
	KeyCommandSteps        = "command-steps"
	KeySkipSteps           = "skip-steps"
	KeyWpCliCommands       = "wp-cli-commands"
	KeyWpCliFiles          = "wp-cli-files"
	KeyDropins             = "dropins"
	KeyScripts             = "scripts"
	KeyContentDevOp        = "content-dev-op"
	KeyContentDevDir       = "content-dev-dir"
	KeyEnvExample          = "env-example"
	KeyEnvDir              = "env-dir"
	KeyMoveContent         = "move-content"
	KeyRegisterThemeFolder = "register-theme-folder"
	KeyWpVersion           = "wp-version"
)

// Config applies a validator per key on demand and caches the outcome.
type Config struct {
	raw        map[string]any
	validators map[string]func(any) outcome.Result[any]
	cache      map[string]outcome.Result[any]
}

// New creates a Config over the given raw values, wiring the default
// validator for every known key. Unknown keys are passed through untouched.
func New(raw map[string]any, v *validate.Validator) *Config {
	if raw == nil {
		raw = map[string]any{}
	}
	return &Config{
		raw:        raw,
		validators: keyValidators(v),
		cache:      make(map[string]outcome.Result[any]),
	}
}

// keyValidators maps each known key to its semantic contract.
func keyValidators(v *validate.Validator) map[string]func(any) outcome.Result[any] {
	return map[string]func(any) outcome.Result[any]{
		KeyCustomSteps:         wrap(v.Steps),
		KeyCommandSteps:        wrap(v.Steps),
		KeySkipSteps:           nameList,
		KeyWpCliCommands:       wrap(v.WpCliCommands),
		KeyWpCliFiles:          wrap(v.WpCliFiles),
		KeyDropins:             wrap(v.Dropins),
		KeyScripts:             wrap(v.Scripts),
		KeyContentDevOp:        v.BoolOrAsk,
		KeyContentDevDir:       wrap(v.DirName),
		KeyEnvExample:          v.BoolOrAskOrURLOrPath,
		KeyEnvDir:              wrap(v.Path),
		KeyMoveContent:         v.BoolOrAsk,
		KeyRegisterThemeFolder: v.BoolOrAsk,
		KeyWpVersion:           wrap(v.Version),
	}
}

// wrap lifts a typed validator to the Result[any] surface of the store.
// Deferred outcomes stay deferred: the wrapping closure forces the inner
// result only when the wrapped one is observed.
func wrap[T any](fn func(any) outcome.Result[T]) func(any) outcome.Result[any] {
	return func(raw any) outcome.Result[any] {
		inner := fn(raw)
		return outcome.Promise(func() outcome.Result[any] {
			value, err := inner.Unwrap()
			if err == nil {
				return outcome.Ok[any](value)
			}
			if cause := inner.ErrCause(); cause != nil {
				return outcome.Err[any](cause)
			}
			return outcome.None[any]()
		})
	}
}

// nameList validates the skip list: a plain list of step names. Entries are
// deliberately not validated one by one; the resolver accounts for skip
// names that match nothing.
func nameList(raw any) outcome.Result[any] {
	switch typed := raw.(type) {
	case nil:
		return outcome.None[any]()
	case []string:
		if len(typed) == 0 {
			return outcome.None[any]()
		}
		return outcome.Ok[any](typed)
	case []any:
		names := make([]string, 0, len(typed))
		for _, entry := range typed {
			if s, ok := entry.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		if len(names) == 0 {
			return outcome.None[any]()
		}
		return outcome.Ok[any](names)
	default:
		return outcome.Errorf[any]("%s must be a list of step names, got %T", KeySkipSteps, raw)
	}
}

// Get returns the validated form of a key, computing it on first access.
func (c *Config) Get(key string) outcome.Result[any] {
	if cached, ok := c.cache[key]; ok {
		return cached
	}

	raw, present := c.raw[key]
	var result outcome.Result[any]
	switch {
	case !present:
		result = outcome.None[any]()
	default:
		if validator, known := c.validators[key]; known {
			result = validator(raw)
		} else {
			result = outcome.Ok(raw)
		}
	}

	c.cache[key] = result
	return result
}

// Strings returns a key's validated value as a string list, or nil when the
// value is absent, invalid or of another shape.
func (c *Config) Strings(key string) []string {
	value, err := c.Get(key).Unwrap()
	if err != nil {
		return nil
	}
	list, _ := value.([]string)
	return list
}

// StringMap returns a key's validated value as a string map, or nil.
func (c *Config) StringMap(key string) map[string]string {
	value, err := c.Get(key).Unwrap()
	if err != nil {
		return nil
	}
	m, _ := value.(map[string]string)
	return m
}

// NotEmpty reports whether a key holds a valid, non-empty value. For
// deferred values this forces the computation.
func (c *Config) NotEmpty(key string) bool {
	return c.Get(key).NotEmpty()
}
