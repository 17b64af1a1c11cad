// Package outcome provides the Result value used throughout the validation
// and step-resolution pipeline. A Result represents "absent", "valid",
// "invalid" or "not yet computed" without exceptions: validators and the
// configuration store return a Result instead of raising, and callers decide
// what an empty or failed value means for them.
package outcome

import (
	"errors"
	"fmt"
	"reflect"
)

// state is the tag of the Result tagged union.
type state uint8

const (
	stateNone state = iota
	stateOk
	stateError
	stateDeferred
)

// ErrNotOk is returned by Unwrap when the Result holds no usable value.
var ErrNotOk = errors.New("outcome: no value to unwrap")

// Result is a tri-state outcome container with a fourth, lazily-evaluated
// state. Exactly one state holds at a time:
//
//   - None: the input was absent or empty. Not an error.
//   - Ok: a validated value.
//   - Error: the input was present but invalid; carries a message.
//   - Deferred: a producer that collapses to one of the other three states
//     the first time the Result is observed. Forcing is memoized: the
//     producer runs at most once, and repeated observation returns the
//     identical collapsed Result.
//
// The zero value of Result is None.
type Result[T any] struct {
	state state
	value T
	err   error
	cell  *deferredCell[T]
}

// deferredCell holds the memoized state of a Deferred result. It is shared
// by pointer so that forcing through any copy of the Result collapses all
// copies at once.
type deferredCell[T any] struct {
	producer func() Result[T]
	forcing  bool
	forced   bool
	result   Result[T]
}

// None returns the absent Result.
func None[T any]() Result[T] {
	return Result[T]{state: stateNone}
}

// Ok returns a Result wrapping a valid value.
func Ok[T any](value T) Result[T] {
	return Result[T]{state: stateOk, value: value}
}

// Err returns a failed Result carrying the given error. A nil error is
// normalized to a generic validation failure so the Error state never holds
// a nil cause.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("validation failed")
	}
	return Result[T]{state: stateError, err: err}
}

// Errorf returns a failed Result with a formatted message.
func Errorf[T any](format string, args ...any) Result[T] {
	return Err[T](fmt.Errorf(format, args...))
}

// Promise returns a Deferred Result. The producer runs at most once, the
// first time the Result is observed; its outcome is cached for every later
// observation. A nil producer collapses to None immediately.
func Promise[T any](producer func() Result[T]) Result[T] {
	if producer == nil {
		return None[T]()
	}
	return Result[T]{state: stateDeferred, cell: &deferredCell[T]{producer: producer}}
}

// resolve collapses a Deferred result to its produced state, memoized.
// Non-deferred results resolve to themselves. Forcing a Deferred result
// while its producer is still running is a programming error and panics
// rather than recursing.
func (r Result[T]) resolve() Result[T] {
	if r.state != stateDeferred {
		return r
	}
	cell := r.cell
	if cell.forced {
		return cell.result
	}
	if cell.forcing {
		panic("outcome: re-entrant forcing of deferred result")
	}
	cell.forcing = true
	produced := cell.producer().resolve()
	cell.producer = nil
	cell.result = produced
	cell.forced = true
	cell.forcing = false
	return produced
}

// IsNone reports whether the Result is absent. Forces a Deferred result.
func (r Result[T]) IsNone() bool {
	return r.resolve().state == stateNone
}

// IsOk reports whether the Result holds a valid value. Forces a Deferred
// result.
func (r Result[T]) IsOk() bool {
	return r.resolve().state == stateOk
}

// IsErr reports whether the Result is a validation failure. Forces a
// Deferred result.
func (r Result[T]) IsErr() bool {
	return r.resolve().state == stateError
}

// IsEmpty reports whether the Result carries no usable value: both None and
// Error count as empty. The two remain distinguishable via IsErr and
// ErrMessage when the failure text is needed.
func (r Result[T]) IsEmpty() bool {
	return !r.IsOk()
}

// NotEmpty reports whether the Result holds a valid value.
func (r Result[T]) NotEmpty() bool {
	return r.IsOk()
}

// Unwrap returns the wrapped value, or ErrNotOk-wrapped context when the
// Result is not Ok.
func (r Result[T]) Unwrap() (T, error) {
	resolved := r.resolve()
	switch resolved.state {
	case stateOk:
		return resolved.value, nil
	case stateError:
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrNotOk, resolved.err)
	default:
		var zero T
		return zero, fmt.Errorf("%w: value is absent", ErrNotOk)
	}
}

// UnwrapOr returns the wrapped value, or fallback when the Result is not Ok.
// It never fails.
func (r Result[T]) UnwrapOr(fallback T) T {
	resolved := r.resolve()
	if resolved.state == stateOk {
		return resolved.value
	}
	return fallback
}

// ErrCause returns the wrapped error for an Error result and nil otherwise.
func (r Result[T]) ErrCause() error {
	resolved := r.resolve()
	if resolved.state == stateError {
		return resolved.err
	}
	return nil
}

// ErrMessage returns the failure text for an Error result and "" otherwise.
func (r Result[T]) ErrMessage() string {
	if err := r.ErrCause(); err != nil {
		return err.Error()
	}
	return ""
}

// Is reports whether the Result is Ok and its value equals v. Values of
// mismatched dynamic shape simply compare unequal.
func (r Result[T]) Is(v T) bool {
	resolved := r.resolve()
	if resolved.state != stateOk {
		return false
	}
	return reflect.DeepEqual(resolved.value, v)
}

// Either reports whether the Result is Ok and its value equals v1 or v2.
func (r Result[T]) Either(v1, v2 T) bool {
	return r.Is(v1) || r.Is(v2)
}
