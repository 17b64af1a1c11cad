package validate

import (
	"path"
	"regexp"
	"strings"

	"github.com/felixgeelhaar/wpsetup/internal/domain/outcome"
)

// identifierRe is the grammar for a single identifier component: a leading
// letter, underscore or extended byte, followed by letters, digits,
// underscores or extended bytes.
var identifierRe = regexp.MustCompile(`^[a-zA-Z_\x80-\x{10FFFF}][a-zA-Z0-9_\x80-\x{10FFFF}]*$`)

// isIdentifier reports whether s is a valid, possibly namespaced,
// identifier. Namespaced identifiers are split on "\" and every segment is
// checked; one leading separator is tolerated.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	s = strings.TrimPrefix(s, `\`)
	for _, segment := range strings.Split(s, `\`) {
		if !identifierRe.MatchString(segment) {
			return false
		}
	}
	return true
}

// Callback validates a script callback. Accepted shapes: a plain invokable
// name, a "Class::method" string, or a two-element [class, method] array.
// The validated value is the normalized "name" or "Class::method" string.
func (v *Validator) Callback(value any) outcome.Result[string] {
	switch typed := value.(type) {
	case nil:
		return outcome.None[string]()
	case string:
		if typed == "" {
			return outcome.None[string]()
		}
		class, method, found := strings.Cut(typed, "::")
		if found {
			if isIdentifier(class) && isIdentifier(method) {
				return outcome.Ok(typed)
			}
			return outcome.Errorf[string]("%q is not a valid callback", typed)
		}
		if isIdentifier(typed) {
			return outcome.Ok(typed)
		}
		return outcome.Errorf[string]("%q is not a valid callback", typed)
	case []any:
		if len(typed) != 2 {
			return outcome.Errorf[string]("a callback array needs exactly two elements, got %d", len(typed))
		}
		class, okClass := typed[0].(string)
		method, okMethod := typed[1].(string)
		if okClass && okMethod && isIdentifier(class) && isIdentifier(method) {
			return outcome.Ok(class + "::" + method)
		}
		return outcome.Errorf[string]("%v is not a valid callback", typed)
	default:
		return outcome.Errorf[string]("%v (%T) is not a valid callback", value, value)
	}
}

// Steps validates a custom step map: step name to the identifier of the
// step implementation. Invalid entries are silently discarded; the map
// fails only when nothing valid remains.
func (v *Validator) Steps(value any) outcome.Result[map[string]string] {
	if value == nil {
		return outcome.None[map[string]string]()
	}
	raw, ok := value.(map[string]any)
	if !ok {
		return outcome.Errorf[map[string]string]("steps must be a map of name to step identifier, got %T", value)
	}
	if len(raw) == 0 {
		return outcome.None[map[string]string]()
	}

	valid := make(map[string]string, len(raw))
	for name, target := range raw {
		id, ok := target.(string)
		if name == "" || !ok || !isIdentifier(id) {
			continue
		}
		valid[name] = id
	}
	if len(valid) == 0 {
		return outcome.Errorf[map[string]string]("no valid step found in steps setting")
	}
	return outcome.Ok(valid)
}

// Scripts validates the script map: a "pre-" or "post-" hook name to one
// callback or a list of callbacks. Invalid hooks and callbacks are silently
// discarded; the map fails only when nothing valid remains.
func (v *Validator) Scripts(value any) outcome.Result[map[string][]string] {
	if value == nil {
		return outcome.None[map[string][]string]()
	}
	raw, ok := value.(map[string]any)
	if !ok {
		return outcome.Errorf[map[string][]string]("scripts must be a map of hook to callbacks, got %T", value)
	}
	if len(raw) == 0 {
		return outcome.None[map[string][]string]()
	}

	valid := make(map[string][]string, len(raw))
	for hook, entry := range raw {
		if !strings.HasPrefix(hook, "pre-") && !strings.HasPrefix(hook, "post-") {
			continue
		}
		callbacks := v.callbackList(entry)
		if len(callbacks) > 0 {
			valid[hook] = callbacks
		}
	}
	if len(valid) == 0 {
		return outcome.Errorf[map[string][]string]("no valid script found in scripts setting")
	}
	return outcome.Ok(valid)
}

// callbackList validates one raw scripts entry, which holds either a single
// callback or a list of them.
func (v *Validator) callbackList(entry any) []string {
	// A two-element string array is ambiguous: it parses as [class, method]
	// first, and as a list of two plain callbacks otherwise.
	if r := v.Callback(entry); r.IsOk() {
		return []string{r.UnwrapOr("")}
	}
	list, ok := entry.([]any)
	if !ok {
		return nil
	}
	valid := make([]string, 0, len(list))
	for _, raw := range list {
		if r := v.Callback(raw); r.IsOk() {
			valid = append(valid, r.UnwrapOr(""))
		}
	}
	return valid
}

// Dropins validates the dropins setting: either a map of dropin file name
// to source, a list of sources keyed by their basename, or a single scalar
// source. A source is a URL or an existing path. Invalid entries are
// silently discarded; the setting fails only when nothing valid remains.
func (v *Validator) Dropins(value any) outcome.Result[map[string]string] {
	var entries map[string]any

	switch typed := value.(type) {
	case nil:
		return outcome.None[map[string]string]()
	case string:
		if typed == "" {
			return outcome.None[map[string]string]()
		}
		entries = map[string]any{path.Base(typed): typed}
	case []any:
		entries = make(map[string]any, len(typed))
		for _, raw := range typed {
			if s, ok := raw.(string); ok && s != "" {
				entries[path.Base(s)] = s
			}
		}
	case []string:
		entries = make(map[string]any, len(typed))
		for _, s := range typed {
			if s != "" {
				entries[path.Base(s)] = s
			}
		}
	case map[string]any:
		entries = typed
	default:
		return outcome.Errorf[map[string]string]("dropins must be a map or list of sources, got %T", value)
	}

	if len(entries) == 0 {
		return outcome.None[map[string]string]()
	}

	valid := make(map[string]string, len(entries))
	for name, raw := range entries {
		source, ok := raw.(string)
		if name == "" || !ok {
			continue
		}
		if r := v.URLOrPath(source); r.IsOk() {
			valid[name] = source
		}
	}
	if len(valid) == 0 {
		return outcome.Errorf[map[string]string]("no valid dropin found in dropins setting")
	}
	return outcome.Ok(valid)
}
