package validate

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/wpsetup/internal/domain/outcome"
)

// Version normalizes a version string to the canonical major.minor.patch
// form. Shorthand forms ("6", "6.4") are padded; a leading "v" is accepted
// and stripped. Numbers coming out of a JSON or YAML document are accepted
// too.
func (v *Validator) Version(value any) outcome.Result[string] {
	var s string
	switch typed := value.(type) {
	case nil:
		return outcome.None[string]()
	case string:
		s = strings.TrimSpace(typed)
	case int:
		s = fmt.Sprintf("%d", typed)
	case int64:
		s = fmt.Sprintf("%d", typed)
	case float64:
		s = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", typed), "0"), ".")
	default:
		return outcome.Errorf[string]("version must be a string, got %T", value)
	}
	if s == "" {
		return outcome.None[string]()
	}

	candidate := s
	if !strings.HasPrefix(candidate, "v") {
		candidate = "v" + candidate
	}
	if !semver.IsValid(candidate) {
		return outcome.Errorf[string]("%q is not a valid version", s)
	}
	return outcome.Ok(strings.TrimPrefix(semver.Canonical(candidate), "v"))
}
