package validate

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/felixgeelhaar/wpsetup/internal/domain/outcome"
)

// forbiddenNameChars never appear in a valid file name.
const forbiddenNameChars = "$+!*(),{}|^[]`\"<>#;?:&'"

// punctuationOnlyStrip is the set of otherwise-legal punctuation a name must
// not consist of exclusively.
const punctuationOnlyStrip = " .~%@="

// driveOrSchemeRe matches an optional drive or protocol prefix at the start
// of a multi-segment path: "scheme://", "scheme://x:", "scheme:" or "x:".
var driveOrSchemeRe = regexp.MustCompile(`^(?i:[a-z][a-z0-9+.-]*://(?:[a-z]:)?|[a-z][a-z0-9+.-]*:|[a-z]:)`)

// normalizeName canonicalizes separators and Unicode form. Valid inputs
// round-trip unchanged apart from this normalization.
func normalizeName(s string) string {
	return norm.NFC.String(strings.ReplaceAll(s, `\`, "/"))
}

// FileName validates a single path segment. The validated value is the
// normalized input.
func (v *Validator) FileName(value any) outcome.Result[string] {
	s, ok := asString(value)
	if !ok {
		return outcome.Errorf[string]("file name must be a string, got %T", value)
	}
	if s == "" {
		return outcome.None[string]()
	}

	n := normalizeName(s)
	if err := checkFileName(n); err != nil {
		return outcome.Err[string](err)
	}
	return outcome.Ok(n)
}

// checkFileName applies the file-name rules to an already-normalized value.
func checkFileName(n string) error {
	if n == "" {
		return nameError(n, "name is empty")
	}
	// The "a" prefix keeps Base from misreading names that start with
	// multibyte sequences; the comparison only cares whether a separator
	// survived normalization.
	if path.Base("a"+n) != "a"+n {
		return nameError(n, "name contains a path separator")
	}
	if strings.ContainsAny(n, forbiddenNameChars) {
		return nameError(n, "name contains forbidden characters")
	}
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuationOnlyStrip, r) {
			return -1
		}
		return r
	}, n)
	if stripped == "" {
		return nameError(n, "name consists of punctuation only")
	}
	if strings.Contains(n, "..") {
		return nameError(n, `name contains ".."`)
	}
	return nil
}

func nameError(name, reason string) error {
	return &NameError{Name: name, Reason: reason}
}

// NameError describes why a file or folder name was rejected.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return "invalid name " + e.Name + ": " + e.Reason
}

// DirName validates a relative or absolute folder path. The literal values
// ".", "./" and "/" are always valid. The validated value returned on
// success is the original normalized string, drive or protocol prefix
// included.
func (v *Validator) DirName(value any) outcome.Result[string] {
	s, ok := asString(value)
	if !ok {
		return outcome.Errorf[string]("folder name must be a string, got %T", value)
	}
	if s == "" {
		return outcome.None[string]()
	}

	n := normalizeName(s)
	if n == "." || n == "./" || n == "/" {
		return outcome.Ok(n)
	}

	work := strings.TrimPrefix(n, "/")
	for strings.HasPrefix(work, "./") || strings.HasPrefix(work, "../") {
		work = strings.TrimPrefix(work, "./")
		work = strings.TrimPrefix(work, "../")
	}

	if !strings.Contains(work, "/") {
		if err := checkFileName(work); err != nil {
			return outcome.Err[string](err)
		}
		return outcome.Ok(n)
	}

	if prefix := driveOrSchemeRe.FindString(work); prefix != "" {
		work = strings.TrimPrefix(work[len(prefix):], "/")
	}

	for _, segment := range strings.Split(work, "/") {
		if segment == "" {
			continue
		}
		if err := checkFileName(segment); err != nil {
			return outcome.Err[string](err)
		}
	}
	return outcome.Ok(n)
}

// GlobPath validates a path that may contain glob metacharacters. Plain
// values are accepted as-is; anything with metacharacters is probed by
// substituting literal filler in two different ways and validating both
// probes, and is accepted only if both pass.
func (v *Validator) GlobPath(value any) outcome.Result[string] {
	s, ok := asString(value)
	if !ok {
		return outcome.Errorf[string]("glob path must be a string, got %T", value)
	}
	if s == "" {
		return outcome.None[string]()
	}

	n := normalizeName(s)
	if strings.Contains(n, "..") {
		return outcome.Errorf[string](`invalid glob path %s: contains ".."`, n)
	}
	if strings.Contains(n, "//") {
		return outcome.Errorf[string](`invalid glob path %s: contains "//"`, n)
	}
	if !strings.ContainsAny(n, "*./?") {
		return outcome.Ok(n)
	}

	probes := [2]string{
		strings.NewReplacer("*", "aa", "?", "a", "[", "", "]", "").Replace(n),
		strings.NewReplacer("*", "", "?", "a", "[", "", "]", "").Replace(n),
	}
	for _, probe := range probes {
		var r outcome.Result[string]
		if strings.Contains(probe, "/") {
			r = v.DirName(probe)
		} else {
			r = v.FileName(probe)
		}
		if !r.IsOk() {
			return outcome.Errorf[string]("invalid glob path %s", n)
		}
	}
	return outcome.Ok(n)
}

// Path validates a folder name and then requires it to exist, first as
// given (absolute or relative to the working directory) and then relative
// to the project root. The validated value is the path that was found.
func (v *Validator) Path(value any) outcome.Result[string] {
	dir := v.DirName(value)
	n, err := dir.Unwrap()
	if err != nil {
		return dir
	}

	if v.fs.Exists(n) {
		return outcome.Ok(n)
	}
	if !filepath.IsAbs(n) {
		inRoot := filepath.Join(v.root, filepath.FromSlash(n))
		if v.fs.Exists(inRoot) {
			return outcome.Ok(filepath.ToSlash(inRoot))
		}
	}
	return outcome.Errorf[string]("path %s not found", n)
}
