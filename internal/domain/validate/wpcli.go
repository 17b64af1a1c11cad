package validate

import (
	"encoding/json"
	"path"
	"regexp"
	"strings"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/wpsetup/internal/domain/outcome"
)

// wpCliPathOptionRe matches an embedded --path option, quoted or bare. The
// option value is the install path of the target site and inapplicable when
// wpsetup drives the invocation, so it is stripped.
var wpCliPathOptionRe = regexp.MustCompile(`(?:^|\s)--path=(?:"[^"]*"|'[^']*'|\S*)`)

// WpCliCommand validates a single WP-CLI command string. The command must
// start with the literal "wp " prefix; the prefix and any embedded --path
// option are stripped and the remainder is re-tokenized with shell-style
// splitting. The validated value is the sanitized argument string, without
// the "wp" prefix.
func (v *Validator) WpCliCommand(value any) outcome.Result[string] {
	s, ok := asString(value)
	if !ok {
		return outcome.Errorf[string]("WP-CLI command must be a string, got %T", value)
	}
	if s == "" {
		return outcome.None[string]()
	}

	if !strings.HasPrefix(s, "wp ") {
		return outcome.Errorf[string](`WP-CLI command %q must start with "wp "`, s)
	}

	rest := wpCliPathOptionRe.ReplaceAllString(strings.TrimPrefix(s, "wp "), " ")
	tokens, err := shlex.Split(rest)
	if err != nil {
		return outcome.Errorf[string]("WP-CLI command %q cannot be tokenized: %v", s, err)
	}
	if len(tokens) == 0 {
		return outcome.Errorf[string]("WP-CLI command %q is empty", s)
	}
	return outcome.Ok(strings.Join(tokens, " "))
}

// WpCliCommands validates a list of WP-CLI commands. The raw value is
// either a literal array of command strings, each validated individually
// with invalid entries silently dropped, or the path of a .json or
// .yml/.yaml file containing such an array. The file-backed form is wrapped
// as a deferred outcome so the file is only read if the commands are
// actually consulted.
func (v *Validator) WpCliCommands(value any) outcome.Result[[]string] {
	switch typed := value.(type) {
	case nil:
		return outcome.None[[]string]()
	case string:
		if typed == "" {
			return outcome.None[[]string]()
		}
		return v.wpCliCommandsFromFile(typed)
	case []any:
		return v.wpCliCommandsFromList(typed)
	case []string:
		list := make([]any, len(typed))
		for i, s := range typed {
			list[i] = s
		}
		return v.wpCliCommandsFromList(list)
	default:
		return outcome.Errorf[[]string]("WP-CLI commands must be a list or a file path, got %T", value)
	}
}

func (v *Validator) wpCliCommandsFromList(list []any) outcome.Result[[]string] {
	valid := make([]string, 0, len(list))
	for _, entry := range list {
		if r := v.WpCliCommand(entry); r.IsOk() {
			valid = append(valid, r.UnwrapOr(""))
		}
	}
	if len(valid) == 0 {
		return outcome.Errorf[[]string]("no valid WP-CLI command found in list")
	}
	return outcome.Ok(valid)
}

// wpCliCommandsFromFile defers the read and parse of a command file until
// the commands are consulted.
func (v *Validator) wpCliCommandsFromFile(file string) outcome.Result[[]string] {
	dir := v.DirName(file)
	name, err := dir.Unwrap()
	if err != nil {
		return outcome.Errorf[[]string]("invalid WP-CLI command file path %q", file)
	}

	ext := strings.ToLower(path.Ext(name))
	if ext != ".json" && ext != ".yml" && ext != ".yaml" {
		return outcome.Errorf[[]string]("WP-CLI command file %s must be a .json, .yml or .yaml file", name)
	}

	return outcome.Promise(func() outcome.Result[[]string] {
		located := v.Path(name)
		target, err := located.Unwrap()
		if err != nil {
			return outcome.Errorf[[]string]("WP-CLI command file %s not found", name)
		}

		data, err := v.fs.ReadFile(target)
		if err != nil {
			return outcome.Errorf[[]string]("WP-CLI command file %s cannot be read: %v", name, err)
		}

		var list []any
		if ext == ".json" {
			err = json.Unmarshal(data, &list)
		} else {
			err = yaml.Unmarshal(data, &list)
		}
		if err != nil {
			return outcome.Errorf[[]string]("WP-CLI command file %s does not contain an array of commands: %v", name, err)
		}
		return v.wpCliCommandsFromList(list)
	})
}

// WpCliFile is a validated descriptor of a file to pass to "wp eval-file".
type WpCliFile struct {
	File          string
	Args          []string
	SkipWordpress bool
}

// WpCliFiles validates the list of files to evaluate through WP-CLI. Each
// entry is a .php file path, either bare or as a map with "file", "args"
// and "skip-wordpress" keys. Invalid entries are silently dropped; the list
// fails only when nothing valid remains.
func (v *Validator) WpCliFiles(value any) outcome.Result[[]WpCliFile] {
	var list []any
	switch typed := value.(type) {
	case nil:
		return outcome.None[[]WpCliFile]()
	case string:
		if typed == "" {
			return outcome.None[[]WpCliFile]()
		}
		list = []any{typed}
	case []any:
		list = typed
	case []string:
		list = make([]any, len(typed))
		for i, s := range typed {
			list[i] = s
		}
	default:
		return outcome.Errorf[[]WpCliFile]("WP-CLI files must be a list, got %T", value)
	}

	valid := make([]WpCliFile, 0, len(list))
	for _, entry := range list {
		if file, ok := v.wpCliFile(entry); ok {
			valid = append(valid, file)
		}
	}
	if len(valid) == 0 {
		return outcome.Errorf[[]WpCliFile]("no valid WP-CLI file found in list")
	}
	return outcome.Ok(valid)
}

func (v *Validator) wpCliFile(entry any) (WpCliFile, bool) {
	var file WpCliFile

	switch typed := entry.(type) {
	case string:
		file.File = typed
	case map[string]any:
		file.File, _ = typed["file"].(string)
		file.Args = stringList(typed["args"])
		if r := v.Bool(typed["skip-wordpress"]); r.IsOk() {
			file.SkipWordpress = r.UnwrapOr(false)
		}
	default:
		return WpCliFile{}, false
	}

	dir := v.DirName(file.File)
	name, err := dir.Unwrap()
	if err != nil || strings.ToLower(path.Ext(name)) != ".php" {
		return WpCliFile{}, false
	}
	file.File = name
	return file, true
}

// stringList flattens a raw value into a list of strings, dropping
// everything else.
func stringList(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		if typed == "" {
			return nil
		}
		return []string{typed}
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, entry := range typed {
			if s, ok := entry.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
