package validate_test

import (
	"testing"

	"github.com/felixgeelhaar/wpsetup/internal/domain/validate"
	"github.com/felixgeelhaar/wpsetup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWpCliCommand(t *testing.T) {
	t.Parallel()

	v := newValidator(nil)

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"simple", "wp cache flush", "cache flush"},
		{"quoted argument", `wp post create --post_title="Hello World"`, "post create --post_title=Hello World"},
		{"path option removed", "wp core install --path=/var/www --skip-email", "core install --skip-email"},
		{"quoted path option removed", `wp core install --path="/var/w w" --skip-email`, "core install --skip-email"},
		{"collapsed whitespace", "wp   cache    flush", "cache flush"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := v.WpCliCommand(tt.input)
			require.True(t, r.IsOk(), "got: %s", r.ErrMessage())
			assert.True(t, r.Is(tt.want))
		})
	}
}

func TestWpCliCommand_Invalid(t *testing.T) {
	t.Parallel()

	v := newValidator(nil)

	assert.True(t, v.WpCliCommand(nil).IsNone())
	assert.True(t, v.WpCliCommand("").IsNone())

	assert.True(t, v.WpCliCommand("cache flush").IsErr(), `missing "wp " prefix`)
	assert.True(t, v.WpCliCommand("wp ").IsErr(), "nothing after the prefix")
	assert.True(t, v.WpCliCommand("wp --path=/var/www").IsErr(), "nothing left after --path removal")
	assert.True(t, v.WpCliCommand(12).IsErr())
}

func TestWpCliCommands_LiteralList(t *testing.T) {
	t.Parallel()

	v := newValidator(nil)

	r := v.WpCliCommands([]any{
		"wp cache flush",
		"not a wp command", // dropped
		"wp rewrite flush",
		7, // dropped
	})

	require.True(t, r.IsOk(), "got: %s", r.ErrMessage())
	assert.True(t, r.Is([]string{"cache flush", "rewrite flush"}))
}

func TestWpCliCommands_AllInvalidFails(t *testing.T) {
	t.Parallel()

	v := newValidator(nil)

	assert.True(t, v.WpCliCommands([]any{"nope", 1}).IsErr())
	assert.True(t, v.WpCliCommands(nil).IsNone())
	assert.True(t, v.WpCliCommands(map[string]any{}).IsErr())
}

func TestWpCliCommands_JSONFileIsDeferred(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	v := newValidator(fs)

	r := v.WpCliCommands("commands.json")

	// The file does not exist yet: had validation been eager this would
	// already be an error. It is only read on first observation.
	fs.AddFile("/project/commands.json", `["wp cache flush", "bogus", "wp rewrite flush"]`)

	require.True(t, r.IsOk(), "got: %s", r.ErrMessage())
	assert.True(t, r.Is([]string{"cache flush", "rewrite flush"}))
}

func TestWpCliCommands_FileOutcomeIsMemoized(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/commands.json", `["wp cache flush"]`)
	v := newValidator(fs)

	r := v.WpCliCommands("commands.json")
	require.True(t, r.Is([]string{"cache flush"}))

	// Changing the file after the first observation must not change the
	// outcome: forcing twice does not re-read.
	fs.AddFile("/project/commands.json", `["wp rewrite flush"]`)
	assert.True(t, r.Is([]string{"cache flush"}))
}

func TestWpCliCommands_YamlFile(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/commands.yml", "- wp cache flush\n- wp rewrite flush\n")
	v := newValidator(fs)

	r := v.WpCliCommands("commands.yml")
	require.True(t, r.IsOk(), "got: %s", r.ErrMessage())
	assert.True(t, r.Is([]string{"cache flush", "rewrite flush"}))
}

func TestWpCliCommands_FileErrors(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/commands.json", `{"not": "an array"}`)
	fs.AddFile("/project/commands.php", "<?php return [];")
	v := newValidator(fs)

	// Unsupported extension is rejected eagerly.
	assert.True(t, v.WpCliCommands("commands.php").IsErr())

	// Missing file and malformed content surface when forced.
	assert.True(t, v.WpCliCommands("missing.json").IsErr())
	assert.True(t, v.WpCliCommands("commands.json").IsErr())
}

func TestWpCliFiles(t *testing.T) {
	t.Parallel()

	v := newValidator(nil)

	r := v.WpCliFiles([]any{
		"setup.php",
		map[string]any{
			"file":           "seed.php",
			"args":           []any{"--size=small", "verbose"},
			"skip-wordpress": "yes",
		},
		"not-a-php.txt", // dropped
		42,              // dropped
	})

	files, err := r.Unwrap()
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, validate.WpCliFile{File: "setup.php"}, files[0])
	assert.Equal(t, validate.WpCliFile{
		File:          "seed.php",
		Args:          []string{"--size=small", "verbose"},
		SkipWordpress: true,
	}, files[1])
}

func TestWpCliFiles_ScalarAndFailures(t *testing.T) {
	t.Parallel()

	v := newValidator(nil)

	assert.True(t, v.WpCliFiles("setup.php").Is([]validate.WpCliFile{{File: "setup.php"}}))
	assert.True(t, v.WpCliFiles(nil).IsNone())
	assert.True(t, v.WpCliFiles("").IsNone())
	assert.True(t, v.WpCliFiles([]any{"nope.txt"}).IsErr())
	assert.True(t, v.WpCliFiles(1).IsErr())
}
