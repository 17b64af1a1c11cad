package config_test

import (
	"errors"
	"testing"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/wpsetup.yaml", `
wp-version: "6.4"
skip-steps:
  - dropins
`)

	raw, err := config.NewLoader(fs).Load("/project")
	require.NoError(t, err)
	assert.Equal(t, "6.4", raw["wp-version"])
	assert.Equal(t, []any{"dropins"}, raw["skip-steps"])
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/wpsetup.toml", "wp-version = \"6.4\"\n")

	raw, err := config.NewLoader(fs).Load("/project")
	require.NoError(t, err)
	assert.Equal(t, "6.4", raw["wp-version"])
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/wpsetup.json", `{"move-content": true}`)

	raw, err := config.NewLoader(fs).Load("/project")
	require.NoError(t, err)
	assert.Equal(t, true, raw["move-content"])
}

func TestLoad_PrefersYamlOverJSON(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/wpsetup.yaml", `wp-version: "6.4"`)
	fs.AddFile("/project/wpsetup.json", `{"wp-version": "5.0"}`)

	raw, err := config.NewLoader(fs).Load("/project")
	require.NoError(t, err)
	assert.Equal(t, "6.4", raw["wp-version"])
}

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	t.Parallel()

	raw, err := config.NewLoader(testutil.NewFileSystem()).Load("/project")
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestLoadFile_ParseError(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddFile("/project/wpsetup.json", "{not json")

	_, err := config.NewLoader(fs).LoadFile("/project/wpsetup.json")
	require.Error(t, err)

	var userErr *config.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, config.ErrCodeConfigParse, userErr.Code)
	assert.Contains(t, userErr.Error(), "/project/wpsetup.json")
}
