package wpstep_test

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/wpsetup/internal/adapters/command"
	"github.com/felixgeelhaar/wpsetup/internal/adapters/logging"
	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/domain/validate"
	"github.com/felixgeelhaar/wpsetup/internal/testutil"
	"github.com/felixgeelhaar/wpsetup/internal/wpstep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/project"

func newRunContext(fs *testutil.FileSystem, raw map[string]any) *steps.RunContext {
	return &steps.RunContext{
		Root:   root,
		Config: config.New(raw, validate.NewValidator(fs, root)),
		FS:     fs,
		Runner: command.NewFakeRunner(),
		Logger: logging.NewNopLogger(),
	}
}

func TestDefaultSteps_OrderAndRunsLast(t *testing.T) {
	t.Parallel()

	defaults := wpstep.DefaultSteps()

	assert.Equal(t, []string{
		wpstep.CheckPathsName,
		wpstep.BuildEnvExampleName,
		wpstep.MoveContentName,
		wpstep.DropinsName,
		wpstep.PublishContentDevName,
		steps.WpCliStepName,
	}, defaults.Names())

	assert.True(t, wpstep.Kinds()[wpstep.KindWpCli].RunsLast)
	assert.False(t, wpstep.Kinds()[wpstep.KindCheckPaths].RunsLast)
}

func TestCheckPaths_RootMustBeDirectory(t *testing.T) {
	t.Parallel()

	rc := newRunContext(testutil.NewFileSystem(), nil)
	step := &wpstep.CheckPaths{}

	err := step.Run(context.Background(), rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestCheckPaths_CreatesContentDirectory(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	rc := newRunContext(fs, nil)

	require.NoError(t, (&wpstep.CheckPaths{}).Run(context.Background(), rc))
	assert.True(t, fs.IsDir(root+"/wp-content"))
}

func TestCheckPaths_RejectsMissingEnvDir(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	rc := newRunContext(fs, map[string]any{
		config.KeyEnvDir: "missing-env",
	})

	err := (&wpstep.CheckPaths{}).Run(context.Background(), rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env directory")
}

func TestBuildEnvExample_WritesDefaultTemplate(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	rc := newRunContext(fs, nil)

	require.NoError(t, (&wpstep.BuildEnvExample{}).Run(context.Background(), rc))

	data, err := fs.ReadFile(root + "/.env.example")
	require.NoError(t, err)
	assert.Contains(t, string(data), "DB_NAME=")
	assert.Contains(t, string(data), "WP_HOME=")
}

func TestBuildEnvExample_DisabledByConfig(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	rc := newRunContext(fs, map[string]any{
		config.KeyEnvExample: false,
	})

	require.NoError(t, (&wpstep.BuildEnvExample{}).Run(context.Background(), rc))

	_, err := fs.ReadFile(root + "/.env.example")
	assert.Error(t, err)
}

func TestBuildEnvExample_CopiesConfiguredSource(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddFile(root+"/templates/env.dist", "DB_NAME=mysite\n")
	rc := newRunContext(fs, map[string]any{
		config.KeyEnvExample: "templates/env.dist",
	})

	require.NoError(t, (&wpstep.BuildEnvExample{}).Run(context.Background(), rc))

	data, err := fs.ReadFile(root + "/.env.example")
	require.NoError(t, err)
	assert.Equal(t, "DB_NAME=mysite\n", string(data))
}

func TestBuildEnvExample_SkipsExistingTarget(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddFile(root+"/.env.example", "KEEP=1\n")
	rc := newRunContext(fs, nil)

	require.NoError(t, (&wpstep.BuildEnvExample{}).Run(context.Background(), rc))

	data, err := fs.ReadFile(root + "/.env.example")
	require.NoError(t, err)
	assert.Equal(t, "KEEP=1\n", string(data))
}

func TestBuildEnvExample_SkipsURLSource(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	rc := newRunContext(fs, map[string]any{
		config.KeyEnvExample: "https://example.com/env.dist",
	})

	require.NoError(t, (&wpstep.BuildEnvExample{}).Run(context.Background(), rc))

	_, err := fs.ReadFile(root + "/.env.example")
	assert.Error(t, err)
}

func TestDropins_PublishesKnownDropins(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddFile(root+"/assets/object-cache.php", "<?php // cache")
	rc := newRunContext(fs, map[string]any{
		config.KeyDropins: map[string]any{
			"object-cache.php": "assets/object-cache.php",
		},
	})

	require.NoError(t, (&wpstep.Dropins{}).Run(context.Background(), rc))

	data, err := fs.ReadFile(root + "/wp-content/object-cache.php")
	require.NoError(t, err)
	assert.Equal(t, "<?php // cache", string(data))
}

func TestDropins_SkipsUnknownNamesAndURLs(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddFile(root+"/assets/whatever.php", "<?php")
	rc := newRunContext(fs, map[string]any{
		config.KeyDropins: map[string]any{
			"whatever.php": "assets/whatever.php",
			"db.php":       "https://example.com/db.php",
		},
	})

	require.NoError(t, (&wpstep.Dropins{}).Run(context.Background(), rc))

	_, err := fs.ReadFile(root + "/wp-content/whatever.php")
	assert.Error(t, err)
	_, err = fs.ReadFile(root + "/wp-content/db.php")
	assert.Error(t, err)
}

func TestDropins_NothingConfiguredIsFine(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	rc := newRunContext(fs, nil)

	assert.NoError(t, (&wpstep.Dropins{}).Run(context.Background(), rc))
}

func TestMoveContent_MovesPackagedSubdirs(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddDir(root + "/wordpress/wp-content/themes")
	rc := newRunContext(fs, map[string]any{
		config.KeyMoveContent: true,
	})

	require.NoError(t, (&wpstep.MoveContent{}).Run(context.Background(), rc))

	assert.True(t, fs.IsDir(root+"/wp-content/themes"))
	assert.False(t, fs.IsDir(root+"/wordpress/wp-content/themes"))
}

func TestMoveContent_DisabledByDefault(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddDir(root + "/wordpress/wp-content/themes")
	rc := newRunContext(fs, nil)

	require.NoError(t, (&wpstep.MoveContent{}).Run(context.Background(), rc))

	assert.True(t, fs.IsDir(root+"/wordpress/wp-content/themes"))
	assert.False(t, fs.IsDir(root+"/wp-content/themes"))
}

func TestPublishContentDev_SymlinksByDefault(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddDir(root + "/content-dev/themes")
	fs.AddDir(root + "/content-dev/plugins")
	rc := newRunContext(fs, nil)

	require.NoError(t, (&wpstep.PublishContentDev{}).Run(context.Background(), rc))

	target, ok := fs.SymlinkTarget(root + "/wp-content/themes")
	require.True(t, ok)
	assert.Equal(t, root+"/content-dev/themes", target)

	_, ok = fs.SymlinkTarget(root + "/wp-content/plugins")
	assert.True(t, ok)
}

func TestPublishContentDev_HonorsConfiguredDirAndOptOut(t *testing.T) {
	t.Parallel()

	fs := testutil.NewFileSystem()
	fs.AddDir(root)
	fs.AddDir(root + "/dev-stuff/mu-plugins")

	rc := newRunContext(fs, map[string]any{
		config.KeyContentDevDir: "dev-stuff",
	})
	require.NoError(t, (&wpstep.PublishContentDev{}).Run(context.Background(), rc))
	_, ok := fs.SymlinkTarget(root + "/wp-content/mu-plugins")
	assert.True(t, ok)

	disabled := testutil.NewFileSystem()
	disabled.AddDir(root)
	disabled.AddDir(root + "/content-dev/themes")
	rc = newRunContext(disabled, map[string]any{
		config.KeyContentDevOp: false,
	})
	require.NoError(t, (&wpstep.PublishContentDev{}).Run(context.Background(), rc))
	_, ok = disabled.SymlinkTarget(root + "/wp-content/themes")
	assert.False(t, ok)
}
