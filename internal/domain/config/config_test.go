package config_test

import (
	"testing"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/validate"
	"github.com/felixgeelhaar/wpsetup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(raw map[string]any) *config.Config {
	fs := testutil.NewFileSystem()
	return config.New(raw, validate.NewValidator(fs, "/project"))
}

func TestGet_AbsentKeyIsNone(t *testing.T) {
	t.Parallel()

	cfg := newConfig(nil)

	assert.True(t, cfg.Get(config.KeySkipSteps).IsNone())
	assert.False(t, cfg.NotEmpty(config.KeyWpCliCommands))
}

func TestGet_ValidatesKnownKeys(t *testing.T) {
	t.Parallel()

	cfg := newConfig(map[string]any{
		config.KeyCustomSteps: map[string]any{"build-robots": "robots_step"},
		config.KeySkipSteps:   []any{"dropins", "wp-cli"},
		config.KeyMoveContent: "yes",
		config.KeyWpVersion:   "6.4",
	})

	assert.Equal(t, map[string]string{"build-robots": "robots_step"},
		cfg.StringMap(config.KeyCustomSteps))
	assert.Equal(t, []string{"dropins", "wp-cli"}, cfg.Strings(config.KeySkipSteps))
	assert.True(t, cfg.Get(config.KeyMoveContent).Is(true))
	assert.True(t, cfg.Get(config.KeyWpVersion).Is("6.4.0"))
}

func TestGet_InvalidValueIsError(t *testing.T) {
	t.Parallel()

	cfg := newConfig(map[string]any{
		config.KeyWpVersion: "banana",
		config.KeySkipSteps: "not-a-list",
	})

	assert.True(t, cfg.Get(config.KeyWpVersion).IsErr())
	assert.True(t, cfg.Get(config.KeySkipSteps).IsErr())
}

func TestGet_CachesFirstOutcome(t *testing.T) {
	t.Parallel()

	raw := map[string]any{config.KeyWpVersion: "6.4"}
	cfg := newConfig(raw)

	first := cfg.Get(config.KeyWpVersion)
	require.True(t, first.Is("6.4.0"))

	// The raw map is fixed at load time; later mutation must not leak into
	// the cached validated form.
	raw[config.KeyWpVersion] = "banana"
	assert.True(t, cfg.Get(config.KeyWpVersion).Is("6.4.0"))
}

func TestGet_UnknownKeyPassesThrough(t *testing.T) {
	t.Parallel()

	cfg := newConfig(map[string]any{"team-name": "platform"})

	assert.True(t, cfg.Get("team-name").Is(any("platform")))
}

func TestStrings_WrongShapeIsNil(t *testing.T) {
	t.Parallel()

	cfg := newConfig(map[string]any{config.KeyMoveContent: true})

	assert.Nil(t, cfg.Strings(config.KeyMoveContent))
	assert.Nil(t, cfg.StringMap(config.KeySkipSteps))
}
