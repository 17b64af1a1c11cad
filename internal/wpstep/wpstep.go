// Package wpstep contains the executable steps wpsetup ships with: path
// checks, env file scaffolding, dropin publishing, content moving and
// WP-CLI command execution. Each step is constructible from a shared
// steps.RunContext and self-reports its name.
package wpstep

import (
	"path/filepath"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
)

// Step kind identifiers usable in the custom-steps and command-steps
// configuration. Kinds use underscores because configured identifiers
// follow the callback grammar, which has no hyphen.
const (
	KindCheckPaths        = "check_paths"
	KindBuildEnvExample   = "build_env_example"
	KindDropins           = "dropins"
	KindMoveContent       = "move_content"
	KindPublishContentDev = "publish_content_dev"
	KindWpCli             = "wp_cli"
)

// ContentDirName is the WordPress content directory published under the
// project root.
const ContentDirName = "wp-content"

// DefaultSteps returns the default step universe in execution order.
func DefaultSteps() *steps.NameMap {
	m := steps.NewNameMap()
	kinds := Kinds()
	m.Set(CheckPathsName, kinds[KindCheckPaths])
	m.Set(BuildEnvExampleName, kinds[KindBuildEnvExample])
	m.Set(MoveContentName, kinds[KindMoveContent])
	m.Set(DropinsName, kinds[KindDropins])
	m.Set(PublishContentDevName, kinds[KindPublishContentDev])
	m.Set(steps.WpCliStepName, kinds[KindWpCli])
	return m
}

// Kinds returns the registry of built-in step kinds, keyed by the
// identifier configuration refers to them with.
func Kinds() map[string]steps.Registration {
	return map[string]steps.Registration{
		KindCheckPaths: {Factory: func(_ *steps.RunContext) (steps.Step, error) {
			return &CheckPaths{}, nil
		}},
		KindBuildEnvExample: {Factory: func(_ *steps.RunContext) (steps.Step, error) {
			return &BuildEnvExample{}, nil
		}},
		KindDropins: {Factory: func(_ *steps.RunContext) (steps.Step, error) {
			return &Dropins{}, nil
		}},
		KindMoveContent: {Factory: func(_ *steps.RunContext) (steps.Step, error) {
			return &MoveContent{}, nil
		}},
		KindPublishContentDev: {Factory: func(_ *steps.RunContext) (steps.Step, error) {
			return &PublishContentDev{}, nil
		}},
		KindWpCli: {
			Factory:  NewWpCli,
			RunsLast: true,
		},
	}
}

// contentDir returns the absolute wp-content path of the project.
func contentDir(rc *steps.RunContext) string {
	return filepath.Join(rc.Root, ContentDirName)
}

// configBool reads a bool-or-ask key. The "ask" sentinel and invalid
// values fall back to the given default: wpsetup runs non-interactively.
func configBool(cfg *config.Config, key string, fallback bool) bool {
	value, err := cfg.Get(key).Unwrap()
	if err != nil {
		return fallback
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return fallback
}

// configString reads a validated string key, or "" when absent or invalid.
func configString(cfg *config.Config, key string) string {
	value, err := cfg.Get(key).Unwrap()
	if err != nil {
		return ""
	}
	s, _ := value.(string)
	return s
}
