package wpstep

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/domain/validate"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// BuildEnvExampleName is the name of the env file scaffolding step.
const BuildEnvExampleName = "build-env-example"

// EnvExampleFileName is the file the step writes.
const EnvExampleFileName = ".env.example"

// defaultEnvTemplate is the scaffold written when no source file is
// configured. It lists the settings a WordPress install reads from the
// environment.
const defaultEnvTemplate = `DB_NAME=
DB_USER=
DB_PASSWORD=
DB_HOST=localhost
DB_TABLE_PREFIX=wp_

WP_ENV=development
WP_HOME=
WP_SITEURL=
`

// BuildEnvExample writes the .env.example file. The env-example setting
// decides the source: true scaffolds the default template, a path copies an
// existing file, false disables the step. The "ask" sentinel and URL
// sources are skipped: wpsetup runs non-interactively and offline.
type BuildEnvExample struct{}

func (s *BuildEnvExample) Name() string {
	return BuildEnvExampleName
}

func (s *BuildEnvExample) Run(ctx context.Context, rc *steps.RunContext) error {
	target := filepath.Join(s.targetDir(rc), EnvExampleFileName)
	if rc.FS.Exists(target) {
		rc.Logger.Debug(ctx, "env example already exists, leaving it alone",
			ports.F("path", target))
		return nil
	}

	// An absent setting means "scaffold the default template".
	result := rc.Config.Get(config.KeyEnvExample)
	if result.IsNone() {
		return s.writeTemplate(ctx, rc, target)
	}
	setting, err := result.Unwrap()
	if err != nil {
		return fmt.Errorf("invalid env-example setting: %w", err)
	}

	switch value := setting.(type) {
	case bool:
		if !value {
			rc.Logger.Debug(ctx, "env example disabled in config")
			return nil
		}
		return s.writeTemplate(ctx, rc, target)
	case string:
		if value == validate.Ask {
			rc.Logger.Info(ctx, "env-example is set to \"ask\" but wpsetup runs non-interactively, skipping")
			return nil
		}
		if isURL(value) {
			rc.Logger.Warn(ctx, "env-example URL sources are not supported, skipping",
				ports.F("source", value))
			return nil
		}
		return s.copySource(ctx, rc, value, target)
	default:
		return fmt.Errorf("unusable env-example setting of type %T", setting)
	}
}

func (s *BuildEnvExample) targetDir(rc *steps.RunContext) string {
	if dir := configString(rc.Config, config.KeyEnvDir); dir != "" {
		return dir
	}
	return rc.Root
}

func (s *BuildEnvExample) writeTemplate(ctx context.Context, rc *steps.RunContext, target string) error {
	if err := rc.FS.WriteFile(target, []byte(defaultEnvTemplate), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	rc.Logger.Info(ctx, "created env example", ports.F("path", target))
	return nil
}

func (s *BuildEnvExample) copySource(ctx context.Context, rc *steps.RunContext, source, target string) error {
	if !filepath.IsAbs(source) && !rc.FS.Exists(source) {
		source = filepath.Join(rc.Root, source)
	}
	if err := rc.FS.CopyFile(source, target); err != nil {
		return fmt.Errorf("copying env example from %s: %w", source, err)
	}
	rc.Logger.Info(ctx, "copied env example",
		ports.F("source", source), ports.F("path", target))
	return nil
}

// isURL distinguishes the URL branch of the env-example setting from the
// path branch after validation has flattened both to a string.
func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}
