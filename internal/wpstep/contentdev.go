package wpstep

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// PublishContentDevName is the name of the content dev publishing step.
const PublishContentDevName = "publish-content-dev"

// DefaultContentDevDir is the source directory used when content-dev-dir is
// not configured.
const DefaultContentDevDir = "content-dev"

// PublishContentDev symlinks the project's own themes, plugins and
// mu-plugins from the content dev directory into wp-content, so they live
// in version control but load like installed ones. The content-dev-op
// setting turns the step off when false; "ask" falls back to publishing
// since wpsetup runs non-interactively.
type PublishContentDev struct{}

func (s *PublishContentDev) Name() string {
	return PublishContentDevName
}

func (s *PublishContentDev) Run(ctx context.Context, rc *steps.RunContext) error {
	if !configBool(rc.Config, config.KeyContentDevOp, true) {
		rc.Logger.Debug(ctx, "content dev publishing disabled")
		return nil
	}

	dir := configString(rc.Config, config.KeyContentDevDir)
	if dir == "" {
		dir = DefaultContentDevDir
	}
	source := filepath.Join(rc.Root, dir)
	if !rc.FS.IsDir(source) {
		rc.Logger.Debug(ctx, "no content dev directory", ports.F("path", source))
		return nil
	}

	target := contentDir(rc)
	for _, sub := range contentSubdirs {
		from := filepath.Join(source, sub)
		if !rc.FS.IsDir(from) {
			continue
		}
		to := filepath.Join(target, sub)
		if rc.FS.Exists(to) {
			rc.Logger.Debug(ctx, "target already present, not linking",
				ports.F("path", to))
			continue
		}
		if err := rc.FS.CreateSymlink(from, to); err != nil {
			return fmt.Errorf("linking %s: %w", from, err)
		}
		rc.Logger.Info(ctx, "published content dev folder",
			ports.F("from", from), ports.F("to", to))
	}
	return nil
}
