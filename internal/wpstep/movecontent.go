package wpstep

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// MoveContentName is the name of the content moving step.
const MoveContentName = "move-content"

// wpPackageDir is where the WordPress package lands under the project root.
const wpPackageDir = "wordpress"

// contentSubdirs are the wp-content children worth moving or publishing.
var contentSubdirs = []string{"plugins", "themes", "mu-plugins", "languages"}

// MoveContent relocates the wp-content shipped inside the WordPress
// package into the project's own content directory. Disabled unless the
// move-content setting is true.
type MoveContent struct{}

func (s *MoveContent) Name() string {
	return MoveContentName
}

func (s *MoveContent) Run(ctx context.Context, rc *steps.RunContext) error {
	if !configBool(rc.Config, config.KeyMoveContent, false) {
		rc.Logger.Debug(ctx, "content moving disabled")
		return nil
	}

	source := filepath.Join(rc.Root, wpPackageDir, ContentDirName)
	if !rc.FS.IsDir(source) {
		rc.Logger.Debug(ctx, "no packaged content directory to move",
			ports.F("path", source))
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
			rc.Logger.Debug(ctx, "target already present, not moving",
				ports.F("path", to))
			continue
		}
		if err := rc.FS.Rename(from, to); err != nil {
			return fmt.Errorf("moving %s: %w", from, err)
		}
		rc.Logger.Info(ctx, "moved content", ports.F("from", from), ports.F("to", to))
	}
	return nil
}
