package wpstep

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// CheckPathsName is the name of the path verification step.
const CheckPathsName = "check-paths"

// CheckPaths verifies the project layout before anything else runs: the
// project root must be a directory, configured directories must resolve,
// and the content directory is created when missing.
type CheckPaths struct{}

func (s *CheckPaths) Name() string {
	return CheckPathsName
}

func (s *CheckPaths) Run(ctx context.Context, rc *steps.RunContext) error {
	if !rc.FS.IsDir(rc.Root) {
		return fmt.Errorf("project root %s is not a directory", rc.Root)
	}

	if envDir := rc.Config.Get(config.KeyEnvDir); envDir.IsErr() {
		return fmt.Errorf("configured env directory does not exist: %w", envDir.ErrCause())
	}

	if dir := configString(rc.Config, config.KeyContentDevDir); dir != "" {
		if !rc.FS.IsDir(filepath.Join(rc.Root, dir)) {
			rc.Logger.Warn(ctx, "configured content dev directory does not exist",
				ports.F("dir", dir))
		}
	}

	content := contentDir(rc)
	if !rc.FS.Exists(content) {
		if err := rc.FS.MkdirAll(content, 0o755); err != nil {
			return fmt.Errorf("creating content directory %s: %w", content, err)
		}
		rc.Logger.Info(ctx, "created content directory", ports.F("path", content))
	}

	return nil
}
