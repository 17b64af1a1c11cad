package wpstep

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/felixgeelhaar/wpsetup/internal/domain/config"
	"github.com/felixgeelhaar/wpsetup/internal/domain/steps"
	"github.com/felixgeelhaar/wpsetup/internal/ports"
)

// DropinsName is the name of the dropin publishing step.
const DropinsName = "dropins"

// allowedDropins are the file names WordPress actually loads from the
// content directory. Anything else configured as a dropin would sit there
// inert, so it is refused.
var allowedDropins = map[string]bool{
	"advanced-cache.php":      true,
	"db.php":                  true,
	"db-error.php":            true,
	"install.php":             true,
	"maintenance.php":         true,
	"object-cache.php":        true,
	"sunrise.php":             true,
	"fatal-error-handler.php": true,
	"php-error.php":           true,
}

// Dropins copies configured dropin files into the content directory. URL
// sources are skipped because wpsetup works offline; unknown dropin names
// are skipped with a warning.
type Dropins struct{}

func (s *Dropins) Name() string {
	return DropinsName
}

func (s *Dropins) Run(ctx context.Context, rc *steps.RunContext) error {
	result := rc.Config.Get(config.KeyDropins)
	if result.IsNone() {
		rc.Logger.Debug(ctx, "no dropins configured")
		return nil
	}
	value, err := result.Unwrap()
	if err != nil {
		return fmt.Errorf("invalid dropins setting: %w", err)
	}
	configured, ok := value.(map[string]string)
	if !ok {
		return fmt.Errorf("unusable dropins setting of type %T", value)
	}

	names := make([]string, 0, len(configured))
	for name := range configured {
		names = append(names, name)
	}
	sort.Strings(names)

	var failures []error
	for _, name := range names {
		source := configured[name]
		switch {
		case !allowedDropins[name]:
			rc.Logger.Warn(ctx, "not a WordPress dropin file, skipping",
				ports.F("name", name))
		case isURL(source):
			rc.Logger.Warn(ctx, "dropin URL sources are not supported, skipping",
				ports.F("name", name), ports.F("source", source))
		default:
			if err := s.publish(ctx, rc, name, source); err != nil {
				failures = append(failures, err)
			}
		}
	}
	return errors.Join(failures...)
}

func (s *Dropins) publish(ctx context.Context, rc *steps.RunContext, name, source string) error {
	if !filepath.IsAbs(source) && !rc.FS.Exists(source) {
		source = filepath.Join(rc.Root, source)
	}
	target := filepath.Join(contentDir(rc), name)
	if err := rc.FS.CopyFile(source, target); err != nil {
		return fmt.Errorf("publishing dropin %s: %w", name, err)
	}
	rc.Logger.Info(ctx, "published dropin",
		ports.F("name", name), ports.F("path", target))
	return nil
}
