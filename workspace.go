package packager

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Reset removes the previous build's artifacts: the packaging tool's
// scratch and output directories, the stale version-resource descriptor,
// and any residual .spec files the tool left in the work directory.
// Absent paths are not an error, so resetting an already-clean tree is a
// no-op.
func Reset(cfg Config) error {
	for _, dir := range []string{cfg.buildDir(), cfg.distDir()} {
		if err := os.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, "remove %s", dir)
		}
	}

	if err := os.Remove(cfg.descriptorPath()); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", cfg.descriptorPath())
	}

	stale, err := filepath.Glob(filepath.Join(cfg.WorkDir, "*.spec"))
	if err != nil {
		return errors.Wrap(err, "glob stale spec files")
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "remove %s", path)
		}
	}
	return nil
}
