package packager

import (
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

// Run executes the packaging pipeline: reset the workspace, extract and
// normalize the declared application version, write the version-resource
// descriptor, and drive the packaging tool. Stages run strictly in order
// and the first failure aborts the run; nothing is retried.
func Run(logger log.Logger, cfg Config) error {
	if err := Reset(cfg); err != nil {
		return errors.Wrap(err, "reset workspace")
	}
	level.Debug(logger).Log("msg", "workspace reset", "build", cfg.buildDir(), "dist", cfg.distDir())

	raw, err := ExtractVersion(cfg.constantsPath(), cfg.VersionKey)
	if err != nil {
		return errors.Wrap(err, "extract version")
	}
	if !IsCanonical(raw) {
		level.Warn(logger).Log("msg", "declared version is not canonical MAJOR.MINOR.PATCH", "declared", raw)
	}

	tuple, err := ParseTuple(raw)
	if err != nil {
		return errors.Wrap(err, "normalize version")
	}
	level.Info(logger).Log("msg", "resolved application version", "declared", raw, "normalized", tuple.String())

	// Fail before packaging if the icon is missing; the tool only reports
	// it deep into the build otherwise.
	if _, err := os.Stat(cfg.iconPath()); err != nil {
		return errors.Wrapf(err, "icon %s", cfg.iconPath())
	}

	if err := WriteDescriptor(cfg.descriptorPath(), BuildVersionInfo(tuple, cfg)); err != nil {
		return errors.Wrap(err, "write descriptor")
	}
	level.Debug(logger).Log("msg", "descriptor written", "path", cfg.descriptorPath())

	if err := BuildPackage(logger, cfg, cfg.DescriptorPath); err != nil {
		return errors.Wrap(err, "build package")
	}
	return nil
}
