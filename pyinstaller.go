package packager

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

// dataSeparator is the packaging tool's --add-data source/destination
// separator: the platform path-list separator, ";" on Windows and ":"
// everywhere else.
func dataSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// BuildArgs returns the fixed packaging tool argument list: single-file
// windowed output, clean rebuild, stripped symbols, the excluded stdlib
// modules, the embedded icon and version resource, and the icon bundled
// again as runtime data so the application can load it after unpacking.
// All paths are relative to the work directory the tool runs in.
func BuildArgs(cfg Config, descriptorPath string) []string {
	args := []string{
		"--noconfirm",
		"--onefile",
		"--windowed",
		"--clean",
		"--strip",
	}
	for _, mod := range cfg.ExcludedModules {
		args = append(args, "--exclude-module", mod)
	}
	args = append(args,
		"--name", cfg.AppName,
		"--icon", cfg.IconPath,
		"--version-file", descriptorPath,
		"--add-data", cfg.IconPath+dataSeparator()+cfg.IconBundleDest,
		cfg.EntryScript,
	)
	return args
}

// BuildPackage invokes the packaging tool and waits for it to finish. The
// build succeeds only when the tool exits zero and the declared executable
// exists under the output directory; any other outcome is a
// *PackagingError carrying the tool's combined output. Failures are not
// retried: packaging failures are deterministic, so a retry would just
// reproduce them.
func BuildPackage(logger log.Logger, cfg Config, descriptorPath string) error {
	args := BuildArgs(cfg, descriptorPath)
	level.Debug(logger).Log(
		"msg", "invoking packaging tool",
		"tool", cfg.PyInstaller,
		"args", strings.Join(args, " "),
	)

	cmd := exec.Command(cfg.PyInstaller, args...)
	cmd.Dir = cfg.WorkDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		perr := &PackagingError{Tool: cfg.PyInstaller, ExitCode: -1, Output: string(output)}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			perr.ExitCode = exitErr.ExitCode()
		} else {
			perr.Output = err.Error()
		}
		return perr
	}

	if _, err := os.Stat(cfg.OutputPath()); err != nil {
		return &PackagingError{
			Tool:     cfg.PyInstaller,
			ExitCode: 0,
			Output:   fmt.Sprintf("expected output %s missing after packaging:\n%s", cfg.OutputPath(), output),
		}
	}

	level.Info(logger).Log("msg", "packaging complete", "output", cfg.OutputPath())
	return nil
}
