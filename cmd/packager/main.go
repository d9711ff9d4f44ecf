// Package main is the packager CLI entrypoint.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/kit/env"
	"github.com/kolide/kit/version"
	"github.com/pkg/errors"

	"github.com/fixedcropper/packager"
)

func runVersion(args []string) error {
	version.PrintFull()
	return nil
}

func newLogger(debug bool) log.Logger {
	logger := log.NewJSONLogger(os.Stderr)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)

	if debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	return logger
}

func runBuild(args []string) error {
	flagset := flag.NewFlagSet("build", flag.ExitOnError)
	var (
		flDebug = flagset.Bool(
			"debug",
			false,
			"enable debug logging",
		)
		flWorkDir = flagset.String(
			"workdir",
			env.String("PACKAGER_WORKDIR", "."),
			"the application source directory to package from",
		)
		flPyInstaller = flagset.String(
			"pyinstaller",
			env.String("PACKAGER_PYINSTALLER", "pyinstaller"),
			"the packaging tool binary to invoke",
		)
	)

	flagset.Usage = usageFor(flagset, "packager build [flags]")
	if err := flagset.Parse(args); err != nil {
		return err
	}

	logger := newLogger(*flDebug)

	cfg := packager.DefaultConfig()
	cfg.WorkDir = *flWorkDir
	cfg.PyInstaller = *flPyInstaller

	if err := packager.Run(logger, cfg); err != nil {
		return err
	}

	logger.Log("msg", "package build complete", "output", cfg.OutputPath())
	return nil
}

func runClean(args []string) error {
	flagset := flag.NewFlagSet("clean", flag.ExitOnError)
	var (
		flDebug = flagset.Bool(
			"debug",
			false,
			"enable debug logging",
		)
		flWorkDir = flagset.String(
			"workdir",
			env.String("PACKAGER_WORKDIR", "."),
			"the application source directory to clean",
		)
	)

	flagset.Usage = usageFor(flagset, "packager clean [flags]")
	if err := flagset.Parse(args); err != nil {
		return err
	}

	logger := newLogger(*flDebug)

	cfg := packager.DefaultConfig()
	cfg.WorkDir = *flWorkDir

	if err := packager.Reset(cfg); err != nil {
		return errors.Wrap(err, "could not clean workspace")
	}

	logger.Log("msg", "workspace cleaned", "workdir", cfg.WorkDir)
	return nil
}

func runAppVersion(args []string) error {
	flagset := flag.NewFlagSet("app-version", flag.ExitOnError)
	flWorkDir := flagset.String(
		"workdir",
		env.String("PACKAGER_WORKDIR", "."),
		"the application source directory to read the version from",
	)

	flagset.Usage = usageFor(flagset, "packager app-version [flags]")
	if err := flagset.Parse(args); err != nil {
		return err
	}

	cfg := packager.DefaultConfig()
	cfg.WorkDir = *flWorkDir

	raw, err := packager.ExtractVersion(
		filepath.Join(cfg.WorkDir, cfg.ConstantsPath), cfg.VersionKey)
	if err != nil {
		return errors.Wrap(err, "could not extract version")
	}

	tuple, err := packager.ParseTuple(raw)
	if err != nil {
		return errors.Wrap(err, "could not normalize version")
	}

	fmt.Printf("%s (resource %d.%d.%d.%d)\n", tuple, tuple.Major, tuple.Minor, tuple.Patch, tuple.Build)
	return nil
}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "USAGE\n")
	fmt.Fprintf(os.Stderr, "  %s <mode> --help\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "MODES\n")
	fmt.Fprintf(os.Stderr, "  build        Package the application into a single-file executable\n")
	fmt.Fprintf(os.Stderr, "  clean        Remove previous build artifacts\n")
	fmt.Fprintf(os.Stderr, "  app-version  Print the declared and normalized application version\n")
	fmt.Fprintf(os.Stderr, "  version      Print full version information\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "VERSION\n")
	fmt.Fprintf(os.Stderr, "  %s\n", version.Version().Version)
	fmt.Fprintf(os.Stderr, "\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var run func([]string) error
	switch strings.ToLower(os.Args[1]) {
	case "version":
		run = runVersion
	case "build":
		run = runBuild
	case "clean":
		run = runClean
	case "app-version":
		run = runAppVersion
	default:
		usage()
		os.Exit(1)
	}

	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
