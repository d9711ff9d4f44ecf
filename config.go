package packager

import (
	"path/filepath"
	"runtime"

	"github.com/kolide/kit/env"
)

// Filesystem modes for everything the pipeline creates.
const (
	DirMode  = 0755
	FileMode = 0644
)

// Config carries the whole build-process state: where the application
// source lives, where artifacts go, which tool to invoke, and the fixed
// metadata embedded into the executable. It is threaded explicitly through
// every stage so the stages stay independently testable.
type Config struct {
	// WorkDir is the application source checkout the packager operates in.
	// All relative paths below are resolved against it, and the packaging
	// tool runs with it as working directory.
	WorkDir string

	// ConstantsPath is the source file holding the version declaration.
	ConstantsPath string

	// VersionKey is the declaration key scanned for in ConstantsPath.
	VersionKey string

	// EntryScript is the application entry point handed to the packaging tool.
	EntryScript string

	// AppName is the output binary base name.
	AppName string

	// IconPath is the application icon. It is embedded into the executable
	// and bundled again as runtime data so the running application can load
	// it from the unpacked tree at IconBundleDest.
	IconPath       string
	IconBundleDest string

	// DescriptorPath is where the rendered version-resource descriptor goes.
	DescriptorPath string

	// BuildDir and DistDir are the packaging tool's scratch and output
	// directories.
	BuildDir string
	DistDir  string

	// PyInstaller is the packaging tool binary to invoke.
	PyInstaller string

	// ExcludedModules are stdlib modules the packaging tool must not bundle.
	ExcludedModules []string

	// Fixed resource metadata.
	CompanyName     string
	FileDescription string
	InternalName    string
	LegalCopyright  string
	ProductName     string
}

// DefaultConfig returns the FixedCropper build configuration. The work
// directory and the tool binary honor env overrides for CI use.
func DefaultConfig() Config {
	return Config{
		WorkDir:         env.String("PACKAGER_WORKDIR", "."),
		ConstantsPath:   filepath.Join("fixed_cropper", "constants.py"),
		VersionKey:      "APP_VER",
		EntryScript:     "app.py",
		AppName:         "FixedCropper",
		IconPath:        filepath.Join("fixed_cropper", "resources", "icon.ico"),
		IconBundleDest:  filepath.Join("fixed_cropper", "resources"),
		DescriptorPath:  "version_info.txt",
		BuildDir:        "build",
		DistDir:         "dist",
		PyInstaller:     env.String("PACKAGER_PYINSTALLER", "pyinstaller"),
		ExcludedModules: []string{"tkinter", "unittest", "pydoc"},
		CompanyName:     "FixedCropper Project",
		FileDescription: "FixedCropper fixed-frame image cropping tool",
		InternalName:    "FixedCropper",
		LegalCopyright:  "Copyright (c) 2025 FixedCropper Project",
		ProductName:     "FixedCropper",
	}
}

// OutputName is the executable file name the packaging tool produces on
// this platform.
func (c Config) OutputName() string {
	if runtime.GOOS == "windows" {
		return c.AppName + ".exe"
	}
	return c.AppName
}

// OutputPath is the expected location of the packaged executable.
func (c Config) OutputPath() string {
	return filepath.Join(c.WorkDir, c.DistDir, c.OutputName())
}

func (c Config) constantsPath() string  { return filepath.Join(c.WorkDir, c.ConstantsPath) }
func (c Config) descriptorPath() string { return filepath.Join(c.WorkDir, c.DescriptorPath) }
func (c Config) iconPath() string       { return filepath.Join(c.WorkDir, c.IconPath) }
func (c Config) buildDir() string       { return filepath.Join(c.WorkDir, c.BuildDir) }
func (c Config) distDir() string        { return filepath.Join(c.WorkDir, c.DistDir) }
