package packager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixedcropper/packager"
)

func TestReset(t *testing.T) {
	cfg := packager.DefaultConfig()
	cfg.WorkDir = t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(cfg.WorkDir, "build", "FixedCropper"), packager.DirMode))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.WorkDir, "dist"), packager.DirMode))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WorkDir, "FixedCropper.spec"), []byte("# stale"), packager.FileMode))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WorkDir, "version_info.txt"), []byte("# stale"), packager.FileMode))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.WorkDir, "app.py"), []byte("print()"), packager.FileMode))

	require.NoError(t, packager.Reset(cfg))

	assert.NoDirExists(t, filepath.Join(cfg.WorkDir, "build"))
	assert.NoDirExists(t, filepath.Join(cfg.WorkDir, "dist"))
	assert.NoFileExists(t, filepath.Join(cfg.WorkDir, "FixedCropper.spec"))
	assert.NoFileExists(t, filepath.Join(cfg.WorkDir, "version_info.txt"))

	// application source is untouched
	assert.FileExists(t, filepath.Join(cfg.WorkDir, "app.py"))
}

func TestReset_Idempotent(t *testing.T) {
	cfg := packager.DefaultConfig()
	cfg.WorkDir = t.TempDir()

	// two resets on an already-clean workspace: no error, no change
	require.NoError(t, packager.Reset(cfg))
	require.NoError(t, packager.Reset(cfg))

	entries, err := os.ReadDir(cfg.WorkDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
