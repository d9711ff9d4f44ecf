package packager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixedcropper/packager"
)

func writeConstants(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constants.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseTuple(t *testing.T) {
	for _, tt := range []struct {
		raw  string
		want packager.Tuple
	}{
		{"1.2.3", packager.Tuple{Major: 1, Minor: 2, Patch: 3}},
		{"2.3.10", packager.Tuple{Major: 2, Minor: 3, Patch: 10}},
		{"0.0.0", packager.Tuple{}},
		{"1.2", packager.Tuple{Major: 1, Minor: 2}},
		{"1", packager.Tuple{Major: 1}},
		{"1.2.3.4", packager.Tuple{Major: 1, Minor: 2, Patch: 3}},
		{"1.2.3.4.5", packager.Tuple{Major: 1, Minor: 2, Patch: 3}},
	} {
		got, err := packager.ParseTuple(tt.raw)
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
		assert.Zero(t, got.Build, "raw %q", tt.raw)
	}
}

func TestParseTuple_InvalidComponent(t *testing.T) {
	for _, raw := range []string{
		"",
		"1.x.3",
		"1..3",
		"a.b.c",
		"-1.2.3",
		"1.-2.3",
		"1.2.3-beta",
		"1.2.3+build123",
		"1.2.3.x", // every component is converted before truncation
		" 1.2.3",
	} {
		_, err := packager.ParseTuple(raw)
		require.Error(t, err, "raw %q", raw)
		assert.Equal(t, packager.ErrInvalidVersionComponent, errors.Cause(err), "raw %q", raw)
	}
}

func TestTupleString(t *testing.T) {
	// the synthetic build component never shows up in string form
	assert.Equal(t, "2.3.10", packager.Tuple{Major: 2, Minor: 3, Patch: 10}.String())
	assert.Equal(t, "0.0.0", packager.Tuple{}.String())
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, packager.IsCanonical("1.2.3"))
	assert.True(t, packager.IsCanonical("0.0.1"))
	assert.False(t, packager.IsCanonical("1.2"))
	assert.False(t, packager.IsCanonical("1.2.3.4"))
	assert.False(t, packager.IsCanonical("1.2.3-beta"))
}

func TestExtractVersion_FirstMatchWins(t *testing.T) {
	path := writeConstants(t, `APP_NAME = "FixedCropper"
APP_VER = "2.3.10"
APP_VER = "9.9.9"
`)
	got, err := packager.ExtractVersion(path, "APP_VER")
	require.NoError(t, err)
	assert.Equal(t, "2.3.10", got)
}

func TestExtractVersion_SingleQuotes(t *testing.T) {
	path := writeConstants(t, "APP_VER = '1.0.0'\n")
	got, err := packager.ExtractVersion(path, "APP_VER")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got)
}

func TestExtractVersion_TrimsValue(t *testing.T) {
	path := writeConstants(t, "APP_VER=\" 1.2.3 \"\n")
	got, err := packager.ExtractVersion(path, "APP_VER")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

func TestExtractVersion_KeyIsNotAPrefixMatch(t *testing.T) {
	path := writeConstants(t, `APP_VERSION = "9.9.9"
APP_VER = "1.2.3"
`)
	got, err := packager.ExtractVersion(path, "APP_VER")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

func TestExtractVersion_NotFound(t *testing.T) {
	path := writeConstants(t, "APP_NAME = \"FixedCropper\"\n")
	_, err := packager.ExtractVersion(path, "APP_VER")
	require.Error(t, err)
	assert.Equal(t, packager.ErrVersionDeclarationNotFound, errors.Cause(err))
}

func TestExtractVersion_Unreadable(t *testing.T) {
	_, err := packager.ExtractVersion(filepath.Join(t.TempDir(), "missing.py"), "APP_VER")
	require.Error(t, err)
	assert.Equal(t, packager.ErrSourceFileUnreadable, errors.Cause(err))
}
