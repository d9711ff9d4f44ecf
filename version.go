package packager

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

// Tuple is the normalized 4-component form of the application version, as
// the version-resource format requires. Build has no source concept behind
// it and is always zero.
type Tuple struct {
	Major int
	Minor int
	Patch int
	Build int
}

// String renders the dotted MAJOR.MINOR.PATCH form. The synthetic build
// component is never shown.
func (t Tuple) String() string {
	return fmt.Sprintf("%d.%d.%d", t.Major, t.Minor, t.Patch)
}

// ExtractVersion scans the constants source at path for the first line
// declaring key as a quoted string literal and returns the unquoted,
// whitespace-trimmed value. Later declarations of the same key are ignored.
func ExtractVersion(path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(ErrSourceFileUnreadable, "open %s: %v", path, err)
	}
	defer f.Close()

	// APP_VER = "1.2.3" or APP_VER = '1.2.3', anywhere in the file.
	decl := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(key) + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := decl.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		value := m[1]
		if value == "" {
			value = m[2]
		}
		return strings.TrimSpace(value), nil
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(ErrSourceFileUnreadable, "read %s: %v", path, err)
	}
	return "", errors.Wrapf(ErrVersionDeclarationNotFound, "no %s declaration in %s", key, path)
}

// IsCanonical reports whether raw is a plain MAJOR.MINOR.PATCH semantic
// version. Normalization accepts more shapes than this; the pipeline only
// uses it to warn about drifting declarations.
func IsCanonical(raw string) bool {
	v := "v" + raw
	return semver.IsValid(v) && semver.Canonical(v) == v && semver.Prerelease(v) == ""
}

// ParseTuple normalizes raw into a Tuple. The string is split on ".";
// missing trailing components are zero, components past the third are
// discarded, and Build is always zero. Every component must be a
// non-negative integer, so an empty string (one empty component) fails
// with ErrInvalidVersionComponent rather than normalizing to 0.0.0.
func ParseTuple(raw string) (Tuple, error) {
	var parts [3]int
	for i, s := range strings.Split(raw, ".") {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return Tuple{}, errors.Wrapf(ErrInvalidVersionComponent, "component %d of %q", i+1, raw)
		}
		if i < len(parts) {
			parts[i] = n
		}
	}
	return Tuple{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}
