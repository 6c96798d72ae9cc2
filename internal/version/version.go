// Package version provides parsing and ordering of the target CLI version
// numbers. Versions follow semantic versioning: a version carrying a
// prerelease suffix sorts strictly before the same numeric version without
// one (0.57.0-alpha.2 < 0.57.0).
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// reToken matches a version number with an optional 'v' prefix and an
// optional prerelease suffix, anywhere inside a larger string.
var reToken = regexp.MustCompile(`v?\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z][0-9A-Za-z.-]*)?`)

// Version is a parsed semantic version.
type Version struct {
	v *semver.Version
}

// Parse reads a version from a string like "0.63.0", "v0.63.0" or
// "0.57.0-alpha.2".
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("cannot parse version %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// Extract finds the first version token inside free-form text, typically the
// output of a --version flag ("codex-cli 0.63.0"). It returns false when no
// parseable version is present.
func Extract(text string) (Version, bool) {
	token := reToken.FindString(text)
	if token == "" {
		return Version{}, false
	}
	v, err := Parse(token)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// IsZero reports whether the version was never set.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Prerelease returns the prerelease suffix, empty for a stable version.
func (v Version) Prerelease() string {
	if v.v == nil {
		return ""
	}
	return v.v.Prerelease()
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Compare returns -1, 0 or 1 when v is older than, equal to, or newer than
// other. An unset version compares older than any set version.
func (v Version) Compare(other Version) int {
	if v.v == nil || other.v == nil {
		switch {
		case v.v == other.v:
			return 0
		case v.v == nil:
			return -1
		default:
			return 1
		}
	}
	return v.v.Compare(other.v)
}

// Equal tests if two versions are equal to each other.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// LessThan tests if one version is less than another one.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan tests if one version is greater than another one.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}
