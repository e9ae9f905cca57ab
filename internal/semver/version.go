package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalid indicates a string is not valid semantic-version syntax
var ErrInvalid = errors.New("invalid semantic version")

// Bump kinds understood by Bump
const (
	BumpMajor      = "major"
	BumpMinor      = "minor"
	BumpPatch      = "patch"
	BumpPrerelease = "prerelease"
)

// Kinds lists the accepted bump kinds in CLI order
var Kinds = []string{BumpMajor, BumpMinor, BumpPatch, BumpPrerelease}

// ErrUnknownKind indicates an unrecognized bump kind
var ErrUnknownKind = errors.New("unknown bump kind")

// Version is an immutable semantic version value
type Version struct {
	v semver.Version
}

// Parse parses a strict semantic version string (no "v" prefix)
func Parse(s string) (Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Version{v: *v}, nil
}

// MustParse parses s and panics on failure. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical string form
func (v Version) String() string {
	return v.v.String()
}

// Major returns the major component
func (v Version) Major() uint64 { return v.v.Major() }

// Minor returns the minor component
func (v Version) Minor() uint64 { return v.v.Minor() }

// Patch returns the patch component
func (v Version) Patch() uint64 { return v.v.Patch() }

// Prerelease returns the prerelease label, or ""
func (v Version) Prerelease() string { return v.v.Prerelease() }

// Compare returns -1, 0, or 1 per semantic-version ordering
func (v Version) Compare(o Version) int {
	return v.v.Compare(&o.v)
}

// GreaterThan reports whether v orders strictly after o
func (v Version) GreaterThan(o Version) bool {
	return v.Compare(o) > 0
}

// TagString returns the version as a release tag with the given prefix
func (v Version) TagString(prefix string) string {
	return prefix + v.String()
}

// IncMajor returns the next major version, resetting minor and patch
func (v Version) IncMajor() Version {
	return Version{v: v.v.IncMajor()}
}

// IncMinor returns the next minor version, resetting patch
func (v Version) IncMinor() Version {
	return Version{v: v.v.IncMinor()}
}

// IncPatch returns the next patch version
func (v Version) IncPatch() Version {
	return Version{v: v.v.IncPatch()}
}

// IncPrerelease returns the next prerelease version. A release version
// gets its patch bumped and a numeric prerelease counter appended
// (1.2.3 -> 1.2.4-0); an existing numeric counter is incremented
// (1.2.4-0 -> 1.2.4-1); a non-numeric label gets a counter appended
// (1.2.4-beta -> 1.2.4-beta.0).
func (v Version) IncPrerelease() (Version, error) {
	pre := v.v.Prerelease()
	if pre == "" {
		next, err := v.v.IncPatch().SetPrerelease("0")
		if err != nil {
			return Version{}, err
		}
		return Version{v: next}, nil
	}

	parts := strings.Split(pre, ".")
	last := parts[len(parts)-1]
	if n, err := strconv.ParseUint(last, 10, 64); err == nil {
		parts[len(parts)-1] = strconv.FormatUint(n+1, 10)
	} else {
		parts = append(parts, "0")
	}

	next, err := v.v.SetPrerelease(strings.Join(parts, "."))
	if err != nil {
		return Version{}, err
	}
	return Version{v: next}, nil
}

// Bump returns the version incremented by the given kind
func (v Version) Bump(kind string) (Version, error) {
	switch kind {
	case BumpMajor:
		return v.IncMajor(), nil
	case BumpMinor:
		return v.IncMinor(), nil
	case BumpPatch:
		return v.IncPatch(), nil
	case BumpPrerelease:
		return v.IncPrerelease()
	default:
		return Version{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// IsKind reports whether kind is a recognized bump kind
func IsKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
