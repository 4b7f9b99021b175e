// Package version implements prng-suite software and data format versioning.
package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Version is a semantic version.
type Version struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
	Patch uint16 `json:"patch"`
}

// String returns the version as a string.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MajorMinor extracts major and minor segments of the Version only.
func (v Version) MajorMinor() Version {
	return Version{
		Major: v.Major,
		Minor: v.Minor,
	}
}

// VersionUndefined is the software version reported when it is unknown.
const VersionUndefined = "0.0-unset"

var (
	// SoftwareVersion represents the software version, set at build time
	// via -ldflags "-X github.com/oasisprotocol/prng-suite/common/version.SoftwareVersion=...".
	SoftwareVersion = VersionUndefined

	// HistoryFormat versions the persisted history record layout.
	//
	// NOTE: Records with a different major version are not readable.
	HistoryFormat = Version{Major: 1, Minor: 0, Patch: 0}
)

func init() {
	if SoftwareVersion != VersionUndefined {
		return
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if v, err := ParseSemVer(bi.Main.Version); err == nil {
			SoftwareVersion = v.String()
		}
	}
}

// ParseSemVer parses a "MAJOR.MINOR.PATCH" version with an optional leading
// "v" and ignoring any pre-release or build suffix.
func ParseSemVer(s string) (Version, error) {
	s = strings.TrimPrefix(s, "v")
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}

	split := strings.Split(s, ".")
	if len(split) != 3 {
		return Version{}, fmt.Errorf("version: malformed semver '%s'", s)
	}

	var semVers [3]uint16
	for i, v := range split {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return Version{}, fmt.Errorf("version: failed to parse semver: %w", err)
		}
		semVers[i] = uint16(n)
	}
	return Version{Major: semVers[0], Minor: semVers[1], Patch: semVers[2]}, nil
}
