// Package version reports the multiwatch release and compares versions
// announced by other instances.
package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
)

// Version is the release version. Overridden at build time with
//
//	-ldflags "-X github.com/multiwatch/multiwatch-go/pkg/version.Version=1.2.3"
var Version = "0.1.0"

// Release is a parsed "major.minor.patch" version.
type Release struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses "major.minor.patch". A leading "v" and a "-suffix" are
// accepted and ignored.
func Parse(s string) (Release, error) {
	trimmed := strings.TrimPrefix(s, "v")
	trimmed, _, _ = strings.Cut(trimmed, "-")

	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return Release{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil || p == "" {
			return Release{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = uint16(n)
	}
	return Release{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns "major.minor.patch".
func (r Release) String() string {
	return fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
}

// Compatible reports whether other shares the storage format, which only
// changes with the major version.
func (r Release) Compatible(other Release) bool {
	return r.Major == other.Major
}

// Current returns the parsed Version. An unparseable Version yields 0.0.0.
func Current() Release {
	r, _ := Parse(Version)
	return r
}

// String returns Version plus the VCS revision when the binary carries one.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return Version + " (" + s.Value[:7] + ")"
		}
	}
	return Version
}
