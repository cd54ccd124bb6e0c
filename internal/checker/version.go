package checker

import (
	"fmt"
	"regexp"
	"strconv"
)

// Version is a parsed major.minor[.patch] release.
type Version struct {
	Major, Minor, Patch int
}

// Components may be separated by '.' or '/' (ROOT prints 5.34/36). Recent
// compilers print a bare major number for -dumpversion.
var versionPattern = regexp.MustCompile(`(\d+)(?:[./](\d+))?(?:[./](\d+))?`)

// ParseVersion extracts the first version-looking substring of s.
func ParseVersion(s string) (Version, bool) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false
	}
	var v Version
	v.Major, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		v.Minor, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	return v, true
}

// AtLeast compares major and minor components only.
func (v Version) AtLeast(min Version) bool {
	if v.Major != min.Major {
		return v.Major > min.Major
	}
	return v.Minor >= min.Minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Minimum releases.
var (
	MinROOT     = Version{Major: 5, Minor: 27}
	MinGfortran = Version{Major: 4, Minor: 4}
)
