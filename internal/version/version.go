// Package version reports the build version. Release builds override Version
// with -ldflags "-X episcore/internal/version.Version=v1.2.3".
package version

import "golang.org/x/mod/semver"

// Version is the raw build version.
var Version = "v0.1.0"

// String returns Version in canonical semver form ("1.2" becomes "v1.2.0").
// Anything that is not semver is reported as "dev".
func String() string { return canonical(Version) }

func canonical(v string) string {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "dev"
	}
	c := semver.Canonical(v)
	if b := semver.Build(v); b != "" {
		c += b
	}
	return c
}
