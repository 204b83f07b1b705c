// Package version provides the release version of the module.
package version

import "fmt"

const (
	major = 0
	minor = 1
)

// Build is injected at build time via ldflags.
var Build = "dev"

// Info describes the version of the build.
type Info struct {
	Major int
	Minor int
	Build string
}

// Current returns the version of the build.
func Current() Info {
	return Info{
		Major: major,
		Minor: minor,
		Build: Build,
	}
}

func (v Info) String() string {
	return fmt.Sprintf("%d.%d.%s", v.Major, v.Minor, v.Build)
}
