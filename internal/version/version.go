// Package version reports the build identity stamped in via -ldflags, e.g.
//
//	-X github.com/example/commandcenter/internal/version.Version=1.2.0
package version

import "fmt"

// Build metadata; overridden at link time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the long form used by --version.
func String() string {
	return fmt.Sprintf("commandcenter %s (commit: %s, built: %s)", Version, Short(), BuildTime)
}

// Short returns "<version>+<commit>" for machine consumers such as /health.
func Short() string {
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return Version + "+" + c
}
