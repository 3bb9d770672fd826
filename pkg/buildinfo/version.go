// Package buildinfo exposes the version stamped into the binary at
// build time:
//
//	go build -ldflags "-X github.com/jkral/interwiki/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/jkral/interwiki/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/jkral/interwiki/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set via -ldflags -X; the defaults identify an unstamped dev build.
var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// String returns the build information as a multi-line block.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template used by the cobra root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
