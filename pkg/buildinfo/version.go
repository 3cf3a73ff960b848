// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/husonlab/dendroscope3-sub003/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/husonlab/dendroscope3-sub003/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/husonlab/dendroscope3-sub003/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope names the build for cache keys. Development builds add the
// short commit when one was linked in, since their orderings may change
// between commits without a version bump.
func CacheScope() string {
	if Version != "dev" || Commit == "none" {
		return Version
	}
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return Version + "-" + c
}
