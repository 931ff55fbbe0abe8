// Package buildinfo carries the version stamped into the binary.
//
// Set with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/topicmap/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/topicmap/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/topicmap/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/topicmap
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"
	// Commit is the git revision.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies outbound tree fetches.
func UserAgent() string {
	return "topicmap/" + Version
}
