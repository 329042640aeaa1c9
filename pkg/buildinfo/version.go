// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/mki/isnad/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/mki/isnad/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/mki/isnad/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON form served at /version.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the stamped values.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
