// Package version provides build and version information for zos.
// It uses Go's runtime/debug.ReadBuildInfo() to extract VCS metadata
// embedded at build time (Go 1.18+).
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// These variables can be set via ldflags at build time for explicit versioning.
// If not set, they will be populated from runtime/debug.ReadBuildInfo().
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// GitCommit is the git commit hash.
	GitCommit = ""
	// GitTreeDirty indicates if the git tree was dirty at build time.
	GitTreeDirty = ""
)

// Info contains the full version information for the build.
type Info struct {
	Version      string
	GitCommit    string
	GitTreeDirty bool
	GoVersion    string
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	// Extract VCS info from build settings
	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			if GitCommit == "" {
				GitCommit = kv.Value
			}
		case "vcs.modified":
			if GitTreeDirty == "" {
				GitTreeDirty = kv.Value
			}
		}
	}
}

// GetInfo returns the full version information for the build.
func GetInfo() Info {
	return Info{
		Version:      Version,
		GitCommit:    GitCommit,
		GitTreeDirty: GitTreeDirty == "true",
		GoVersion:    runtime.Version(),
	}
}

// String renders the version information as a multi-line, human-readable string.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "zos version %s\n", i.Version)
	if i.GitCommit != "" {
		commit := i.GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		if i.GitTreeDirty {
			commit += " (dirty)"
		}
		fmt.Fprintf(&b, "git commit: %s\n", commit)
	}
	fmt.Fprintf(&b, "go version: %s\n", i.GoVersion)
	return b.String()
}
