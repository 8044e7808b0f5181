// Package version reports which build of visa is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/example/visa/internal/version.Commit=...".
// Empty values fall back to the VCS stamp Go embeds in the binary.
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

const unknown = "unknown"

var readBuildInfo = debug.ReadBuildInfo

// Info describes the running build.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool
}

// Get resolves build metadata from ldflags first, then from the embedded
// build info.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, BuildTime: BuildTime}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = unknown
	}
	if info.BuildTime == "" {
		info.BuildTime = unknown
	}
	return info
}

// String renders the build as "visa <version> (commit: <sha>, built: <time>)".
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("visa %s (commit: %s, built: %s)", i.Version, commit, i.BuildTime)
}

// String returns the version line shown by --version.
func String() string {
	return Get().String()
}
