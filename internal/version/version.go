package version

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags during release builds
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// GetVersion returns the release version. Builds without ldflags fall back
// to the module version recorded by `go install`, then to "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

// GetFullVersion returns the version with commit and build date
func GetFullVersion() string {
	commit, date := Commit, Date
	if commit == "" || date == "" {
		vcsCommit, vcsDate := vcsInfo()
		if commit == "" {
			commit = vcsCommit
		}
		if date == "" {
			date = vcsDate
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", GetVersion(), commit, date)
}

func vcsInfo() (commit, date string) {
	commit, date = "unknown", "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, date
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 12 {
				commit = s.Value[:12]
			} else {
				commit = s.Value
			}
		case "vcs.time":
			date = s.Value
		}
	}
	return commit, date
}
