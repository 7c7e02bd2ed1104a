// Package version reports build identity. Values can be set at link time:
//
//	go build -ldflags "-X github.com/farcloser/sonoscope/version.version=v1.2.3 -X github.com/farcloser/sonoscope/version.commit=abc123"
package version

import "runtime/debug"

//nolint:gochecknoglobals // set through -ldflags
var (
	name    = "sonoscope"
	version = ""
	commit  = ""
)

func Name() string {
	return name
}

// Version is the link-time version, else the module version, else "dev".
func Version() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// Commit is the link-time commit, else the VCS revision recorded by the toolchain.
func Commit() string {
	if commit != "" {
		return commit
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}

	return "unknown"
}
