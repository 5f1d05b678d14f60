// Package version exposes the build version of the pfadmin binary.
package version

import "runtime/debug"

// Version is set at build time via
// -ldflags "-X github.com/eutimioliusbel/PFA2.2-sub004/pkg/version.Version=v1.2.3".
//
//nolint:gochecknoglobals // Build-time injection point.
var Version = ""

// GetVersion returns the build version. When no version was injected it
// falls back to the module version recorded by the Go toolchain, then to
// "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}
