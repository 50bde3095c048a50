package utils

import (
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// Version is injected at build time with -ldflags "-X github.com/temirov/projdump/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion reports the ldflags version, then the module build info.
// The working directory is never consulted, since it usually belongs to the project being dumped.
func GetApplicationVersion() string {
	if trimmed := strings.TrimSpace(Version); trimmed != "" {
		return trimmed
	}

	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
