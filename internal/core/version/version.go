// Package version provides information about the build version of the service.
package version

import "runtime"

// Service is the name the api reports in logs and meta endpoints
const Service = "apisupport-api"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Info returns the build information. version, commit and date are set at build time:
//
//	-ldflags "-X 'apisupport/internal/core/version.version=v0.1.0'
//	          -X 'apisupport/internal/core/version.commit=abcd'
//	          -X 'apisupport/internal/core/version.date=2021-03-01'"
func Info() BuildInfo {
	return BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
