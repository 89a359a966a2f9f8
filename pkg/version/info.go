package version

import (
	"fmt"
	"strings"
)

const unknown = "unknown"

var (
	// AppVersion is overridden at build time:
	// go build -ldflags="-X github.com/campusbridge/campusbridge/pkg/version.AppVersion=v1.2.3"
	AppVersion = "dev"

	// GitCommit is overridden at build time.
	GitCommit = unknown

	// BuildTime is overridden at build time (RFC3339 recommended).
	BuildTime = unknown
)

// Info carries build metadata for the running service.
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// Current returns the build metadata for the named service.
func Current(service string) Info {
	return Info{
		Service:   orDefault(service, unknown),
		Version:   orDefault(AppVersion, "dev"),
		Commit:    orDefault(GitCommit, unknown),
		BuildTime: orDefault(BuildTime, unknown),
	}
}

// String returns a log-friendly representation.
func (i Info) String() string {
	return fmt.Sprintf("%s@%s (commit=%s, build_time=%s)", i.Service, i.Version, i.Commit, i.BuildTime)
}

func orDefault(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}
