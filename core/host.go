package core

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

var (
	operatingSystemAliases = map[string]string{
		"linux":   "linux",
		"macos":   "darwin",
		"darwin":  "darwin",
		"osx":     "darwin",
		"windows": "windows",
		"mingw":   "windows",
		"win":     "windows",
	}
	architectureAliases = map[string]string{
		"x86_64":  "amd64",
		"amd64":   "amd64",
		"aarch64": "arm64",
		"arm64":   "arm64",
		"i686":    "386",
		"x86":     "386",
		"riscv64": "riscv64",
		"s390x":   "s390x",
	}
)

func HostIdentifier(goos, goarch string) string {
	return goos + "/" + goarch
}

// HostOf returns the artifact's explicit host, or derives one from a platform
// directory shaped like "<os>-<arch>" (e.g. "macos-aarch64" is "darwin/arm64").
func HostOf(artifact contracts.PlatformArtifact) string {
	if artifact.Host != "" {
		return artifact.Host
	}
	system, architecture, found := strings.Cut(strings.ToLower(artifact.Platform), "-")
	if !found {
		return ""
	}
	goos, knownSystem := operatingSystemAliases[system]
	goarch, knownArchitecture := architectureAliases[architecture]
	if !knownSystem || !knownArchitecture {
		return ""
	}
	return HostIdentifier(goos, goarch)
}

// SelectHost narrows the list to the single artifact built for host. The
// result is a one-element list so the chosen artifact is also the primary.
func SelectHost(artifacts []contracts.PlatformArtifact, host string) ([]contracts.PlatformArtifact, error) {
	for _, artifact := range artifacts {
		if HostOf(artifact) == host {
			return []contracts.PlatformArtifact{artifact}, nil
		}
	}
	return nil, goerr.New("no artifact is published for this host",
		goerr.V("host", host),
		goerr.T(contracts.TagUnsupportedPlatform))
}
