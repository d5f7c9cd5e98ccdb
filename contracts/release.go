package contracts

import (
	"fmt"
	"strings"
)

// VersionToken is substituted with ReleaseSpec.Version in base urls and
// archive names.
const VersionToken = "{version}"

const (
	IncludeDirectory = "include"
	LibraryDirectory = "lib"
)

type ReleaseSpec struct {
	BaseURL string `json:"base_url" toml:"base_url" yaml:"base_url"`
	Version string `json:"version" toml:"version" yaml:"version"`
}

func (this ReleaseSpec) Expand(value string) string {
	return strings.ReplaceAll(value, VersionToken, this.Version)
}

func (this ReleaseSpec) URLFor(archive string) string {
	base := this.Expand(this.BaseURL)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + this.Expand(archive)
}

func (this ReleaseSpec) Title() string {
	return fmt.Sprintf("[%s @ %s]", this.BaseURL, this.Version)
}

// PlatformArtifact pairs a release archive with the directory its lib/ tree
// is staged into. Host optionally names the GOOS/GOARCH pair the archive was
// built for.
type PlatformArtifact struct {
	Archive  string `json:"archive" toml:"archive" yaml:"archive"`
	Platform string `json:"platform" toml:"platform" yaml:"platform"`
	Host     string `json:"host,omitempty" toml:"host,omitempty" yaml:"host,omitempty"`
}

func (this PlatformArtifact) ArchiveName(release ReleaseSpec) string {
	return release.Expand(this.Archive)
}
