package contracts

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Manifest struct {
	Release   ReleaseSpec        `json:"release" toml:"release" yaml:"release"`
	Artifacts []PlatformArtifact `json:"artifacts" toml:"artifacts" yaml:"artifacts"`
}

// Validate reports the first malformed field. The archive extension is not
// checked here; unsupported archives are reported by the stager itself.
func (this Manifest) Validate() error {
	if strings.TrimSpace(this.Release.BaseURL) == "" {
		return blankBaseURLErr
	}
	if strings.TrimSpace(this.Release.Version) == "" {
		return blankVersionErr
	}
	if len(this.Artifacts) == 0 {
		return noArtifactsErr
	}

	inventory := make(map[string]struct{})
	for _, artifact := range this.Artifacts {
		if artifact.Archive == "" {
			return blankArchiveErr
		}
		if !isSinglePathElement(this.Release.Expand(artifact.Archive)) {
			return fmt.Errorf("%w: %q", nestedArchiveErr, artifact.Archive)
		}
		if artifact.Platform == "" {
			return blankPlatformErr
		}
		if !isSinglePathElement(artifact.Platform) {
			return fmt.Errorf("%w: %q", nestedPlatformErr, artifact.Platform)
		}
		if artifact.Platform == IncludeDirectory {
			return reservedPlatformErr
		}
		if _, found := inventory[artifact.Platform]; found {
			return fmt.Errorf("%w: %q", platformConflictErr, artifact.Platform)
		}
		inventory[artifact.Platform] = struct{}{}
	}
	return nil
}

func isSinglePathElement(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}

var (
	blankBaseURLErr     = errors.New("release base url should not be blank")
	blankVersionErr     = errors.New("release version should not be blank")
	noArtifactsErr      = errors.New("at least one artifact is required")
	blankArchiveErr     = errors.New("artifact archive name should not be blank")
	nestedArchiveErr    = errors.New("artifact archive name must be a plain file name")
	blankPlatformErr    = errors.New("artifact platform directory should not be blank")
	nestedPlatformErr   = errors.New("artifact platform directory must be a single path element")
	reservedPlatformErr = errors.New("artifact platform directory may not be named " + IncludeDirectory)
	platformConflictErr = errors.New("platform directory conflict")
)
