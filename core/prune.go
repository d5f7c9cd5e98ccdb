package core

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

// ArtifactFilter reports whether the file at the given slash-separated path,
// relative to the staging root, should be removed.
type ArtifactFilter func(relative string) bool

var (
	dynamicSuffixes       = []string{".dll", ".dll.a", ".dylib", ".so"}
	versionedSharedObject = regexp.MustCompile(`\.so(\.[0-9]+)+$`)
)

// DynamicArtifacts matches shared libraries and their import stubs.
func DynamicArtifacts(relative string) bool {
	name := strings.ToLower(path.Base(relative))
	for _, suffix := range dynamicSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return versionedSharedObject.MatchString(name)
}

func KeepEverything(string) bool { return false }

type PrunerFileSystem interface {
	contracts.PathLister
	contracts.Deleter
}

type Pruner struct {
	disk   PrunerFileSystem
	filter ArtifactFilter
}

func NewPruner(disk PrunerFileSystem, filter ArtifactFilter) *Pruner {
	if filter == nil {
		filter = DynamicArtifacts
	}
	return &Pruner{disk: disk, filter: filter}
}

// Prune deletes every non-directory entry under root matched by the filter
// and returns the removed paths relative to root.
func (this *Pruner) Prune(root string) (removed []string, err error) {
	listing, err := this.disk.Listing(root)
	if err != nil {
		return nil, err
	}
	for _, item := range listing {
		if item.IsDir() {
			continue
		}
		relative, err := filepath.Rel(root, item.Path())
		if err != nil {
			return removed, goerr.Wrap(err, "failed to resolve relative path", goerr.V("path", item.Path()))
		}
		relative = filepath.ToSlash(relative)
		if !this.filter(relative) {
			continue
		}
		if err = this.disk.Delete(item.Path()); err != nil {
			return removed, err
		}
		removed = append(removed, relative)
	}
	return removed, nil
}
