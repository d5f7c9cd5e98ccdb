package core

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

var archiveSuffixes = []struct {
	suffix string
	kind   contracts.ArchiveKind
}{
	{suffix: ".tar.xz", kind: contracts.TarXzArchive},
	{suffix: ".txz", kind: contracts.TarXzArchive},
	{suffix: ".zip", kind: contracts.ZipArchive},
}

// ParseArchiveName determines the archive kind from the file extension and
// returns the name of the top-level directory the archive is expected to
// contain (the file name without its extension).
func ParseArchiveName(name string) (kind contracts.ArchiveKind, stem string, err error) {
	for _, candidate := range archiveSuffixes {
		if strings.HasSuffix(name, candidate.suffix) && len(name) > len(candidate.suffix) {
			return candidate.kind, strings.TrimSuffix(name, candidate.suffix), nil
		}
	}
	return "", "", goerr.New("unsupported archive extension",
		goerr.V("archive", name),
		goerr.T(contracts.TagUnsupportedArchive))
}
