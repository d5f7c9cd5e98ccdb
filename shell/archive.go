package shell

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mholt/archiver"

	"github.com/smarty/stager/contracts"
)

type ArchiveExtractor struct{}

func NewArchiveExtractor() *ArchiveExtractor {
	return &ArchiveExtractor{}
}

func (this *ArchiveExtractor) Unarchive(kind contracts.ArchiveKind, source, destination string) error {
	unarchiver, err := this.unarchiver(kind)
	if err != nil {
		return err
	}
	if err = unarchiver.Unarchive(source, destination); err != nil {
		return goerr.Wrap(err, "failed to extract archive",
			goerr.V("archive", source),
			goerr.V("kind", string(kind)),
			goerr.T(contracts.TagExtraction))
	}
	return nil
}

func (this *ArchiveExtractor) unarchiver(kind contracts.ArchiveKind) (archiver.Unarchiver, error) {
	switch kind {
	case contracts.ZipArchive:
		zip := archiver.NewZip()
		zip.MkdirAll = true
		zip.OverwriteExisting = true
		return zip, nil
	case contracts.TarXzArchive:
		tarXz := archiver.NewTarXz()
		tarXz.MkdirAll = true
		tarXz.OverwriteExisting = true
		return tarXz, nil
	default:
		return nil, goerr.New("unsupported archive kind", goerr.V("kind", string(kind)), goerr.T(contracts.TagUnsupportedArchive))
	}
}
