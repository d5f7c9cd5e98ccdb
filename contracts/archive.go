package contracts

type ArchiveKind string

const (
	ZipArchive   ArchiveKind = "zip"
	TarXzArchive ArchiveKind = "tar.xz"
)

// Unarchiver extracts the archive file at source into the destination
// directory, creating it as needed.
type Unarchiver interface {
	Unarchive(kind ArchiveKind, source, destination string) error
}
