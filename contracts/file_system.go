package contracts

import (
	"io"
	"os"
)

type PathLister interface {
	Listing(root string) ([]FileInfo, error)
}

type FileCreator interface {
	Create(path string) (io.WriteCloser, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type Deleter interface {
	Delete(path string) error
}

type TreeDeleter interface {
	DeleteAll(path string) error
}

type DirectoryCreator interface {
	MkdirAll(path string) error
}

type TreeCopier interface {
	CopyTree(source, target string) error
}

type Renamer interface {
	Rename(source, target string) error
}

type FileChecker interface {
	Stat(path string) (FileInfo, error)
}

type FileInfo interface {
	Path() string
	Size() int64
	Symlink() string
	Mode() os.FileMode
	IsDir() bool
}

type Environment interface {
	LookupEnv(key string) (value string, set bool)
}
