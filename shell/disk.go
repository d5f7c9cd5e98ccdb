package shell

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

type DiskFileSystem struct{}

func NewDiskFileSystem() *DiskFileSystem {
	return &DiskFileSystem{}
}

// Listing walks root (inclusive) without following symlinks and reports every
// directory, file, and link in lexical order.
func (this *DiskFileSystem) Listing(root string) (listing []contracts.FileInfo, err error) {
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		fileInfo := FileInfo{path: path, size: info.Size(), mode: info.Mode()}
		if info.Mode()&os.ModeSymlink == os.ModeSymlink {
			fileInfo.symlink, err = os.Readlink(path)
			if err != nil {
				return err
			}
		}
		listing = append(listing, fileInfo)
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list directory", goerr.V("root", root))
	}
	return listing, nil
}

func (this *DiskFileSystem) Stat(path string) (contracts.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	return FileInfo{path: path, size: info.Size(), mode: info.Mode()}, nil
}

func (this *DiskFileSystem) Create(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create parent directory", goerr.V("path", path))
	}
	writer, err := os.Create(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file", goerr.V("path", path))
	}
	return writer, nil
}

func (this *DiskFileSystem) ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}
	return raw, nil
}

func (this *DiskFileSystem) WriteFile(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return goerr.Wrap(err, "failed to write file", goerr.V("path", path))
	}
	return nil
}

func (this *DiskFileSystem) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return goerr.Wrap(err, "failed to delete file", goerr.V("path", path))
	}
	return nil
}

func (this *DiskFileSystem) DeleteAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return goerr.Wrap(err, "failed to delete directory", goerr.V("path", path))
	}
	return nil
}

func (this *DiskFileSystem) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return goerr.Wrap(err, "failed to create directory", goerr.V("path", path))
	}
	return nil
}

func (this *DiskFileSystem) Rename(source, target string) error {
	if err := os.Rename(source, target); err != nil {
		return goerr.Wrap(err, "failed to rename", goerr.V("source", source), goerr.V("target", target))
	}
	return nil
}

// CopyTree copies source into target, merging with anything already there.
// Regular files are overwritten, modes are kept, and symlinks are recreated
// as links rather than followed.
func (this *DiskFileSystem) CopyTree(source, target string) error {
	err := filepath.WalkDir(source, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		destination := filepath.Join(target, relative)
		info, err := entry.Info()
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&os.ModeSymlink == os.ModeSymlink:
			return this.copySymlink(path, destination)
		case info.IsDir():
			return os.MkdirAll(destination, info.Mode().Perm()|0700)
		default:
			return this.copyFile(path, destination, info.Mode().Perm())
		}
	})
	if err != nil {
		return goerr.Wrap(err, "failed to copy directory", goerr.V("source", source), goerr.V("target", target))
	}
	return nil
}

func (this *DiskFileSystem) copyFile(source, target string, mode os.FileMode) error {
	reader, err := os.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	writer, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err = io.Copy(writer, reader); err != nil {
		_ = writer.Close()
		return err
	}
	if err = writer.Close(); err != nil {
		return err
	}
	return os.Chmod(target, mode)
}

func (this *DiskFileSystem) copySymlink(source, target string) error {
	link, err := os.Readlink(source)
	if err != nil {
		return err
	}
	if err = os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Symlink(link, target)
}

////////////////////////////////////////

type FileInfo struct {
	path    string
	size    int64
	mode    os.FileMode
	symlink string
}

func (this FileInfo) Path() string      { return this.path }
func (this FileInfo) Size() int64       { return this.size }
func (this FileInfo) Mode() os.FileMode { return this.mode }
func (this FileInfo) Symlink() string   { return this.symlink }
func (this FileInfo) IsDir() bool       { return this.mode.IsDir() }
