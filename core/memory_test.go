package core

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smarty/stager/contracts"
)

type inMemoryFileSystem struct {
	fileSystem  map[string]*file
	errReadFile map[string]error
	errWrite    map[string]error
	errDelete   map[string]error
	deleted     []string
}

func newInMemoryFileSystem() *inMemoryFileSystem {
	return &inMemoryFileSystem{
		fileSystem:  make(map[string]*file),
		errReadFile: make(map[string]error),
		errWrite:    make(map[string]error),
		errDelete:   make(map[string]error),
	}
}

func (this *inMemoryFileSystem) Listing(root string) (files []contracts.FileInfo, err error) {
	root = filepath.Clean(root)
	if _, found := this.fileSystem[root]; !found {
		return nil, os.ErrNotExist
	}
	for path, file := range this.fileSystem {
		if path == root || strings.HasPrefix(path, root+string(os.PathSeparator)) {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path() < files[j].Path() })
	return files, nil
}

func (this *inMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	target, found := this.fileSystem[path]
	if !found || target.directory {
		return nil, os.ErrNotExist
	}
	return target.contents, this.errReadFile[path]
}

func (this *inMemoryFileSystem) WriteFile(path string, content []byte) error {
	if err := this.errWrite[path]; err != nil {
		return err
	}
	this.mkdirAll(filepath.Dir(path))
	this.fileSystem[path] = &file{path: path, contents: content, mode: 0644}
	return nil
}

func (this *inMemoryFileSystem) CreateSymlink(source, target string) {
	this.mkdirAll(filepath.Dir(target))
	this.fileSystem[target] = &file{path: target, symlink: source, mode: os.ModeSymlink | 0777}
}

func (this *inMemoryFileSystem) Delete(path string) error {
	if err := this.errDelete[path]; err != nil {
		return err
	}
	this.deleted = append(this.deleted, path)
	delete(this.fileSystem, path)
	return nil
}

func (this *inMemoryFileSystem) mkdirAll(path string) {
	for path = filepath.Clean(path); ; path = filepath.Dir(path) {
		if _, found := this.fileSystem[path]; !found {
			this.fileSystem[path] = &file{path: path, directory: true, mode: os.ModeDir | 0755}
		}
		if parent := filepath.Dir(path); parent == path {
			return
		}
	}
}

func (this *inMemoryFileSystem) contents(path string) string {
	target, found := this.fileSystem[path]
	if !found {
		return ""
	}
	return string(target.contents)
}

/////////////////////////////////////////////////

type file struct {
	path      string
	contents  []byte
	symlink   string
	mode      os.FileMode
	directory bool
}

func (this *file) Symlink() string   { return this.symlink }
func (this *file) Path() string      { return this.path }
func (this *file) Size() int64       { return int64(len(this.contents)) }
func (this *file) Mode() os.FileMode { return this.mode }
func (this *file) IsDir() bool       { return this.directory }
