package shell

import (
	"archive/tar"
	"bytes"
	"sort"

	"github.com/klauspost/compress/zip"
	"github.com/ulikunitz/xz"
)

type fixtureEntry struct {
	contents string
	symlink  string
	mode     int64
}

type fixtureTree map[string]fixtureEntry

func (this fixtureTree) names() (names []string) {
	for name := range this {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildTarXz(tree fixtureTree) []byte {
	buffer := new(bytes.Buffer)
	compressor, err := xz.NewWriter(buffer)
	if err != nil {
		panic(err)
	}
	writer := tar.NewWriter(compressor)
	for _, name := range tree.names() {
		entry := tree[name]
		header := &tar.Header{Name: name, Mode: 0644, Size: int64(len(entry.contents)), Typeflag: tar.TypeReg}
		if entry.mode != 0 {
			header.Mode = entry.mode
		}
		if entry.symlink != "" {
			header.Typeflag = tar.TypeSymlink
			header.Linkname = entry.symlink
			header.Size = 0
		}
		if err = writer.WriteHeader(header); err != nil {
			panic(err)
		}
		if entry.symlink == "" {
			_, _ = writer.Write([]byte(entry.contents))
		}
	}
	_ = writer.Close()
	_ = compressor.Close()
	return buffer.Bytes()
}

func buildZip(tree fixtureTree) []byte {
	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)
	for _, name := range tree.names() {
		file, err := writer.Create(name)
		if err != nil {
			panic(err)
		}
		_, _ = file.Write([]byte(tree[name].contents))
	}
	_ = writer.Close()
	return buffer.Bytes()
}
