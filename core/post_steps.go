package core

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

type CompoundPostStep struct {
	inners []contracts.PostStep
}

func NewCompoundPostStep(inners ...contracts.PostStep) *CompoundPostStep {
	return &CompoundPostStep{inners: inners}
}

func (this *CompoundPostStep) Apply(root string) error {
	for _, inner := range this.inners {
		if err := inner.Apply(root); err != nil {
			return err
		}
	}
	return nil
}

type PostStepFileSystem interface {
	contracts.PathLister
	contracts.FileWriter
}

const PlaceholderFilename = "empty.go"

// GoPackagePlaceholders writes a one-line Go source file into every staged
// directory so each one is an importable (and vendorable) package.
type GoPackagePlaceholders struct {
	disk PostStepFileSystem
}

func NewGoPackagePlaceholders(disk PostStepFileSystem) *GoPackagePlaceholders {
	return &GoPackagePlaceholders{disk: disk}
}

func (this *GoPackagePlaceholders) Apply(root string) error {
	listing, err := this.disk.Listing(root)
	if err != nil {
		return err
	}
	for _, item := range listing {
		if !item.IsDir() {
			continue
		}
		content := fmt.Sprintf("package %s\n", PackageName(filepath.Base(item.Path())))
		if err = this.disk.WriteFile(filepath.Join(item.Path(), PlaceholderFilename), []byte(content)); err != nil {
			return err
		}
	}
	return nil
}

// PackageName turns a directory name into a Go package identifier:
// "linux-x86_64" becomes "linux_x86_64".
func PackageName(directory string) string {
	name := strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, directory)
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}

// VendorAnchor writes a Go file, excluded from normal builds by a build tag,
// that blank-imports every staged directory so `go mod vendor` keeps them.
type VendorAnchor struct {
	disk        PostStepFileSystem
	importPath  string
	packageName string
	target      string
}

func NewVendorAnchor(disk PostStepFileSystem, importPath, packageName, target string) *VendorAnchor {
	return &VendorAnchor{
		disk:        disk,
		importPath:  strings.TrimSuffix(importPath, "/"),
		packageName: packageName,
		target:      target,
	}
}

const VendorAnchorBuildTag = "includebuild"

func (this *VendorAnchor) Apply(root string) error {
	if this.importPath == "" {
		return goerr.New("vendor anchor requires an import path")
	}
	listing, err := this.disk.Listing(root)
	if err != nil {
		return err
	}

	var imports []string
	for _, item := range listing {
		if !item.IsDir() || item.Path() == root {
			continue
		}
		relative, err := filepath.Rel(root, item.Path())
		if err != nil {
			return goerr.Wrap(err, "failed to resolve relative path", goerr.V("path", item.Path()))
		}
		imports = append(imports, path.Join(this.importPath, filepath.ToSlash(relative)))
	}
	sort.Strings(imports)

	return this.disk.WriteFile(this.target, this.render(imports))
}

func (this *VendorAnchor) render(imports []string) []byte {
	buffer := new(bytes.Buffer)
	_, _ = fmt.Fprintln(buffer, "// Code generated by stager. DO NOT EDIT.")
	_, _ = fmt.Fprintln(buffer)
	_, _ = fmt.Fprintf(buffer, "//go:build %s\n", VendorAnchorBuildTag)
	_, _ = fmt.Fprintln(buffer)
	_, _ = fmt.Fprintf(buffer, "package %s\n", this.packageName)
	if len(imports) == 0 {
		return buffer.Bytes()
	}
	_, _ = fmt.Fprintln(buffer)
	_, _ = fmt.Fprintln(buffer, "import (")
	for _, item := range imports {
		_, _ = fmt.Fprintf(buffer, "\t_ %q\n", item)
	}
	_, _ = fmt.Fprintln(buffer, ")")
	return buffer.Bytes()
}
