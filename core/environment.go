package core

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/smarty/stager/contracts"
)

type EnvironmentPair struct {
	Key   string
	Value string
}

// EnvironmentExport describes the variables a cgo build step needs to compile
// and link against a staged tree.
type EnvironmentExport struct {
	Root        string
	Platform    string
	GOOS        string
	Library     string
	Environment contracts.Environment
}

func (this EnvironmentExport) Pairs() []EnvironmentPair {
	include := filepath.Join(this.Root, contracts.IncludeDirectory)
	library := filepath.Join(this.Root, this.Platform)

	linker := "-L" + library
	if this.Library != "" {
		linker += " -l" + this.Library
	}

	loader := this.loaderVariable()
	return []EnvironmentPair{
		{Key: "CGO_CFLAGS", Value: this.extend("CGO_CFLAGS", "-I"+include, " ")},
		{Key: "CGO_LDFLAGS", Value: this.extend("CGO_LDFLAGS", linker, " ")},
		{Key: "LIBRARY_PATH", Value: this.extend("LIBRARY_PATH", library, this.listSeparator())},
		{Key: loader, Value: this.extend(loader, library, this.listSeparator())},
	}
}

func (this EnvironmentExport) loaderVariable() string {
	switch this.GOOS {
	case "darwin":
		return "DYLD_LIBRARY_PATH"
	case "windows":
		return "PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}

func (this EnvironmentExport) listSeparator() string {
	if this.GOOS == "windows" {
		return ";"
	}
	return ":"
}

func (this EnvironmentExport) extend(key, value, separator string) string {
	if this.Environment == nil {
		return value
	}
	existing, set := this.Environment.LookupEnv(key)
	if !set || strings.TrimSpace(existing) == "" {
		return value
	}
	return value + separator + existing
}

func WriteEnvironment(writer io.Writer, pairs []EnvironmentPair) error {
	for _, pair := range pairs {
		if _, err := fmt.Fprintf(writer, "%s=%s\n", pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}
