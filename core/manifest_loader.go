package core

import (
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/smarty/stager/contracts"
)

const StandardInput = "_STDIN_"

var manifestDecoders = map[string]func([]byte, any) error{
	".toml": toml.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".json": json.Unmarshal,
}

type ManifestLoader struct {
	storage contracts.FileReader
	stdin   io.Reader
}

func NewManifestLoader(storage contracts.FileReader, stdin io.Reader) *ManifestLoader {
	return &ManifestLoader{storage: storage, stdin: stdin}
}

// Load returns the built-in manifest for an empty path, decodes JSON from
// stdin for StandardInput, and otherwise decodes the file by its extension.
// The result is not validated; callers apply overrides first.
func (this *ManifestLoader) Load(path string) (manifest contracts.Manifest, err error) {
	if strings.TrimSpace(path) == "" {
		return DefaultManifest(), nil
	}

	data, decode, err := this.readRaw(path)
	if err != nil {
		return contracts.Manifest{}, goerr.Wrap(err, "failed to read manifest", goerr.V("path", path), goerr.T(contracts.TagConfig))
	}
	if err = decode(data, &manifest); err != nil {
		return contracts.Manifest{}, goerr.Wrap(err, "failed to decode manifest", goerr.V("path", path), goerr.T(contracts.TagConfig))
	}
	return manifest, nil
}

func (this *ManifestLoader) readRaw(path string) (data []byte, decode func([]byte, any) error, err error) {
	if path == StandardInput {
		data, err = io.ReadAll(this.stdin)
		return data, json.Unmarshal, err
	}
	decode, found := manifestDecoders[strings.ToLower(filepath.Ext(path))]
	if !found {
		return nil, nil, unsupportedManifestFormatErr
	}
	data, err = this.storage.ReadFile(path)
	return data, decode, err
}

var unsupportedManifestFormatErr = errors.New("manifest must be a .toml, .yaml, .yml, or .json file")
