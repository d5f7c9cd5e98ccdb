package main

import (
	"github.com/urfave/cli/v3"

	"github.com/smarty/stager/core"
)

// ManifestConfig selects the manifest and the release overrides shared by
// every subcommand that reads one.
type ManifestConfig struct {
	Path    string
	Version string
	BaseURL string
}

func (this *ManifestConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "manifest",
			Usage:       "Path to a .toml, .yaml, or .json manifest, or " + core.StandardInput + " to read JSON from stdin (default: built-in wasmtime manifest)",
			Destination: &this.Path,
			Sources:     cli.EnvVars("STAGER_MANIFEST"),
		},
		&cli.StringFlag{
			Name:        "release-version",
			Usage:       "Override the release version",
			Destination: &this.Version,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Override the release base URL template (may contain {version})",
			Destination: &this.BaseURL,
		},
	}
}
