package main

import (
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/smarty/stager/contracts"
	"github.com/smarty/stager/core"
)

type StageConfig struct {
	Manifest      ManifestConfig
	Destination   string
	Host          bool
	Platforms     []string
	ScratchRoot   string
	Timeout       time.Duration
	Placeholders  bool
	VendorImport  string
	VendorPackage string
	VendorFile    string
	KeepDynamic   bool
	Token         string `masq:"secret"`
}

func (this *StageConfig) Flags() []cli.Flag {
	return append(this.Manifest.Flags(),
		&cli.BoolFlag{
			Name:        "host",
			Usage:       "Stage only the artifact built for the current host",
			Destination: &this.Host,
		},
		&cli.StringSliceFlag{
			Name:        "platform",
			Usage:       "Stage only the named platform directories (repeatable)",
			Destination: &this.Platforms,
		},
		&cli.StringFlag{
			Name:        "scratch",
			Usage:       "Directory for temporary downloads and extractions (default: OS temp dir)",
			Destination: &this.ScratchRoot,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Upper bound on each archive download",
			Value:       core.DefaultFetchTimeout,
			Destination: &this.Timeout,
		},
		&cli.BoolFlag{
			Name:        "go-placeholders",
			Usage:       "Write an empty.go package file into every staged directory",
			Destination: &this.Placeholders,
		},
		&cli.StringFlag{
			Name:        "vendor-anchor",
			Usage:       "Import path of the destination; writes a build-tagged file importing every staged directory (implies --go-placeholders)",
			Destination: &this.VendorImport,
		},
		&cli.StringFlag{
			Name:        "vendor-package",
			Usage:       "Package name of the vendor anchor file (default: derived from the destination's parent directory)",
			Destination: &this.VendorPackage,
		},
		&cli.StringFlag{
			Name:        "vendor-file",
			Usage:       "Path of the vendor anchor file (default: includebuild.go next to the destination)",
			Destination: &this.VendorFile,
		},
		&cli.BoolFlag{
			Name:        "keep-dynamic",
			Usage:       "Keep shared libraries (.so, .dylib, .dll) in the staged tree",
			Destination: &this.KeepDynamic,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Bearer token sent with HTTP(S) downloads",
			Destination: &this.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
	)
}

func (this *StageConfig) Normalize() error {
	if this.Destination == "" {
		return goerr.New("a destination directory is required", goerr.T(contracts.TagConfig))
	}
	if this.Host && len(this.Platforms) > 0 {
		return goerr.New("--host and --platform cannot be combined", goerr.T(contracts.TagConfig))
	}
	destination, err := filepath.Abs(this.Destination)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve destination", goerr.V("destination", this.Destination), goerr.T(contracts.TagConfig))
	}
	this.Destination = destination

	if this.VendorImport == "" {
		return nil
	}
	this.Placeholders = true
	if this.VendorPackage == "" {
		this.VendorPackage = core.PackageName(filepath.Base(filepath.Dir(destination)))
	}
	if this.VendorFile == "" {
		this.VendorFile = filepath.Join(filepath.Dir(destination), "includebuild.go")
	}
	return nil
}
