package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/smarty/stager/contracts"
	"github.com/smarty/stager/core"
)

func (this *Application) platformsCommand() *cli.Command {
	var config ManifestConfig
	var example bool
	return &cli.Command{
		Name:  "platforms",
		Usage: "List the platforms and download urls of the manifest",
		Flags: append(config.Flags(), &cli.BoolFlag{
			Name:        "example",
			Usage:       "Print the built-in manifest as TOML, a starting point for a custom manifest",
			Destination: &example,
		}),
		Action: func(context.Context, *cli.Command) error {
			if example {
				return this.emitExampleManifest()
			}
			return this.listPlatforms(config)
		},
	}
}

func (this *Application) listPlatforms(config ManifestConfig) error {
	manifest, err := this.loadManifest(config)
	if err != nil {
		return err
	}
	if err = manifest.Validate(); err != nil {
		return goerr.Wrap(err, "invalid manifest", goerr.V("manifest", config.Path), goerr.T(contracts.TagConfig))
	}

	writer := tabwriter.NewWriter(this.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(writer, "release\t%s\t\n", manifest.Release.Title())
	for _, artifact := range manifest.Artifacts {
		marker := ""
		if core.HostOf(artifact) == this.host {
			marker = "(host)"
		}
		_, _ = fmt.Fprintf(writer, "%s\t%s\t%s\n", artifact.Platform, manifest.Release.URLFor(artifact.Archive), marker)
	}
	return writer.Flush()
}

func (this *Application) emitExampleManifest() error {
	raw, err := toml.Marshal(core.DefaultManifest())
	if err != nil {
		return goerr.Wrap(err, "failed to encode example manifest")
	}
	_, err = this.stdout.Write(raw)
	return err
}
