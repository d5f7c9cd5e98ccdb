package main

import (
	"context"
	"log/slog"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/smarty/stager/contracts"
	"github.com/smarty/stager/core"
	"github.com/smarty/stager/shell"
)

func (this *Application) stageCommand() *cli.Command {
	config := new(StageConfig)
	return &cli.Command{
		Name:      "stage",
		Usage:     "Download, extract, and stage every artifact of the manifest into <destination>",
		ArgsUsage: "<destination>",
		Flags:     config.Flags(),
		Action: func(ctx context.Context, command *cli.Command) error {
			config.Destination = command.Args().First()
			return this.stage(ctx, *config)
		},
	}
}

func (this *Application) stage(ctx context.Context, config StageConfig) error {
	if err := config.Normalize(); err != nil {
		return err
	}
	this.logger.Debug("stage configuration", slog.Any("config", config))

	manifest, err := this.loadManifest(config.Manifest)
	if err != nil {
		return err
	}
	if err = manifest.Validate(); err != nil {
		return goerr.Wrap(err, "invalid manifest", goerr.V("manifest", config.Manifest.Path), goerr.T(contracts.TagConfig))
	}

	artifacts, err := this.selectArtifacts(manifest.Artifacts, config)
	if err != nil {
		return err
	}

	downloader, closeDownloader, err := this.downloader(ctx, manifest.Release, config.Token)
	if err != nil {
		return err
	}
	defer closeDownloader()

	stager := core.NewStager(downloader, shell.NewArchiveExtractor(), this.disk, this.stagerOptions(config)...)
	return stager.Stage(ctx, manifest.Release, artifacts, config.Destination)
}

func (this *Application) selectArtifacts(artifacts []contracts.PlatformArtifact, config StageConfig) ([]contracts.PlatformArtifact, error) {
	if config.Host {
		return core.SelectHost(artifacts, this.host)
	}
	selected := core.FilterPlatforms(artifacts, config.Platforms)
	if len(selected) == 0 {
		return nil, goerr.New("no artifact matches the requested platforms",
			goerr.V("platforms", config.Platforms),
			goerr.T(contracts.TagUnsupportedPlatform))
	}
	return selected, nil
}

func (this *Application) stagerOptions(config StageConfig) []core.Option {
	options := []core.Option{
		core.WithLogger(this.logger),
		core.WithReporter(shell.NewConsoleReporter(this.stdout)),
		core.WithTimeout(config.Timeout),
	}
	if config.ScratchRoot != "" {
		options = append(options, core.WithScratchRoot(config.ScratchRoot))
	}
	if config.KeepDynamic {
		options = append(options, core.WithFilter(core.KeepEverything))
	}
	if config.Placeholders {
		options = append(options, core.WithPostSteps(core.NewGoPackagePlaceholders(this.disk)))
	}
	if config.VendorImport != "" {
		options = append(options, core.WithPostSteps(
			core.NewVendorAnchor(this.disk, config.VendorImport, config.VendorPackage, config.VendorFile)))
	}
	return options
}

// downloader routes http(s) urls to the HTTP client and, only when the release
// lives in a bucket, gs:// urls to Cloud Storage.
func (this *Application) downloader(ctx context.Context, release contracts.ReleaseSpec, token string) (contracts.Downloader, func(), error) {
	web := shell.NewHTTPDownloader(shell.NewHTTPClient(), token, this.logger)
	router := shell.SchemeRouter{"http": web, "https": web}
	if !strings.HasPrefix(release.Expand(release.BaseURL), "gs://") {
		return router, func() {}, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create cloud storage client", goerr.T(contracts.TagFetch))
	}
	bucket := shell.NewGoogleCloudStorageDownloader(client)
	router["gs"] = bucket
	return router, func() { _ = bucket.Close() }, nil
}
