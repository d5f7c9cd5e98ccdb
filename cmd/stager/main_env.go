package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/smarty/stager/contracts"
	"github.com/smarty/stager/core"
	"github.com/smarty/stager/shell"
)

type EnvironmentConfig struct {
	Manifest ManifestConfig
	Root     string
	Platform string
	Library  string
}

func (this *Application) environmentCommand() *cli.Command {
	config := new(EnvironmentConfig)
	return &cli.Command{
		Name:      "env",
		Usage:     "Print (or append to $GITHUB_ENV) the cgo variables for building against a staged tree",
		ArgsUsage: "<staged root>",
		Flags: append(config.Manifest.Flags(),
			&cli.StringFlag{
				Name:        "platform",
				Usage:       "Platform directory to link against (default: the host's artifact)",
				Destination: &config.Platform,
			},
			&cli.StringFlag{
				Name:        "library",
				Usage:       "Library name added to CGO_LDFLAGS as -l<name>",
				Destination: &config.Library,
			},
		),
		Action: func(_ context.Context, command *cli.Command) error {
			config.Root = command.Args().First()
			return this.exportEnvironment(*config)
		},
	}
}

func (this *Application) exportEnvironment(config EnvironmentConfig) error {
	if config.Root == "" {
		return goerr.New("a staged root directory is required", goerr.T(contracts.TagConfig))
	}
	root, err := filepath.Abs(config.Root)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve staged root", goerr.V("root", config.Root), goerr.T(contracts.TagConfig))
	}

	platform, err := this.hostPlatform(config)
	if err != nil {
		return err
	}

	pairs := core.EnvironmentExport{
		Root:        root,
		Platform:    platform,
		GOOS:        this.goos,
		Library:     config.Library,
		Environment: this.environment,
	}.Pairs()
	render := func(writer io.Writer) error { return core.WriteEnvironment(writer, pairs) }

	path, found := this.environment.LookupEnv("GITHUB_ENV")
	if !found || path == "" {
		return render(this.stdout)
	}
	file := shell.NewEnvironmentFile(path)
	if err = file.Append(render); err != nil {
		return goerr.Wrap(err, "failed to export environment", goerr.T(contracts.TagFilesystem))
	}
	this.logger.Info("exported build environment", slog.String("file", file.String()), slog.String("platform", platform))
	return nil
}

func (this *Application) hostPlatform(config EnvironmentConfig) (string, error) {
	if config.Platform != "" {
		return config.Platform, nil
	}
	manifest, err := this.loadManifest(config.Manifest)
	if err != nil {
		return "", err
	}
	selected, err := core.SelectHost(manifest.Artifacts, this.host)
	if err != nil {
		return "", err
	}
	return selected[0].Platform, nil
}
