package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/smarty/stager/contracts"
	"github.com/smarty/stager/core"
	"github.com/smarty/stager/shell"
)

type Application struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	environment contracts.Environment
	disk        *shell.DiskFileSystem
	host        string
	goos        string
	logging     LoggerConfig
	logger      *slog.Logger
}

func NewApplication(stdin io.Reader, stdout, stderr io.Writer) *Application {
	return &Application{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		environment: shell.NewEnvironment(),
		disk:        shell.NewDiskFileSystem(),
		host:        core.HostIdentifier(runtime.GOOS, runtime.GOARCH),
		goos:        runtime.GOOS,
		logger:      slog.Default(),
	}
}

func (this *Application) Run(ctx context.Context, args []string) error {
	err := this.command().Run(ctx, args)
	if err != nil {
		this.logger.Error("stager failed", slog.Any("error", err))
	}
	return err
}

func (this *Application) command() *cli.Command {
	return &cli.Command{
		Name:      "stager",
		Usage:     "Fetch prebuilt native library archives and stage their headers and static libraries",
		Version:   ldflagsSoftwareVersion,
		Writer:    this.stdout,
		ErrWriter: this.stderr,
		Flags:     this.logging.Flags(),
		Before: func(ctx context.Context, _ *cli.Command) (context.Context, error) {
			logger, err := this.logging.Configure(this.stderr)
			if err != nil {
				return ctx, err
			}
			this.logger = logger
			return ctx, nil
		},
		Commands: []*cli.Command{
			this.stageCommand(),
			this.platformsCommand(),
			this.environmentCommand(),
			this.versionCommand(),
		},
	}
}

func (this *Application) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the stager version",
		Action: func(context.Context, *cli.Command) error {
			_, err := fmt.Fprintf(this.stdout, "stager [%s]\n", ldflagsSoftwareVersion)
			return err
		},
	}
}

func (this *Application) loadManifest(config ManifestConfig) (contracts.Manifest, error) {
	manifest, err := core.NewManifestLoader(this.disk, this.stdin).Load(config.Path)
	if err != nil {
		return manifest, err
	}
	if config.Version != "" {
		manifest.Release.Version = config.Version
	}
	if config.BaseURL != "" {
		manifest.Release.BaseURL = config.BaseURL
	}
	return manifest, nil
}
