package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"

	"github.com/smarty/stager/contracts"
)

type LoggerConfig struct {
	Level  string
	Format string
}

func (this *LoggerConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &this.Level,
			Sources:     cli.EnvVars("STAGER_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (text, json)",
			Value:       "text",
			Destination: &this.Format,
			Sources:     cli.EnvVars("STAGER_LOG_FORMAT"),
		},
	}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Configure builds the process logger. Secrets (struct fields tagged
// `masq:"secret"` and bearer credentials) are redacted in both formats.
func (this *LoggerConfig) Configure(writer io.Writer) (*slog.Logger, error) {
	level, found := logLevels[strings.ToLower(strings.TrimSpace(this.Level))]
	if !found {
		return nil, goerr.New("invalid log level", goerr.V("level", this.Level), goerr.T(contracts.TagConfig))
	}

	redact := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("Token"),
		masq.WithContain("Bearer "),
	)

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(this.Format)) {
	case "", "text":
		handler = clog.New(
			clog.WithWriter(writer),
			clog.WithLevel(level),
			clog.WithColor(false),
			clog.WithReplaceAttr(redact),
		)
	case "json":
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level, ReplaceAttr: redact})
	default:
		return nil, goerr.New("invalid log format", goerr.V("format", this.Format), goerr.T(contracts.TagConfig))
	}
	return slog.New(handler), nil
}
