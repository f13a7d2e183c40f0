package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/catalog"
	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Environment variables read when logging is configured.
const (
	EnvLogLevel  = "DOCSITE_LOG_LEVEL"
	EnvLogFormat = "DOCSITE_LOG_FORMAT"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out io.Writer
}

// NewGlobal returns a Global writing to stdout.
func NewGlobal() *Global {
	return &Global{Out: os.Stdout}
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (.yaml, .yml or .toml)" default:"docsite.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" help:"Validate the configuration against the docs directory"`
	Build    BuildCmd    `cmd:"" help:"Assemble the site and write it to the output directory"`
	Tree     TreeCmd     `cmd:"" help:"Print the validated sidebar trees"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever the configuration or docs change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(newLogger(os.Stderr, c.Verbose))
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if raw, ok := os.LookupEnv(EnvLogLevel); ok {
		switch config.NormalizeLogLevel(raw) {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if config.NormalizeLogFormat(os.Getenv(EnvLogFormat)) == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// docsDir resolves the configured docs path relative to the config file.
func docsDir(configPath string, cfg *config.Config) string {
	if filepath.IsAbs(cfg.Docs.Path) {
		return cfg.Docs.Path
	}
	return filepath.Join(filepath.Dir(configPath), cfg.Docs.Path)
}

// assembleFromConfig loads the configuration, scans the docs directory and
// assembles the site. The config and report are returned whenever they exist.
func assembleFromConfig(ctx context.Context, configPath string, rec metrics.Recorder) (*config.Config, *site.Site, *site.Report, error) {
	cfg, res, err := config.LoadWithResult(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	dir := docsDir(configPath, cfg)
	cat, err := catalog.LoadDir(dir, catalog.DirOptions{IncludeDrafts: cfg.Docs.IncludeDrafts})
	if err != nil {
		return cfg, nil, nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to scan docs directory").
			WithContext("path", dir).Build()
	}
	slog.Debug("Content catalog loaded", logfields.Path(dir), logfields.Count(len(cat.IDs())))

	s, report, err := site.Assemble(ctx, cfg, cat, site.Options{
		Recorder: rec,
		Warnings: res.Warnings,
	})
	report.Log(slog.Default())
	return cfg, s, report, err
}
