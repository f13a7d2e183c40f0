package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/notify"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)"`
	Clean  bool   `help:"Remove the output directory before writing"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	return RunBuild(context.Background(), g, root.Config, b.Output, b.Clean)
}

// RunBuild assembles the site, publishes the report and writes the output.
func RunBuild(ctx context.Context, g *Global, configPath, output string, clean bool) error {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	cfg, s, report, err := assembleFromConfig(ctx, configPath, rec)
	if cfg == nil {
		return err
	}
	if report != nil {
		finishReport(ctx, cfg, reg, report.Event())
	}
	if err != nil {
		return err
	}

	dir := resolveOutputDir(output, configPath, cfg)
	written, err := emit.Write(s, dir, emit.Options{Clean: clean || cfg.Output.Clean})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Built %s (%s) into %s\n", cfg.Title, report.BuildID, dir)
	for _, f := range written {
		_, _ = fmt.Fprintf(g.Out, "  %s\n", f)
	}
	return nil
}

// finishReport exports metrics and publishes the build event. Failures here
// never fail the build.
func finishReport(ctx context.Context, cfg *config.Config, reg *prom.Registry, event notify.BuildEvent) {
	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(reg, cfg.Metrics.Textfile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}

	pub, err := notify.New(cfg.Notify)
	if err != nil {
		slog.Warn("Build notifications disabled", logfields.URL(cfg.Notify.NATSURL), logfields.Error(err))
		return
	}
	defer pub.Close()
	if err := pub.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish build event", logfields.BuildID(event.BuildID), logfields.Error(err))
	}
}

// resolveOutputDir picks the output directory. Priority: CLI flag > config.
// Relative config values are resolved against the config file's directory.
func resolveOutputDir(cliOutput, configPath string, cfg *config.Config) string {
	if cliOutput != "" {
		return cliOutput
	}
	if filepath.IsAbs(cfg.Output.Directory) {
		return cfg.Output.Directory
	}
	return filepath.Join(filepath.Dir(configPath), cfg.Output.Directory)
}
