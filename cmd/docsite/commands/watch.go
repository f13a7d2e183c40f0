package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory (overrides output.directory)"`
	Debounce time.Duration `help:"Quiet period before rebuilding" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunWatch(ctx, g, root.Config, w.Output, w.Debounce)
}

// RunWatch builds once, then rebuilds on every change until ctx is done.
// The docs directory is re-resolved after every rebuild so a config edit
// that fixes the file or moves docs.path retargets the watch.
func RunWatch(ctx context.Context, g *Global, configPath, output string, debounce time.Duration) error {
	var watcher *watch.Watcher
	rebuild := func(ctx context.Context) error {
		err := RunBuild(ctx, g, configPath, output, false)
		if watcher != nil {
			if werr := watcher.WatchDocs(resolveDocsDir(configPath)); werr != nil {
				slog.Warn("Failed to watch docs directory", logfields.Error(werr))
			}
		}
		return err
	}
	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := watch.New(configPath, resolveDocsDir(configPath), rebuild, watch.WithDebounce(debounce))
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}
	<-ctx.Done()
	slog.Info("Stopping watcher")
	return watcher.Stop()
}

// resolveDocsDir returns the docs directory of the config at configPath, or
// "" while the config cannot be loaded. A broken config is still watched so
// fixing it triggers a rebuild.
func resolveDocsDir(configPath string) string {
	cfg, _, err := config.LoadWithResult(configPath)
	if err != nil {
		return ""
	}
	return docsDir(configPath, cfg)
}
