package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stepsmith/stepsmith/internal/ctxlog"
	"github.com/stepsmith/stepsmith/internal/tool"
	"github.com/stepsmith/stepsmith/internal/web"
)

// commandTools maps CLI commands to the registry name of the tool they run.
var commandTools = map[string]string{
	"fake-mines": "fake-mines",
	"fix-scroll": "scroll-normalizer",
}

// Run executes the selected command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	if a.config.Command == "serve" {
		return a.runServe(ctx)
	}

	name, ok := commandTools[a.config.Command]
	if !ok {
		return fmt.Errorf("unknown command %q", a.config.Command)
	}
	t, ok := a.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("tool %q is not registered", name)
	}

	opts := tool.Options{
		AllowSimultaneous: a.config.AllowSimultaneous,
		AllowSplitTiming:  a.config.AllowSplitTiming,
	}

	if a.config.Recursive {
		return a.runPack(ctx, t, opts)
	}
	return a.runSong(ctx, t, opts, a.config.Path, a.config.Output, a.outW)
}

// runServe starts the web server and blocks until the process is signalled.
func (a *App) runServe(ctx context.Context) error {
	opts := web.Options{ListenAddr: ":8080"}
	if a.fileConf != nil {
		if s := a.fileConf.Server; s != nil {
			if s.ListenAddr != "" {
				opts.ListenAddr = s.ListenAddr
			}
			if s.MaxUploadBytes > 0 {
				opts.MaxUploadBytes = s.MaxUploadBytes
			}
		}
		if t := a.fileConf.Tools; t != nil && t.FakeMines != nil {
			opts.FakeMinesDefaults = tool.Options{
				AllowSimultaneous: t.FakeMines.AllowSimultaneous,
				AllowSplitTiming:  t.FakeMines.AllowSplitTiming,
			}
		}
	}
	if a.config.ListenAddr != "" {
		opts.ListenAddr = a.config.ListenAddr
	}

	srv, err := web.NewServer(a.logger, a.registry, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv.Start()
	<-ctx.Done()
	stop()

	return srv.Shutdown(context.Background())
}
