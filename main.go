package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dropforge/dropforge/dropforge"
	"github.com/dropforge/dropforge/dropforge/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	runOnce := flag.Bool("run-once", false, "run a single scheduler tick and exit")
	flag.Parse()

	cfg, err := dropforge.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Starting dropforge sale engine",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	app := dropforge.New(*cfg, version, commit)

	setupStart := time.Now()
	if err := app.Setup(ctx); err != nil {
		slog.Error("Failed to set up sale engine",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(setupStart)))
		os.Exit(-1)
	}
	slog.Info("Sale engine ready", slog.Duration("took", time.Since(setupStart)))

	if *runOnce {
		app.Scheduler.Tick(ctx)
		shutdown(app)
		return
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	go app.Scheduler.Run(runCtx)

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	slog.Info("Shutting down sale engine")
	runCancel()
	shutdown(app)
}

func shutdown(app *dropforge.App) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Shutdown(ctx); err != nil {
		slog.Error("Shutdown did not complete cleanly", slog.Any("error", err))
	}
}
