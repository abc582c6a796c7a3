package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"swapcore/internal/bootstrap"
	"swapcore/internal/config"
	"swapcore/internal/infrastructure/logx"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatal("bootstrap", zap.Error(err))
	}
	defer cleanup()

	log.Info("order watcher started", zap.Duration("poll", cfg.WatcherPoll))
	app.Watcher.Start(ctx)
}
