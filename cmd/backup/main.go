package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/football-tournament/internal/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := app.NewLogger(cfg).Named("backup")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := app.NewBackup(ctx, cfg, logger)
	if err != nil {
		logger.Error("build backup", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	snapshot, err := b.Service.Dump(ctx)
	if err == nil {
		var path string
		path, err = app.WriteSnapshotFile(cfg.BackupDir, snapshot)
		if err == nil {
			logger.Info("backup written", "path", path, "documents", snapshot.Count())
		}
	}
	if closeErr := b.Close(); closeErr != nil {
		logger.Warn("close storage", "error", closeErr)
	}
	if err != nil {
		logger.Error("backup failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
