package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/riskibarqy/football-tournament/internal/app"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <backup-file.json>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := app.NewLogger(cfg).Named("restore")

	snapshot, err := app.ReadSnapshotFile(os.Args[1])
	if err != nil {
		logger.Error("load backup", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := app.NewBackup(ctx, cfg, logger)
	if err != nil {
		logger.Error("build backup", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	err = b.Service.Restore(ctx, snapshot)
	if closeErr := b.Close(); closeErr != nil {
		logger.Warn("close storage", "error", closeErr)
	}
	if err != nil {
		logger.Error("restore failed", "file", os.Args[1], "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("backup restored", "file", os.Args[1], "created_at", snapshot.CreatedAt, "documents", snapshot.Count())
	_ = logger.Sync()
}
