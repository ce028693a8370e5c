package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-tournament/internal/config"
	"github.com/riskibarqy/football-tournament/internal/domain/backup"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
	"github.com/riskibarqy/football-tournament/internal/usecase"
)

// Backup wires a BackupService against the configured storage. Only
// postgres is accepted: the memory driver would dump a fresh seed.
type Backup struct {
	Service *usecase.BackupService
	repos   *repositories
}

func NewBackup(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Backup, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.StorageDriver != config.StoragePostgres {
		return nil, fmt.Errorf("backup requires STORAGE_DRIVER=%s, got %q", config.StoragePostgres, cfg.StorageDriver)
	}

	// Restores must not seed over the incoming snapshot.
	cfg.SeedDemoData = false
	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Backup{
		Service: usecase.NewBackupService(repos.backup, cfg.BackupWorkers, logger.Named("backup")),
		repos:   repos,
	}, nil
}

func (b *Backup) Close() error {
	return b.repos.close()
}

// backupTimeLayout keeps file names sortable and free of colons.
const backupTimeLayout = "20060102T150405Z"

// WriteSnapshotFile stores snapshot as backup-<timestamp>.json under dir and
// returns the file path.
func WriteSnapshotFile(dir string, snapshot backup.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	payload, err := sonic.ConfigStd.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	path := filepath.Join(dir, "backup-"+snapshot.CreatedAt.UTC().Format(backupTimeLayout)+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize backup file: %w", err)
	}
	return path, nil
}

func ReadSnapshotFile(path string) (backup.Snapshot, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return backup.Snapshot{}, fmt.Errorf("read backup file: %w", err)
	}

	var snapshot backup.Snapshot
	if err := sonic.ConfigStd.Unmarshal(payload, &snapshot); err != nil {
		return backup.Snapshot{}, fmt.Errorf("decode backup file %s: %w", path, err)
	}
	return snapshot, nil
}
