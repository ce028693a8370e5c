package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/football-tournament/internal/domain/backup"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

const defaultBackupWorkers = 4

type BackupService struct {
	repo    backup.Repository
	workers int
	logger  *logging.Logger
	now     func() time.Time
}

func NewBackupService(repo backup.Repository, workers int, logger *logging.Logger) *BackupService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultBackupWorkers
	}
	return &BackupService{
		repo:    repo,
		workers: workers,
		logger:  logger,
		now:     time.Now,
	}
}

// Dump reads every collection verbatim. Collections are read concurrently
// on a bounded worker pool.
func (s *BackupService) Dump(ctx context.Context) (backup.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Dump")
	defer span.End()

	pool, err := ants.NewPool(min(s.workers, len(backup.Collections)))
	if err != nil {
		return backup.Snapshot{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
		errs    []error
	)
	collections := make(map[string][]backup.Document, len(backup.Collections))

	for _, name := range backup.Collections {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			docs, err := s.repo.Dump(ctx, name)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("dump %s: %w", name, err))
				return
			}
			if docs == nil {
				docs = []backup.Document{}
			}
			collections[name] = docs
		}); err != nil {
			workers.Done()
			workers.Wait()
			return backup.Snapshot{}, fmt.Errorf("submit dump task: %w", err)
		}
	}
	workers.Wait()

	if err := errors.Join(errs...); err != nil {
		return backup.Snapshot{}, err
	}

	snapshot := backup.Snapshot{
		Version:     backup.FormatVersion,
		CreatedAt:   s.now().UTC(),
		Collections: collections,
	}
	s.logger.InfoContext(ctx, "backup dumped",
		"collections", len(collections),
		"documents", snapshot.Count(),
	)
	return snapshot, nil
}

// Restore replaces every collection with the snapshot contents.
func (s *BackupService) Restore(ctx context.Context, snapshot backup.Snapshot) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackupService.Restore")
	defer span.End()

	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.ReplaceAll(ctx, snapshot.Collections); err != nil {
		return fmt.Errorf("replace collections: %w", err)
	}

	s.logger.InfoContext(ctx, "backup restored",
		"created_at", snapshot.CreatedAt,
		"documents", snapshot.Count(),
	)
	return nil
}
