package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

type UpsertTournamentInput struct {
	Name        string
	Description string
	Location    string
	StartDate   string
	EndDate     string
}

type TournamentService struct {
	repo   tournament.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewTournamentService(repo tournament.Repository, logger *logging.Logger) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentService{repo: repo, logger: logger, now: time.Now}
}

func (s *TournamentService) Get(ctx context.Context) (tournament.Tournament, error) {
	item, exists, err := s.repo.Get(ctx)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament is not configured", ErrNotFound)
	}
	return item, nil
}

func (s *TournamentService) Upsert(ctx context.Context, input UpsertTournamentInput) (tournament.Tournament, error) {
	item := tournament.Tournament{
		ID:          tournament.SingletonID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Location:    strings.TrimSpace(input.Location),
		StartDate:   strings.TrimSpace(input.StartDate),
		EndDate:     strings.TrimSpace(input.EndDate),
		UpdatedAt:   s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return tournament.Tournament{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return tournament.Tournament{}, fmt.Errorf("upsert tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament updated", "name", item.Name, "start_date", item.StartDate, "end_date", item.EndDate)
	return item, nil
}
