package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/roster"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	idgen "github.com/riskibarqy/football-tournament/internal/platform/id"
	"github.com/riskibarqy/football-tournament/internal/platform/lock"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

type CreatePlayerInput struct {
	TeamID       string
	Name         string
	Position     player.Position
	JerseyNumber int
	// IsSubstitute is accepted from clients but placement is always computed.
	IsSubstitute *bool
}

// UpdatePlayerInput carries optional fields; nil leaves the value unchanged.
// Team and substitute status cannot be changed after creation.
type UpdatePlayerInput struct {
	Name         *string
	Position     *player.Position
	JerseyNumber *int
}

type PlayerService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	rules      roster.Rules
	teamLocks  *lock.KeyedMutex
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	rules roster.Rules,
	teamLocks *lock.KeyedMutex,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	if teamLocks == nil {
		teamLocks = lock.NewKeyedMutex()
	}
	return &PlayerService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rules:      rules,
		teamLocks:  teamLocks,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PlayerService) List(ctx context.Context, teamID string) ([]player.Player, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		return items, nil
	}

	items, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrPlayerNotFound, playerID)
	}
	return item, nil
}

// Create registers a player and decides starter or substitute placement.
// Count, jersey check and insert run under a per-team lock so concurrent
// creations cannot overfill a roster.
func (s *PlayerService) Create(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Name = strings.TrimSpace(input.Name)
	if input.TeamID == "" {
		return player.Player{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if err := roster.ValidateJerseyNumber(input.JerseyNumber); err != nil {
		return player.Player{}, err
	}

	unlock := s.teamLocks.Lock(input.TeamID)
	defer unlock()

	_, exists, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrTeamNotFound, input.TeamID)
	}

	teammates, err := s.playerRepo.ListByTeamFresh(ctx, input.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("list players by team: %w", err)
	}
	if err := roster.CheckJerseyAvailable(input.JerseyNumber, teammates, ""); err != nil {
		return player.Player{}, err
	}

	placement, err := s.rules.Assign(roster.CountPlayers(teammates), input.IsSubstitute)
	if err != nil {
		return player.Player{}, err
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	item := player.Player{
		ID:           playerID,
		TeamID:       input.TeamID,
		Name:         input.Name,
		Position:     input.Position,
		JerseyNumber: input.JerseyNumber,
		IsSubstitute: placement.IsSubstitute,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	if input.IsSubstitute != nil && *input.IsSubstitute != item.IsSubstitute {
		s.logger.WarnContext(ctx, "substitute hint ignored",
			"player_id", item.ID,
			"requested", *input.IsSubstitute,
			"assigned", item.IsSubstitute,
		)
	}
	s.logger.InfoContext(ctx, "player created",
		"player_id", item.ID,
		"team_id", item.TeamID,
		"jersey_number", item.JerseyNumber,
		"is_substitute", item.IsSubstitute,
	)

	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, playerID string, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	item, err := s.Get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}

	unlock := s.teamLocks.Lock(item.TeamID)
	defer unlock()

	// Reload under the lock in case a concurrent edit landed first.
	item, err = s.Get(ctx, item.ID)
	if err != nil {
		return player.Player{}, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		item.Position = *input.Position
	}
	if input.JerseyNumber != nil && *input.JerseyNumber != item.JerseyNumber {
		if err := roster.ValidateJerseyNumber(*input.JerseyNumber); err != nil {
			return player.Player{}, err
		}
		teammates, err := s.playerRepo.ListByTeamFresh(ctx, item.TeamID)
		if err != nil {
			return player.Player{}, fmt.Errorf("list players by team: %w", err)
		}
		if err := roster.CheckJerseyAvailable(*input.JerseyNumber, teammates, item.ID); err != nil {
			return player.Player{}, err
		}
		item.JerseyNumber = *input.JerseyNumber
	}
	item.UpdatedAt = s.now().UTC()

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}

	s.logger.InfoContext(ctx, "player updated", "player_id", item.ID, "team_id", item.TeamID)
	return item, nil
}

// Delete removes a player. Remaining players keep their placement.
func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	item, err := s.Get(ctx, playerID)
	if err != nil {
		return err
	}

	unlock := s.teamLocks.Lock(item.TeamID)
	defer unlock()

	if err := s.playerRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}

	s.logger.InfoContext(ctx, "player deleted", "player_id", item.ID, "team_id", item.TeamID)
	return nil
}
