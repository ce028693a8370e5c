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

// TeamSummary is a team with its roster split.
type TeamSummary struct {
	Team            team.Team
	StarterCount    int
	SubstituteCount int
}

type TeamDetails struct {
	TeamSummary
	Players []player.Player
}

type CreateTeamInput struct {
	Name      string
	ShortName string
	Coach     string
	LogoURL   string
}

// UpdateTeamInput carries optional fields; nil leaves the value unchanged.
type UpdateTeamInput struct {
	Name      *string
	ShortName *string
	Coach     *string
	LogoURL   *string
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	teamLocks  *lock.KeyedMutex
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	teamLocks *lock.KeyedMutex,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if teamLocks == nil {
		teamLocks = lock.NewKeyedMutex()
	}
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		teamLocks:  teamLocks,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TeamService) List(ctx context.Context) ([]TeamSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	byTeam := make(map[string][]player.Player, len(teams))
	for _, p := range players {
		byTeam[p.TeamID] = append(byTeam[p.TeamID], p)
	}

	out := make([]TeamSummary, 0, len(teams))
	for _, item := range teams {
		out = append(out, summarize(item, byTeam[item.ID]))
	}
	return out, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return TeamDetails{}, err
	}
	players, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("list players by team: %w", err)
	}

	return TeamDetails{
		TeamSummary: summarize(item, players),
		Players:     players,
	}, nil
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if err := s.ensureNameAvailable(ctx, input.Name, ""); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	item := team.Team{
		ID:        teamID,
		Name:      input.Name,
		ShortName: strings.TrimSpace(input.ShortName),
		Coach:     strings.TrimSpace(input.Coach),
		LogoURL:   strings.TrimSpace(input.LogoURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "name", item.Name)
	return item, nil
}

func (s *TeamService) Update(ctx context.Context, teamID string, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !strings.EqualFold(name, item.Name) {
			if err := s.ensureNameAvailable(ctx, name, item.ID); err != nil {
				return team.Team{}, err
			}
		}
		item.Name = name
	}
	if input.ShortName != nil {
		item.ShortName = strings.TrimSpace(*input.ShortName)
	}
	if input.Coach != nil {
		item.Coach = strings.TrimSpace(*input.Coach)
	}
	if input.LogoURL != nil {
		item.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	item.UpdatedAt = s.now().UTC()

	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	s.logger.InfoContext(ctx, "team updated", "team_id", item.ID, "name", item.Name)
	return item, nil
}

// Delete removes the team and its players. It holds the team's roster lock,
// which must be the one PlayerService uses, so no player insert can land
// after the cascade. Matches keep their team ids and fall back to sentinel
// names when attributed later.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	unlock := s.teamLocks.Lock(teamID)
	defer unlock()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}

	removed, err := s.playerRepo.DeleteByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("delete team players: %w", err)
	}
	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", item.ID, "players_removed", removed)
	return nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrTeamNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) ensureNameAvailable(ctx context.Context, name, selfID string) error {
	existing, exists, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get team by name: %w", err)
	}
	if exists && existing.ID != selfID {
		return fmt.Errorf("%w: team name %q is taken", ErrConflict, name)
	}
	return nil
}

func summarize(item team.Team, players []player.Player) TeamSummary {
	counts := roster.CountPlayers(players)
	return TeamSummary{
		Team:            item,
		StarterCount:    counts.Starters,
		SubstituteCount: counts.Substitutes,
	}
}
