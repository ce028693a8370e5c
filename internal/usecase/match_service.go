package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	idgen "github.com/riskibarqy/football-tournament/internal/platform/id"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

type CreateMatchInput struct {
	HomeTeamID string
	AwayTeamID string
	KickoffAt  *time.Time
	Venue      string
	Status     match.Status
	HomeScore  int
	AwayScore  int
	Events     []match.Event
}

// UpdateMatchInput carries optional fields; nil leaves the value unchanged.
// A non-nil Events replaces the whole timeline.
type UpdateMatchInput struct {
	HomeTeamID *string
	AwayTeamID *string
	KickoffAt  *time.Time
	Venue      *string
	Status     *match.Status
	HomeScore  *int
	AwayScore  *int
	Events     *[]match.Event
}

type FixLegacyEventsResult struct {
	MatchesScanned int
	MatchesUpdated int
	EventsFixed    int
}

type MatchService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	attributor *EventAttributor
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	attributor *EventAttributor,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		attributor: attributor,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	filter.TeamID = strings.TrimSpace(filter.TeamID)
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, filter.Status)
	}

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrMatchNotFound, matchID)
	}
	return item, nil
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	item := match.Match{
		HomeTeamID: strings.TrimSpace(input.HomeTeamID),
		AwayTeamID: strings.TrimSpace(input.AwayTeamID),
		Venue:      strings.TrimSpace(input.Venue),
		Status:     input.Status,
		HomeScore:  input.HomeScore,
		AwayScore:  input.AwayScore,
	}
	if item.Status == "" {
		item.Status = match.StatusUpcoming
	}
	if input.KickoffAt != nil {
		kickoff := input.KickoffAt.UTC()
		item.KickoffAt = &kickoff
	}
	if err := s.ensureTeams(ctx, item.HomeTeamID, item.AwayTeamID); err != nil {
		return match.Match{}, err
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	item.ID = matchID

	events, err := s.prepareEvents(ctx, input.Events, item)
	if err != nil {
		return match.Match{}, err
	}
	item.Events = events

	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", item.ID,
		"home_team_id", item.HomeTeamID,
		"away_team_id", item.AwayTeamID,
		"events", len(item.Events),
	)
	return item, nil
}

func (s *MatchService) Update(ctx context.Context, matchID string, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	item, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	teamsChanged := false
	if input.HomeTeamID != nil {
		item.HomeTeamID = strings.TrimSpace(*input.HomeTeamID)
		teamsChanged = true
	}
	if input.AwayTeamID != nil {
		item.AwayTeamID = strings.TrimSpace(*input.AwayTeamID)
		teamsChanged = true
	}
	if teamsChanged {
		if err := s.ensureTeams(ctx, item.HomeTeamID, item.AwayTeamID); err != nil {
			return match.Match{}, err
		}
	}
	if input.KickoffAt != nil {
		kickoff := input.KickoffAt.UTC()
		item.KickoffAt = &kickoff
	}
	if input.Venue != nil {
		item.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.HomeScore != nil {
		item.HomeScore = *input.HomeScore
	}
	if input.AwayScore != nil {
		item.AwayScore = *input.AwayScore
	}
	if input.Events != nil {
		events, err := s.prepareEvents(ctx, *input.Events, item)
		if err != nil {
			return match.Match{}, err
		}
		item.Events = events
	}
	item.UpdatedAt = s.now().UTC()

	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match updated",
		"match_id", item.ID,
		"status", item.Status,
		"events_replaced", input.Events != nil,
	)
	return item, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	item, err := s.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", item.ID)
	return nil
}

// FixLegacyEvents backfills every event without a team to its match's home
// team, saving matches one at a time. Running it again changes nothing.
// On error the counts cover the matches processed so far.
func (s *MatchService) FixLegacyEvents(ctx context.Context) (FixLegacyEventsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.FixLegacyEvents")
	defer span.End()

	var result FixLegacyEventsResult
	items, err := s.matchRepo.List(ctx, match.Filter{})
	if err != nil {
		return result, fmt.Errorf("list matches: %w", err)
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.MatchesScanned++

		fixed := item.BackfillAttribution()
		if fixed == 0 {
			continue
		}
		item.UpdatedAt = s.now().UTC()
		if err := s.matchRepo.Update(ctx, item); err != nil {
			return result, fmt.Errorf("update match %s: %w", item.ID, err)
		}
		result.MatchesUpdated++
		result.EventsFixed += fixed
	}

	s.logger.InfoContext(ctx, "legacy events fixed",
		"matches_scanned", result.MatchesScanned,
		"matches_updated", result.MatchesUpdated,
		"events_fixed", result.EventsFixed,
	)
	return result, nil
}

func (s *MatchService) ensureTeams(ctx context.Context, homeTeamID, awayTeamID string) error {
	if homeTeamID == "" || awayTeamID == "" {
		return fmt.Errorf("%w: home and away team ids are required", ErrInvalidInput)
	}
	if homeTeamID == awayTeamID {
		return fmt.Errorf("%w: home and away teams must differ", ErrInvalidInput)
	}
	for _, teamID := range []string{homeTeamID, awayTeamID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrTeamNotFound, teamID)
		}
	}
	return nil
}

func (s *MatchService) prepareEvents(ctx context.Context, events []match.Event, m match.Match) ([]match.Event, error) {
	prepared := make([]match.Event, 0, len(events))
	for i, event := range events {
		event.ID = strings.TrimSpace(event.ID)
		event.PlayerID = strings.TrimSpace(event.PlayerID)
		event.Description = strings.TrimSpace(event.Description)
		if err := event.Validate(); err != nil {
			return nil, fmt.Errorf("%w: event %d: %v", ErrInvalidInput, i, err)
		}
		if event.ID == "" {
			eventID, err := s.idGen.NewID()
			if err != nil {
				return nil, fmt.Errorf("generate event id: %w", err)
			}
			event.ID = eventID
		}
		prepared = append(prepared, event)
	}
	return s.attributor.AttributeAll(ctx, prepared, m), nil
}
