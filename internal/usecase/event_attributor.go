package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

// EventAttributor derives which team owns a match event. It never fails:
// lookup misses and repository errors fall through to the next rule.
type EventAttributor struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	logger     *logging.Logger
}

func NewEventAttributor(playerRepo player.Repository, teamRepo team.Repository, logger *logging.Logger) *EventAttributor {
	if logger == nil {
		logger = logging.Default()
	}
	return &EventAttributor{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		logger:     logger,
	}
}

// Attribute resolves, in order: the team already on the event, the acting
// player's team, then the match's home team.
func (a *EventAttributor) Attribute(ctx context.Context, event match.Event, m match.Match) match.Attribution {
	return a.newResolver().attribute(ctx, event, m)
}

// AttributeAll re-derives attribution for every event of a replaced timeline.
func (a *EventAttributor) AttributeAll(ctx context.Context, events []match.Event, m match.Match) []match.Event {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventAttributor.AttributeAll")
	defer span.End()

	r := a.newResolver()
	out := make([]match.Event, 0, len(events))
	for _, event := range events {
		out = append(out, event.WithAttribution(r.attribute(ctx, event, m)))
	}
	return out
}

// resolver memoizes lookups for the duration of one attribution pass.
type resolver struct {
	*EventAttributor
	teams   map[string]*team.Team
	players map[string]*player.Player
}

func (a *EventAttributor) newResolver() *resolver {
	return &resolver{
		EventAttributor: a,
		teams:           make(map[string]*team.Team),
		players:         make(map[string]*player.Player),
	}
}

func (r *resolver) attribute(ctx context.Context, event match.Event, m match.Match) match.Attribution {
	if existing, ok := match.NormalizeAttribution(event); ok {
		return existing
	}

	if playerID := strings.TrimSpace(event.PlayerID); playerID != "" {
		if p := r.player(ctx, playerID); p != nil {
			if t := r.team(ctx, p.TeamID); t != nil {
				return match.Attribution{TeamID: t.ID, TeamName: t.Name}
			}
		}
	}

	if t := r.team(ctx, m.HomeTeamID); t != nil {
		return match.Attribution{TeamID: t.ID, TeamName: t.Name}
	}
	return match.Attribution{TeamID: m.HomeTeamID, TeamName: match.HomeTeamName}
}

func (r *resolver) player(ctx context.Context, playerID string) *player.Player {
	if cached, ok := r.players[playerID]; ok {
		return cached
	}

	var out *player.Player
	item, exists, err := r.playerRepo.GetByID(ctx, playerID)
	switch {
	case err != nil:
		r.logger.WarnContext(ctx, "attribution player lookup failed", "player_id", playerID, "error", err)
	case exists:
		out = &item
	}
	r.players[playerID] = out
	return out
}

func (r *resolver) team(ctx context.Context, teamID string) *team.Team {
	if teamID == "" {
		return nil
	}
	if cached, ok := r.teams[teamID]; ok {
		return cached
	}

	var out *team.Team
	item, exists, err := r.teamRepo.GetByID(ctx, teamID)
	switch {
	case err != nil:
		r.logger.WarnContext(ctx, "attribution team lookup failed", "team_id", teamID, "error", err)
	case exists:
		out = &item
	}
	r.teams[teamID] = out
	return out
}
