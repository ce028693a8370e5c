package httpapi

import (
	"strings"
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	"github.com/riskibarqy/football-tournament/internal/domain/user"
	"github.com/riskibarqy/football-tournament/internal/usecase"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=spectator captain"`
	TeamID   string `json:"teamId" validate:"required_if=Role captain"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateRoleRequest struct {
	Role   string `json:"role" validate:"required,oneof=management captain spectator"`
	TeamID string `json:"teamId" validate:"required_if=Role captain"`
}

type createTeamRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	ShortName string `json:"shortName" validate:"max=10"`
	Coach     string `json:"coach" validate:"max=100"`
	LogoURL   string `json:"logoUrl" validate:"omitempty,url"`
}

type updateTeamRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	ShortName *string `json:"shortName" validate:"omitempty,max=10"`
	Coach     *string `json:"coach" validate:"omitempty,max=100"`
	LogoURL   *string `json:"logoUrl" validate:"omitempty,url"`
}

// Jersey ranges are checked by the roster rules so the error carries its
// own reason.
type createPlayerRequest struct {
	TeamID       string `json:"teamId" validate:"required"`
	Name         string `json:"name" validate:"required,max=100"`
	Position     string `json:"position" validate:"omitempty,oneof=GK DEF MID FWD"`
	JerseyNumber int    `json:"jerseyNumber"`
	IsSubstitute *bool  `json:"isSubstitute"`
}

type updatePlayerRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Position     *string `json:"position" validate:"omitempty,oneof=GK DEF MID FWD"`
	JerseyNumber *int    `json:"jerseyNumber"`
}

type createMatchRequest struct {
	HomeTeamID string     `json:"homeTeamId" validate:"required"`
	AwayTeamID string     `json:"awayTeamId" validate:"required,nefield=HomeTeamID"`
	KickoffAt  *time.Time `json:"kickoffAt"`
	Venue      string     `json:"venue" validate:"max=200"`
	Status     string     `json:"status" validate:"omitempty,oneof=upcoming live completed"`
	HomeScore  int        `json:"homeScore" validate:"min=0"`
	AwayScore  int        `json:"awayScore" validate:"min=0"`
	Events     []eventDTO `json:"events"`
}

type updateMatchRequest struct {
	HomeTeamID *string     `json:"homeTeamId" validate:"omitempty,min=1"`
	AwayTeamID *string     `json:"awayTeamId" validate:"omitempty,min=1"`
	KickoffAt  *time.Time  `json:"kickoffAt"`
	Venue      *string     `json:"venue" validate:"omitempty,max=200"`
	Status     *string     `json:"status" validate:"omitempty,oneof=upcoming live completed"`
	HomeScore  *int        `json:"homeScore" validate:"omitempty,min=0"`
	AwayScore  *int        `json:"awayScore" validate:"omitempty,min=0"`
	Events     *[]eventDTO `json:"events"`
}

type upsertTournamentRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Location    string `json:"location" validate:"max=200"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type healthDTO struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      user.Role `json:"role"`
	TeamID    string    `json:"teamId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type authTokenDTO struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        userDTO   `json:"user"`
}

type teamDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ShortName       string    `json:"shortName,omitempty"`
	Coach           string    `json:"coach,omitempty"`
	LogoURL         string    `json:"logoUrl,omitempty"`
	StarterCount    int       `json:"starterCount"`
	SubstituteCount int       `json:"substituteCount"`
	PlayerCount     int       `json:"playerCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type teamDetailDTO struct {
	teamDTO
	Players []playerDTO `json:"players"`
}

type playerDTO struct {
	ID           string          `json:"id"`
	TeamID       string          `json:"teamId"`
	Name         string          `json:"name"`
	Position     player.Position `json:"position,omitempty"`
	JerseyNumber int             `json:"jerseyNumber"`
	IsSubstitute bool            `json:"isSubstitute"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type matchDTO struct {
	ID         string       `json:"id"`
	HomeTeamID string       `json:"homeTeamId"`
	AwayTeamID string       `json:"awayTeamId"`
	KickoffAt  *time.Time   `json:"kickoffAt,omitempty"`
	Venue      string       `json:"venue,omitempty"`
	Status     match.Status `json:"status"`
	HomeScore  int          `json:"homeScore"`
	AwayScore  int          `json:"awayScore"`
	Events     []eventDTO   `json:"events"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// eventDTO is the wire form of a timeline event. Requests may name the team
// with the legacy "team" key; responses repeat TeamID under it.
type eventDTO struct {
	ID          string          `json:"id,omitempty"`
	Type        match.EventType `json:"type"`
	PlayerID    string          `json:"playerId,omitempty"`
	Minute      int             `json:"minute"`
	Description string          `json:"description,omitempty"`
	Team        string          `json:"team,omitempty"`
	TeamID      string          `json:"teamId,omitempty"`
	TeamName    string          `json:"teamName,omitempty"`
}

type fixEventsDTO struct {
	MatchesScanned int `json:"matchesScanned"`
	MatchesUpdated int `json:"matchesUpdated"`
	EventsFixed    int `json:"eventsFixed"`
}

type tournamentDTO struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func userToDTO(v user.User) userDTO {
	return userDTO{
		ID:        v.ID,
		Username:  v.Username,
		Email:     v.Email,
		Role:      v.Role,
		TeamID:    v.TeamID,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		ShortName: v.ShortName,
		Coach:     v.Coach,
		LogoURL:   v.LogoURL,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func teamSummaryToDTO(v usecase.TeamSummary) teamDTO {
	out := teamToDTO(v.Team)
	out.StarterCount = v.StarterCount
	out.SubstituteCount = v.SubstituteCount
	out.PlayerCount = v.StarterCount + v.SubstituteCount
	return out
}

func teamDetailToDTO(v usecase.TeamDetails) teamDetailDTO {
	players := make([]playerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerToDTO(p))
	}
	return teamDetailDTO{
		teamDTO: teamSummaryToDTO(v.TeamSummary),
		Players: players,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		TeamID:       v.TeamID,
		Name:         v.Name,
		Position:     v.Position,
		JerseyNumber: v.JerseyNumber,
		IsSubstitute: v.IsSubstitute,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func eventsFromDTO(items []eventDTO) []match.Event {
	if items == nil {
		return nil
	}
	out := make([]match.Event, 0, len(items))
	for _, v := range items {
		teamID := strings.TrimSpace(v.TeamID)
		if teamID == "" {
			teamID = strings.TrimSpace(v.Team)
		}
		out = append(out, match.Event{
			ID:          v.ID,
			Type:        v.Type,
			PlayerID:    v.PlayerID,
			Minute:      v.Minute,
			Description: v.Description,
			TeamID:      teamID,
			TeamName:    v.TeamName,
		})
	}
	return out
}

func matchToDTO(v match.Match) matchDTO {
	events := make([]eventDTO, 0, len(v.Events))
	for _, e := range v.Events {
		events = append(events, eventDTO{
			ID:          e.ID,
			Type:        e.Type,
			PlayerID:    e.PlayerID,
			Minute:      e.Minute,
			Description: e.Description,
			Team:        e.TeamID,
			TeamID:      e.TeamID,
			TeamName:    e.TeamName,
		})
	}
	return matchDTO{
		ID:         v.ID,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		KickoffAt:  v.KickoffAt,
		Venue:      v.Venue,
		Status:     v.Status,
		HomeScore:  v.HomeScore,
		AwayScore:  v.AwayScore,
		Events:     events,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func tournamentToDTO(v tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		Name:        v.Name,
		Description: v.Description,
		Location:    v.Location,
		StartDate:   v.StartDate,
		EndDate:     v.EndDate,
		UpdatedAt:   v.UpdatedAt,
	}
}
