package memory

import (
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
)

const (
	TeamIDGaruda   = "team-garuda"
	TeamIDRajawali = "team-rajawali"
	TeamIDElang    = "team-elang"

	MatchIDOpening = "match-opening"
)

var seedTime = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDGaruda, Name: "Garuda FC", ShortName: "GAR", Coach: "Bima Santoso", CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: TeamIDRajawali, Name: "Rajawali United", ShortName: "RAJ", Coach: "Indra Sjafri", CreatedAt: seedTime, UpdatedAt: seedTime},
		{ID: TeamIDElang, Name: "Elang Muda", ShortName: "ELM", CreatedAt: seedTime, UpdatedAt: seedTime},
	}
}

func SeedPlayers() []player.Player {
	p := func(id, teamID, name string, pos player.Position, jersey int, sub bool) player.Player {
		return player.Player{
			ID:           id,
			TeamID:       teamID,
			Name:         name,
			Position:     pos,
			JerseyNumber: jersey,
			IsSubstitute: sub,
			CreatedAt:    seedTime,
			UpdatedAt:    seedTime,
		}
	}

	return []player.Player{
		p("gar-01", TeamIDGaruda, "Andritany", player.PositionGoalkeeper, 1, false),
		p("gar-04", TeamIDGaruda, "Hansamu", player.PositionDefender, 4, false),
		p("gar-05", TeamIDGaruda, "Rizky Ridho", player.PositionDefender, 5, false),
		p("gar-08", TeamIDGaruda, "Marc Klok", player.PositionMidfielder, 8, false),
		p("gar-10", TeamIDGaruda, "Egy Maulana", player.PositionMidfielder, 10, false),
		p("gar-09", TeamIDGaruda, "Dimas Drajad", player.PositionForward, 9, false),
		p("gar-11", TeamIDGaruda, "Witan", player.PositionForward, 11, false),
		p("gar-12", TeamIDGaruda, "Nadeo", player.PositionGoalkeeper, 12, true),
		p("raj-01", TeamIDRajawali, "Teja Paku Alam", player.PositionGoalkeeper, 1, false),
		p("raj-03", TeamIDRajawali, "Nick Kuipers", player.PositionDefender, 3, false),
		p("raj-07", TeamIDRajawali, "Beckham Putra", player.PositionMidfielder, 7, false),
		p("raj-19", TeamIDRajawali, "David da Silva", player.PositionForward, 19, false),
	}
}

// SeedMatches includes one completed match whose second event predates team
// attribution so the legacy backfill has something to fix.
func SeedMatches() []match.Match {
	kickoff := time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC)
	later := kickoff.Add(72 * time.Hour)
	return []match.Match{
		{
			ID:         MatchIDOpening,
			HomeTeamID: TeamIDGaruda,
			AwayTeamID: TeamIDRajawali,
			KickoffAt:  &kickoff,
			Venue:      "Gelora Bung Karno",
			Status:     match.StatusCompleted,
			HomeScore:  1,
			AwayScore:  1,
			Events: []match.Event{
				{ID: "ev-1", Type: match.EventGoal, PlayerID: "gar-09", Minute: 23, TeamID: TeamIDGaruda, TeamName: "Garuda FC"},
				{ID: "ev-2", Type: match.EventGoal, Minute: 67},
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:         "match-second",
			HomeTeamID: TeamIDRajawali,
			AwayTeamID: TeamIDElang,
			KickoffAt:  &later,
			Venue:      "Si Jalak Harupat",
			Status:     match.StatusUpcoming,
			Events:     []match.Event{},
			CreatedAt:  seedTime,
			UpdatedAt:  seedTime,
		},
	}
}

func SeedTournament() *tournament.Tournament {
	return &tournament.Tournament{
		ID:          tournament.SingletonID,
		Name:        "Piala Kemerdekaan",
		Description: "Community 7-a-side cup",
		Location:    "Jakarta",
		StartDate:   "2026-07-01",
		EndDate:     "2026-08-17",
		UpdatedAt:   seedTime,
	}
}
