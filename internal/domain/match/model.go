package match

import (
	"fmt"
	"time"
)

const (
	// UnknownTeamName labels events whose team was set without a name.
	UnknownTeamName = "Unknown Team"
	// HomeTeamName labels events defaulted to a home team that no longer exists.
	HomeTeamName = "Home Team"

	MaxEventMinute = 150
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusLive, StatusCompleted:
		return true
	}
	return false
}

type EventType string

const (
	EventGoal         EventType = "goal"
	EventYellowCard   EventType = "yellow_card"
	EventRedCard      EventType = "red_card"
	EventSubstitution EventType = "substitution"
)

func (t EventType) Valid() bool {
	switch t {
	case EventGoal, EventYellowCard, EventRedCard, EventSubstitution:
		return true
	}
	return false
}

// Match is a fixture between two registered teams with its ordered timeline.
type Match struct {
	ID         string     `json:"id"`
	HomeTeamID string     `json:"home_team_id"`
	AwayTeamID string     `json:"away_team_id"`
	KickoffAt  *time.Time `json:"kickoff_at"`
	Venue      string     `json:"venue"`
	Status     Status     `json:"status"`
	HomeScore  int        `json:"home_score"`
	AwayScore  int        `json:"away_score"`
	Events     []Event    `json:"events"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("home and away team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("home and away teams must differ")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("scores must not be negative")
	}
	for i, e := range m.Events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}

	return nil
}

// InvolvesTeam reports whether teamID plays in the match.
func (m Match) InvolvesTeam(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// BackfillAttribution assigns the home team to every event that has no team
// and returns how many events changed. Player references are not consulted.
func (m *Match) BackfillAttribution() int {
	fixed := 0
	for i := range m.Events {
		if m.Events[i].HasAttribution() {
			continue
		}
		m.Events[i].TeamID = m.HomeTeamID
		m.Events[i].TeamName = UnknownTeamName
		fixed++
	}
	return fixed
}

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Status Status
	TeamID string
}

func (f Filter) Matches(m Match) bool {
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.TeamID != "" && !m.InvolvesTeam(f.TeamID) {
		return false
	}
	return true
}
