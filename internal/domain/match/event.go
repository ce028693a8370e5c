package match

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Event is one entry of a match timeline. TeamID and TeamName carry the
// derived attribution. The stored form uses the same snake_case keys as the
// match columns and also repeats TeamID under the legacy "team" key so older
// dumps keep working.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	PlayerID    string    `json:"player_id,omitempty"`
	Minute      int       `json:"minute"`
	Description string    `json:"description,omitempty"`
	TeamID      string    `json:"team_id,omitempty"`
	TeamName    string    `json:"team_name,omitempty"`
}

// Attribution is the resolved team ownership of an event.
type Attribution struct {
	TeamID   string
	TeamName string
}

type eventJSON struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	PlayerID    string    `json:"player_id,omitempty"`
	Minute      int       `json:"minute"`
	Description string    `json:"description,omitempty"`
	Team        string    `json:"team,omitempty"`
	TeamID      string    `json:"team_id,omitempty"`
	TeamName    string    `json:"team_name,omitempty"`
}

// legacyEventJSON holds the camelCase keys written by earlier releases.
type legacyEventJSON struct {
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(eventJSON{
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

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw eventJSON
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}
	var legacy legacyEventJSON
	if err := sonic.Unmarshal(data, &legacy); err != nil {
		return err
	}

	*e = Event{
		ID:          raw.ID,
		Type:        raw.Type,
		PlayerID:    firstNonEmpty(raw.PlayerID, legacy.PlayerID),
		Minute:      raw.Minute,
		Description: raw.Description,
		TeamID:      firstNonEmpty(raw.TeamID, legacy.TeamID, raw.Team),
		TeamName:    firstNonEmpty(raw.TeamName, legacy.TeamName),
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (e Event) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("invalid event type: %s", e.Type)
	}
	if e.Minute < 0 || e.Minute > MaxEventMinute {
		return fmt.Errorf("event minute must be between 0 and %d", MaxEventMinute)
	}
	return nil
}

// HasAttribution reports whether the event already names a team.
func (e Event) HasAttribution() bool {
	return strings.TrimSpace(e.TeamID) != ""
}

// NormalizeAttribution returns the event's existing team reference with a
// display name, falling back to UnknownTeamName. ok is false when the event
// carries no team.
func NormalizeAttribution(e Event) (Attribution, bool) {
	teamID := strings.TrimSpace(e.TeamID)
	if teamID == "" {
		return Attribution{}, false
	}
	name := strings.TrimSpace(e.TeamName)
	if name == "" {
		name = UnknownTeamName
	}
	return Attribution{TeamID: teamID, TeamName: name}, true
}

// WithAttribution returns a copy of e carrying a.
func (e Event) WithAttribution(a Attribution) Event {
	e.TeamID = a.TeamID
	e.TeamName = a.TeamName
	return e
}
