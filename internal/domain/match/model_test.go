package match

import (
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func TestEvent_UnmarshalAcceptsLegacyTeamKey(t *testing.T) {
	var e Event
	if err := sonic.Unmarshal([]byte(`{"id":"e1","type":"goal","minute":12,"team":"t-away"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.TeamID != "t-away" {
		t.Fatalf("expected legacy team key to populate TeamID, got %q", e.TeamID)
	}

	if err := sonic.Unmarshal([]byte(`{"id":"e2","type":"goal","team":"old","team_id":"new"}`), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.TeamID != "new" {
		t.Fatalf("expected team_id to win over team, got %q", e.TeamID)
	}
}

func TestEvent_UnmarshalAcceptsCamelCaseRows(t *testing.T) {
	var e Event
	raw := `{"id":"e3","type":"goal","playerId":"p9","teamId":"t1","teamName":"Lions"}`
	if err := sonic.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.PlayerID != "p9" || e.TeamID != "t1" || e.TeamName != "Lions" {
		t.Fatalf("expected camelCase keys to be read, got %+v", e)
	}
}

func TestEvent_MarshalEmitsBothTeamKeys(t *testing.T) {
	raw, err := sonic.Marshal(Event{ID: "e1", Type: EventGoal, Minute: 3, TeamID: "t1", TeamName: "Lions"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `"team":"t1"`) || !strings.Contains(body, `"team_id":"t1"`) {
		t.Fatalf("expected both team keys, got %s", body)
	}
	if !strings.Contains(body, `"team_name":"Lions"`) {
		t.Fatalf("expected snake_case team name, got %s", body)
	}
}

func TestNormalizeAttribution(t *testing.T) {
	if _, ok := NormalizeAttribution(Event{}); ok {
		t.Fatalf("expected no attribution for empty event")
	}

	got, ok := NormalizeAttribution(Event{TeamID: " t1 "})
	if !ok || got.TeamID != "t1" || got.TeamName != UnknownTeamName {
		t.Fatalf("unexpected attribution: %+v ok=%v", got, ok)
	}

	got, _ = NormalizeAttribution(Event{TeamID: "t1", TeamName: "Lions"})
	if got.TeamName != "Lions" {
		t.Fatalf("expected existing name to be kept, got %+v", got)
	}
}

func TestMatch_BackfillAttributionIsIdempotent(t *testing.T) {
	m := Match{
		HomeTeamID: "home",
		AwayTeamID: "away",
		Events: []Event{
			{ID: "e1", Type: EventGoal, PlayerID: "p-away"},
			{ID: "e2", Type: EventGoal, TeamID: "away", TeamName: "Away FC"},
		},
	}

	if fixed := m.BackfillAttribution(); fixed != 1 {
		t.Fatalf("expected 1 fixed event, got %d", fixed)
	}
	if m.Events[0].TeamID != "home" || m.Events[0].TeamName != UnknownTeamName {
		t.Fatalf("expected home default, got %+v", m.Events[0])
	}
	if m.Events[1].TeamID != "away" {
		t.Fatalf("expected attributed event untouched, got %+v", m.Events[1])
	}
	if fixed := m.BackfillAttribution(); fixed != 0 {
		t.Fatalf("expected second run to change nothing, got %d", fixed)
	}
}

func TestMatch_Validate(t *testing.T) {
	base := Match{ID: "m1", HomeTeamID: "a", AwayTeamID: "b", Status: StatusUpcoming}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := base
	same.AwayTeamID = "a"
	if err := same.Validate(); err == nil {
		t.Fatalf("expected error for same teams")
	}

	badMinute := base
	badMinute.Events = []Event{{Type: EventGoal, Minute: 151}}
	if err := badMinute.Validate(); err == nil {
		t.Fatalf("expected error for minute out of range")
	}

	badScore := base
	badScore.HomeScore = -1
	if err := badScore.Validate(); err == nil {
		t.Fatalf("expected error for negative score")
	}
}

func TestFilter_Matches(t *testing.T) {
	m := Match{HomeTeamID: "a", AwayTeamID: "b", Status: StatusLive}
	if !(Filter{}).Matches(m) {
		t.Fatalf("expected empty filter to match")
	}
	if !(Filter{Status: StatusLive, TeamID: "b"}).Matches(m) {
		t.Fatalf("expected status+away team to match")
	}
	if (Filter{TeamID: "c"}).Matches(m) {
		t.Fatalf("expected other team not to match")
	}
}

func TestMatch_StoredFormUsesSnakeCaseKeys(t *testing.T) {
	raw, err := sonic.Marshal(Match{
		ID:         "m1",
		HomeTeamID: "t1",
		AwayTeamID: "t2",
		Status:     StatusLive,
		Events:     []Event{{ID: "e1", Type: EventGoal, PlayerID: "p1", TeamID: "t1", TeamName: "Lions"}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, key := range []string{`"home_team_id"`, `"player_id"`, `"team_id"`, `"team_name"`} {
		if !strings.Contains(body, key) {
			t.Fatalf("expected key %s, got %s", key, body)
		}
	}
	for _, key := range []string{`"playerId"`, `"teamId"`, `"teamName"`} {
		if strings.Contains(body, key) {
			t.Fatalf("unexpected camelCase key %s in %s", key, body)
		}
	}
}
