package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("team_id", "t1"), Eq("is_substitute", false)).
		OrderBy("jersey_number ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE team_id = $1 AND is_substitute = $2 ORDER BY jersey_number ASC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != false {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_OrAndExpr(t *testing.T) {
	query, args, err := Select("id").
		From("matches").
		Where(
			Eq("status", "live"),
			Or(Eq("home_team_id", "t1"), Eq("away_team_id", "t1")),
			Expr("jsonb_array_length(events) > ?", 0),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM matches WHERE status = $1 AND (home_team_id = $2 OR away_team_id = $3) AND jsonb_array_length(events) > $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsert(t *testing.T) {
	query, args, err := Insert("teams", []string{"id", "name"}, []any{"t1", "Garuda FC"}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "t1" || args[1] != "Garuda FC" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Insert("teams", []string{"id", "name"}, []any{"t1"}, ""); err == nil {
		t.Fatalf("expected error for mismatched values")
	}
}

func TestSelectBuilder_EmptyOrMatchesNothing(t *testing.T) {
	query, _, err := Select("id").From("matches").Where(Or()).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM matches WHERE FALSE" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestUpdateBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := Update("teams").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped update")
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("players").Where(Eq("team_id", "t1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM players WHERE team_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("players").ToSQL(); err == nil {
		t.Fatalf("expected error for unscoped delete")
	}
	query, _, err = DeleteFrom("players").All().ToSQL()
	if err != nil || query != "DELETE FROM players" {
		t.Fatalf("unexpected full delete: %q err=%v", query, err)
	}
}

type teamTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	internal  string
}

func TestInsertModel(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("teams", teamTableModel{ID: "t1", Name: "Garuda FC", CreatedAt: now, UpdatedAt: now, internal: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	wantQuery := "INSERT INTO teams (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateModel_SkipsKeyAndExcludedColumns(t *testing.T) {
	query, args, err := UpdateModel("teams", &teamTableModel{ID: "t1", Name: "Garuda FC"}, "id", "created_at")
	if err != nil {
		t.Fatalf("build update model: %v", err)
	}

	wantQuery := "UPDATE teams SET name = $1, updated_at = $2 WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
