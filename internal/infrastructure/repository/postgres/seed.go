package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/football-tournament/internal/platform/querybuilder"
)

// BootstrapSeed inserts the demo teams, players, matches and tournament when
// the teams table is empty.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(label string, query string, args []any, err error) error {
		if err != nil {
			return fmt.Errorf("build seed %s query: %w", label, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s: %w", label, err)
		}
		return nil
	}

	for _, t := range memory.SeedTeams() {
		query, args, err := qb.InsertModel("teams", teamToRow(t), "ON CONFLICT (id) DO NOTHING")
		if err := exec("team "+t.ID, query, args, err); err != nil {
			return err
		}
	}
	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("players", playerToRow(p), "ON CONFLICT (id) DO NOTHING")
		if err := exec("player "+p.ID, query, args, err); err != nil {
			return err
		}
	}
	for _, m := range memory.SeedMatches() {
		row, err := matchToRow(m)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("matches", row, "ON CONFLICT (id) DO NOTHING")
		if err := exec("match "+m.ID, query, args, err); err != nil {
			return err
		}
	}
	if t := memory.SeedTournament(); t != nil {
		query, args, err := qb.InsertModel("tournament", tournamentTableModel{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Location:    t.Location,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			UpdatedAt:   t.UpdatedAt,
		}, "ON CONFLICT (id) DO NOTHING")
		if err := exec("tournament", query, args, err); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
