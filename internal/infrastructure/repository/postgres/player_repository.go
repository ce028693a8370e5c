package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/roster"
	qb "github.com/riskibarqy/football-tournament/internal/platform/querybuilder"
)

const playerJerseyConstraint = "players_team_jersey_key"

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return r.list(ctx)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	return r.list(ctx, qb.Eq("team_id", teamID))
}

func (r *PlayerRepository) ListByTeamFresh(ctx context.Context, teamID string) ([]player.Player, error) {
	return r.ListByTeam(ctx, teamID)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").Where(qb.Eq("id", playerID)).Limit(1).ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertModel("players", playerToRow(p), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, playerJerseyConstraint) {
			return fmt.Errorf("%w: jersey %d is taken", roster.ErrDuplicateJersey, p.JerseyNumber)
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.UpdateModel("players", playerToRow(p), "id", "created_at")
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, playerJerseyConstraint) {
			return fmt.Errorf("%w: jersey %d is taken", roster.ErrDuplicateJersey, p.JerseyNumber)
		}
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	query, args, err := qb.DeleteFrom("players").Where(qb.Eq("id", playerID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) DeleteByTeam(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.DeleteFrom("players").Where(qb.Eq("team_id", teamID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete team players query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete team players: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted players: %w", err)
	}
	return int(affected), nil
}

func (r *PlayerRepository) list(ctx context.Context, conds ...qb.Condition) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(conds...).
		OrderBy("team_id", "is_substitute", "jersey_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		TeamID:       row.TeamID,
		Name:         row.Name,
		Position:     player.Position(row.Position),
		JerseyNumber: row.JerseyNumber,
		IsSubstitute: row.IsSubstitute,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func playerToRow(p player.Player) playerTableModel {
	return playerTableModel{
		ID:           p.ID,
		TeamID:       p.TeamID,
		Name:         p.Name,
		Position:     string(p.Position),
		JerseyNumber: p.JerseyNumber,
		IsSubstitute: p.IsSubstitute,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
