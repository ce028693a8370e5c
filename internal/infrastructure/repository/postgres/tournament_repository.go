package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	qb "github.com/riskibarqy/football-tournament/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) Get(ctx context.Context) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(
		"id",
		"name",
		"description",
		"location",
		"to_char(start_date, 'YYYY-MM-DD') AS start_date",
		"to_char(end_date, 'YYYY-MM-DD') AS end_date",
		"updated_at",
	).
		From("tournament").
		Where(qb.Eq("id", tournament.SingletonID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}

	return tournament.Tournament{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Location:    row.Location,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

func (r *TournamentRepository) Upsert(ctx context.Context, item tournament.Tournament) error {
	model := tournamentTableModel{
		ID:          tournament.SingletonID,
		Name:        item.Name,
		Description: item.Description,
		Location:    item.Location,
		StartDate:   item.StartDate,
		EndDate:     item.EndDate,
		UpdatedAt:   item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("tournament", model, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    location = EXCLUDED.location,
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert tournament query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert tournament: %w", err)
	}
	return nil
}
