package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
	qb "github.com/riskibarqy/football-tournament/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	conds := make([]qb.Condition, 0, 2)
	if filter.Status != "" {
		conds = append(conds, qb.Eq("status", string(filter.Status)))
	}
	if filter.TeamID != "" {
		conds = append(conds, qb.Or(
			qb.Eq("home_team_id", filter.TeamID),
			qb.Eq("away_team_id", filter.TeamID),
		))
	}

	query, args, err := matchSelectBuilder().
		Where(conds...).
		OrderBy("kickoff_at ASC NULLS LAST", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := matchSelectBuilder().Where(qb.Eq("id", matchID)).Limit(1).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return item, true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	row, err := matchToRow(m)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("matches", row, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	row, err := matchToRow(m)
	if err != nil {
		return err
	}
	query, args, err := qb.UpdateModel("matches", row, "id", "created_at")
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("matches").Where(qb.Eq("id", matchID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

func matchSelectBuilder() *qb.SelectBuilder {
	return qb.Select(
		"id",
		"home_team_id",
		"away_team_id",
		"kickoff_at",
		"venue",
		"status",
		"home_score",
		"away_score",
		"events::text AS events",
		"created_at",
		"updated_at",
	).From("matches")
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	events, err := decodeEvents(row.Events)
	if err != nil {
		return match.Match{}, fmt.Errorf("decode events of match %s: %w", row.ID, err)
	}
	return match.Match{
		ID:         row.ID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		KickoffAt:  row.KickoffAt,
		Venue:      row.Venue,
		Status:     match.Status(row.Status),
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Events:     events,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func matchToRow(m match.Match) (matchTableModel, error) {
	events, err := encodeEvents(m.Events)
	if err != nil {
		return matchTableModel{}, fmt.Errorf("encode events of match %s: %w", m.ID, err)
	}
	return matchTableModel{
		ID:         m.ID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		KickoffAt:  m.KickoffAt,
		Venue:      m.Venue,
		Status:     string(m.Status),
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Events:     events,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}
