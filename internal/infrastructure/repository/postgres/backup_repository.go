package postgres

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-tournament/internal/domain/backup"
	qb "github.com/riskibarqy/football-tournament/internal/platform/querybuilder"
)

// backupTables maps collection names to tables. Only these names are ever
// interpolated into SQL.
var backupTables = map[string]string{
	backup.CollectionTeams:      "teams",
	backup.CollectionPlayers:    "players",
	backup.CollectionMatches:    "matches",
	backup.CollectionUsers:      "users",
	backup.CollectionTournament: "tournament",
}

// BackupRepository dumps rows as JSON objects keyed by column name and
// restores them with json_populate_record, so documents round-trip
// without passing through domain types.
type BackupRepository struct {
	db *sqlx.DB
}

func NewBackupRepository(db *sqlx.DB) *BackupRepository {
	return &BackupRepository{db: db}
}

func (r *BackupRepository) Dump(ctx context.Context, collection string) ([]backup.Document, error) {
	table, ok := backupTables[collection]
	if !ok {
		return nil, errors.Newf("unknown collection %q", collection)
	}

	query, args, err := qb.Select("row_to_json(t)::text").From(table + " t").OrderBy("t.id").ToSQL()
	if err != nil {
		return nil, errors.Wrapf(err, "build dump %s query", collection)
	}

	var rows []string
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrapf(err, "dump %s", collection)
	}

	docs := make([]backup.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, backup.Document(row))
	}
	return docs, nil
}

// ReplaceAll deletes every table in reverse dependency order and inserts the
// given documents in one transaction.
func (r *BackupRepository) ReplaceAll(ctx context.Context, docs map[string][]backup.Document) error {
	for name := range docs {
		if _, ok := backupTables[name]; !ok {
			return errors.Newf("unknown collection %q", name)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin restore tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	reversed := slices.Clone(backup.Collections)
	slices.Reverse(reversed)
	for _, name := range reversed {
		query, args, err := qb.DeleteFrom(backupTables[name]).All().ToSQL()
		if err != nil {
			return errors.Wrapf(err, "build clear %s query", name)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "clear %s", name)
		}
	}

	for _, name := range backup.Collections {
		table := backupTables[name]
		query := "INSERT INTO " + table + " SELECT * FROM json_populate_record(NULL::" + table + ", $1::json)"
		for i, doc := range docs[name] {
			if _, err := tx.ExecContext(ctx, query, string(doc)); err != nil {
				return errors.Wrapf(err, "restore %s document %d", name, i)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit restore tx")
	}
	return nil
}
