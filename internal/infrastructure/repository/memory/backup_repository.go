package memory

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/football-tournament/internal/domain/backup"
	"github.com/riskibarqy/football-tournament/internal/domain/match"
	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	"github.com/riskibarqy/football-tournament/internal/domain/user"
)

// BackupRepository dumps and replaces the in-memory collections.
type BackupRepository struct {
	users       *UserRepository
	teams       *TeamRepository
	players     *PlayerRepository
	matches     *MatchRepository
	tournaments *TournamentRepository
}

func NewBackupRepository(
	users *UserRepository,
	teams *TeamRepository,
	players *PlayerRepository,
	matches *MatchRepository,
	tournaments *TournamentRepository,
) *BackupRepository {
	return &BackupRepository{
		users:       users,
		teams:       teams,
		players:     players,
		matches:     matches,
		tournaments: tournaments,
	}
}

func (r *BackupRepository) Dump(_ context.Context, collection string) ([]backup.Document, error) {
	switch collection {
	case backup.CollectionUsers:
		return encodeAll(r.users.all())
	case backup.CollectionTeams:
		return encodeAll(r.teams.all())
	case backup.CollectionPlayers:
		return encodeAll(r.players.all())
	case backup.CollectionMatches:
		return encodeAll(r.matches.all())
	case backup.CollectionTournament:
		return encodeAll(r.tournaments.all())
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}

func (r *BackupRepository) ReplaceAll(_ context.Context, docs map[string][]backup.Document) error {
	users, err := decodeAll[user.User](docs[backup.CollectionUsers])
	if err != nil {
		return fmt.Errorf("decode users: %w", err)
	}
	teams, err := decodeAll[team.Team](docs[backup.CollectionTeams])
	if err != nil {
		return fmt.Errorf("decode teams: %w", err)
	}
	players, err := decodeAll[player.Player](docs[backup.CollectionPlayers])
	if err != nil {
		return fmt.Errorf("decode players: %w", err)
	}
	matches, err := decodeAll[match.Match](docs[backup.CollectionMatches])
	if err != nil {
		return fmt.Errorf("decode matches: %w", err)
	}
	tournaments, err := decodeAll[tournament.Tournament](docs[backup.CollectionTournament])
	if err != nil {
		return fmt.Errorf("decode tournament: %w", err)
	}

	r.tournaments.replace(tournaments)
	r.users.replace(users)
	r.matches.replace(matches)
	r.players.replace(players)
	r.teams.replace(teams)
	return nil
}

func encodeAll[T any](items []T) ([]backup.Document, error) {
	out := make([]backup.Document, 0, len(items))
	for _, item := range items {
		raw, err := sonic.Marshal(item)
		if err != nil {
			return nil, err
		}
		out = append(out, backup.Document(raw))
	}
	return out, nil
}

func decodeAll[T any](docs []backup.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		var item T
		if err := sonic.Unmarshal(doc, &item); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}
