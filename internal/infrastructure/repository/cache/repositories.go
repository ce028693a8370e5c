package cache

import (
	"context"

	"github.com/riskibarqy/football-tournament/internal/domain/backup"
	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	basecache "github.com/riskibarqy/football-tournament/internal/platform/cache"
)

const (
	teamPrefix       = "team:"
	playerPrefix     = "player:"
	tournamentPrefix = "tournament:"
)

// lookupResult caches (value, exists) pairs so misses are cached too.
type lookupResult[T any] struct {
	Value  T    `json:"value"`
	Exists bool `json:"exists"`
}

func getByKey[T any](ctx context.Context, c *basecache.Cache, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	res, err := basecache.GetOrLoad(ctx, c, key, func(ctx context.Context) (lookupResult[T], error) {
		value, exists, err := load(ctx)
		if err != nil {
			return lookupResult[T]{}, err
		}
		return lookupResult[T]{Value: value, Exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return res.Value, res.Exists, nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Cache
}

func NewTeamRepository(next team.Repository, cache *basecache.Cache) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return basecache.GetOrLoad(ctx, r.cache, teamPrefix+"list", r.next.List)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return getByKey(ctx, r.cache, teamPrefix+"id:"+teamID, func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

// GetByName bypasses the cache; it backs uniqueness checks.
func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	return r.next.GetByName(ctx, name)
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	defer r.cache.InvalidatePrefix(ctx, teamPrefix)
	return r.next.Create(ctx, item)
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	defer r.cache.InvalidatePrefix(ctx, teamPrefix)
	return r.next.Update(ctx, item)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	defer r.cache.InvalidatePrefix(ctx, playerPrefix)
	defer r.cache.InvalidatePrefix(ctx, teamPrefix)
	return r.next.Delete(ctx, teamID)
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Cache
}

func NewPlayerRepository(next player.Repository, cache *basecache.Cache) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return basecache.GetOrLoad(ctx, r.cache, playerPrefix+"list", r.next.List)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	return basecache.GetOrLoad(ctx, r.cache, playerPrefix+"team:"+teamID, func(ctx context.Context) ([]player.Player, error) {
		return r.next.ListByTeam(ctx, teamID)
	})
}

// ListByTeamFresh bypasses the cache; it backs roster checks.
func (r *PlayerRepository) ListByTeamFresh(ctx context.Context, teamID string) ([]player.Player, error) {
	return r.next.ListByTeamFresh(ctx, teamID)
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return getByKey(ctx, r.cache, playerPrefix+"id:"+playerID, func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetByID(ctx, playerID)
	})
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	defer r.cache.InvalidatePrefix(ctx, playerPrefix)
	return r.next.Create(ctx, p)
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	defer r.cache.InvalidatePrefix(ctx, playerPrefix)
	return r.next.Update(ctx, p)
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	defer r.cache.InvalidatePrefix(ctx, playerPrefix)
	return r.next.Delete(ctx, playerID)
}

func (r *PlayerRepository) DeleteByTeam(ctx context.Context, teamID string) (int, error) {
	defer r.cache.InvalidatePrefix(ctx, playerPrefix)
	return r.next.DeleteByTeam(ctx, teamID)
}

type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Cache
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Cache) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

func (r *TournamentRepository) Get(ctx context.Context) (tournament.Tournament, bool, error) {
	return getByKey(ctx, r.cache, tournamentPrefix+tournament.SingletonID, r.next.Get)
}

func (r *TournamentRepository) Upsert(ctx context.Context, item tournament.Tournament) error {
	defer r.cache.InvalidatePrefix(ctx, tournamentPrefix)
	return r.next.Upsert(ctx, item)
}

// BackupRepository flushes every cached collection after a restore.
type BackupRepository struct {
	next  backup.Repository
	cache *basecache.Cache
}

func NewBackupRepository(next backup.Repository, cache *basecache.Cache) *BackupRepository {
	return &BackupRepository{next: next, cache: cache}
}

func (r *BackupRepository) Dump(ctx context.Context, collection string) ([]backup.Document, error) {
	return r.next.Dump(ctx, collection)
}

func (r *BackupRepository) ReplaceAll(ctx context.Context, docs map[string][]backup.Document) error {
	defer func() {
		for _, prefix := range []string{teamPrefix, playerPrefix, tournamentPrefix} {
			r.cache.InvalidatePrefix(ctx, prefix)
		}
	}()
	return r.next.ReplaceAll(ctx, docs)
}
