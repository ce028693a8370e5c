package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/football-tournament/internal/config"
	"github.com/riskibarqy/football-tournament/internal/domain/backup"
	"github.com/riskibarqy/football-tournament/internal/domain/match"
	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	"github.com/riskibarqy/football-tournament/internal/domain/user"
	cacherepo "github.com/riskibarqy/football-tournament/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-tournament/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/football-tournament/internal/platform/cache"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
	"github.com/riskibarqy/football-tournament/internal/platform/resilience"
)

type repositories struct {
	users      user.Repository
	teams      team.Repository
	players    player.Repository
	matches    match.Repository
	tournament tournament.Repository
	backup     backup.Repository

	healthChecks map[string]httpapi.HealthCheck
	closers      []func() error
}

func (r *repositories) close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.closers = nil
	return firstErr
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*repositories, error) {
	repos := &repositories{healthChecks: map[string]httpapi.HealthCheck{}}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := repos.usePostgres(ctx, cfg, logger); err != nil {
			_ = repos.close()
			return nil, err
		}
	default:
		repos.useMemory(cfg)
	}

	if cfg.CacheEnabled {
		if err := repos.useCache(ctx, cfg, logger); err != nil {
			_ = repos.close()
			return nil, err
		}
	}

	return repos, nil
}

func (r *repositories) useMemory(cfg config.Config) {
	var (
		teams       []team.Team
		players     []player.Player
		matches     []match.Match
		tournaments *tournament.Tournament
	)
	if cfg.SeedDemoData {
		teams = memory.SeedTeams()
		players = memory.SeedPlayers()
		matches = memory.SeedMatches()
		tournaments = memory.SeedTournament()
	}

	userRepo := memory.NewUserRepository(nil)
	teamRepo := memory.NewTeamRepository(teams)
	playerRepo := memory.NewPlayerRepository(players)
	matchRepo := memory.NewMatchRepository(matches)
	tournamentRepo := memory.NewTournamentRepository(tournaments)

	r.users = userRepo
	r.teams = teamRepo
	r.players = playerRepo
	r.matches = matchRepo
	r.tournament = tournamentRepo
	r.backup = memory.NewBackupRepository(userRepo, teamRepo, playerRepo, matchRepo, tournamentRepo)
}

func (r *repositories) usePostgres(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	r.closers = append(r.closers, db.Close)
	r.healthChecks["postgres"] = db.PingContext

	if cfg.SeedDemoData {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		logger.InfoContext(ctx, "demo data seeded")
	}

	r.users = postgres.NewUserRepository(db)
	r.teams = postgres.NewTeamRepository(db)
	r.players = postgres.NewPlayerRepository(db)
	r.matches = postgres.NewMatchRepository(db)
	r.tournament = postgres.NewTournamentRepository(db)
	r.backup = postgres.NewBackupRepository(db)
	return nil
}

// useCache wraps the read-heavy repositories. Users and matches stay
// uncached: tokens are resolved against the latest user row and match
// timelines change during live games.
func (r *repositories) useCache(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	var store basecache.Store
	switch cfg.CacheDriver {
	case config.CacheDriverRedis:
		circuit := cfg.RedisCircuit
		circuit.OnStateChange = func(from, to resilience.CircuitState) {
			logger.Warn("redis circuit breaker state changed", "from", from, "to", to)
		}
		redisStore, err := basecache.NewRedisStore(ctx, basecache.RedisOptions{
			URL:            cfg.RedisURL,
			Namespace:      cfg.RedisNamespace,
			TTL:            cfg.CacheTTL,
			CircuitBreaker: circuit,
		})
		if err != nil {
			return fmt.Errorf("connect redis cache: %w", err)
		}
		r.closers = append(r.closers, redisStore.Close)
		r.healthChecks["redis"] = redisStore.HealthCheck
		store = redisStore
	default:
		store = basecache.NewMemoryStore(cfg.CacheTTL)
	}

	c := basecache.New(store, logger.Named("cache"))
	r.teams = cacherepo.NewTeamRepository(r.teams, c)
	r.players = cacherepo.NewPlayerRepository(r.players, c)
	r.tournament = cacherepo.NewTournamentRepository(r.tournament, c)
	r.backup = cacherepo.NewBackupRepository(r.backup, c)
	return nil
}
