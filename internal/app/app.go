package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/football-tournament/internal/config"
	"github.com/riskibarqy/football-tournament/internal/domain/roster"
	"github.com/riskibarqy/football-tournament/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/football-tournament/internal/platform/id"
	"github.com/riskibarqy/football-tournament/internal/platform/lock"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
	"github.com/riskibarqy/football-tournament/internal/usecase"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server
	repos  *repositories
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	services := buildServices(cfg, repos, logger)
	if cfg.BootstrapAdminUsername != "" {
		admin, created, err := services.Auth.EnsureAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
		if err != nil {
			_ = repos.close()
			return nil, fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			logger.InfoContext(ctx, "bootstrap admin created", "username", admin.Username)
		}
	}

	handler := httpapi.NewHandler(services, repos.healthChecks, logger)
	router := httpapi.NewRouter(handler, services.Auth, logger, cfg.CORSAllowedOrigins)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		repos: repos,
	}, nil
}

// Shutdown drains the HTTP server then releases storage connections.
func (a *App) Shutdown(ctx context.Context) error {
	serverErr := a.Server.Shutdown(ctx)
	closeErr := a.repos.close()
	if serverErr != nil {
		return fmt.Errorf("shutdown http server: %w", serverErr)
	}
	return closeErr
}

func buildServices(cfg config.Config, repos *repositories, logger *logging.Logger) httpapi.Services {
	ids := idgen.NewUUIDGenerator()
	teamLocks := lock.NewKeyedMutex()

	return httpapi.Services{
		Auth: usecase.NewAuthService(repos.users, repos.teams, usecase.AuthConfig{
			Secret:     []byte(cfg.JWTSecret),
			TokenTTL:   cfg.JWTTTL,
			BcryptCost: cfg.BcryptCost,
			Issuer:     cfg.JWTIssuer,
		}, ids, logger.Named("auth"), nil),
		Users:   usecase.NewUserService(repos.users, repos.teams, logger.Named("users")),
		Teams:   usecase.NewTeamService(repos.teams, repos.players, teamLocks, ids, logger.Named("teams")),
		Players: usecase.NewPlayerService(repos.teams, repos.players, roster.DefaultRules(), teamLocks, ids, logger.Named("players")),
		Matches: usecase.NewMatchService(
			repos.matches,
			repos.teams,
			usecase.NewEventAttributor(repos.players, repos.teams, logger.Named("events")),
			ids,
			logger.Named("matches"),
		),
		Tournament: usecase.NewTournamentService(repos.tournament, logger.Named("tournament")),
	}
}
