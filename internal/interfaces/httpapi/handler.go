package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/football-tournament/internal/platform/logging"
	"github.com/riskibarqy/football-tournament/internal/usecase"
)

// maxBodyBytes bounds request payloads; match timelines are the largest.
const maxBodyBytes = 1 << 20

// HealthCheck probes one dependency for /healthz.
type HealthCheck func(ctx context.Context) error

type Services struct {
	Auth       *usecase.AuthService
	Users      *usecase.UserService
	Teams      *usecase.TeamService
	Players    *usecase.PlayerService
	Matches    *usecase.MatchService
	Tournament *usecase.TournamentService
}

type Handler struct {
	authService       *usecase.AuthService
	userService       *usecase.UserService
	teamService       *usecase.TeamService
	playerService     *usecase.PlayerService
	matchService      *usecase.MatchService
	tournamentService *usecase.TournamentService
	healthChecks      map[string]HealthCheck
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(services Services, healthChecks map[string]HealthCheck, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:       services.Auth,
		userService:       services.Users,
		teamService:       services.Teams,
		playerService:     services.Players,
		matchService:      services.Matches,
		tournamentService: services.Tournament,
		healthChecks:      healthChecks,
		logger:            logger.Named("httpapi"),
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	checks := make(map[string]string, len(h.healthChecks))
	status, code := "ok", http.StatusOK
	for name, check := range h.healthChecks {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := check(checkCtx)
		cancel()
		if err != nil {
			h.logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
			checks[name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	writeSuccess(ctx, w, code, healthDTO{Status: status, Checks: checks})
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// failed logs err at the level matching its HTTP class and writes it.
func (h *Handler) failed(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func requirePrincipal(ctx context.Context) (usecase.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return usecase.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// authorizeTeam fails unless the caller may edit teamID's roster.
func authorizeTeam(ctx context.Context, teamID string) error {
	principal, err := requirePrincipal(ctx)
	if err != nil {
		return err
	}
	if !principal.CanManageTeam(teamID) {
		return fmt.Errorf("%w: user %s may not manage team %s", usecase.ErrForbidden, principal.Username, teamID)
	}
	return nil
}
