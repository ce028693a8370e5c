package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-tournament/internal/domain/user"
)

var (
	managementOnly = []user.Role{user.RoleManagement}
	rosterEditors  = []user.Role{user.RoleManagement, user.RoleCaptain}
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.Handle("GET /v1/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/tournament", handler.GetTournament)
}

func registerManagementRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/users", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.ListUsers)))
	mux.Handle("PUT /v1/users/{userID}/role", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.UpdateUserRole)))
	mux.Handle("DELETE /v1/users/{userID}", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.DeleteUser)))

	mux.Handle("POST /v1/teams", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.DeleteTeam)))

	mux.Handle("POST /v1/matches", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/matches/fix-events", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.FixLegacyEvents)))
	mux.Handle("PUT /v1/matches/{matchID}", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.UpdateMatch)))
	mux.Handle("DELETE /v1/matches/{matchID}", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.DeleteMatch)))

	mux.Handle("PUT /v1/tournament", RequireRole(verifier, managementOnly, http.HandlerFunc(handler.UpsertTournament)))
}

// Captains pass the role gate here; handlers then check the target team.
func registerRosterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/teams/{teamID}", RequireRole(verifier, rosterEditors, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("POST /v1/players", RequireRole(verifier, rosterEditors, http.HandlerFunc(handler.CreatePlayer)))
	mux.Handle("PUT /v1/players/{playerID}", RequireRole(verifier, rosterEditors, http.HandlerFunc(handler.UpdatePlayer)))
	mux.Handle("DELETE /v1/players/{playerID}", RequireRole(verifier, rosterEditors, http.HandlerFunc(handler.DeletePlayer)))
}
