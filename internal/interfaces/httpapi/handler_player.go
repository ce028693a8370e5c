package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	items, err := h.playerService.List(ctx, teamID)
	if err != nil {
		h.failed(ctx, w, "list players failed", err, "team_id", teamID)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.failed(ctx, w, "get player failed", err, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := authorizeTeam(ctx, req.TeamID); err != nil {
		h.failed(ctx, w, "create player rejected", err, "team_id", req.TeamID)
		return
	}

	item, err := h.playerService.Create(ctx, usecase.CreatePlayerInput{
		TeamID:       req.TeamID,
		Name:         req.Name,
		Position:     player.Position(req.Position),
		JerseyNumber: req.JerseyNumber,
		IsSubstitute: req.IsSubstitute,
	})
	if err != nil {
		h.failed(ctx, w, "create player failed", err, "team_id", req.TeamID, "jersey_number", req.JerseyNumber)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if !h.authorizePlayer(w, r.WithContext(ctx), playerID) {
		return
	}

	var req updatePlayerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdatePlayerInput{
		Name:         req.Name,
		JerseyNumber: req.JerseyNumber,
	}
	if req.Position != nil {
		position := player.Position(*req.Position)
		input.Position = &position
	}

	item, err := h.playerService.Update(ctx, playerID, input)
	if err != nil {
		h.failed(ctx, w, "update player failed", err, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if !h.authorizePlayer(w, r.WithContext(ctx), playerID) {
		return
	}

	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.failed(ctx, w, "delete player failed", err, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": playerID})
}

// authorizePlayer resolves the player's team and checks the caller may edit
// it. It writes the error response and returns false on failure.
func (h *Handler) authorizePlayer(w http.ResponseWriter, r *http.Request, playerID string) bool {
	ctx := r.Context()
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.failed(ctx, w, "get player failed", err, "player_id", playerID)
		return false
	}
	if err := authorizeTeam(ctx, item.TeamID); err != nil {
		h.failed(ctx, w, "player change rejected", err, "player_id", playerID, "team_id", item.TeamID)
		return false
	}
	return true
}
