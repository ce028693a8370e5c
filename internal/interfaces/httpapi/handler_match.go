package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
	"github.com/riskibarqy/football-tournament/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	query := r.URL.Query()
	filter := match.Filter{
		Status: match.Status(strings.ToLower(strings.TrimSpace(query.Get("status")))),
		TeamID: strings.TrimSpace(query.Get("team_id")),
	}

	items, err := h.matchService.List(ctx, filter)
	if err != nil {
		h.failed(ctx, w, "list matches failed", err, "status", filter.Status, "team_id", filter.TeamID)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.failed(ctx, w, "get match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  req.KickoffAt,
		Venue:      req.Venue,
		Status:     match.Status(req.Status),
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
		Events:     eventsFromDTO(req.Events),
	})
	if err != nil {
		h.failed(ctx, w, "create match failed", err, "home_team_id", req.HomeTeamID, "away_team_id", req.AwayTeamID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req updateMatchRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateMatchInput{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		KickoffAt:  req.KickoffAt,
		Venue:      req.Venue,
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
	}
	if req.Events != nil {
		events := eventsFromDTO(*req.Events)
		input.Events = &events
	}
	if req.Status != nil {
		status := match.Status(*req.Status)
		input.Status = &status
	}

	item, err := h.matchService.Update(ctx, matchID, input)
	if err != nil {
		h.failed(ctx, w, "update match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.failed(ctx, w, "delete match failed", err, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": matchID})
}

func (h *Handler) FixLegacyEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FixLegacyEvents")
	defer span.End()

	result, err := h.matchService.FixLegacyEvents(ctx)
	if err != nil {
		h.failed(ctx, w, "fix legacy events failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixEventsDTO{
		MatchesScanned: result.MatchesScanned,
		MatchesUpdated: result.MatchesUpdated,
		EventsFixed:    result.EventsFixed,
	})
}
