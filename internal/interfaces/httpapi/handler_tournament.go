package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-tournament/internal/usecase"
)

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	item, err := h.tournamentService.Get(ctx)
	if err != nil {
		h.failed(ctx, w, "get tournament failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}

func (h *Handler) UpsertTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertTournament")
	defer span.End()

	var req upsertTournamentRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Upsert(ctx, usecase.UpsertTournamentInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		h.failed(ctx, w, "upsert tournament failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tournamentToDTO(item))
}
