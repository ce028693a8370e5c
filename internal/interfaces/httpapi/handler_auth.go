package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-tournament/internal/domain/user"
	"github.com/riskibarqy/football-tournament/internal/usecase"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.authService.Register(ctx, usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     user.Role(req.Role),
		TeamID:   req.TeamID,
	})
	if err != nil {
		h.failed(ctx, w, "register failed", err, "username", req.Username)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(created))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	token, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.failed(ctx, w, "login failed", err, "username", req.Username)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, authTokenDTO{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        userToDTO(token.User),
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.authService.Me(ctx, principal.UserID)
	if err != nil {
		h.failed(ctx, w, "get current user failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(item))
}
