package httpapi

import (
	"net/http"

	"github.com/riskibarqy/football-tournament/internal/domain/user"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	items, err := h.userService.List(ctx)
	if err != nil {
		h.failed(ctx, w, "list users failed", err)
		return
	}

	out := make([]userDTO, 0, len(items))
	for _, item := range items {
		out = append(out, userToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateUserRole")
	defer span.End()

	userID := r.PathValue("userID")
	var req updateRoleRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.UpdateRole(ctx, userID, user.Role(req.Role), req.TeamID)
	if err != nil {
		h.failed(ctx, w, "update user role failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(item))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteUser")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	userID := r.PathValue("userID")
	if err := h.userService.Delete(ctx, userID, principal.UserID); err != nil {
		h.failed(ctx, w, "delete user failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": userID})
}
