package handler

import (
	"net/http"

	"github.com/planit/api/internal/middleware"
	"github.com/planit/api/internal/model"
	"github.com/planit/api/internal/service"
)

// RoleHandler handles event role assignment HTTP requests
type RoleHandler struct {
	svc *service.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(svc *service.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// Assign handles POST /v1/events/{eventId}/roles - grant a role to a
// participant (organizer only)
func (h *RoleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID := middleware.GetUserID(ctx)
	if requesterID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	var req model.AssignRoleRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.UserID == "" {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	err := h.svc.AssignRole(ctx, eventID, requesterID, req.UserID, model.EventRole(req.Role))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Remove handles DELETE /v1/events/{eventId}/roles/{userId} - demote a
// participant back to the plain Participant role (organizer only)
func (h *RoleHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requesterID := middleware.GetUserID(ctx)
	if requesterID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	eventID := r.PathValue("eventId")
	targetID := r.PathValue("userId")
	if eventID == "" || targetID == "" {
		WriteError(w, model.NewBadRequestError("event ID and user ID required"))
		return
	}

	if err := h.svc.RemoveRole(ctx, eventID, requesterID, targetID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
