package handler

import (
	"net/http"

	"github.com/planit/api/internal/middleware"
	"github.com/planit/api/internal/model"
	"github.com/planit/api/internal/service"
)

// UserHandler handles profile-adjacent HTTP requests
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SetInterestsRequest carries the replacement interest list
type SetInterestsRequest struct {
	Interests []string `json:"interests"`
}

// FeedbackRequest carries free-text feedback
type FeedbackRequest struct {
	Text string `json:"text"`
}

// Me handles GET /v1/users/me - the authenticated user's profile
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.svc.Get(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// SetInterests handles PUT /v1/users/me/interests - replace the interest
// list. Duplicates (case-insensitive) are rejected.
func (h *UserHandler) SetInterests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req SetInterestsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.svc.SetInterests(ctx, userID, req.Interests); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// SubmitFeedback handles POST /v1/feedback - store a free-text note
func (h *UserHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req FeedbackRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	feedback, err := h.svc.SubmitFeedback(ctx, userID, req.Text)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusCreated, feedback)
}
