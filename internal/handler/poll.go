package handler

import (
	"net/http"

	"github.com/planit/api/internal/middleware"
	"github.com/planit/api/internal/model"
	"github.com/planit/api/internal/service"
)

// PollHandler handles poll HTTP requests
type PollHandler struct {
	svc *service.PollService
}

// NewPollHandler creates a new poll handler
func NewPollHandler(svc *service.PollService) *PollHandler {
	return &PollHandler{svc: svc}
}

// Create handles POST /v1/events/{eventId}/polls - create a poll
// (organizer only)
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	var req model.CreatePollRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	poll, err := h.svc.Create(ctx, eventID, userID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusCreated, poll)
}

// Get handles GET /v1/polls/{pollId} - get a poll with its options and
// vote counts
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		WriteError(w, model.NewBadRequestError("poll ID required"))
		return
	}

	poll, err := h.svc.Get(r.Context(), pollID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, poll)
}

// ListByEvent handles GET /v1/events/{eventId}/polls
func (h *PollHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")
	if eventID == "" {
		WriteError(w, model.NewBadRequestError("event ID required"))
		return
	}

	polls, err := h.svc.GetByEvent(r.Context(), eventID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, polls)
}

// Vote handles POST /v1/polls/{pollId}/vote - cast a vote. One vote per
// user per poll.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	pollID := r.PathValue("pollId")
	if pollID == "" {
		WriteError(w, model.NewBadRequestError("poll ID required"))
		return
	}

	var req model.VoteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if req.OptionID == "" {
		WriteError(w, model.NewBadRequestError("option ID required"))
		return
	}

	if err := h.svc.Vote(ctx, pollID, req.OptionID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Delete handles DELETE /v1/polls/{pollId} - delete a poll (organizer only)
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	pollID := r.PathValue("pollId")
	if pollID == "" {
		WriteError(w, model.NewBadRequestError("poll ID required"))
		return
	}

	if err := h.svc.Delete(ctx, pollID, userID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
