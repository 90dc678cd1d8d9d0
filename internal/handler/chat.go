package handler

import (
	"net/http"

	"github.com/planit/api/internal/middleware"
	"github.com/planit/api/internal/model"
	"github.com/planit/api/internal/service"
)

// ChatHandler handles event chat HTTP requests
type ChatHandler struct {
	svc *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Send handles POST /v1/events/{eventId}/chat - post a message
// (participants only)
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
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

	var req model.SendMessageRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	message, err := h.svc.Send(ctx, eventID, userID, req.Text)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusCreated, message)
}

// List handles GET /v1/events/{eventId}/chat - list messages in send order
// (participants only)
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
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

	limit, offset := parsePagination(r)
	messages, err := h.svc.List(ctx, eventID, userID, limit, offset)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, messages)
}
