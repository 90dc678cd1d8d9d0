package handler

import (
	"errors"

	"github.com/planit/api/internal/model"
	"github.com/planit/api/internal/service"
)

// MapServiceError converts a service error to an API error response.
// This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes across the API. Validation errors already
// carry their status and pass through unchanged; everything unrecognized
// becomes a 500 with a generic message so internal details never leak.
func MapServiceError(err error) *model.Error {
	if err == nil {
		return nil
	}

	var apiErr *model.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	// ===== Not Found Errors → 404 =====
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrPollNotFound):
		return model.NewNotFoundError("poll")
	case errors.Is(err, service.ErrOptionNotFound):
		return model.NewNotFoundError("option")

	// ===== Business Rule Errors → 400 =====
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrFailedToCreateEvent),
		errors.Is(err, service.ErrIncorrectPassword),
		errors.Is(err, service.ErrUserAlreadyInEvent),
		errors.Is(err, service.ErrUserNotInEvent),
		errors.Is(err, service.ErrUserIsNotOrganizer),
		errors.Is(err, service.ErrEventHasEnded),
		errors.Is(err, service.ErrOnlyOrganizer),
		errors.Is(err, service.ErrAlreadyParticipant),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUserAlreadyVoted),
		errors.Is(err, service.ErrDuplicateInterests),
		errors.Is(err, service.ErrBlankFeedback):
		return model.NewBadRequestError(err.Error())
	}

	return model.NewInternalError("")
}
