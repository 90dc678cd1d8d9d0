package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
)

// ===== Event Errors =====
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrFailedToCreateEvent = errors.New("failed to create event: private events require a password")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrUserAlreadyInEvent  = errors.New("user is already in the event")
	ErrUserNotInEvent      = errors.New("user is not in the event")
	ErrUserIsNotOrganizer  = errors.New("user is not the organizer of the event")
)

// ===== Role Errors =====
var (
	ErrEventHasEnded      = errors.New("the event has already ended")
	ErrOnlyOrganizer      = errors.New("cannot remove the role of the only organizer")
	ErrAlreadyParticipant = errors.New("user already has the participant role")
	ErrInvalidRole        = errors.New("invalid role")
)

// ===== Poll Errors =====
var (
	ErrPollNotFound     = errors.New("poll not found")
	ErrOptionNotFound   = errors.New("option not found")
	ErrUserAlreadyVoted = errors.New("user has already voted on this poll")
)

// ===== User Errors =====
var (
	ErrDuplicateInterests = errors.New("interests contain duplicates")
	ErrBlankFeedback      = errors.New("feedback is blank")
)
