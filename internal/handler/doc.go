// Package handler provides HTTP request handlers for the PlanIt API.
//
// The handler package contains all HTTP endpoint implementations organized
// by domain. Each handler struct encapsulates the service it serves
// (authentication, events, polls, roles, chat, users).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts the service dependency
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Service errors are mapped through MapServiceError
//
// # Response Format
//
// Success responses are the resource itself as plain JSON. Errors are
// always rendered as a single flat object:
//
//	{"error": "<message>"}
//
// with the HTTP status carried on the response line, never in the body.
// Validation failures collect every failing field into one message.
//
// # Authentication
//
// Most handlers require authentication via JWT tokens. The auth middleware
// extracts the user ID and makes it available via middleware.GetUserID.
//
// # Example Usage
//
//	handler := NewEventHandler(eventService)
//	mux.Handle("POST /v1/events", authMiddleware(http.HandlerFunc(handler.Create)))
package handler
