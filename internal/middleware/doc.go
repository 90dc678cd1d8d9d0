// Package middleware provides HTTP middleware for the PlanIt API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - Auth: JWT token validation and user extraction
//   - RateLimit: Request rate limiting per user/IP
//   - RequestID: Unique request identifier propagation
//   - Logger: Structured request logging
//   - Recovery: Panic recovery with a JSON 500 response
//   - CORS: Cross-origin request handling
//   - Compress: gzip response compression
//
// # Authentication
//
// The auth middleware validates bearer tokens and puts the claims into
// the request context:
//
//	handler = middleware.Chain(mux, middleware.Auth(authService))
//
// After authentication, handlers can access user info:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns authenticated user ID
//   - GetClaims(ctx): Returns the full JWT claims
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
