// Package config manages application configuration for the PlanIt API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth. The server binary loads a .env file first (via
// godotenv) so local development does not need exported variables.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - RateLimitConfig: Request rate limiting settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	SERVER_ENV           - development, production, or test
//	CORS_ALLOWED_ORIGINS - Comma-separated allowed origins
//	DB_HOST / DB_PORT    - SurrealDB endpoint
//	DB_NAMESPACE / DB_DATABASE - SurrealDB namespace and database
//	DB_USER / DB_PASSWORD      - Database credentials
//	JWT_PRIVATE_KEY_PATH - RSA private key for signing
//	JWT_PUBLIC_KEY_PATH  - RSA public key for validation
//	JWT_EXPIRATION_MINS  - Token lifetime in minutes
//	RATE_LIMIT_ENABLED   - Toggle request rate limiting
//
// Sensible defaults are provided for development.
package config
