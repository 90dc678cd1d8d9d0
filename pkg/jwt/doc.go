// Package jwt provides JSON Web Token utilities for the PlanIt API.
//
// Tokens are signed with RS256. The package handles key loading, token
// generation, validation, and claims extraction for authentication.
//
// # Token Generation
//
// Generate tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    Issuer:         "planit-api",
//	    ExpirationMins: 60,
//	})
//
//	token, err := service.Sign(jwt.Claims{UserID: user.ID, Username: user.Username})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid or expired token
//	}
//	userID := claims.UserID
//
// Validation-only deployments can load just the public key via
// Config.PublicKeyPath.
//
// # Key Management
//
// GenerateKeyPair writes a fresh RSA key pair to disk, used by the
// planit-token CLI on first run.
package jwt
