package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/planit/api/pkg/jwt"
)

func main() {
	// Flags for customization
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to JWT public key (for -generate)")
	generate := flag.Bool("generate", false, "Generate a fresh RSA key pair if none exists")
	userID := flag.String("user", "user:dev", "User ID for the token")
	username := flag.String("username", "dev", "Username for the token")
	issuer := flag.String("issuer", "planit-api", "JWT issuer")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *generate {
		if _, err := os.Stat(*privateKeyPath); os.IsNotExist(err) {
			if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating key pair: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Generated key pair at %s / %s\n", *privateKeyPath, *publicKeyPath)
		}
	}

	// Create JWT service with just the private key
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nRun with -generate to create a key pair first\n")
		os.Exit(1)
	}

	claims := jwt.Claims{
		UserID:   *userID,
		Username: *username,
	}

	// Sign token
	token, err := jwtService.Sign(claims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
			"username":     *username,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
	} else {
		expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
		fmt.Println("Token Generated")
		fmt.Println("===============")
		fmt.Printf("User ID:  %s\n", *userID)
		fmt.Printf("Username: %s\n", *username)
		fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/users/me\n", token[:50]+"...")
	}
}
