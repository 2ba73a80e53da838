//go:build ignore

// This script generates the secrets the tour package service reads at startup.
// Run with: go run scripts/generate_keys.go [-api-keys N]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	// Raw URL encoding keeps keys free of "=", "+" and "/".
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func mustKey(what string, length int) string {
	key, err := generateSecureKey(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
		os.Exit(1)
	}
	return key
}

func main() {
	apiKeyCount := flag.Int("api-keys", 1, "number of admin API keys to generate")
	flag.Parse()

	fmt.Println("=== Tour Package Service Key Generator ===")
	fmt.Println()

	jwtSecret := mustKey("JWT secret", 32)
	adminPassword := mustKey("admin password", 18)

	apiKeys := make([]string, 0, *apiKeyCount)
	for range *apiKeyCount {
		apiKeys = append(apiKeys, mustKey("API key", 24))
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# Admin authentication")
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("ADMIN_PASSWORD=%s\n", adminPassword)
	fmt.Println()
	fmt.Println("# Admin API keys (used when JWT_SECRET_KEY is empty)")
	fmt.Printf("API_KEYS=%s\n", strings.Join(apiKeys, ","))
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Set ADMIN_EMAIL as well, the admin account is created on first start")
	fmt.Println("- Rotating JWT_SECRET_KEY invalidates every issued token")
}
