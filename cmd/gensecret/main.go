package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"
)

// gensecret generates a random HS256 signing secret for access tokens
//
// Usage:
//
//	go run ./cmd/gensecret [--save]
//
// This will output a JWT_SECRET line to add to .env
func main() {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(secret)

	fmt.Println("Add this to your .env file:")
	fmt.Println()
	fmt.Println("JWT_SECRET=" + encoded)
	fmt.Println()
	fmt.Println("Keep it out of version control. Rotating it invalidates every issued token.")

	if len(os.Args) > 1 && os.Args[1] == "--save" {
		filename := "jwt-secret.txt"
		if err := os.WriteFile(filename, []byte(encoded+"\n"), 0o600); err != nil {
			log.Fatalf("Failed to write secret file: %v", err)
		}
		fmt.Printf("Secret saved to %s\n", filename)
	}
}
