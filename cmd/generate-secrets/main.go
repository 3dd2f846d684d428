package main

import (
	"fmt"
	"log"

	"github.com/kktculasim/ulasim-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	fmt.Println("===========================================")
	fmt.Println("Admin Secret Generator for KKTC Ulaşım")
	fmt.Println("===========================================")
	fmt.Println()

	adminSecret, signingKey, err := utils.GenerateAdminSecrets()
	if err != nil {
		log.Fatalf("Failed to generate secrets: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminSecret), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin secret: %v", err)
	}

	fmt.Println("✅ Secrets generated successfully!")
	fmt.Println()
	fmt.Println("Give this secret to the panel operators (they type it on /admin/login):")
	fmt.Println()
	fmt.Printf("  %s\n", adminSecret)
	fmt.Println()
	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Printf("ADMIN_SECRET_HASH=%s\n", hash)
	fmt.Printf("ADMIN_SESSION_SIGNING_KEY=%s\n", signingKey)
	fmt.Println("ADMIN_SESSION_MODE=signed")
	fmt.Println()
	fmt.Println("⚠️  IMPORTANT: Keep these secrets safe and never commit them to version control!")
	fmt.Println("===========================================")
}
