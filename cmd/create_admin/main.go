package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/auth"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/postgres"
)

// Bootstraps the first administrator account so the API can be used.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file - using system environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	email := os.Getenv("ADMIN_EMAIL")

	ctx := context.Background()

	store, err := postgres.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		log.Fatalf("initializing schema: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	user, err := store.CreateUser(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdministrator,
	})
	if err != nil {
		log.Fatalf("creating administrator: %v", err)
	}

	fmt.Println("=== Administrator account created ===")
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Password: %s\n", password)
	fmt.Printf("Role: %s\n", user.Role)
	fmt.Println("\nYou can now request a token at POST /token.")
}
