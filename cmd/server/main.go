package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/auth"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/handlers"
	authmw "github.com/tallesqueiroz/Trabalho-BD-N2/internal/middleware"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file - using system environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	var storeOpts []postgres.Option
	if raw := os.Getenv("FINE_PER_DAY"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			log.Fatalf("invalid FINE_PER_DAY %q", raw)
		}
		storeOpts = append(storeOpts, postgres.WithFinePerDay(rate))
	}

	ctx := context.Background()

	store, err := postgres.Connect(ctx, dsn, storeOpts...)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		log.Fatalf("initializing schema: %v", err)
	}
	log.Println("database schema ready")

	tokens := auth.NewTokenIssuer(secret, auth.DefaultTokenTTL)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authHandler := handlers.NewAuthHandler(store, tokens)
	usersHandler := handlers.NewUsersHandler(store)
	booksHandler := handlers.NewBooksHandler(store)
	catalogHandler := handlers.NewCatalogHandler(store)
	copiesHandler := handlers.NewCopiesHandler(store)
	clientsHandler := handlers.NewClientsHandler(store)
	loansHandler := handlers.NewLoansHandler(store)
	reservationsHandler := handlers.NewReservationsHandler(store)

	// Public catalog and login.
	r.Post("/token", authHandler.HandleLogin)
	r.Get("/api/books", booksHandler.List)
	r.Get("/api/books/{id}", booksHandler.Get)
	r.Get("/api/authors", catalogHandler.ListAuthors)
	r.Get("/api/categories", catalogHandler.ListCategories)
	r.Get("/api/publishers", catalogHandler.ListPublishers)
	r.Get("/api/copies/by-book/{bookID}", copiesHandler.ListByBook)

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(tokens, store))

		r.Get("/api/users/me", usersHandler.Me)

		// Catalog management.
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequirePermission(models.PermManageCatalog))
			r.Post("/api/books", booksHandler.Create)
			r.Post("/api/authors", catalogHandler.CreateAuthor)
			r.Post("/api/categories", catalogHandler.CreateCategory)
			r.Post("/api/publishers", catalogHandler.CreatePublisher)
			r.Post("/api/copies", copiesHandler.Create)
			r.Get("/api/copies/{id}", copiesHandler.Get)
			r.Post("/api/copies/{id}/lost", copiesHandler.MarkLost)
		})

		// Member registry.
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequirePermission(models.PermManageClients))
			r.Post("/api/clients", clientsHandler.Create)
			r.Get("/api/clients", clientsHandler.List)
			r.Get("/api/clients/{id}", clientsHandler.Get)
		})

		// Circulation.
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequirePermission(models.PermManageLoans))
			r.Post("/api/loans", loansHandler.Create)
			r.Get("/api/loans", loansHandler.List)
			r.Get("/api/loans/{id}", loansHandler.Get)
			r.Post("/api/loans/{id}/return", loansHandler.Return)
			r.Get("/api/loans/by-client/{clientID}", loansHandler.ByClient)
			r.Post("/api/reservations", reservationsHandler.Create)
			r.Get("/api/reservations", reservationsHandler.List)
			r.Post("/api/reservations/{id}/cancel", reservationsHandler.Cancel)
		})

		// Account management is restricted to administrators.
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequirePermission(models.PermManageUsers))
			r.Post("/api/users", usersHandler.Create)
		})
	})

	log.Printf("server listening on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
