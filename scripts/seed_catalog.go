package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/models"
	"github.com/tallesqueiroz/Trabalho-BD-N2/internal/postgres"
)

type seedBook struct {
	title      string
	isbn       string
	year       int
	publisher  string
	authors    []string
	categories []string
	copies     int
}

// Seeds the catalog with a handful of books and copies so the API has
// something to lend right after first boot.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file - using system environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	store, err := postgres.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		log.Fatalf("initializing schema: %v", err)
	}

	log.Println("seeding catalog...")

	books := []seedBook{
		{
			title:      "Dom Casmurro",
			isbn:       "978-85-359-0277-5",
			year:       1899,
			publisher:  "Companhia das Letras",
			authors:    []string{"Machado de Assis"},
			categories: []string{"Romance", "Literatura Brasileira"},
			copies:     3,
		},
		{
			title:      "Grande Sertão: Veredas",
			isbn:       "978-85-209-2325-1",
			year:       1956,
			publisher:  "Nova Fronteira",
			authors:    []string{"João Guimarães Rosa"},
			categories: []string{"Romance", "Literatura Brasileira"},
			copies:     2,
		},
		{
			title:      "Vidas Secas",
			isbn:       "978-85-01-00571-5",
			year:       1938,
			publisher:  "Record",
			authors:    []string{"Graciliano Ramos"},
			categories: []string{"Romance", "Literatura Brasileira"},
			copies:     2,
		},
		{
			title:      "O Alienista",
			isbn:       "978-85-7232-679-0",
			year:       1882,
			publisher:  "Companhia das Letras",
			authors:    []string{"Machado de Assis"},
			categories: []string{"Conto"},
			copies:     1,
		},
		{
			title:      "Capitães da Areia",
			isbn:       "978-85-359-1406-8",
			year:       1937,
			publisher:  "Companhia das Letras",
			authors:    []string{"Jorge Amado"},
			categories: []string{"Romance"},
			copies:     2,
		},
	}

	publisherIDs := map[string]int64{}
	authorIDs := map[string]int64{}
	categoryIDs := map[string]int64{}

	for _, sb := range books {
		pubID, ok := publisherIDs[sb.publisher]
		if !ok {
			pub, err := store.CreatePublisher(ctx, &models.Publisher{Name: sb.publisher})
			if err != nil {
				log.Fatalf("creating publisher %q: %v", sb.publisher, err)
			}
			pubID = pub.ID
			publisherIDs[sb.publisher] = pubID
		}

		var bookAuthors []int64
		for _, name := range sb.authors {
			id, ok := authorIDs[name]
			if !ok {
				author, err := store.CreateAuthor(ctx, &models.Author{Name: name})
				if err != nil {
					log.Fatalf("creating author %q: %v", name, err)
				}
				id = author.ID
				authorIDs[name] = id
			}
			bookAuthors = append(bookAuthors, id)
		}

		var bookCategories []int64
		for _, name := range sb.categories {
			id, ok := categoryIDs[name]
			if !ok {
				cat, err := store.CreateCategory(ctx, &models.Category{Name: name})
				if err != nil {
					log.Fatalf("creating category %q: %v", name, err)
				}
				id = cat.ID
				categoryIDs[name] = id
			}
			bookCategories = append(bookCategories, id)
		}

		book, err := store.CreateBook(ctx, &models.Book{
			Title:           sb.title,
			ISBN:            sb.isbn,
			PublicationYear: sb.year,
			PublisherID:     &pubID,
		}, bookAuthors, bookCategories)
		if err != nil {
			log.Fatalf("creating book %q: %v", sb.title, err)
		}

		for i := 0; i < sb.copies; i++ {
			if _, err := store.CreateCopy(ctx, &models.Copy{BookID: book.ID}); err != nil {
				log.Fatalf("creating copy of %q: %v", sb.title, err)
			}
		}

		log.Printf("added %s (%s) with %d copies", book.Title, book.ID, sb.copies)
	}

	log.Println("catalog seeded")
}
