package models

import "time"

// Author is a catalog author; books and authors are many-to-many.
type Author struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Surname   string    `json:"surname,omitempty" db:"surname"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Category groups books by subject; the name is unique.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Publisher is the publishing house of a book.
type Publisher struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Book is a catalog record. Its ID is a formatted identifier issued by the
// sequence generator (LIV-YYYY-NNNN) and never changes once assigned.
type Book struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	ISBN            string    `json:"isbn,omitempty" db:"isbn"`
	PublicationYear int       `json:"publication_year,omitempty" db:"publication_year"`
	PublisherID     *int64    `json:"publisher_id,omitempty" db:"publisher_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// Nested projections, filled by the store on reads.
	Publisher  *Publisher `json:"publisher,omitempty"`
	Authors    []Author   `json:"authors"`
	Categories []Category `json:"categories"`
}
