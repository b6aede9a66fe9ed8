// Package data provides the data models and database interaction logic
// for the book catalog service.
package data

import (
	"time"

	"github.com/aoideee/bookcatalog/internal/validator"
)

// Earliest publication year the catalog accepts.
const minPublishedYear = 1800

// Book represents a single book record together with its associated authors.
// The scalar fields map to a row in the "books" table; Authors is populated
// from the "book_authors" association table and is never empty after a
// successful write.
type Book struct {
	ID            int64     `json:"id"`             // Unique identifier assigned by the database
	Title         string    `json:"title"`          // Title of the book, at most 150 characters
	GenreID       *int64    `json:"genre_id"`       // Optional genre reference
	PublishedYear int       `json:"published_year"` // Year of publication, 1800..current year
	CreatedBy     int64     `json:"-"`              // User who created the record; not exposed
	Authors       []Author  `json:"authors"`        // Associated authors in insertion order
	CreatedAt     time.Time `json:"created_at"`     // Timestamp when the record was created
	UpdatedAt     time.Time `json:"updated_at"`     // Refreshed by every mutation
}

// Author represents a row in the "authors" table. User is the optional owning
// user and is nil for authors without an account.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	User *User  `json:"user"`
}

// User is the identity owned by the auth layer. The catalog references users
// but never mutates them.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// BookInput holds the fields a client must supply when creating or replacing
// a book. Updates are full replacements, never partial patches, so the same
// input type serves both operations.
type BookInput struct {
	Title         string  `json:"title"`
	GenreID       *int64  `json:"genre_id"`
	PublishedYear int     `json:"published_year"`
	AuthorIDs     []int64 `json:"author_ids"`
}

// ValidateBook checks a book write input against the catalog constraints:
// non-empty title of at most 150 characters, publication year between 1800
// and the current calendar year, and at least one distinct author id.
func ValidateBook(v *validator.Validator, input BookInput) {
	v.Check(input.Title != "", "title", "must be provided")
	v.Check(len(input.Title) <= 150, "title", "must not be more than 150 characters long")

	currentYear := time.Now().Year()
	v.Check(input.PublishedYear >= minPublishedYear, "published_year", "must be 1800 or later")
	v.Check(input.PublishedYear <= currentYear, "published_year", "must not be in the future")

	v.Check(len(input.AuthorIDs) >= 1, "author_ids", "must contain at least one author")
	v.Check(validator.Unique(input.AuthorIDs), "author_ids", "must not contain duplicate values")
}
