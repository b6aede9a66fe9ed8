// internal/data/models.go
package data

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by the model layer. Handlers translate these into
// the matching HTTP error responses instead of inspecting driver errors.
var (
	// ErrRecordNotFound is returned when a query finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrAuthorNotFound is returned when a book write references an author id
	// with no matching row. The surrounding transaction has already been
	// rolled back by the time the caller sees this error.
	ErrAuthorNotFound = errors.New("author does not exist")

	// ErrGenreNotFound is returned when a book write references a genre id
	// with no matching row.
	ErrGenreNotFound = errors.New("genre does not exist")

	// ErrDuplicateAuthor is returned when a user who already owns an author
	// profile tries to create a second one.
	ErrDuplicateAuthor = errors.New("author already exists for this user")

	// ErrDuplicateUsername is returned when registering a username that is
	// already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// PostgreSQL error codes we translate into sentinel errors.
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// pqErrorCode extracts the PostgreSQL error code from err, or "" if err did
// not originate from the driver.
func pqErrorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Books   BookModel   // Books table plus the book_authors association table
	Authors AuthorModel // Authors table (optionally linked to a user)
	Genres  GenreModel  // Genres lookup table
	Users   UserModel   // Users table, owned by the auth layer
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Books:   BookModel{DB: db},
		Authors: AuthorModel{DB: db},
		Genres:  GenreModel{DB: db},
		Users:   UserModel{DB: db},
	}
}
