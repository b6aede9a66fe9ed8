// internal/data/books.go
// BookModel is the persistence core of the catalog: transactional writes of a
// book together with its author associations, and a filtered/sorted/paginated
// list query whose flat join rows are folded back into nested Book records.
package data

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// BookModel wraps a *sql.DB connection pool and provides methods for
// creating, reading, updating and deleting book records.
type BookModel struct {
	DB *sql.DB // Shared database connection pool, owned by the caller
}

// bookRowSelect is the shared column list and join chain for every book read.
// Each result row carries one book's scalar fields duplicated across one row
// per associated author; a book with no authors still yields exactly one row
// with NULL author columns thanks to the LEFT JOINs.
const bookRowSelect = `
	SELECT b.id, b.title, b.genre_id, b.published_year, b.created_by, b.created_at, b.updated_at,
	       a.id, a.name, u.id, u.username, u.is_admin
	FROM books b
	LEFT JOIN book_authors ba ON b.id = ba.book_id
	LEFT JOIN authors a ON a.id = ba.author_id
	LEFT JOIN users u ON a.user_id = u.id`

// bookRow is one flat row of the book/author/user join, before aggregation.
// The author and user columns are nullable because of the LEFT JOINs.
type bookRow struct {
	ID            int64
	Title         string
	GenreID       sql.NullInt64
	PublishedYear int
	CreatedBy     int64
	CreatedAt     sql.NullTime
	UpdatedAt     sql.NullTime
	AuthorID      sql.NullInt64
	AuthorName    sql.NullString
	UserID        sql.NullInt64
	Username      sql.NullString
	IsAdmin       sql.NullBool
}

// Insert creates a new book and its author associations inside a single
// transaction. If any supplied author id has no matching row the whole write
// is rolled back and ErrAuthorNotFound is returned; no partial state is ever
// visible to readers. On success the fully aggregated book is returned.
func (m BookModel) Insert(input BookInput, createdBy int64) (*Book, error) {
	tx, err := m.DB.Begin()
	if err != nil {
		return nil, err
	}
	// Rollback is a no-op once the transaction has been committed.
	defer tx.Rollback()

	query := `
		INSERT INTO books (title, genre_id, published_year, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var bookID int64
	err = tx.QueryRow(query, input.Title, input.GenreID, input.PublishedYear, createdBy).Scan(&bookID)
	if err != nil {
		// A foreign key violation here means the genre reference is dangling.
		if pqErrorCode(err) == pqForeignKeyViolation {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}

	if err := insertBookAuthors(tx, bookID, input.AuthorIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return m.Get(bookID)
}

// Update replaces a book's scalar fields and completely rewrites its author
// associations (delete-then-reinsert, never incremental patching), all inside
// one transaction. A nil createdBy preserves the existing creator. Returns
// ErrRecordNotFound if no book with the given id exists, ErrAuthorNotFound if
// any author id is dangling; in both cases nothing is written.
func (m BookModel) Update(id int64, input BookInput, createdBy *int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	tx, err := m.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The UPDATE takes a row-level lock on the book, so concurrent writers to
	// the same id are serialized by the store; last committer wins.
	var row *sql.Row
	if createdBy != nil {
		query := `
			UPDATE books
			SET title = $1, genre_id = $2, published_year = $3, created_by = $4, updated_at = CURRENT_TIMESTAMP
			WHERE id = $5
			RETURNING id`
		row = tx.QueryRow(query, input.Title, input.GenreID, input.PublishedYear, *createdBy, id)
	} else {
		query := `
			UPDATE books
			SET title = $1, genre_id = $2, published_year = $3, updated_at = CURRENT_TIMESTAMP
			WHERE id = $4
			RETURNING id`
		row = tx.QueryRow(query, input.Title, input.GenreID, input.PublishedYear, id)
	}

	err = row.Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		case pqErrorCode(err) == pqForeignKeyViolation:
			return nil, ErrGenreNotFound
		default:
			return nil, err
		}
	}

	// Full replacement of the association rows for this book.
	_, err = tx.Exec(`DELETE FROM book_authors WHERE book_id = $1`, id)
	if err != nil {
		return nil, err
	}

	if err := insertBookAuthors(tx, id, input.AuthorIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return m.Get(id)
}

// insertBookAuthors inserts one association row per author id within tx.
// A foreign key violation is translated to ErrAuthorNotFound; the caller's
// deferred rollback then discards the whole write.
func insertBookAuthors(tx *sql.Tx, bookID int64, authorIDs []int64) error {
	query := `INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`

	for _, authorID := range authorIDs {
		_, err := tx.Exec(query, bookID, authorID)
		if err != nil {
			if pqErrorCode(err) == pqForeignKeyViolation {
				return ErrAuthorNotFound
			}
			return err
		}
	}
	return nil
}

// Get retrieves a single book with its nested authors.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := bookRowSelect + `
	WHERE b.id = $1`

	rows, err := m.DB.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flat, err := scanBookRows(rows)
	if err != nil {
		return nil, err
	}

	books := aggregateBookRows(flat)
	if len(books) == 0 {
		return nil, ErrRecordNotFound
	}
	return books[0], nil
}

// GetAll retrieves a filtered, sorted and paginated list of books.
// The flat join rows are aggregated into nested Book records preserving the
// order the database returned them in. Total in the returned Metadata counts
// aggregated books, not join rows.
func (m BookModel) GetAll(filters Filters) ([]*Book, Metadata, error) {
	query, args := buildListQuery(filters)

	rows, err := m.DB.Query(query, args...)
	if err != nil {
		return nil, Metadata{}, err
	}
	defer rows.Close()

	flat, err := scanBookRows(rows)
	if err != nil {
		return nil, Metadata{}, err
	}

	books := aggregateBookRows(flat)
	metadata := Metadata{Total: len(books), Page: filters.Page, Limit: filters.Limit}
	return books, metadata, nil
}

// buildListQuery composes the parameterized list query from the caller's
// filters. Every active filter becomes an independently bound predicate
// conjoined with AND; absent filters contribute nothing. Filter values are
// never spliced into the query text, and the ORDER BY column comes from the
// closed sortColumns set, so no caller input reaches the SQL unparameterized.
func buildListQuery(f Filters) (string, []any) {
	var conditions []string
	var args []any

	if f.Title != "" {
		args = append(args, "%"+f.Title+"%")
		conditions = append(conditions, fmt.Sprintf("b.title ILIKE $%d", len(args)))
	}
	if f.AuthorName != "" {
		args = append(args, "%"+f.AuthorName+"%")
		conditions = append(conditions, fmt.Sprintf("a.name ILIKE $%d", len(args)))
	}
	if f.GenreID != nil {
		args = append(args, *f.GenreID)
		conditions = append(conditions, fmt.Sprintf("b.genre_id = $%d", len(args)))
	}
	if f.YearFrom != nil {
		args = append(args, *f.YearFrom)
		conditions = append(conditions, fmt.Sprintf("b.published_year >= $%d", len(args)))
	}
	if f.YearTo != nil {
		args = append(args, *f.YearTo)
		conditions = append(conditions, fmt.Sprintf("b.published_year <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "\n\tWHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, f.Limit, f.offset())
	query := fmt.Sprintf("%s%s\n\tORDER BY %s %s, b.id ASC\n\tLIMIT $%d OFFSET $%d",
		bookRowSelect, where, f.sortColumn(), f.sortDirection(), len(args)-1, len(args))

	return query, args
}

// scanBookRows reads every row of the book/author/user join into memory.
func scanBookRows(rows *sql.Rows) ([]bookRow, error) {
	var flat []bookRow

	for rows.Next() {
		var r bookRow
		err := rows.Scan(
			&r.ID,
			&r.Title,
			&r.GenreID,
			&r.PublishedYear,
			&r.CreatedBy,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.AuthorID,
			&r.AuthorName,
			&r.UserID,
			&r.Username,
			&r.IsAdmin,
		)
		if err != nil {
			return nil, err
		}
		flat = append(flat, r)
	}

	return flat, rows.Err()
}

// aggregateBookRows folds flat join rows into nested Book records in a single
// pass. Books appear in first-seen order of their id; each book's authors
// keep the input row order. Rows with NULL author columns (a book matched by
// the LEFT JOIN with no authors) contribute the book but no author entry.
// The function is pure: identical input always yields identical output.
func aggregateBookRows(flat []bookRow) []*Book {
	books := []*Book{}
	byID := make(map[int64]*Book)

	for _, r := range flat {
		book, seen := byID[r.ID]
		if !seen {
			book = &Book{
				ID:            r.ID,
				Title:         r.Title,
				PublishedYear: r.PublishedYear,
				CreatedBy:     r.CreatedBy,
				CreatedAt:     r.CreatedAt.Time,
				UpdatedAt:     r.UpdatedAt.Time,
				Authors:       []Author{},
			}
			if r.GenreID.Valid {
				genreID := r.GenreID.Int64
				book.GenreID = &genreID
			}
			byID[r.ID] = book
			books = append(books, book)
		}

		if !r.AuthorID.Valid {
			continue
		}
		author := Author{ID: r.AuthorID.Int64, Name: r.AuthorName.String}
		if r.UserID.Valid {
			author.User = &User{
				ID:       r.UserID.Int64,
				Username: r.Username.String,
				IsAdmin:  r.IsAdmin.Bool,
			}
		}
		book.Authors = append(book.Authors, author)
	}

	return books
}

// Delete removes the book with the given id; the association rows go with it
// via the store's ON DELETE CASCADE. Returns ErrRecordNotFound if no matching
// record exists. Deletion is permanent and immediate, there is no soft delete.
func (m BookModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	result, err := m.DB.Exec(`DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// IsCreator reports whether userID created the book. A missing book simply
// reports false, matching the ownership checks in the handlers.
func (m BookModel) IsCreator(bookID, userID int64) (bool, error) {
	var createdBy int64
	err := m.DB.QueryRow(`SELECT created_by FROM books WHERE id = $1`, bookID).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return createdBy == userID, nil
}
