// internal/data/authors.go
package data

import (
	"database/sql"
	"errors"

	"github.com/aoideee/bookcatalog/internal/validator"
)

// AuthorModel wraps a *sql.DB connection pool and provides methods for the
// authors table. Each author may optionally be owned by a user account, with
// at most one author per user (enforced by a unique index on user_id).
type AuthorModel struct {
	DB *sql.DB
}

// authorSelect joins the optional owning user onto an author row.
const authorSelect = `
	SELECT a.id, a.name, u.id, u.username, u.is_admin
	FROM authors a
	LEFT JOIN users u ON a.user_id = u.id`

// ValidateAuthor checks the display name length constraint.
func ValidateAuthor(v *validator.Validator, name string) {
	v.Check(len(name) >= 2, "name", "must be at least 2 characters long")
	v.Check(len(name) <= 60, "name", "must not be more than 60 characters long")
}

// Insert creates an author, optionally owned by userID. Returns
// ErrDuplicateAuthor if the user already owns an author profile, and
// ErrRecordNotFound if userID references no existing user.
func (m AuthorModel) Insert(name string, userID *int64) (*Author, error) {
	var id int64
	err := m.DB.QueryRow(
		`INSERT INTO authors (name, user_id) VALUES ($1, $2) RETURNING id`,
		name, userID,
	).Scan(&id)
	if err != nil {
		switch pqErrorCode(err) {
		case pqUniqueViolation:
			return nil, ErrDuplicateAuthor
		case pqForeignKeyViolation:
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return m.Get(id)
}

// Get retrieves a single author with its optional owning user.
// Returns ErrRecordNotFound if no author with the given id exists.
func (m AuthorModel) Get(id int64) (*Author, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	return m.getOne(authorSelect+` WHERE a.id = $1`, id)
}

// GetByUserID retrieves the author profile owned by the given user, or
// ErrRecordNotFound when the user has none. Book creation and bulk import use
// this to check that the caller is credited on the books they write.
func (m AuthorModel) GetByUserID(userID int64) (*Author, error) {
	return m.getOne(authorSelect+` WHERE a.user_id = $1`, userID)
}

func (m AuthorModel) getOne(query string, arg any) (*Author, error) {
	var (
		author   Author
		userID   sql.NullInt64
		username sql.NullString
		isAdmin  sql.NullBool
	)

	err := m.DB.QueryRow(query, arg).Scan(&author.ID, &author.Name, &userID, &username, &isAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if userID.Valid {
		author.User = &User{ID: userID.Int64, Username: username.String, IsAdmin: isAdmin.Bool}
	}
	return &author, nil
}

// Update renames an author and, when userID is non-nil, reassigns its owning
// user. Returns ErrRecordNotFound for a missing author or dangling user
// reference and ErrDuplicateAuthor when the target user already owns one.
func (m AuthorModel) Update(id int64, name string, userID *int64) (*Author, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	var row *sql.Row
	if userID != nil {
		row = m.DB.QueryRow(
			`UPDATE authors SET name = $1, user_id = $2 WHERE id = $3 RETURNING id`,
			name, *userID, id,
		)
	} else {
		row = m.DB.QueryRow(
			`UPDATE authors SET name = $1 WHERE id = $2 RETURNING id`,
			name, id,
		)
	}

	err := row.Scan(&id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		case pqErrorCode(err) == pqUniqueViolation:
			return nil, ErrDuplicateAuthor
		case pqErrorCode(err) == pqForeignKeyViolation:
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return m.Get(id)
}

// Delete removes an author. Association rows referencing it are removed by
// the store's ON DELETE CASCADE; books keep their remaining authors.
// Returns ErrRecordNotFound if no matching record exists.
func (m AuthorModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	result, err := m.DB.Exec(`DELETE FROM authors WHERE id = $1`, id)
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
