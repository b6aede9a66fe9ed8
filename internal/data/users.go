// internal/data/users.go
package data

import (
	"database/sql"
	"errors"
	"unicode"

	"github.com/aoideee/bookcatalog/internal/validator"
)

// AnonymousUser stands in for an unauthenticated caller in the request
// context.
var AnonymousUser = &User{}

// IsAnonymous reports whether u is the AnonymousUser sentinel.
func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

// UserModel wraps a *sql.DB connection pool and provides methods for the
// users table. The catalog core only ever reads users; the two writes here
// (registration) belong to the auth boundary.
type UserModel struct {
	DB *sql.DB
}

// ValidateUsername checks the registration username.
func ValidateUsername(v *validator.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(len(username) <= 60, "username", "must not be more than 60 characters long")
}

// ValidatePassword enforces the password policy: 8 to 64 characters, letters
// and digits only, with at least one lowercase letter, one uppercase letter
// and one digit.
func ValidatePassword(v *validator.Validator, password string) {
	v.Check(len(password) >= 8, "password", "must be at least 8 characters long")
	v.Check(len(password) <= 64, "password", "must not be more than 64 characters long")

	var hasLower, hasUpper, hasDigit, hasOther bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}

	v.Check(hasLower, "password", "must contain at least one lowercase letter")
	v.Check(hasUpper, "password", "must contain at least one uppercase letter")
	v.Check(hasDigit, "password", "must contain at least one digit")
	v.Check(!hasOther, "password", "must contain only letters and digits")
}

// Insert registers a new user with an already-hashed password.
// Returns ErrDuplicateUsername if the username is taken.
func (m UserModel) Insert(username, passwordHash string) (*User, error) {
	var user User
	err := m.DB.QueryRow(
		`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id, username, is_admin`,
		username, passwordHash,
	).Scan(&user.ID, &user.Username, &user.IsAdmin)
	if err != nil {
		if pqErrorCode(err) == pqUniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user and their stored password hash for login.
// Returns ErrRecordNotFound if the username is unknown.
func (m UserModel) GetByUsername(username string) (*User, string, error) {
	var (
		user User
		hash string
	)
	err := m.DB.QueryRow(
		`SELECT id, username, password, is_admin FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &hash, &user.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrRecordNotFound
		}
		return nil, "", err
	}
	return &user, hash, nil
}
