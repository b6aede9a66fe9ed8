// internal/data/genres.go
package data

import (
	"database/sql"
	"errors"

	"github.com/aoideee/bookcatalog/internal/validator"
)

// Genre is a single-row lookup record. A book references at most one genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GenreModel wraps a *sql.DB connection pool and provides methods for the
// genres table.
type GenreModel struct {
	DB *sql.DB
}

// ValidateGenre checks the genre name length constraint.
func ValidateGenre(v *validator.Validator, name string) {
	v.Check(len(name) >= 2, "name", "must be at least 2 characters long")
	v.Check(len(name) <= 30, "name", "must not be more than 30 characters long")
}

// GetAll returns every genre ordered by id.
func (m GenreModel) GetAll() ([]*Genre, error) {
	rows, err := m.DB.Query(`SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []*Genre{}
	for rows.Next() {
		var genre Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}
		genres = append(genres, &genre)
	}
	return genres, rows.Err()
}

// Get retrieves a single genre by its primary key.
// Returns ErrRecordNotFound if no genre with the given id exists.
func (m GenreModel) Get(id int64) (*Genre, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	var genre Genre
	err := m.DB.QueryRow(`SELECT id, name FROM genres WHERE id = $1`, id).Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &genre, nil
}

// Insert creates a new genre.
func (m GenreModel) Insert(name string) (*Genre, error) {
	genre := Genre{Name: name}
	err := m.DB.QueryRow(`INSERT INTO genres (name) VALUES ($1) RETURNING id`, name).Scan(&genre.ID)
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// Update renames a genre.
// Returns ErrRecordNotFound if no genre with the given id exists.
func (m GenreModel) Update(id int64, name string) (*Genre, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	err := m.DB.QueryRow(`UPDATE genres SET name = $1 WHERE id = $2 RETURNING id`, name, id).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &Genre{ID: id, Name: name}, nil
}

// Delete removes a genre. Books referencing it keep existing with their
// genre_id nulled out by the store (ON DELETE SET NULL); deleting a genre
// never cascades to books. Returns ErrRecordNotFound if no matching record
// exists.
func (m GenreModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	result, err := m.DB.Exec(`DELETE FROM genres WHERE id = $1`, id)
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
