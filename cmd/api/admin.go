// cmd/api/admin.go
// Admin-only management handlers for authors, genres and books. All routes
// here are wrapped in requireAdmin; the handlers can assume an admin caller
// and skip the ownership checks the public routes enforce.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/validator"
)

// adminAuthorInput additionally lets an admin attach the author to a user.
type adminAuthorInput struct {
	Name   string `json:"name"`
	UserID *int64 `json:"user_id"`
}

// adminBookInput additionally lets an admin set the creator reference.
// A nil created_by means "the calling admin" on create and "leave unchanged"
// on update.
type adminBookInput struct {
	data.BookInput
	CreatedBy *int64 `json:"created_by"`
}

// adminCreateAuthorHandler handles POST /v1/admin/authors.
func (app *applicationDependencies) adminCreateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var input adminAuthorInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateAuthor(v, input.Name)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	author, err := app.models.Authors.Insert(input.Name, input.UserID)
	if err != nil {
		app.authorWriteErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminUpdateAuthorHandler handles PUT /v1/admin/authors/:id.
// Unlike the public rename route this may also reassign the owning user.
func (app *applicationDependencies) adminUpdateAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input adminAuthorInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateAuthor(v, input.Name)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	author, err := app.models.Authors.Update(id, input.Name, input.UserID)
	if err != nil {
		app.authorWriteErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminDeleteAuthorHandler handles DELETE /v1/admin/authors/:id.
func (app *applicationDependencies) adminDeleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Authors.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "author successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminCreateGenreHandler handles POST /v1/admin/genres.
func (app *applicationDependencies) adminCreateGenreHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateGenre(v, input.Name)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	genre, err := app.models.Genres.Insert(input.Name)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"genre": genre}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminUpdateGenreHandler handles PUT /v1/admin/genres/:id.
func (app *applicationDependencies) adminUpdateGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateGenre(v, input.Name)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	genre, err := app.models.Genres.Update(id, input.Name)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"genre": genre}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminDeleteGenreHandler handles DELETE /v1/admin/genres/:id.
// Books referencing the genre keep existing; the store nulls their genre_id.
func (app *applicationDependencies) adminDeleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Genres.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "genre successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminCreateBookHandler handles POST /v1/admin/books.
// Admins may create books on behalf of any creator and are not required to
// appear in author_ids themselves.
func (app *applicationDependencies) adminCreateBookHandler(w http.ResponseWriter, r *http.Request) {
	var input adminBookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateBook(v, input.BookInput)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	createdBy := app.contextGetUser(r).ID
	if input.CreatedBy != nil {
		createdBy = *input.CreatedBy
	}

	book, err := app.models.Books.Insert(input.BookInput, createdBy)
	if err != nil {
		app.bookWriteErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminUpdateBookHandler handles PUT /v1/admin/books/:id.
// A nil created_by leaves the existing creator untouched.
func (app *applicationDependencies) adminUpdateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input adminBookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateBook(v, input.BookInput)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	book, err := app.models.Books.Update(id, input.BookInput, input.CreatedBy)
	if err != nil {
		app.bookWriteErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// adminDeleteBookHandler handles DELETE /v1/admin/books/:id.
func (app *applicationDependencies) adminDeleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Books.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// authorWriteErrorResponse maps author model write errors onto responses.
func (app *applicationDependencies) authorWriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, data.ErrDuplicateAuthor):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, data.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
