// cmd/api/books.go
// HTTP request handlers for the books resource. Each handler is a method on
// *applicationDependencies so it has access to the logger and database models.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/validator"
)

// createBookHandler handles POST /v1/books.
// The caller must own an author profile and credit it in author_ids: a user
// may not create a catalog entry for a book they are not an author of. Admins
// use the /v1/admin/books route instead, which has no such restriction.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input data.BookInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateBook(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user := app.contextGetUser(r)

	author, err := app.models.Authors.GetByUserID(user.ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "no author profile found for the current user")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	if !validator.In(author.ID, input.AuthorIDs...) {
		app.authorshipConflictResponse(w, r)
		return
	}

	book, err := app.models.Books.Insert(input, user.ID)
	if err != nil {
		app.bookWriteErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.models.Books.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listBooksHandler handles GET /v1/books.
// Supports substring filters on title and author name, an exact genre filter,
// an inclusive publication year range, sorting over a fixed key set, and
// offset pagination. See parseBookFilters for the query parameters.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	filters := app.parseBookFilters(r, 10)

	v := validator.New()
	data.ValidateFilters(v, filters)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	books, metadata, err := app.models.Books.GetAll(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"books": books, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /v1/books/:id.
// Updates are full replacements of the scalar fields and the author set.
// Only the book's creator may update it; the creator reference itself is
// never changed on this route.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.BookInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	data.ValidateBook(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user := app.contextGetUser(r)

	isCreator, err := app.models.Books.IsCreator(id, user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !isCreator {
		app.notPermittedResponse(w, r)
		return
	}

	author, err := app.models.Authors.GetByUserID(user.ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "no author profile found for the current user")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}
	if !validator.In(author.ID, input.AuthorIDs...) {
		app.authorshipConflictResponse(w, r)
		return
	}

	// nil creator preserves the existing created_by value.
	book, err := app.models.Books.Update(id, input, nil)
	if err != nil {
		app.bookWriteErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:id.
// Only the book's creator may delete it. Deletion is permanent; the
// association rows cascade away with the book row.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.contextGetUser(r)

	isCreator, err := app.models.Books.IsCreator(id, user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !isCreator {
		app.notPermittedResponse(w, r)
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

// parseBookFilters extracts the shared list/export query parameters.
func (app *applicationDependencies) parseBookFilters(r *http.Request, defaultLimit int) data.Filters {
	qs := r.URL.Query()

	return data.Filters{
		Page:       app.readInt(qs, "page", 1),
		Limit:      app.readInt(qs, "limit", defaultLimit),
		SortBy:     app.readString(qs, "sort_by", "id"),
		SortOrder:  app.readString(qs, "sort_order", "asc"),
		Title:      app.readString(qs, "title", ""),
		AuthorName: app.readString(qs, "author_name", ""),
		GenreID:    app.readOptionalInt64(qs, "genre_id"),
		YearFrom:   app.readOptionalInt(qs, "year_from"),
		YearTo:     app.readOptionalInt(qs, "year_to"),
	}
}

// bookWriteErrorResponse maps the book model's write errors onto responses.
// Referential integrity failures surface as field-level validation errors:
// by the time the caller sees them the transaction has been rolled back.
func (app *applicationDependencies) bookWriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, data.ErrAuthorNotFound):
		app.failedValidationResponse(w, r, map[string]string{"author_ids": "one or more author ids do not exist"})
	case errors.Is(err, data.ErrGenreNotFound):
		app.failedValidationResponse(w, r, map[string]string{"genre_id": "genre does not exist"})
	default:
		app.serverErrorResponse(w, r, err)
	}
}
