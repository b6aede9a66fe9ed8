// cmd/api/importexport.go
// Bulk import and streaming export handlers for the books resource.
package main

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/exporter"
	"github.com/aoideee/bookcatalog/internal/importer"
	"github.com/aoideee/bookcatalog/internal/validator"
)

// maxImportBytes caps the uploaded file size at 10 MB.
const maxImportBytes = 10 << 20

// exportDefaultLimit is how many books an export fetches when the caller
// does not narrow it down with the usual list parameters.
const exportDefaultLimit = 10_000

// importBooksHandler handles POST /v1/import/books.
// The upload is a multipart form with a single "file" field, formatted as CSV
// or JSON according to its extension. Parsing is all-or-nothing: the first
// invalid record rejects the whole batch with a 422 before anything is
// created. Creation afterwards is per-record: each book is written in its own
// transaction, and a failed record becomes an error entry without affecting
// its siblings. The response reports both outcome lists and their counts.
func (app *applicationDependencies) importBooksHandler(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	// Importing requires an author profile: every imported record must credit
	// the importer as one of its authors.
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

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("a file upload named \"file\" must be provided"))
		return
	}
	defer file.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")

	content, err := io.ReadAll(file)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	records, recordErr, err := importer.Parse(format, content, author.ID)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if recordErr != nil {
		// Fail-fast: one malformed record invalidates the whole batch.
		err = app.writeJSON(w, http.StatusUnprocessableEntity, importResultEnvelope(nil, []importer.RecordError{*recordErr}), nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	createdBooks, errorBooks := createImportedBooks(records, user.ID, app.models.Books.Insert, func(err error) {
		app.logError(r, err)
	})

	err = app.writeJSON(w, http.StatusCreated, importResultEnvelope(createdBooks, errorBooks), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createImportedBooks runs the creation phase of an import: each parsed
// record is validated and written independently via insert, and a failed
// record degrades to an error entry without affecting its siblings.
// Referential failures carry their own message; unexpected store failures go
// through logFailure and surface as a generic entry.
func createImportedBooks(
	records []importer.Record,
	createdBy int64,
	insert func(data.BookInput, int64) (*data.Book, error),
	logFailure func(error),
) ([]*data.Book, []importer.RecordError) {
	createdBooks := []*data.Book{}
	errorBooks := []importer.RecordError{}

	for _, record := range records {
		input := data.BookInput{
			Title:         record.Title,
			GenreID:       record.GenreID,
			PublishedYear: record.PublishedYear,
			AuthorIDs:     record.AuthorIDs,
		}

		v := validator.New()
		data.ValidateBook(v, input)
		if !v.Valid() {
			errorBooks = append(errorBooks, importer.RecordError{Title: record.Title, Error: firstValidationError(v)})
			continue
		}

		book, err := insert(input, createdBy)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrAuthorNotFound), errors.Is(err, data.ErrGenreNotFound):
				errorBooks = append(errorBooks, importer.RecordError{Title: record.Title, Error: err.Error()})
			default:
				logFailure(err)
				errorBooks = append(errorBooks, importer.RecordError{Title: record.Title, Error: "book creation failed"})
			}
			continue
		}
		createdBooks = append(createdBooks, book)
	}

	return createdBooks, errorBooks
}

// importResultEnvelope builds the import response body.
func importResultEnvelope(created []*data.Book, failed []importer.RecordError) envelope {
	if created == nil {
		created = []*data.Book{}
	}
	return envelope{
		"created_books": created,
		"error_books":   failed,
		"created_count": len(created),
		"error_count":   len(failed),
	}
}

// firstValidationError flattens a validator's error map into a single
// message for the per-record error list.
func firstValidationError(v *validator.Validator) string {
	for field, message := range v.Errors {
		return field + " " + message
	}
	return "invalid record"
}

// exportBooksHandler handles GET /v1/export/books.
// Accepts the same filter/sort parameters as the list endpoint plus
// ?format=json|csv (default json). The CSV variant is streamed line by line
// so arbitrarily large exports never have to be rendered in memory first.
func (app *applicationDependencies) exportBooksHandler(w http.ResponseWriter, r *http.Request) {
	filters := app.parseBookFilters(r, exportDefaultLimit)

	v := validator.New()
	data.ValidateFilters(v, filters)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	format := app.readString(r.URL.Query(), "format", "json")
	if !validator.In(format, "json", "csv") {
		app.badRequestResponse(w, r, errors.New("format must be either json or csv"))
		return
	}

	books, _, err := app.models.Books.GetAll(filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if format == "json" {
		err = app.writeJSON(w, http.StatusOK, envelope{"books": exporter.JSON(books)}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="books.csv"`)
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for line := range exporter.CSVLines(books) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			// The client went away mid-stream; nothing sensible left to do.
			app.logError(r, err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
