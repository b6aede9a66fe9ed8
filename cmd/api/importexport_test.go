package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/bookcatalog/internal/data"
	"github.com/aoideee/bookcatalog/internal/importer"
)

func TestCreateImportedBooks_PartialSuccess(t *testing.T) {
	records := []importer.Record{
		{Title: "A", PublishedYear: 2000, AuthorIDs: []int64{5}},
		{Title: "B", PublishedYear: 1999, AuthorIDs: []int64{9999}},
	}

	// Author 9999 does not exist, so B's write fails while A's succeeds.
	insert := func(input data.BookInput, createdBy int64) (*data.Book, error) {
		if input.AuthorIDs[0] == 9999 {
			return nil, data.ErrAuthorNotFound
		}
		return &data.Book{ID: 1, Title: input.Title, PublishedYear: input.PublishedYear}, nil
	}

	created, failed := createImportedBooks(records, 7, insert, func(error) {
		t.Error("referential failures must not be logged as unexpected")
	})

	require.Len(t, created, 1)
	require.Len(t, failed, 1)
	assert.Equal(t, "A", created[0].Title)
	assert.Equal(t, "B", failed[0].Title)
	assert.Equal(t, data.ErrAuthorNotFound.Error(), failed[0].Error)

	body := importResultEnvelope(created, failed)
	assert.Equal(t, 1, body["created_count"])
	assert.Equal(t, 1, body["error_count"])
}

func TestCreateImportedBooks_InvalidRecordSkipsInsert(t *testing.T) {
	records := []importer.Record{
		{Title: "Too Old", PublishedYear: 1500, AuthorIDs: []int64{5}},
	}

	insert := func(data.BookInput, int64) (*data.Book, error) {
		t.Fatal("insert must not run for a record that fails validation")
		return nil, nil
	}

	created, failed := createImportedBooks(records, 7, insert, func(error) {})

	assert.Empty(t, created)
	require.Len(t, failed, 1)
	assert.Equal(t, "Too Old", failed[0].Title)
}

func TestCreateImportedBooks_UnexpectedFailureIsLoggedAndGeneric(t *testing.T) {
	records := []importer.Record{
		{Title: "A", PublishedYear: 2000, AuthorIDs: []int64{5}},
	}

	storeErr := errors.New("connection reset")
	insert := func(data.BookInput, int64) (*data.Book, error) {
		return nil, storeErr
	}

	var logged error
	created, failed := createImportedBooks(records, 7, insert, func(err error) {
		logged = err
	})

	assert.Empty(t, created)
	require.Len(t, failed, 1)
	assert.Equal(t, "book creation failed", failed[0].Error)
	assert.Equal(t, storeErr, logged)
}

func TestImportResultEnvelope_NeverNil(t *testing.T) {
	body := importResultEnvelope(nil, []importer.RecordError{})

	assert.Equal(t, []*data.Book{}, body["created_books"])
	assert.Equal(t, 0, body["created_count"])
	assert.Equal(t, 0, body["error_count"])
}
