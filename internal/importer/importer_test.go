package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_UnsupportedFormat(t *testing.T) {
	_, _, err := Parse("xlsx", []byte("whatever"), 1)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseJSON_HappyPath(t *testing.T) {
	payload := []byte(`[
		{"title": "A", "genre_id": 2, "published_year": 2000, "author_ids": [5, 6]},
		{"title": "B", "published_year": 1999, "author_ids": [5]}
	]`)

	records, recErr, err := Parse(FormatJSON, payload, 5)
	require.NoError(t, err)
	require.Nil(t, recErr)
	require.Len(t, records, 2)

	assert.Equal(t, "A", records[0].Title)
	require.NotNil(t, records[0].GenreID)
	assert.Equal(t, int64(2), *records[0].GenreID)
	assert.Equal(t, []int64{5, 6}, records[0].AuthorIDs)

	assert.Equal(t, "B", records[1].Title)
	assert.Nil(t, records[1].GenreID)
}

func TestParseJSON_CallerMustBeCredited(t *testing.T) {
	payload := []byte(`[
		{"title": "A", "published_year": 2000, "author_ids": [5]},
		{"title": "B", "published_year": 1999, "author_ids": [6]}
	]`)

	// Author 7 appears in neither record; the first record already fails.
	records, recErr, err := Parse(FormatJSON, payload, 7)
	require.NoError(t, err)
	require.NotNil(t, recErr)
	assert.Nil(t, records)
	assert.Equal(t, "A", recErr.Title)
	assert.Contains(t, recErr.Error, "author must be one of the authors")
}

func TestParseJSON_FailFastOnFirstBadRecord(t *testing.T) {
	payload := []byte(`[
		{"title": "Bad", "author_ids": [5]},
		{"title": "Good", "published_year": 2001, "author_ids": [5]}
	]`)

	records, recErr, err := Parse(FormatJSON, payload, 5)
	require.NoError(t, err)
	require.NotNil(t, recErr)
	assert.Nil(t, records)
	assert.Equal(t, "Bad", recErr.Title)
	assert.Contains(t, recErr.Error, "required")
}

func TestParseJSON_MalformedRecord(t *testing.T) {
	payload := []byte(`[{"title": "Ok", "published_year": 2001, "author_ids": [5]}, "not an object"]`)

	records, recErr, err := Parse(FormatJSON, payload, 5)
	require.NoError(t, err)
	require.NotNil(t, recErr)
	assert.Nil(t, records)
	assert.Contains(t, recErr.Error, "invalid book record")
}

func TestParseJSON_MalformedDocument(t *testing.T) {
	_, _, err := Parse(FormatJSON, []byte(`{"title": "not an array"}`), 5)
	assert.Error(t, err)
}

func TestParseCSV_HappyPath(t *testing.T) {
	payload := []byte("title,genre_id,published_year,author_ids\n" +
		"Go in Action,3,2015,\"[5,9]\"\n" +
		"No Genre,,1980,[5]\n")

	records, recErr, err := Parse(FormatCSV, payload, 5)
	require.NoError(t, err)
	require.Nil(t, recErr)
	require.Len(t, records, 2)

	assert.Equal(t, "Go in Action", records[0].Title)
	require.NotNil(t, records[0].GenreID)
	assert.Equal(t, int64(3), *records[0].GenreID)
	assert.Equal(t, 2015, records[0].PublishedYear)
	assert.Equal(t, []int64{5, 9}, records[0].AuthorIDs)

	assert.Nil(t, records[1].GenreID)
	assert.Equal(t, 1980, records[1].PublishedYear)
}

func TestParseCSV_InvalidAuthorIDs(t *testing.T) {
	payload := []byte("title,genre_id,published_year,author_ids\n" +
		"Broken,,2000,5 and 6\n")

	records, recErr, err := Parse(FormatCSV, payload, 5)
	require.NoError(t, err)
	require.NotNil(t, recErr)
	assert.Nil(t, records)
	assert.Equal(t, "Broken", recErr.Title)
	assert.Contains(t, recErr.Error, "author_ids")
}

func TestParseCSV_MissingRequiredFields(t *testing.T) {
	payload := []byte("title,genre_id,published_year,author_ids\n" +
		",,2000,[5]\n")

	records, recErr, err := Parse(FormatCSV, payload, 5)
	require.NoError(t, err)
	require.NotNil(t, recErr)
	assert.Nil(t, records)
	assert.Contains(t, recErr.Error, "required")
}

func TestParseCSV_MissingColumn(t *testing.T) {
	payload := []byte("title,published_year\nA,2000\n")

	_, _, err := Parse(FormatCSV, payload, 5)
	assert.Error(t, err)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	payload := []byte("title,genre_id,published_year,author_ids\n")

	records, recErr, err := Parse(FormatCSV, payload, 5)
	require.NoError(t, err)
	require.Nil(t, recErr)
	assert.Empty(t, records)
}
