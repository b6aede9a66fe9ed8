package exporter

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/bookcatalog/internal/data"
)

func sampleBooks() []*data.Book {
	genreID := int64(4)
	created := time.Date(2023, 2, 14, 9, 30, 0, 0, time.UTC)
	updated := time.Date(2024, 1, 2, 15, 45, 0, 0, time.UTC)

	return []*data.Book{
		{
			ID:            1,
			Title:         "Structure, and Interpretation",
			GenreID:       &genreID,
			PublishedYear: 1985,
			Authors: []data.Author{
				{ID: 10, Name: "Harold Abelson"},
				{ID: 11, Name: "Gerald Sussman"},
			},
			CreatedAt: created,
			UpdatedAt: updated,
		},
		{
			ID:            2,
			Title:         "Solo Work",
			PublishedYear: 2001,
			Authors:       []data.Author{{ID: 12, Name: "Ada Lovelace"}},
			CreatedAt:     created,
			UpdatedAt:     updated,
		},
	}
}

func TestJSON_FlattensAuthorsAndTimestamps(t *testing.T) {
	records := JSON(sampleBooks())

	require.Len(t, records, 2)
	assert.Equal(t, []string{"Harold Abelson", "Gerald Sussman"}, records[0].Authors)
	assert.Equal(t, "2023-02-14T09:30:00Z", records[0].CreatedAt)
	assert.Equal(t, "2024-01-02T15:45:00Z", records[0].UpdatedAt)
	require.NotNil(t, records[0].GenreID)
	assert.Equal(t, int64(4), *records[0].GenreID)
	assert.Nil(t, records[1].GenreID)
}

func TestCSVLines_HeaderFirstThenOneLinePerBook(t *testing.T) {
	var lines []string
	for line := range CSVLines(sampleBooks()) {
		lines = append(lines, line)
	}

	require.Len(t, lines, 3)
	assert.Equal(t, "id,title,genre_id,published_year,authors,created_at,updated_at", lines[0])
}

func TestCSVLines_RoundTrip(t *testing.T) {
	var lines []string
	for line := range CSVLines(sampleBooks()) {
		lines = append(lines, line)
	}

	// Re-parse the emitted document: quoting must survive titles containing
	// commas, and the authors column must split back into the same names.
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Structure, and Interpretation", rows[1][1])
	assert.Equal(t, []string{"Harold Abelson", "Gerald Sussman"}, strings.Split(rows[1][4], "; "))
	assert.Equal(t, "4", rows[1][2])
	assert.Equal(t, "1985", rows[1][3])
	assert.Equal(t, "2023-02-14T09:30:00Z", rows[1][5])

	// A book without a genre exports an empty column.
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, []string{"Ada Lovelace"}, strings.Split(rows[2][4], "; "))
}

func TestCSVLines_StopsWhenConsumerBreaks(t *testing.T) {
	count := 0
	for range CSVLines(sampleBooks()) {
		count++
		if count == 1 {
			break
		}
	}
	assert.Equal(t, 1, count)
}

func TestCSVLines_NoBooks(t *testing.T) {
	var lines []string
	for line := range CSVLines(nil) {
		lines = append(lines, line)
	}

	require.Len(t, lines, 1) // header only
}
