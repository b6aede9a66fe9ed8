package data

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_NoFilters(t *testing.T) {
	f := Filters{Page: 1, Limit: 10, SortBy: "id", SortOrder: "asc"}

	query, args := buildListQuery(f)

	require.Equal(t, []any{10, 0}, args)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY b.id ASC")
	assert.Contains(t, query, "LIMIT $1 OFFSET $2")
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	genreID := int64(3)
	yearFrom := 1990
	yearTo := 2000
	f := Filters{
		Page:       3,
		Limit:      5,
		SortBy:     "year",
		SortOrder:  "DESC",
		Title:      "go",
		AuthorName: "knuth",
		GenreID:    &genreID,
		YearFrom:   &yearFrom,
		YearTo:     &yearTo,
	}

	query, args := buildListQuery(f)

	// Each predicate binds its own parameter; limit and offset come last.
	require.Equal(t, []any{"%go%", "%knuth%", int64(3), 1990, 2000, 5, 10}, args)
	assert.Contains(t, query, "b.title ILIKE $1")
	assert.Contains(t, query, "a.name ILIKE $2")
	assert.Contains(t, query, "b.genre_id = $3")
	assert.Contains(t, query, "b.published_year >= $4")
	assert.Contains(t, query, "b.published_year <= $5")
	assert.Contains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY b.published_year DESC")
	assert.Contains(t, query, "LIMIT $6 OFFSET $7")
}

func TestBuildListQuery_SingleFilterNumbering(t *testing.T) {
	f := Filters{Page: 1, Limit: 10, AuthorName: "ann"}

	query, args := buildListQuery(f)

	require.Equal(t, []any{"%ann%", 10, 0}, args)
	assert.Contains(t, query, "a.name ILIKE $1")
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
}

func TestBuildListQuery_UnknownSortFallsBackToTitleAsc(t *testing.T) {
	f := Filters{Page: 1, Limit: 10, SortBy: "created_at; DROP TABLE books", SortOrder: "desc"}

	query, _ := buildListQuery(f)

	// An unrecognized sort key behaves exactly like title ascending, even
	// when the caller asked for descending order.
	assert.Contains(t, query, "ORDER BY b.title ASC")
	assert.NotContains(t, query, "DROP TABLE")
}

func TestBuildListQuery_FilterValuesNeverReachQueryText(t *testing.T) {
	f := Filters{Page: 1, Limit: 10, Title: "'; DELETE FROM books; --"}

	query, args := buildListQuery(f)

	assert.NotContains(t, query, "DELETE FROM")
	require.Equal(t, "%'; DELETE FROM books; --%", args[0])
}

func nullInt(v int64) sql.NullInt64 { return sql.NullInt64{Int64: v, Valid: true} }

func nullStr(v string) sql.NullString { return sql.NullString{String: v, Valid: true} }

func nullTime(v time.Time) sql.NullTime { return sql.NullTime{Time: v, Valid: true} }

func TestAggregateBookRows_FoldsAuthorsInOrder(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	flat := []bookRow{
		{
			ID: 2, Title: "Second", GenreID: nullInt(7), PublishedYear: 1999, CreatedBy: 1,
			CreatedAt: nullTime(now), UpdatedAt: nullTime(now),
			AuthorID: nullInt(10), AuthorName: nullStr("Ada"),
			UserID: nullInt(4), Username: nullStr("ada"), IsAdmin: sql.NullBool{Bool: true, Valid: true},
		},
		{
			ID: 2, Title: "Second", GenreID: nullInt(7), PublishedYear: 1999, CreatedBy: 1,
			CreatedAt: nullTime(now), UpdatedAt: nullTime(now),
			AuthorID: nullInt(11), AuthorName: nullStr("Brian"),
		},
		{
			ID: 1, Title: "First", PublishedYear: 2005, CreatedBy: 2,
			CreatedAt: nullTime(now), UpdatedAt: nullTime(now),
		},
	}

	books := aggregateBookRows(flat)

	require.Len(t, books, 2)

	// First-seen order of book ids is preserved, not numeric order.
	assert.Equal(t, int64(2), books[0].ID)
	assert.Equal(t, int64(1), books[1].ID)

	require.Len(t, books[0].Authors, 2)
	assert.Equal(t, "Ada", books[0].Authors[0].Name)
	assert.Equal(t, "Brian", books[0].Authors[1].Name)

	// Author 10 is owned by an admin user, author 11 has no account.
	require.NotNil(t, books[0].Authors[0].User)
	assert.Equal(t, "ada", books[0].Authors[0].User.Username)
	assert.True(t, books[0].Authors[0].User.IsAdmin)
	assert.Nil(t, books[0].Authors[1].User)

	require.NotNil(t, books[0].GenreID)
	assert.Equal(t, int64(7), *books[0].GenreID)

	// A left-joined book with NULL author columns gets an empty, non-nil list.
	assert.NotNil(t, books[1].Authors)
	assert.Len(t, books[1].Authors, 0)
	assert.Nil(t, books[1].GenreID)
}

func TestAggregateBookRows_IsPure(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	flat := []bookRow{
		{ID: 5, Title: "T", PublishedYear: 1990, CreatedAt: nullTime(now), UpdatedAt: nullTime(now), AuthorID: nullInt(1), AuthorName: nullStr("A")},
		{ID: 5, Title: "T", PublishedYear: 1990, CreatedAt: nullTime(now), UpdatedAt: nullTime(now), AuthorID: nullInt(2), AuthorName: nullStr("B")},
	}

	first := aggregateBookRows(flat)
	second := aggregateBookRows(flat)

	require.Equal(t, first, second)
}

func TestAggregateBookRows_Empty(t *testing.T) {
	books := aggregateBookRows(nil)

	require.NotNil(t, books)
	assert.Len(t, books, 0)
}
