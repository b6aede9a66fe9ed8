package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aoideee/bookcatalog/internal/validator"
)

func TestFilters_SortColumn(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   string
	}{
		{"id", "id", "b.id"},
		{"title", "title", "b.title"},
		{"year", "year", "b.published_year"},
		{"author", "author", "a.name"},
		{"unknown key falls back to title", "publisher", "b.title"},
		{"empty key falls back to title", "", "b.title"},
		{"column names are not accepted directly", "b.created_by", "b.title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filters{SortBy: tt.sortBy}
			assert.Equal(t, tt.want, f.sortColumn())
		})
	}
}

func TestFilters_SortDirection(t *testing.T) {
	assert.Equal(t, "ASC", Filters{SortBy: "id", SortOrder: "asc"}.sortDirection())
	assert.Equal(t, "DESC", Filters{SortBy: "id", SortOrder: "desc"}.sortDirection())
	assert.Equal(t, "DESC", Filters{SortBy: "id", SortOrder: "DeSc"}.sortDirection())
	assert.Equal(t, "ASC", Filters{SortBy: "id", SortOrder: "descending"}.sortDirection())
	assert.Equal(t, "ASC", Filters{SortBy: "id", SortOrder: ""}.sortDirection())

	// An unrecognized sort key resets the direction along with the column.
	assert.Equal(t, "ASC", Filters{SortBy: "bogus", SortOrder: "desc"}.sortDirection())
}

func TestFilters_Offset(t *testing.T) {
	assert.Equal(t, 0, Filters{Page: 1, Limit: 10}.offset())
	assert.Equal(t, 10, Filters{Page: 2, Limit: 10}.offset())
	assert.Equal(t, 35, Filters{Page: 8, Limit: 5}.offset())
}

func TestValidateFilters(t *testing.T) {
	v := validator.New()
	ValidateFilters(v, Filters{Page: 1, Limit: 20})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateFilters(v, Filters{Page: 0, Limit: 20})
	assert.Contains(t, v.Errors, "page")

	v = validator.New()
	ValidateFilters(v, Filters{Page: 1, Limit: 0})
	assert.Contains(t, v.Errors, "limit")

	from, to := 2010, 1990
	v = validator.New()
	ValidateFilters(v, Filters{Page: 1, Limit: 10, YearFrom: &from, YearTo: &to})
	assert.Contains(t, v.Errors, "year_from")
}
