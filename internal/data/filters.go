// internal/data/filters.go
package data

import (
	"strings"

	"github.com/aoideee/bookcatalog/internal/validator"
)

// Filters holds the pagination, sorting and filter parameters accepted by the
// book list and export endpoints. The zero value of an optional filter (nil
// pointer or empty string) means "no predicate".
type Filters struct {
	Page       int    // Current page number (1-indexed)
	Limit      int    // Number of records per page
	SortBy     string // One of the sortColumns keys; anything else falls back to title
	SortOrder  string // "desc" (case-insensitive) for descending, anything else ascending
	Title      string // Substring match on the book title
	AuthorName string // Substring match on a joined author name
	GenreID    *int64 // Exact genre id match
	YearFrom   *int   // Inclusive lower bound on published_year
	YearTo     *int   // Inclusive upper bound on published_year
}

// sortColumns maps the accepted sort keys onto the underlying sortable
// columns. Validating against this closed set before the column name is
// spliced into the query text is what keeps ORDER BY injection-proof:
// filter values are always bound as parameters, but column names cannot be,
// so they must come from here.
var sortColumns = map[string]string{
	"id":     "b.id",
	"title":  "b.title",
	"year":   "b.published_year",
	"author": "a.name",
}

// sortColumn returns the column to sort by. Unrecognized keys deliberately
// fall back to the title column rather than failing, so unknown input has a
// defined, safe behavior.
func (f Filters) sortColumn() string {
	if column, ok := sortColumns[f.SortBy]; ok {
		return column
	}
	return "b.title"
}

// sortDirection returns "DESC" when the sort order is "desc" in any casing,
// and "ASC" for every other value. The fallback column is always sorted
// ascending: an unknown sort key resets the direction as well.
func (f Filters) sortDirection() string {
	if _, ok := sortColumns[f.SortBy]; !ok {
		return "ASC"
	}
	if strings.EqualFold(f.SortOrder, "desc") {
		return "DESC"
	}
	return "ASC"
}

// offset returns the SQL OFFSET value derived from Page and Limit.
func (f Filters) offset() int { return (f.Page - 1) * f.Limit }

// ValidateFilters checks the pagination bounds. Sort values are not validated
// here: unrecognized sort input is defined to fall back rather than fail.
func ValidateFilters(v *validator.Validator, f Filters) {
	v.Check(f.Page >= 1, "page", "must be at least 1")
	v.Check(f.Limit > 0, "limit", "must be greater than zero")
	if f.YearFrom != nil && f.YearTo != nil {
		v.Check(*f.YearFrom <= *f.YearTo, "year_from", "must not exceed year_to")
	}
}

// Metadata contains the pagination information returned alongside list
// responses. Total is the number of aggregated books on the page, counted
// after join rows have been folded together.
type Metadata struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
