// Package exporter serializes aggregated book records for download, either
// as a JSON array or as a lazily produced CSV line sequence that can be
// streamed to the client without materializing the whole export in memory.
package exporter

import (
	"encoding/csv"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/aoideee/bookcatalog/internal/data"
)

// CSVHeader is the first line of every CSV export.
var CSVHeader = []string{"id", "title", "genre_id", "published_year", "authors", "created_at", "updated_at"}

// Record is the flattened export shape: authors reduced to their display
// names, timestamps rendered in RFC 3339 text.
type Record struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	GenreID       *int64   `json:"genre_id"`
	PublishedYear int      `json:"published_year"`
	Authors       []string `json:"authors"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

// JSON flattens books into export records.
func JSON(books []*data.Book) []Record {
	records := make([]Record, 0, len(books))
	for _, book := range books {
		records = append(records, Record{
			ID:            book.ID,
			Title:         book.Title,
			GenreID:       book.GenreID,
			PublishedYear: book.PublishedYear,
			Authors:       authorNames(book),
			CreatedAt:     book.CreatedAt.Format(time.RFC3339),
			UpdatedAt:     book.UpdatedAt.Format(time.RFC3339),
		})
	}
	return records
}

// CSVLines returns a single-pass sequence of CSV lines (without trailing
// newlines): the header first, then one line per book with the author names
// joined by "; ". Lines are produced on demand so a caller can stream the
// export while it is being generated.
func CSVLines(books []*data.Book) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(csvLine(CSVHeader)) {
			return
		}
		for _, book := range books {
			genreID := ""
			if book.GenreID != nil {
				genreID = strconv.FormatInt(*book.GenreID, 10)
			}
			line := csvLine([]string{
				strconv.FormatInt(book.ID, 10),
				book.Title,
				genreID,
				strconv.Itoa(book.PublishedYear),
				strings.Join(authorNames(book), "; "),
				book.CreatedAt.Format(time.RFC3339),
				book.UpdatedAt.Format(time.RFC3339),
			})
			if !yield(line) {
				return
			}
		}
	}
}

func authorNames(book *data.Book) []string {
	names := make([]string, 0, len(book.Authors))
	for _, author := range book.Authors {
		names = append(names, author.Name)
	}
	return names
}

// csvLine renders one record through encoding/csv so quoting and escaping
// follow RFC 4180.
func csvLine(fields []string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write(fields)
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
