// Package importer parses bulk book uploads (CSV or JSON) into normalized
// records ready for creation. Parsing is fail-fast: the first record that
// fails any check rejects the whole batch with a single error record, before
// any book is created. Creation failures afterwards are the caller's
// per-record concern, not this package's.
package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Supported upload formats, matched against the uploaded file extension.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for any format other than csv or json.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// Record is one normalized book from an upload, in the same shape the create
// endpoint accepts.
type Record struct {
	Title         string  `json:"title"`
	GenreID       *int64  `json:"genre_id"`
	PublishedYear int     `json:"published_year"`
	AuthorIDs     []int64 `json:"author_ids"`
}

// RecordError describes why a record was rejected. During parsing a single
// RecordError stands for the whole rejected batch; during creation each
// failed record produces its own entry alongside its succeeding siblings.
type RecordError struct {
	Title string `json:"title"`
	Error string `json:"error"`
}

// Parse decodes and validates an upload. authorID is the caller's own author
// id: every record's author_ids must contain it, since a caller may not bulk
// import books they are not credited on.
//
// On success it returns the full record list. If any record fails a check,
// parsing stops and the second return value carries that record's title (when
// recoverable) and the reason; no records are returned. The error return is
// reserved for document-level failures: an unsupported format or a payload
// that is not well-formed CSV/JSON at all.
func Parse(format string, content []byte, authorID int64) ([]Record, *RecordError, error) {
	switch format {
	case FormatCSV:
		return parseCSV(content, authorID)
	case FormatJSON:
		return parseJSON(content, authorID)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// checkRecord applies the per-record validation shared by both formats.
func checkRecord(r Record, authorID int64) *RecordError {
	if !containsID(r.AuthorIDs, authorID) {
		return &RecordError{Title: r.Title, Error: "author must be one of the authors of the book"}
	}
	if r.Title == "" || r.PublishedYear == 0 {
		return &RecordError{Title: r.Title, Error: "title and published_year are required"}
	}
	return nil
}

func parseJSON(content []byte, authorID int64) ([]Record, *RecordError, error) {
	// Decode to raw messages first so a single malformed element rejects the
	// batch with an error record instead of failing the whole document.
	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, nil, fmt.Errorf("malformed JSON document: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for _, element := range raw {
		var record Record
		if err := json.Unmarshal(element, &record); err != nil {
			return nil, &RecordError{Title: rawTitle(element), Error: "invalid book record in JSON file"}, nil
		}
		if recErr := checkRecord(record, authorID); recErr != nil {
			return nil, recErr, nil
		}
		records = append(records, record)
	}
	return records, nil, nil
}

// rawTitle tries to recover the title from a record that failed to decode,
// so the error entry can still name the offending book.
func rawTitle(element json.RawMessage) string {
	var probe struct {
		Title string `json:"title"`
	}
	_ = json.Unmarshal(element, &probe)
	return probe.Title
}

// parseCSV expects the header row title,genre_id,published_year,author_ids,
// with author_ids holding a JSON-encoded integer list.
func parseCSV(content []byte, authorID int64) ([]Record, *RecordError, error) {
	reader := csv.NewReader(bytes.NewReader(content))

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed CSV document: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range []string{"title", "genre_id", "published_year", "author_ids"} {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("malformed CSV document: missing column %q", required)
		}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("malformed CSV document: %w", err)
		}

		record := Record{Title: row[index["title"]]}

		if err := json.Unmarshal([]byte(row[index["author_ids"]]), &record.AuthorIDs); err != nil {
			return nil, &RecordError{Title: record.Title, Error: "invalid author_ids format in CSV file"}, nil
		}

		if yearField := row[index["published_year"]]; yearField != "" {
			year, err := strconv.Atoi(yearField)
			if err != nil {
				return nil, &RecordError{Title: record.Title, Error: "invalid published_year format in CSV file"}, nil
			}
			record.PublishedYear = year
		}

		if genreField := row[index["genre_id"]]; genreField != "" {
			genreID, err := strconv.ParseInt(genreField, 10, 64)
			if err != nil {
				return nil, &RecordError{Title: record.Title, Error: "invalid genre_id format in CSV file"}, nil
			}
			record.GenreID = &genreID
		}

		if recErr := checkRecord(record, authorID); recErr != nil {
			return nil, recErr, nil
		}
		records = append(records, record)
	}

	return records, nil, nil
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
