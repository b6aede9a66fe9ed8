package data

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aoideee/bookcatalog/internal/validator"
)

func TestValidateBook(t *testing.T) {
	valid := BookInput{Title: "The Go Programming Language", PublishedYear: 2015, AuthorIDs: []int64{1, 2}}

	tests := []struct {
		name      string
		mutate    func(*BookInput)
		wantField string
	}{
		{"valid input", func(in *BookInput) {}, ""},
		{"missing title", func(in *BookInput) { in.Title = "" }, "title"},
		{"title too long", func(in *BookInput) { in.Title = strings.Repeat("x", 151) }, "title"},
		{"year before 1800", func(in *BookInput) { in.PublishedYear = 1799 }, "published_year"},
		{"year in the future", func(in *BookInput) { in.PublishedYear = time.Now().Year() + 1 }, "published_year"},
		{"no authors", func(in *BookInput) { in.AuthorIDs = nil }, "author_ids"},
		{"duplicate authors", func(in *BookInput) { in.AuthorIDs = []int64{3, 3} }, "author_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			v := validator.New()
			ValidateBook(v, input)

			if tt.wantField == "" {
				assert.True(t, v.Valid(), "expected no errors, got %v", v.Errors)
			} else {
				assert.Contains(t, v.Errors, tt.wantField)
			}
		})
	}

	// Boundary years are accepted.
	v := validator.New()
	ValidateBook(v, BookInput{Title: "Old", PublishedYear: 1800, AuthorIDs: []int64{1}})
	assert.True(t, v.Valid())

	v = validator.New()
	ValidateBook(v, BookInput{Title: "New", PublishedYear: time.Now().Year(), AuthorIDs: []int64{1}})
	assert.True(t, v.Valid())
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"ok", "Passw0rd", true},
		{"too short", "Pw1a", false},
		{"too long", strings.Repeat("Aa1", 30), false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"no digit", "Password", false},
		{"symbols rejected", "Passw0rd!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidatePassword(v, tt.password)
			assert.Equal(t, tt.valid, v.Valid(), "errors: %v", v.Errors)
		})
	}
}
