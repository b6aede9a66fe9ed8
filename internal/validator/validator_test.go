package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CheckAndValid(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "ok", "never recorded")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestValidator_FirstErrorWins(t *testing.T) {
	v := New()
	v.AddError("title", "first")
	v.AddError("title", "second")

	assert.Equal(t, "first", v.Errors["title"])
}

func TestIn(t *testing.T) {
	assert.True(t, In("csv", "csv", "json"))
	assert.False(t, In("xml", "csv", "json"))
	assert.True(t, In(int64(2), int64(1), int64(2)))
}

func TestUnique(t *testing.T) {
	assert.True(t, Unique([]int64{1, 2, 3}))
	assert.False(t, Unique([]int64{1, 2, 1}))
	assert.True(t, Unique([]string{}))
}
