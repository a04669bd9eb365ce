package training

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddAppends(t *testing.T) {
	r := NewRegistry()

	r, err := r.Add("Digital Teaching 101", "https://example.com/dt101")
	require.NoError(t, err)
	r, err = r.Add("Classroom Tech", "https://example.com/tech")
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Digital Teaching 101", list[0].Title)
	assert.Equal(t, "Classroom Tech", list[1].Title)
}

func TestRegistry_AddValidation(t *testing.T) {
	r := NewRegistry()

	_, err := r.Add("  ", "https://example.com")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = r.Add("Title", "  ")
	assert.ErrorIs(t, err, ErrEmptyLink)

	assert.Empty(t, r.List())
}
