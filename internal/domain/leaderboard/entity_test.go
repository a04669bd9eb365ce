package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_RecordSortsDescending(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Record("math", "amrit", 2))
	require.NoError(t, b.Record("math", "simran", 5))
	require.NoError(t, b.Record("math", "harpreet", 3))

	entries := b.All("math")
	require.Len(t, entries, 3)
	assert.Equal(t, "simran", entries[0].Name)
	assert.Equal(t, "harpreet", entries[1].Name)
	assert.Equal(t, "amrit", entries[2].Name)
	assert.True(t, b.IsSorted("math"))
}

func TestBoard_StableOnEqualScores(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Record("science", "first", 4))
	require.NoError(t, b.Record("science", "second", 4))
	require.NoError(t, b.Record("science", "third", 4))

	entries := b.All("science")
	require.Len(t, entries, 3)
	// Equal scores keep insertion order.
	assert.Equal(t, "first", entries[0].Name)
	assert.Equal(t, "second", entries[1].Name)
	assert.Equal(t, "third", entries[2].Name)
}

func TestBoard_TopDoesNotTruncateHistory(t *testing.T) {
	b := NewBoard()
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		require.NoError(t, b.Record("math", name, i))
	}

	top := b.Top("math", 5)
	assert.Len(t, top, 5)
	assert.Equal(t, 6, top[0].Score)

	// The stored history keeps everything.
	assert.Len(t, b.All("math"), 7)
}

func TestBoard_TopBounds(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Record("math", "solo", 1))

	assert.Len(t, b.Top("math", 10), 1)
	assert.Nil(t, b.Top("math", 0))
	assert.Nil(t, b.Top("unknown", 5))
}

func TestBoard_RecordValidation(t *testing.T) {
	b := NewBoard()
	assert.ErrorIs(t, b.Record("math", "   ", 1), ErrEmptyName)
	assert.ErrorIs(t, b.Record("math", "amrit", -1), ErrNegativeScore)
	assert.Empty(t, b.All("math"))
}

func TestBoard_SeedSubjects(t *testing.T) {
	b := Seed()
	subjects := b.Subjects()
	assert.Equal(t, []string{"english", "geography", "gk", "history", "math", "science"}, subjects)
	for _, s := range subjects {
		assert.Empty(t, b.All(s))
	}
}
