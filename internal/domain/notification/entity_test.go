package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_PostPrepends(t *testing.T) {
	now := time.Now()
	f := NewFeed()

	f, err := f.Post("school closed monday", "teacher1", now)
	require.NoError(t, err)
	f, err = f.Post("quiz on friday", "teacher1", now.Add(time.Minute))
	require.NoError(t, err)

	list := f.List()
	require.Len(t, list, 2)
	assert.Equal(t, "quiz on friday", list[0].Text)
	assert.Equal(t, "school closed monday", list[1].Text)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestFeed_PostRejectsBlank(t *testing.T) {
	f := NewFeed()
	_, err := f.Post("   ", "teacher1", time.Now())
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, f.List())
}

func TestFeed_PostTrims(t *testing.T) {
	f, err := NewFeed().Post("  hello  ", "admin1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "hello", f.List()[0].Text)
	assert.Equal(t, "admin1", f.List()[0].Author)
}
