package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "courses", []string{"course1", "course2"}))

	var got []string
	require.NoError(t, s.Load(ctx, "courses", &got))
	assert.Equal(t, []string{"course1", "course2"}, got)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "badges", map[string][]string{"amrit": {"Welcome Badge"}}))
	require.NoError(t, s.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	var got map[string][]string
	require.NoError(t, reopened.Load(ctx, "badges", &got))
	assert.Equal(t, []string{"Welcome Badge"}, got["amrit"])
}

func TestStore_LoadMissingKey(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	var v any
	assert.ErrorIs(t, s.Load(context.Background(), "missing", &v), persistence.ErrKeyNotFound)
}

func TestStore_UpdateSeesNilOnFirstWrite(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	err = s.Update(context.Background(), "progress", func(raw []byte) ([]byte, error) {
		assert.Nil(t, raw)
		return json.Marshal(map[string]bool{"course1": true})
	})
	require.NoError(t, err)

	var got map[string]bool
	require.NoError(t, s.Load(context.Background(), "progress", &got))
	assert.True(t, got["course1"])
}

func TestStore_FailedUpdateWritesNothing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "k", "before"))
	err = s.Update(ctx, "k", func(raw []byte) ([]byte, error) {
		return nil, assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var got string
	require.NoError(t, s.Load(ctx, "k", &got))
	assert.Equal(t, "before", got)

	// No temp files left behind either.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, ".json", filepath.Ext(e.Name()))
	}
}

func TestNewStore_RequiresDir(t *testing.T) {
	_, err := NewStore("   ")
	assert.Error(t, err)
}
