package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_AddGeneratesSequentialIDs(t *testing.T) {
	c := NewCatalog()

	first, err := c.Add("Computer Basics", "https://example.com/basics")
	require.NoError(t, err)
	assert.Equal(t, "course1", first.ID)

	second, err := c.Add("Mathematics", "https://example.com/math")
	require.NoError(t, err)
	assert.Equal(t, "course2", second.ID)
	assert.Equal(t, 2, c.Len())
}

func TestCatalog_SeedYieldsCourse3Next(t *testing.T) {
	c := Seed()
	require.Equal(t, 2, c.Len())

	third, err := c.Add("Science Club", "https://example.com/science")
	require.NoError(t, err)
	assert.Equal(t, "course3", third.ID)
}

func TestCatalog_CounterSurvivesIndependentOfLength(t *testing.T) {
	// The counter is monotonic even when it disagrees with the list length,
	// so ids stay unique if removal is ever introduced.
	c := &Catalog{NextID: 7}
	course, err := c.Add("Late Arrival", "https://example.com/late")
	require.NoError(t, err)
	assert.Equal(t, "course7", course.ID)
	assert.Equal(t, 8, c.NextID)
}

func TestCatalog_AddValidation(t *testing.T) {
	c := NewCatalog()

	_, err := c.Add("   ", "https://example.com")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = c.Add("Name", "  ")
	assert.ErrorIs(t, err, ErrEmptyLink)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, c.NextID)
}

func TestCatalog_AddTrimsFields(t *testing.T) {
	c := NewCatalog()
	course, err := c.Add("  Spaced Out  ", "  https://example.com  ")
	require.NoError(t, err)
	assert.Equal(t, "Spaced Out", course.Name)
	assert.Equal(t, "https://example.com", course.Link)
}

func TestCatalog_FindAndContains(t *testing.T) {
	c := Seed()

	assert.True(t, c.Contains("course1"))
	assert.False(t, c.Contains("course99"))

	course := c.Find("course2")
	require.NotNil(t, course)
	assert.Equal(t, "Mathematics for School Students", course.Name)
	assert.Nil(t, c.Find("course99"))
}

func TestCatalog_ListIsACopy(t *testing.T) {
	c := Seed()
	list := c.List()
	list[0].Name = "tampered"
	assert.Equal(t, "Computer Basics", c.Courses[0].Name)
}
