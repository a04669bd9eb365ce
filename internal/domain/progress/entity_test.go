package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_MarkIsPerUser(t *testing.T) {
	l := NewLedger()

	assert.True(t, l.Mark("amrit", "course1"))
	assert.True(t, l.Completed("amrit", "course1"))
	assert.False(t, l.Completed("simran", "course1"))

	assert.True(t, l.Mark("simran", "course2"))
	assert.False(t, l.Completed("amrit", "course2"))
}

func TestLedger_MarkIsIdempotent(t *testing.T) {
	l := NewLedger()
	assert.True(t, l.Mark("amrit", "course1"))
	assert.False(t, l.Mark("amrit", "course1"))
	assert.Equal(t, 1, l.CompletedCount("amrit"))
}

func TestLedger_CompletedCoursesSorted(t *testing.T) {
	l := NewLedger()
	l.Mark("amrit", "course3")
	l.Mark("amrit", "course1")
	l.Mark("amrit", "course2")

	assert.Equal(t, []string{"course1", "course2", "course3"}, l.CompletedCourses("amrit"))
	assert.Nil(t, l.CompletedCourses("nobody"))
}

func TestLedger_CompletedCount(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, 0, l.CompletedCount("amrit"))

	l.Mark("amrit", "course1")
	l.Mark("amrit", "course2")
	assert.Equal(t, 2, l.CompletedCount("amrit"))
}
