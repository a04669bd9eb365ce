package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_AwardIsIdempotent(t *testing.T) {
	l := NewLedger()

	assert.True(t, l.Award("amrit", Welcome))
	assert.False(t, l.Award("amrit", Welcome))
	assert.True(t, l.Award("amrit", QuizMaster))

	assert.Equal(t, []string{Welcome, QuizMaster}, l.Badges("amrit"))
}

func TestLedger_AwardRejectsBlank(t *testing.T) {
	l := NewLedger()
	assert.False(t, l.Award("", Welcome))
	assert.False(t, l.Award("amrit", ""))
	assert.Nil(t, l.Badges("amrit"))
}

func TestLedger_Has(t *testing.T) {
	l := NewLedger()
	l.Award("amrit", CourseFinisher)

	assert.True(t, l.Has("amrit", CourseFinisher))
	assert.False(t, l.Has("amrit", QuizMaster))
	assert.False(t, l.Has("simran", CourseFinisher))
}

func TestLedger_BadgesReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Award("amrit", Welcome)

	badges := l.Badges("amrit")
	badges[0] = "tampered"
	assert.Equal(t, []string{Welcome}, l.Badges("amrit"))
}
