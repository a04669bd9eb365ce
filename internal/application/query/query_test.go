package query

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabha-hub/nabha-learning-hub/internal/domain/badge"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/leaderboard"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/progress"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence/memory"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, persistence.EnsureSeedData(context.Background(), store, slog.Default()))
	return store
}

func TestListCourses_ReturnsSeededCatalog(t *testing.T) {
	store := seededStore(t)
	h := NewListCoursesHandler(persistence.NewCatalogRepository(store))

	courses, err := h.Handle(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "course1", courses[0].ID)
	assert.Equal(t, "Computer Basics", courses[0].Name)
	assert.Equal(t, "course2", courses[1].ID)
}

func TestCompletedCourses_ResolvesNamesWithFallback(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	progressRepo := persistence.NewProgressRepository(store)

	require.NoError(t, progressRepo.Update(ctx, func(l progress.Ledger) error {
		l.Mark("amrit", "course1")
		// A teacher can mark an id the catalog never had.
		l.Mark("amrit", "course99")
		return nil
	}))

	h := NewCompletedCoursesHandler(progressRepo, persistence.NewCatalogRepository(store))
	completed, err := h.Handle(ctx, "amrit")
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.Equal(t, "Computer Basics", completed[0].Name)
	assert.Equal(t, "course99", completed[1].Name)
}

func TestCompletedCourses_EmptyForUnknownUser(t *testing.T) {
	store := seededStore(t)
	h := NewCompletedCoursesHandler(
		persistence.NewProgressRepository(store),
		persistence.NewCatalogRepository(store),
	)

	completed, err := h.Handle(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestLeaderboard_TopAndOverview(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	boardRepo := persistence.NewLeaderboardRepository(store)

	require.NoError(t, boardRepo.Update(ctx, func(b leaderboard.Board) error {
		for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
			if err := b.Record("math", name, i); err != nil {
				return err
			}
		}
		return nil
	}))

	h := NewLeaderboardHandler(boardRepo)
	top, err := h.Top(ctx, "math", DefaultTopN)
	require.NoError(t, err)
	require.Len(t, top, 5)
	assert.Equal(t, "f", top[0].Name)

	overview, err := h.Overview(ctx, DefaultTopN)
	require.NoError(t, err)
	// The seeded subjects all show, empty or not.
	assert.Len(t, overview, 6)
	assert.Len(t, overview["math"], 5)
	assert.Empty(t, overview["science"])
}

func TestProfile_RequiresSession(t *testing.T) {
	store := seededStore(t)
	sessions := persistence.NewSessionRepository(store)
	completed := NewCompletedCoursesHandler(
		persistence.NewProgressRepository(store),
		persistence.NewCatalogRepository(store),
	)
	h := NewProfileHandler(sessions, completed, persistence.NewBadgeRepository(store))

	_, err := h.Handle(context.Background())
	assert.ErrorIs(t, err, shared.ErrNoActiveSession)
}

func TestProfile_AssemblesDashboard(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	sessions := persistence.NewSessionRepository(store)
	progressRepo := persistence.NewProgressRepository(store)
	badgeRepo := persistence.NewBadgeRepository(store)

	require.NoError(t, sessions.Save(ctx, identity.NewSession("amrit", identity.RoleStudent, time.Hour)))
	require.NoError(t, progressRepo.Update(ctx, func(l progress.Ledger) error {
		l.Mark("amrit", "course2")
		return nil
	}))
	require.NoError(t, badgeRepo.Update(ctx, func(l badge.Ledger) error {
		l.Award("amrit", badge.Welcome)
		return nil
	}))

	completed := NewCompletedCoursesHandler(progressRepo, persistence.NewCatalogRepository(store))
	h := NewProfileHandler(sessions, completed, badgeRepo)

	profile, err := h.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, "amrit", profile.Username)
	assert.Equal(t, identity.RoleStudent, profile.Role)
	require.Len(t, profile.Completed, 1)
	assert.Equal(t, "Mathematics for School Students", profile.Completed[0].Name)
	assert.Equal(t, []string{badge.Welcome}, profile.Badges)
}

func TestListStudents_RosterWithCompletionCounts(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	users := persistence.NewUserRepository(store)
	progressRepo := persistence.NewProgressRepository(store)

	for _, u := range []struct {
		name string
		role identity.Role
	}{
		{"amrit", identity.RoleStudent},
		{"simran", identity.RoleStudent},
		{"teacher1", identity.RoleTeacher},
	} {
		user, err := identity.NewUser(u.name, "pw", u.role)
		require.NoError(t, err)
		require.NoError(t, users.Create(ctx, user))
	}
	require.NoError(t, progressRepo.Update(ctx, func(l progress.Ledger) error {
		l.Mark("amrit", "course1")
		l.Mark("amrit", "course2")
		return nil
	}))

	h := NewListStudentsHandler(users, progressRepo)
	roster, err := h.Handle(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, StudentSummary{Username: "amrit", CompletedCount: 2}, roster[0])
	assert.Equal(t, StudentSummary{Username: "simran", CompletedCount: 0}, roster[1])
}
