package command

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabha-hub/nabha-learning-hub/internal/application/eventhandler"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/badge"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/quiz"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/messaging"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence/memory"
)

// env wires the full command stack over an in-memory store with the badge
// handlers subscribed, the same wiring the binary does.
type env struct {
	store    *memory.Store
	bus      *messaging.InMemoryEventBus
	users    *persistence.UserRepository
	sessions *persistence.SessionRepository
	badges   *persistence.BadgeRepository
	board    *persistence.LeaderboardRepository
	progress *persistence.ProgressRepository
	attempt  *quiz.Attempt

	authenticate *AuthenticateHandler
	logout       *LogoutHandler
	addCourse    *AddCourseHandler
	markDone     *MarkCompletedHandler
	markStudent  *MarkStudentProgressHandler
	startQuiz    *StartQuizHandler
	submit       *SubmitAnswerHandler
	post         *PostNotificationHandler
	addTraining  *AddTrainingHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	logger := slog.Default()

	store := memory.NewStore()
	require.NoError(t, persistence.EnsureSeedData(ctx, store, logger))

	busCfg := messaging.DefaultConfig()
	bus := messaging.NewInMemoryEventBus(busCfg)
	t.Cleanup(func() { _ = bus.Close() })

	e := &env{
		store:    store,
		bus:      bus,
		users:    persistence.NewUserRepository(store),
		sessions: persistence.NewSessionRepository(store),
		badges:   persistence.NewBadgeRepository(store),
		board:    persistence.NewLeaderboardRepository(store),
		progress: persistence.NewProgressRepository(store),
		attempt:  quiz.NewAttempt(),
	}

	awarder := eventhandler.NewBadgeAwarder(e.badges, bus, logger)
	require.NoError(t, awarder.Register(bus))

	catalogRepo := persistence.NewCatalogRepository(store)
	feedRepo := persistence.NewFeedRepository(store)
	trainingRepo := persistence.NewTrainingRepository(store)
	policy := identity.DefaultPolicy()

	e.authenticate = NewAuthenticateHandler(e.users, e.sessions, time.Hour, bus)
	e.logout = NewLogoutHandler(e.sessions, bus)
	e.addCourse = NewAddCourseHandler(catalogRepo, e.sessions, policy, bus)
	e.markDone = NewMarkCompletedHandler(e.progress, catalogRepo, e.sessions, bus)
	e.markStudent = NewMarkStudentProgressHandler(e.progress, catalogRepo, e.sessions, policy, bus)
	e.startQuiz = NewStartQuizHandler(quiz.DefaultBank(), e.attempt)
	e.submit = NewSubmitAnswerHandler(e.attempt, e.board, e.sessions, bus)
	e.post = NewPostNotificationHandler(feedRepo, e.sessions, policy)
	e.addTraining = NewAddTrainingHandler(trainingRepo)
	return e
}

func (e *env) login(t *testing.T, username, password string, role identity.Role) *AuthenticateResult {
	t.Helper()
	res, err := e.authenticate.Handle(context.Background(), AuthenticateCommand{
		Username: username,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return res
}

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATION
// ══════════════════════════════════════════════════════════════════════════════

func TestAuthenticate_RegistersUnseenUsername(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res := e.login(t, "amrit", "secret", identity.RoleStudent)
	assert.True(t, res.IsNewUser)
	assert.Equal(t, "amrit", res.Session.Username)
	assert.NotEmpty(t, res.Session.Token)

	user, err := e.users.GetByUsername(ctx, "amrit")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleStudent, user.Role)

	// Welcome Badge lands on first login.
	ledger, err := e.badges.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ledger.Has("amrit", badge.Welcome))
}

func TestAuthenticate_WrongPasswordRejected(t *testing.T) {
	e := newEnv(t)
	e.login(t, "amrit", "secret", identity.RoleStudent)

	_, err := e.authenticate.Handle(context.Background(), AuthenticateCommand{
		Username: "amrit", Password: "wrong", Role: identity.RoleStudent,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticate_RoleDriftSucceedsWithMatchingPassword(t *testing.T) {
	// Login succeeds on password match regardless of the supplied role; the
	// session carries the login role while the stored role stays put.
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "amrit", "secret", identity.RoleStudent)

	res := e.login(t, "amrit", "secret", identity.RoleTeacher)
	assert.False(t, res.IsNewUser)
	assert.Equal(t, identity.RoleTeacher, res.Session.Role)

	user, err := e.users.GetByUsername(ctx, "amrit")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleStudent, user.Role)
}

func TestAuthenticate_WelcomeBadgeOnlyOnce(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.login(t, "amrit", "secret", identity.RoleStudent)
	e.login(t, "amrit", "secret", identity.RoleStudent)

	ledger, err := e.badges.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{badge.Welcome}, ledger.Badges("amrit"))
}

func TestAuthenticate_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.authenticate.Handle(ctx, AuthenticateCommand{Username: " ", Password: "x", Role: identity.RoleStudent})
	assert.ErrorIs(t, err, shared.ErrEmptyInput)

	_, err = e.authenticate.Handle(ctx, AuthenticateCommand{Username: "a", Password: " ", Role: identity.RoleStudent})
	assert.ErrorIs(t, err, shared.ErrEmptyInput)

	_, err = e.authenticate.Handle(ctx, AuthenticateCommand{Username: "a", Password: "x", Role: identity.Role("wizard")})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestLogout_ClearsSessionAndIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "amrit", "secret", identity.RoleStudent)

	require.NoError(t, e.logout.Handle(ctx))
	_, err := identity.ActiveSession(ctx, e.sessions)
	assert.ErrorIs(t, err, shared.ErrNoActiveSession)

	// Logging out again is a no-op.
	assert.NoError(t, e.logout.Handle(ctx))
}

func TestSession_ExpiredTokenClearedOnRead(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	expired := identity.NewSession("amrit", identity.RoleStudent, time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, e.sessions.Save(ctx, expired))

	_, err := identity.ActiveSession(ctx, e.sessions)
	assert.ErrorIs(t, err, identity.ErrSessionExpired)

	// The slot is cleared: a second read reports no session at all.
	_, err = identity.ActiveSession(ctx, e.sessions)
	assert.ErrorIs(t, err, shared.ErrNoActiveSession)
}

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG
// ══════════════════════════════════════════════════════════════════════════════

func TestAddCourse_AdminOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.login(t, "student1", "pw", identity.RoleStudent)
	_, err := e.addCourse.Handle(ctx, AddCourseCommand{Name: "Science Club", Link: "https://example.com"})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	e.login(t, "admin1", "pw", identity.RoleAdmin)
	course, err := e.addCourse.Handle(ctx, AddCourseCommand{Name: "Science Club", Link: "https://example.com"})
	require.NoError(t, err)
	// Two seeded courses, so the first added one is course3.
	assert.Equal(t, "course3", course.ID)
}

func TestAddCourse_RequiresSession(t *testing.T) {
	e := newEnv(t)
	_, err := e.addCourse.Handle(context.Background(), AddCourseCommand{Name: "X", Link: "https://example.com"})
	assert.ErrorIs(t, err, shared.ErrNoActiveSession)
}

func TestAddCourse_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "admin1", "pw", identity.RoleAdmin)

	_, err := e.addCourse.Handle(ctx, AddCourseCommand{Name: "  ", Link: "https://example.com"})
	assert.ErrorIs(t, err, shared.ErrEmptyInput)

	_, err = e.addCourse.Handle(ctx, AddCourseCommand{Name: "X", Link: "  "})
	assert.ErrorIs(t, err, shared.ErrEmptyInput)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

func TestMarkCompleted_SelfServiceAwardsCourseFinisher(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "amrit", "secret", identity.RoleStudent)

	res, err := e.markDone.Handle(ctx, MarkCompletedCommand{CourseID: "course1"})
	require.NoError(t, err)
	assert.True(t, res.NewlyCompleted)
	assert.Equal(t, "amrit", res.Username)

	ledger, err := e.progress.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ledger.Completed("amrit", "course1"))

	badges, err := e.badges.Get(ctx)
	require.NoError(t, err)
	assert.True(t, badges.Has("amrit", badge.CourseFinisher))
}

func TestMarkCompleted_UnknownCourse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "amrit", "secret", identity.RoleStudent)

	_, err := e.markDone.Handle(ctx, MarkCompletedCommand{CourseID: "course99"})
	assert.ErrorIs(t, err, shared.ErrCourseNotFound)
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "amrit", "secret", identity.RoleStudent)

	res, err := e.markDone.Handle(ctx, MarkCompletedCommand{CourseID: "course2"})
	require.NoError(t, err)
	assert.True(t, res.NewlyCompleted)

	res, err = e.markDone.Handle(ctx, MarkCompletedCommand{CourseID: "course2"})
	require.NoError(t, err)
	assert.False(t, res.NewlyCompleted)
}

func TestMarkStudentProgress_TeacherOnlyNoBadge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.login(t, "amrit", "secret", identity.RoleStudent)
	_, err := e.markStudent.Handle(ctx, MarkStudentProgressCommand{StudentUsername: "simran", CourseID: "course1"})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	e.login(t, "teacher1", "pw", identity.RoleTeacher)
	res, err := e.markStudent.Handle(ctx, MarkStudentProgressCommand{StudentUsername: "simran", CourseID: "course1"})
	require.NoError(t, err)
	assert.True(t, res.NewlyCompleted)
	assert.Equal(t, "simran", res.Username)

	ledger, err := e.progress.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ledger.Completed("simran", "course1"))

	// Teacher-assisted marking records progress without the finisher badge.
	badges, err := e.badges.Get(ctx)
	require.NoError(t, err)
	assert.False(t, badges.Has("simran", badge.CourseFinisher))
}

func TestMarkStudentProgress_SharesLedgerWithSelfService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.login(t, "teacher1", "pw", identity.RoleTeacher)
	_, err := e.markStudent.Handle(ctx, MarkStudentProgressCommand{StudentUsername: "amrit", CourseID: "course1"})
	require.NoError(t, err)

	// The student's own view sees the teacher's mark.
	e.login(t, "amrit", "secret", identity.RoleStudent)
	res, err := e.markDone.Handle(ctx, MarkCompletedCommand{CourseID: "course1"})
	require.NoError(t, err)
	assert.False(t, res.NewlyCompleted)
}

// ══════════════════════════════════════════════════════════════════════════════
// QUIZ
// ══════════════════════════════════════════════════════════════════════════════

func TestQuiz_PerfectRunRecordsScoreAndAwardsQuizMaster(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "amrit", "secret", identity.RoleStudent)

	start, err := e.startQuiz.Handle(ctx, StartQuizCommand{Subject: "math"})
	require.NoError(t, err)
	assert.Equal(t, "5+3=?", start.Question.Prompt)

	res, err := e.submit.Handle(ctx, SubmitAnswerCommand{Choice: "8"})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.True(t, res.Finished)
	assert.True(t, res.Recorded)
	assert.Equal(t, 1, res.Score)

	board, err := e.board.Get(ctx)
	require.NoError(t, err)
	entries := board.All("math")
	require.Len(t, entries, 1)
	assert.Equal(t, "amrit", entries[0].Name)
	assert.Equal(t, 1, entries[0].Score)

	badges, err := e.badges.Get(ctx)
	require.NoError(t, err)
	assert.True(t, badges.Has("amrit", badge.QuizMaster))
}

func TestQuiz_ImperfectRunNoQuizMaster(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "amrit", "secret", identity.RoleStudent)

	_, err := e.startQuiz.Handle(ctx, StartQuizCommand{Subject: "science"})
	require.NoError(t, err)

	res, err := e.submit.Handle(ctx, SubmitAnswerCommand{Choice: "Earth"})
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.True(t, res.Finished)
	assert.True(t, res.Recorded)

	badges, err := e.badges.Get(ctx)
	require.NoError(t, err)
	assert.False(t, badges.Has("amrit", badge.QuizMaster))
}

func TestQuiz_GuestRecordsUnderGuestNameWithoutBadge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.startQuiz.Handle(ctx, StartQuizCommand{Subject: "math"})
	require.NoError(t, err)

	res, err := e.submit.Handle(ctx, SubmitAnswerCommand{Choice: "8", GuestName: "  Guest Kid  "})
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.True(t, res.Recorded)

	board, err := e.board.Get(ctx)
	require.NoError(t, err)
	entries := board.All("math")
	require.Len(t, entries, 1)
	assert.Equal(t, "Guest Kid", entries[0].Name)

	// Guests never earn badges.
	badges, err := e.badges.Get(ctx)
	require.NoError(t, err)
	assert.False(t, badges.Has("Guest Kid", badge.QuizMaster))
}

func TestQuiz_BlankGuestNameSkipsRecording(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.startQuiz.Handle(ctx, StartQuizCommand{Subject: "math"})
	require.NoError(t, err)

	res, err := e.submit.Handle(ctx, SubmitAnswerCommand{Choice: "8", GuestName: "   "})
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.False(t, res.Recorded)

	board, err := e.board.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, board.All("math"))
}

func TestQuiz_UnknownSubject(t *testing.T) {
	e := newEnv(t)
	_, err := e.startQuiz.Handle(context.Background(), StartQuizCommand{Subject: "philosophy"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestQuiz_AnswerWithoutActiveRun(t *testing.T) {
	e := newEnv(t)
	_, err := e.submit.Handle(context.Background(), SubmitAnswerCommand{Choice: "8"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATIONS AND TRAININGS
// ══════════════════════════════════════════════════════════════════════════════

func TestPostNotification_TeacherAndAdminOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.login(t, "amrit", "secret", identity.RoleStudent)
	err := e.post.Handle(ctx, PostNotificationCommand{Text: "hello"})
	assert.ErrorIs(t, err, shared.ErrPermissionDenied)

	e.login(t, "teacher1", "pw", identity.RoleTeacher)
	assert.NoError(t, e.post.Handle(ctx, PostNotificationCommand{Text: "quiz on friday"}))

	e.login(t, "admin1", "pw", identity.RoleAdmin)
	assert.NoError(t, e.post.Handle(ctx, PostNotificationCommand{Text: "school closed monday"}))

	feed, err := persistence.NewFeedRepository(e.store).Get(ctx)
	require.NoError(t, err)
	list := feed.List()
	require.Len(t, list, 2)
	// Most recent first.
	assert.Equal(t, "school closed monday", list[0].Text)
	assert.Equal(t, "admin1", list[0].Author)
	assert.Equal(t, "quiz on friday", list[1].Text)
}

func TestPostNotification_EmptyText(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.login(t, "teacher1", "pw", identity.RoleTeacher)

	err := e.post.Handle(ctx, PostNotificationCommand{Text: "   "})
	assert.ErrorIs(t, err, shared.ErrEmptyInput)
}

func TestAddTraining_OpenToEveryRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// No session at all is fine for the open registry.
	require.NoError(t, e.addTraining.Handle(ctx, AddTrainingCommand{
		Title: "Digital Teaching 101",
		Link:  "https://example.com/dt101",
	}))

	e.login(t, "amrit", "secret", identity.RoleStudent)
	require.NoError(t, e.addTraining.Handle(ctx, AddTrainingCommand{
		Title: "Classroom Tech",
		Link:  "https://example.com/tech",
	}))

	registry, err := persistence.NewTrainingRepository(e.store).Get(ctx)
	require.NoError(t, err)
	assert.Len(t, registry.List(), 2)
}

func TestAddTraining_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	err := e.addTraining.Handle(ctx, AddTrainingCommand{Title: " ", Link: "https://example.com"})
	assert.ErrorIs(t, err, shared.ErrEmptyInput)

	err = e.addTraining.Handle(ctx, AddTrainingCommand{Title: "X", Link: " "})
	assert.ErrorIs(t, err, shared.ErrEmptyInput)
}
