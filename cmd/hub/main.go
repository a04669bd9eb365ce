// Package main - entry point for the Nabha Learning Hub console.
//
// The hub is a gamified learning platform for low-connectivity classrooms:
// course catalog, per-user progress, quizzes with leaderboards, badges, an
// announcement feed, and a teacher training registry, all persisted as
// whole-collection blobs so it runs the same against a data directory, a
// Redis instance, or a Postgres table.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: pure business logic without external dependencies
// - Application: use case orchestration (Commands/Queries/EventHandlers)
// - Infrastructure: blob stores, repositories, event bus
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nabha-hub/nabha-learning-hub/config"
	"github.com/nabha-hub/nabha-learning-hub/internal/application/command"
	"github.com/nabha-hub/nabha-learning-hub/internal/application/eventhandler"
	"github.com/nabha-hub/nabha-learning-hub/internal/application/query"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/identity"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/quiz"
	"github.com/nabha-hub/nabha-learning-hub/internal/domain/shared"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/messaging"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence/file"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence/memory"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence/postgres"
	"github.com/nabha-hub/nabha-learning-hub/internal/infrastructure/persistence/redis"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION WIRING
// ══════════════════════════════════════════════════════════════════════════════

// app holds the wired command and query handlers of the hub.
type app struct {
	authenticate *command.AuthenticateHandler
	logout       *command.LogoutHandler
	addCourse    *command.AddCourseHandler
	markDone     *command.MarkCompletedHandler
	markStudent  *command.MarkStudentProgressHandler
	startQuiz    *command.StartQuizHandler
	submitAnswer *command.SubmitAnswerHandler
	post         *command.PostNotificationHandler
	addTraining  *command.AddTrainingHandler

	listCourses *query.ListCoursesHandler
	completed   *query.CompletedCoursesHandler
	leaderboard *query.LeaderboardHandler
	profile     *query.ProfileHandler
	session     *query.CurrentSessionHandler
	feed        *query.FeedHandler
	trainings   *query.ListTrainingsHandler
	students    *query.ListStudentsHandler
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting nabha learning hub",
		"version", cfg.App.Version,
		"environment", string(cfg.App.Environment),
		"store", string(cfg.Store.Backend))

	// ── Store ──
	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("store close failed", "error", err)
		}
	}()

	if err := persistence.EnsureSeedData(ctx, store, log); err != nil {
		return fmt.Errorf("seeding store: %w", err)
	}

	// ── Repositories ──
	users := persistence.NewUserRepository(store)
	sessions := persistence.NewSessionRepository(store)
	catalogRepo := persistence.NewCatalogRepository(store)
	progressRepo := persistence.NewProgressRepository(store)
	boardRepo := persistence.NewLeaderboardRepository(store)
	badgeRepo := persistence.NewBadgeRepository(store)
	feedRepo := persistence.NewFeedRepository(store)
	trainingRepo := persistence.NewTrainingRepository(store)

	// ── Event bus ──
	busCfg := messaging.DefaultConfig()
	busCfg.Logger = log
	bus := messaging.NewInMemoryEventBus(busCfg)
	defer func() {
		if err := bus.Close(); err != nil {
			log.Error("event bus close failed", "error", err)
		}
	}()

	awarder := eventhandler.NewBadgeAwarder(badgeRepo, bus, log)
	if err := awarder.Register(bus); err != nil {
		return fmt.Errorf("registering badge handlers: %w", err)
	}

	// ── Handlers ──
	policy := identity.DefaultPolicy()
	attempt := quiz.NewAttempt()
	bank := quiz.DefaultBank()

	completed := query.NewCompletedCoursesHandler(progressRepo, catalogRepo)
	a := &app{
		authenticate: command.NewAuthenticateHandler(users, sessions, cfg.Session.TTL, bus),
		logout:       command.NewLogoutHandler(sessions, bus),
		addCourse:    command.NewAddCourseHandler(catalogRepo, sessions, policy, bus),
		markDone:     command.NewMarkCompletedHandler(progressRepo, catalogRepo, sessions, bus),
		markStudent:  command.NewMarkStudentProgressHandler(progressRepo, catalogRepo, sessions, policy, bus),
		startQuiz:    command.NewStartQuizHandler(bank, attempt),
		submitAnswer: command.NewSubmitAnswerHandler(attempt, boardRepo, sessions, bus),
		post:         command.NewPostNotificationHandler(feedRepo, sessions, policy),
		addTraining:  command.NewAddTrainingHandler(trainingRepo),

		listCourses: query.NewListCoursesHandler(catalogRepo),
		completed:   completed,
		leaderboard: query.NewLeaderboardHandler(boardRepo),
		profile:     query.NewProfileHandler(sessions, completed, badgeRepo),
		session:     query.NewCurrentSessionHandler(sessions),
		feed:        query.NewFeedHandler(feedRepo),
		trainings:   query.NewListTrainingsHandler(trainingRepo),
		students:    query.NewListStudentsHandler(users, progressRepo),
	}

	// ── Console loop ──
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		console(ctx, a)
	}()

	// ── Shutdown ──
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case <-consoleDone:
		log.Info("console closed")
	case <-ctx.Done():
	}

	log.Info("shutdown completed")
	return nil
}

// setupLogger builds the application logger: JSON in production, text with
// debug level otherwise.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// openStore builds the blob store the configuration names.
func openStore(ctx context.Context, cfg *config.Config) (persistence.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return memory.NewStore(), nil

	case config.StoreFile:
		return file.NewStore(cfg.Store.DataDir)

	case config.StoreRedis:
		rc := redis.DefaultConfig()
		rc.Host = cfg.Store.RedisHost
		rc.Port = cfg.Store.RedisPort
		rc.Password = cfg.Store.RedisPassword
		rc.DB = cfg.Store.RedisDB
		rc.KeyPrefix = cfg.Store.RedisPrefix
		return redis.NewStore(ctx, rc)

	case config.StorePostgres:
		pc := postgres.DefaultConfig()
		pc.URL = cfg.Store.PostgresURL
		pc.MaxConns = int32(cfg.Store.PostgresMaxConns)
		pc.MinConns = int32(cfg.Store.PostgresMinConns)
		return postgres.NewStore(ctx, pc)

	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CONSOLE
// A line-based operator console over stdin. Each command maps onto one
// application handler; errors are printed, never fatal.
// ══════════════════════════════════════════════════════════════════════════════

const usage = `commands:
  login <username> <password> <role>   log in (registers unseen usernames)
  logout                               clear the active session
  whoami                               show the active session
  courses                              list the course catalog
  addcourse <name> <link>              add a course (admin)
  complete <courseID>                  mark a course completed (self)
  mark <student> <courseID>            mark a student's course (teacher)
  certificate                          list completed courses with names
  students                             student roster with completion counts
  quiz <subject>                       start a quiz
  answer <choice> [guestName]          answer the current question
  top <subject> [n]                    leaderboard for a subject
  badges                               show the session user's badges
  post <text...>                       post an announcement (teacher/admin)
  feed                                 show the announcement feed
  trainings                            list training resources
  addtraining <title> <link>           add a training resource
  help                                 this text
  exit                                 quit`

func console(ctx context.Context, a *app) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("nabha learning hub - type 'help' for commands")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "exit" || cmd == "quit" {
			return
		}

		if err := dispatch(ctx, a, cmd, args, line); err != nil {
			fmt.Printf("error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func dispatch(ctx context.Context, a *app, cmd string, args []string, line string) error {
	switch cmd {
	case "help":
		fmt.Println(usage)
		return nil

	case "login":
		if len(args) != 3 {
			return errors.New("usage: login <username> <password> <role>")
		}
		res, err := a.authenticate.Handle(ctx, command.AuthenticateCommand{
			Username: args[0],
			Password: args[1],
			Role:     identity.Role(args[2]),
		})
		if err != nil {
			return err
		}
		if res.IsNewUser {
			fmt.Printf("welcome, %s! account created\n", res.Session.Username)
		} else {
			fmt.Printf("welcome back, %s\n", res.Session.Username)
		}
		return nil

	case "logout":
		if err := a.logout.Handle(ctx); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "whoami":
		session, err := a.session.Handle(ctx)
		if errors.Is(err, shared.ErrNoActiveSession) {
			fmt.Println("not logged in")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", session.Username, session.Role)
		return nil

	case "courses":
		courses, err := a.listCourses.Handle(ctx)
		if err != nil {
			return err
		}
		for _, c := range courses {
			fmt.Printf("%s  %s  %s\n", c.ID, c.Name, c.Link)
		}
		return nil

	case "addcourse":
		if len(args) < 2 {
			return errors.New("usage: addcourse <name> <link>")
		}
		link := args[len(args)-1]
		name := strings.Join(args[:len(args)-1], " ")
		course, err := a.addCourse.Handle(ctx, command.AddCourseCommand{Name: name, Link: link})
		if err != nil {
			return err
		}
		fmt.Printf("added %s: %s\n", course.ID, course.Name)
		return nil

	case "complete":
		if len(args) != 1 {
			return errors.New("usage: complete <courseID>")
		}
		res, err := a.markDone.Handle(ctx, command.MarkCompletedCommand{CourseID: args[0]})
		if err != nil {
			return err
		}
		if res.NewlyCompleted {
			fmt.Println("course completed")
		} else {
			fmt.Println("already completed")
		}
		return nil

	case "mark":
		if len(args) != 2 {
			return errors.New("usage: mark <student> <courseID>")
		}
		res, err := a.markStudent.Handle(ctx, command.MarkStudentProgressCommand{
			StudentUsername: args[0],
			CourseID:        args[1],
		})
		if err != nil {
			return err
		}
		if res.NewlyCompleted {
			fmt.Printf("marked %s completed for %s\n", args[1], res.Username)
		} else {
			fmt.Println("already completed")
		}
		return nil

	case "certificate":
		session, err := a.session.Handle(ctx)
		if err != nil {
			return err
		}
		completed, err := a.completed.Handle(ctx, session.Username)
		if err != nil {
			return err
		}
		if len(completed) == 0 {
			fmt.Println("no completed courses yet")
			return nil
		}
		fmt.Printf("certificate of completion - %s\n", session.Username)
		for _, c := range completed {
			fmt.Printf("  %s (%s)\n", c.Name, c.ID)
		}
		return nil

	case "students":
		roster, err := a.students.Handle(ctx)
		if err != nil {
			return err
		}
		for _, s := range roster {
			fmt.Printf("%s  completed: %d\n", s.Username, s.CompletedCount)
		}
		return nil

	case "quiz":
		if len(args) != 1 {
			return errors.New("usage: quiz <subject>")
		}
		res, err := a.startQuiz.Handle(ctx, command.StartQuizCommand{Subject: args[0]})
		if err != nil {
			return err
		}
		printQuestion(res.Question)
		return nil

	case "answer":
		if len(args) < 1 {
			return errors.New("usage: answer <choice> [guestName]")
		}
		var guest string
		if len(args) > 1 {
			guest = strings.Join(args[1:], " ")
		}
		res, err := a.submitAnswer.Handle(ctx, command.SubmitAnswerCommand{
			Choice:    args[0],
			GuestName: guest,
		})
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Println("correct!")
		} else {
			fmt.Println("wrong")
		}
		if res.Finished {
			fmt.Printf("quiz finished: %d/%d", res.Score, res.Total)
			if res.Recorded {
				fmt.Print(" (recorded on the leaderboard)")
			}
			fmt.Println()
		} else {
			printQuestion(res.Next)
		}
		return nil

	case "top":
		if len(args) < 1 {
			return errors.New("usage: top <subject> [n]")
		}
		n := query.DefaultTopN
		if len(args) > 1 {
			fmt.Sscanf(args[1], "%d", &n)
		}
		entries, err := a.leaderboard.Top(ctx, args[0], n)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no scores yet")
			return nil
		}
		for i, e := range entries {
			fmt.Printf("%d. %s  %d\n", i+1, e.Name, e.Score)
		}
		return nil

	case "badges":
		profile, err := a.profile.Handle(ctx)
		if err != nil {
			return err
		}
		if len(profile.Badges) == 0 {
			fmt.Println("no badges yet")
			return nil
		}
		for _, b := range profile.Badges {
			fmt.Printf("  %s\n", b)
		}
		return nil

	case "post":
		text := strings.TrimSpace(strings.TrimPrefix(line, "post"))
		if err := a.post.Handle(ctx, command.PostNotificationCommand{Text: text}); err != nil {
			return err
		}
		fmt.Println("posted")
		return nil

	case "feed":
		feed, err := a.feed.Handle(ctx)
		if err != nil {
			return err
		}
		if len(feed) == 0 {
			fmt.Println("no announcements")
			return nil
		}
		for _, n := range feed {
			fmt.Printf("[%s] %s: %s\n", n.PostedAt.Format("2006-01-02 15:04"), n.Author, n.Text)
		}
		return nil

	case "trainings":
		trainings, err := a.trainings.Handle(ctx)
		if err != nil {
			return err
		}
		for _, t := range trainings {
			fmt.Printf("%s  %s\n", t.Title, t.Link)
		}
		return nil

	case "addtraining":
		if len(args) < 2 {
			return errors.New("usage: addtraining <title> <link>")
		}
		link := args[len(args)-1]
		title := strings.Join(args[:len(args)-1], " ")
		if err := a.addTraining.Handle(ctx, command.AddTrainingCommand{Title: title, Link: link}); err != nil {
			return err
		}
		fmt.Println("training added")
		return nil

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func printQuestion(q *quiz.Question) {
	if q == nil {
		return
	}
	fmt.Println(q.Prompt)
	for _, opt := range q.Options {
		fmt.Printf("  - %s\n", opt)
	}
}
