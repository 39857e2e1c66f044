package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun/migrate"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/infra/postgres"
	pgmigrations "quiz-contest-service/internal/infra/postgres/migrations"
	infraredis "quiz-contest-service/internal/infra/redis"
)

func TestContestFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	db := postgres.Open(pgURL)
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	users := postgres.NewUserRepository(db)
	quizzes := postgres.NewQuizRepository(db)
	questions := postgres.NewQuestionRepository(db)
	participations := postgres.NewParticipationRepository(db)
	keys := infraredis.NewAnswerKeyCache(redisClient, postgres.NewAnswerKeyLoader(pool), 5*time.Minute)

	auth := app.NewAuthService(users, "integration-secret", time.Hour)
	quizService := app.NewQuizService(quizzes, questions, participations)
	questionService := app.NewQuestionService(questions, quizzes, keys)
	participationService := app.NewParticipationService(participations, quizzes, questions, keys, app.NewLeaderboardHub())

	user, token, err := auth.Register(ctx, app.RegisterInput{
		FullNameEnglish: "Contestant One",
		FullNameBangla:  "Contestant One",
		Contact:         "01712345678",
		Password:        "secret99",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token from registration")
	}
	if _, _, err := auth.Login(ctx, "01712345678", "secret99"); err != nil {
		t.Fatalf("login: %v", err)
	}

	now := time.Now()
	quiz, err := quizService.Create(ctx, user.ID, app.CreateQuizInput{
		Title:          "Integration Round",
		Instructions:   "Answer everything",
		Duration:       30,
		TotalQuestions: 2,
		StartTime:      now.Add(-time.Hour),
		EndTime:        now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	published := domain.QuizPublished
	if _, err := quizService.Update(ctx, quiz.ID, &domain.QuizUpdate{Status: &published}); err != nil {
		t.Fatalf("publish quiz: %v", err)
	}

	q1, err := questionService.Create(ctx, user.ID, app.CreateQuestionInput{
		QuizID:       quiz.ID,
		QuestionText: "2 + 2?",
		Type:         domain.MultipleChoice,
		Options: []domain.Option{
			{Text: "3"},
			{Text: "4", IsCorrect: true},
		},
		Marks:         2,
		NegativeMarks: 0.5,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	q2, err := questionService.Create(ctx, user.ID, app.CreateQuestionInput{
		QuizID:        quiz.ID,
		QuestionText:  "Capital of Bangladesh?",
		Type:          domain.FillInTheBlank,
		CorrectAnswer: "Dhaka",
		Marks:         2,
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	p, err := participationService.Start(ctx, user.ID, quiz.ID)
	if err != nil {
		t.Fatalf("start participation: %v", err)
	}

	// The unique (user, quiz) constraint rejects a second attempt.
	if _, err := participationService.Start(ctx, user.ID, quiz.ID); !errors.Is(err, domain.ErrDuplicateParticipation) {
		t.Fatalf("expected duplicate participation, got %v", err)
	}

	correctResult, err := participationService.SubmitAnswer(ctx, p.ID, q1.ID, "4")
	if err != nil {
		t.Fatalf("submit correct: %v", err)
	}
	if !correctResult.IsCorrect || correctResult.MarksObtained != 2 {
		t.Fatalf("expected 2 marks for correct answer, got %+v", correctResult)
	}

	wrongResult, err := participationService.SubmitAnswer(ctx, p.ID, q2.ID, "Sylhet")
	if err != nil {
		t.Fatalf("submit wrong: %v", err)
	}
	if wrongResult.IsCorrect {
		t.Fatalf("expected wrong answer")
	}

	summary, err := participationService.Complete(ctx, p.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if summary.AttemptedQuestions != 2 || summary.CorrectAnswers != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	standings, err := participationService.Standings(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(standings.Entries) != 1 || standings.Entries[0].UserID != user.ID {
		t.Fatalf("unexpected standings: %+v", standings.Entries)
	}

	// Second read of the key goes through the redis cache.
	if _, err := keys.Key(ctx, q1.ID); err != nil {
		t.Fatalf("cached key: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
