package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-contest-service/internal/app"
	"quiz-contest-service/internal/config"
	"quiz-contest-service/internal/infra/memory"
	"quiz-contest-service/internal/infra/postgres"
	"quiz-contest-service/internal/infra/rabbitmq"
	"quiz-contest-service/internal/infra/redis"
	transport "quiz-contest-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz contest server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var (
		users          app.UserRepository
		quizzes        app.QuizRepository
		questions      app.QuestionRepository
		participations app.ParticipationRepository
		events         app.EventRepository
		content        app.ContentRepository
		messages       app.MessageRepository
		keyLoader      memory.AnswerKeyLoader
	)

	if cfg.Postgres.URL != "" {
		db := postgres.Open(cfg.Postgres.URL)
		defer db.Close()

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		users = postgres.NewUserRepository(db)
		quizzes = postgres.NewQuizRepository(db)
		questions = postgres.NewQuestionRepository(db)
		participations = postgres.NewParticipationRepository(db)
		events = postgres.NewEventRepository(db)
		content = postgres.NewContentRepository(db)
		messages = postgres.NewMessageRepository(db)
		keyLoader = postgres.NewAnswerKeyLoader(pool)
	} else {
		log.Println("postgres not configured, using in-memory storage")
		memQuestions := memory.NewQuestionRepository()
		users = memory.NewUserRepository()
		quizzes = memory.NewQuizRepository()
		questions = memQuestions
		participations = memory.NewParticipationRepository()
		events = memory.NewEventRepository()
		content = memory.NewContentRepository()
		messages = memory.NewMessageRepository()
		keyLoader = memory.NewRepositoryKeyLoader(memQuestions)
	}

	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)
	var keys app.AnswerKeySource
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		keys = redis.NewAnswerKeyCache(client, keyLoader, cacheTTL)
	} else {
		keys = memory.NewAnswerKeyCache(keyLoader, cacheTTL)
	}

	var publisher app.MessagePublisher
	if cfg.RabbitMQ.URL != "" {
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			return err
		}
		defer rmq.Close()
		publisher = rmq
	} else {
		log.Println("rabbitmq not configured, bulk messages are recorded without broker delivery")
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		log.Println("jwt secret not configured, falling back to an insecure default")
		secret = "insecure-dev-secret"
	}
	tokenTTL := config.TTLDuration(cfg.JWT.TTL, 24*time.Hour)

	auth := app.NewAuthService(users, secret, tokenTTL)
	router := transport.NewRouter(transport.Services{
		Auth:           auth,
		Quizzes:        app.NewQuizService(quizzes, questions, participations),
		Questions:      app.NewQuestionService(questions, quizzes, keys),
		Participations: app.NewParticipationService(participations, quizzes, questions, keys, app.NewLeaderboardHub()),
		Events:         app.NewEventService(events, users),
		Content:        app.NewContentService(content),
		Messaging:      app.NewMessagingService(messages, users, publisher),
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz contest service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
