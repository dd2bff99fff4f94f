package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-service/internal/app"
	"trivia-service/internal/catalog"
	"trivia-service/internal/config"
	"trivia-service/internal/event"
	"trivia-service/internal/infra/memory"
	pgloader "trivia-service/internal/infra/postgres"
	redisinfra "trivia-service/internal/infra/redis"
	"trivia-service/internal/logger"
	"trivia-service/internal/telemetry"
	transport "trivia-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()
			return runServer(cmd.Context(), cfg, *port, log)
		},
	}
}

func setup(configPath string) (config.Config, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return cfg, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// achievementSinks hands out the per-player sink of whichever board is wired.
type achievementSinks func(playerID string) app.AchievementSink

func runServer(ctx context.Context, cfg config.Config, portFlag string, log *zap.Logger) error {
	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, log); err != nil {
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
	prefix := cfg.RedisPrefix()
	redisTTL := config.Duration(cfg.Redis.TTL, 10*time.Minute)
	questionTTL := config.Duration(cfg.Questions.TTL, 10*time.Minute)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := telemetry.MonitorRedis(redisClient, log); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		defer pool.Close()
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(catalog.Builtin())
	if pool != nil {
		loader = pgloader.NewQuestionLoader(pool)
	}

	var (
		repo      catalog.Repository
		store     app.SessionRepository
		sessions  app.SessionTransport
		sinks     achievementSinks
		maxPlayer = cfg.Game.MaxPlayers
	)
	if maxPlayer <= 0 {
		maxPlayer = app.DefaultMaxPlayers
	}
	if redisClient != nil {
		repo = redisinfra.NewQuestionRepository(redisClient, loader, prefix, questionTTL)
		store = redisinfra.NewEngineStore(redisClient, prefix, redisTTL)
		sessions = redisinfra.NewTransport(redisinfra.TransportConfig{
			Redis:      redisClient,
			Prefix:     prefix,
			TTL:        redisTTL,
			MaxPlayers: maxPlayer,
		})
		board := redisinfra.NewLeaderboard(redisClient, prefix)
		sinks = func(id string) app.AchievementSink { return board.For(id) }
	} else {
		repo = memory.NewQuestionRepository(loader, questionTTL)
		store = memory.NewEngineStore()
		sessions = memory.NewTransport(maxPlayer)
		board := memory.NewAchievementBoard()
		sinks = func(id string) app.AchievementSink { return board.For(id) }
	}

	bus := event.NewBus(log)
	defer bus.Stop()
	metrics := telemetry.NewMetrics()
	metrics.Subscribe(bus)

	source := catalog.NewSource(repo)
	tick := config.Duration(cfg.Game.Tick, time.Second)
	factory := func(req app.OpenRequest) *app.Engine {
		return app.NewEngine(app.Config{
			Questions:         source,
			Achievements:      sinks(req.ParticipantID),
			Transport:         sessions,
			Events:            bus,
			Logger:            log.With(zap.String("participant", req.ParticipantID)),
			Entitlements:      req.Entitlements,
			ParticipantID:     req.ParticipantID,
			DisplayName:       req.DisplayName,
			TimePerQuestion:   cfg.Game.TimePerQuestion,
			QuestionsPerRound: cfg.Game.QuestionsPerRound,
			MaxPlayers:        maxPlayer,
			MaxQuestions:      cfg.Game.MaxQuestions,
			TickInterval:      tick,
		})
	}

	service := app.NewGameService(store, factory, sessions, log)
	wsHandler := transport.NewWSHandler(service, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting trivia service", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
