package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/bot/internal/analytics"
	"github.com/iamasit07/4-in-a-row/bot/internal/config"
	"github.com/iamasit07/4-in-a-row/bot/internal/repository/postgres"
	"github.com/iamasit07/4-in-a-row/bot/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/bot/internal/service/decision"
	transportHttp "github.com/iamasit07/4-in-a-row/bot/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Debug().Msg("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	config.SetupLogging(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Persistence (optional)
	var db *sql.DB
	var moveRepo *postgres.MoveRepo
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatal().Err(err).Msg("Database unreachable")
		}
		defer db.Close()
		moveRepo = postgres.NewMoveRepo(db)
	} else {
		log.Warn().Msg("DATABASE_URL not set; decisions will not be recorded")
	}

	// 2. Cache (optional)
	var cache decision.Cache
	if cfg.RedisURL != "" {
		if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Redis")
		}
		defer redis.CloseRedis()
		if redis.IsRedisEnabled() && redis.RedisClient != nil {
			cache = redis.NewDecisionCache(redis.RedisClient)
		}
	}

	// 3. Analytics (optional)
	producer := analytics.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// 4. Services
	engine := bot.NewEngine(
		bot.WithDepth(cfg.SearchDepth),
		bot.WithSeed(int64(cfg.RandomSeed)),
		bot.WithAlternatingPieces(cfg.AlternatePieces),
	)
	svcCfg := decision.Config{
		Cache:       cache,
		CacheTTL:    cfg.DecisionCacheTTL,
		MoveTimeout: cfg.MoveTimeout,
	}
	var stats transportHttp.StatsSource
	if moveRepo != nil {
		svcCfg.Recorder = moveRepo
		stats = moveRepo

		cleanup.NewWorker(moveRepo, cfg.RetentionDays).Start(ctx)
	}
	if producer != nil {
		svcCfg.Events = producer
	}
	svc := decision.NewService(engine, svcCfg)

	// 5. HTTP
	router := transportHttp.NewRouter(transportHttp.NewMoveHandler(svc, stats), transportHttp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("component", "api").Str("port", cfg.Port).Int("depth", engine.Depth()).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Str("component", "api").Msg("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Str("component", "api").Msg("Server exited gracefully")
}
