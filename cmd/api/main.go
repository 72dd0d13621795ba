package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andestravel/travel-requests/internal/api"
	"github.com/andestravel/travel-requests/internal/core/service"
	mongodb "github.com/andestravel/travel-requests/internal/infrastructure/db/mongo"
	redisdb "github.com/andestravel/travel-requests/internal/infrastructure/db/redis"
	"github.com/andestravel/travel-requests/internal/infrastructure/oauth"
	"github.com/andestravel/travel-requests/internal/pkg/config"
	"github.com/andestravel/travel-requests/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{
		Service: "travel-requests",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := requestRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create request indexes")
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, 0) // 0 → default 24h
	github := oauth.NewGitHubClient(cfg.GitHub, logger.Component(log, "github"))
	authService := service.NewAuthService(userRepo, tokens, github, log)
	requestService := service.NewRequestService(requestRepo, log)

	e := api.NewRouter(api.Dependencies{
		Mongo:       db,
		Redis:       rdb,
		Tokens:      tokens,
		AuthService: authService,
		Requests:    requestService,
		GitHub:      github,
		States:      redisdb.NewStateStore(rdb),
		Logger:      log,
	})

	// --- Serve ---
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
