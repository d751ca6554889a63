// Copyright (c) 2026 Vidora. All rights reserved.

// Command api is the entry point for the Vidora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Initialize the token service and the S3 media store.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidora-app/vidora/internal/api"
	"github.com/vidora-app/vidora/internal/content/comment"
	"github.com/vidora-app/vidora/internal/content/playlist"
	"github.com/vidora-app/vidora/internal/content/video"
	"github.com/vidora-app/vidora/internal/media"
	"github.com/vidora-app/vidora/internal/platform/config"
	"github.com/vidora-app/vidora/internal/platform/constants"
	"github.com/vidora-app/vidora/internal/platform/migration"
	pgstore "github.com/vidora-app/vidora/internal/platform/postgres"
	redisstore "github.com/vidora-app/vidora/internal/platform/redis"
	"github.com/vidora-app/vidora/internal/platform/sec"
	"github.com/vidora-app/vidora/internal/social/like"
	"github.com/vidora-app/vidora/internal/social/subscription"
	"github.com/vidora-app/vidora/internal/social/tweet"
	"github.com/vidora-app/vidora/internal/stats"
	"github.com/vidora-app/vidora/internal/users"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "vidora"))
	slog.SetDefault(log)

	log.Info("[Vidora] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "vidora"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Application-lifetime context. Cancelled on shutdown so background
	// routines (rate limiter cleanup) stop with the server.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Startup context. Use a 30s deadline so misconfiguration is caught
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Media Infrastructure ────────────────────────────────
	tokenService, err := sec.NewTokenService(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret, constants.AuthIssuer,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	must(log, err, "initialize token service")

	mediaStore, err := media.NewS3Store(startupCtx, media.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}, log)
	must(log, err, "initialize media store")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := users.NewPostgresRepository(pool)
	userService := users.NewService(userRepository, mediaStore, tokenService, log)
	userHandler := users.NewHandler(userService, users.CookiePolicy{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})

	videoRepository := video.NewPostgresRepository(pool)
	viewGuard := video.NewRedisViewGuard(rdb)
	videoService := video.NewService(videoRepository, mediaStore, viewGuard, userService, log)
	videoHandler := video.NewHandler(videoService)

	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository, log)
	commentHandler := comment.NewHandler(commentService)

	likeRepository := like.NewPostgresRepository(pool)
	likeService := like.NewService(likeRepository, log)
	likeHandler := like.NewHandler(likeService)

	playlistRepository := playlist.NewPostgresRepository(pool)
	playlistService := playlist.NewService(playlistRepository, log)
	playlistHandler := playlist.NewHandler(playlistService)

	subscriptionRepository := subscription.NewPostgresRepository(pool)
	subscriptionService := subscription.NewService(subscriptionRepository, log)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	tweetRepository := tweet.NewPostgresRepository(pool)
	tweetService := tweet.NewService(tweetRepository, log)
	tweetHandler := tweet.NewHandler(tweetService)

	statsRepository := stats.NewPostgresRepository(pool)
	statsService := stats.NewService(statsRepository, log)
	statsHandler := stats.NewHandler(statsService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Users:        userHandler,
		Video:        videoHandler,
		Comment:      commentHandler,
		Like:         likeHandler,
		Playlist:     playlistHandler,
		Subscription: subscriptionHandler,
		Tweet:        tweetHandler,
		Dashboard:    statsHandler,
	}

	server := api.NewServer(appCtx, cfg, log, tokenService, userService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
