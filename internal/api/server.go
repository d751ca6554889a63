// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vidora-app/vidora/internal/content/comment"
	"github.com/vidora-app/vidora/internal/content/playlist"
	"github.com/vidora-app/vidora/internal/content/video"
	"github.com/vidora-app/vidora/internal/platform/config"
	"github.com/vidora-app/vidora/internal/platform/constants"
	"github.com/vidora-app/vidora/internal/platform/middleware"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/social/like"
	"github.com/vidora-app/vidora/internal/social/subscription"
	"github.com/vidora-app/vidora/internal/social/tweet"
	"github.com/vidora-app/vidora/internal/stats"
	"github.com/vidora-app/vidora/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Users handles accounts, sessions, channels, and watch history.
	Users *users.Handler

	// Video handles the core content vertical.
	Video *video.Handler

	// Comment handles per-video comment threads.
	Comment *comment.Handler

	// Like handles like toggles across videos, comments, and tweets.
	Like *like.Handler

	// Playlist handles playlist CRUD and membership.
	Playlist *playlist.Handler

	// Subscription handles the channel-follow graph.
	Subscription *subscription.Handler

	// Tweet handles short channel posts.
	Tweet *tweet.Handler

	// Dashboard handles channel analytics.
	Dashboard *stats.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(appContext context.Context, cfg *config.Config, log *slog.Logger,
	verifier middleware.TokenVerifier, resolver middleware.PrincipalResolver, h Handlers) *Server {

	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(appContext))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/healthcheck", healthcheck)

		api.Mount("/users", h.Users.Routes())
		api.Mount("/videos", h.Video.Routes())
		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/likes", h.Like.Routes())
		api.Mount("/playlists", h.Playlist.Routes())
		api.Mount("/subscriptions", h.Subscription.Routes())
		api.Mount("/tweets", h.Tweet.Routes())
		api.Mount("/dashboard", h.Dashboard.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// healthcheck handles GET /api/v1/healthcheck — the enveloped application-level
// probe consumed by API clients, as opposed to the orchestration probes.
func healthcheck(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "OK", "Health check passed")
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
