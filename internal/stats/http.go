// Copyright (c) 2026 Vidora. All rights reserved.

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
)

// Handler exposes the /dashboard HTTP surface. Every route requires an
// authenticated principal; the channel in scope is always the caller's own.
type Handler struct {
	service *Service
}

// NewHandler wires the dashboard handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the dashboard router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/stats", handler.channelStats)
	router.Get("/videos", handler.channelVideos)

	return router
}

// channelStats handles GET /dashboard/stats.
func (handler *Handler) channelStats(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.ChannelStats(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats, "Channel stats fetched successfully")
}

// channelVideos handles GET /dashboard/videos.
func (handler *Handler) channelVideos(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videos, err := handler.service.ChannelVideos(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, videos, "Channel videos fetched successfully")
}
