// Copyright (c) 2026 Vidora. All rights reserved.

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/validate"
)

// Handler exposes the /likes HTTP surface. Every route requires an
// authenticated principal.
type Handler struct {
	service *Service
}

// NewHandler wires the like handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the likes router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/toggle/v/{videoId}", handler.toggleVideo)
	router.Post("/toggle/c/{commentId}", handler.toggleComment)
	router.Post("/toggle/t/{tweetId}", handler.toggleTweet)
	router.Get("/videos", handler.likedVideos)

	return router
}

// toggleVideo handles POST /likes/toggle/v/{videoId}.
func (handler *Handler) toggleVideo(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, TargetVideo, FieldVideoID, "videoId", "Video like toggled successfully")
}

// toggleComment handles POST /likes/toggle/c/{commentId}.
func (handler *Handler) toggleComment(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, TargetComment, FieldCommentID, "commentId", "Comment like toggled successfully")
}

// toggleTweet handles POST /likes/toggle/t/{tweetId}.
func (handler *Handler) toggleTweet(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, TargetTweet, FieldTweetID, "tweetId", "Tweet like toggled successfully")
}

// toggle is the shared flow behind the three target kinds.
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request, target Target, field, param, message string) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.Param(request, param)
	if err := (&validate.Validator{}).UUID(field, targetID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Toggle(request.Context(), userID, target, targetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state, message)
}

// likedVideos handles GET /likes/videos.
func (handler *Handler) likedVideos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videos, err := handler.service.LikedVideos(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, videos, "Liked videos fetched successfully")
}
