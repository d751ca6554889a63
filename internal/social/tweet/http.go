// Copyright (c) 2026 Vidora. All rights reserved.

package tweet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/validate"
)

// Handler exposes the /tweets HTTP surface. Every route requires an
// authenticated principal.
type Handler struct {
	service *Service
}

// NewHandler wires the tweet handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the tweets router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/user/{userId}", handler.listByUser)
	router.Patch("/{tweetId}", handler.update)
	router.Delete("/{tweetId}", handler.remove)

	return router
}

// create handles POST /tweets.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		Required(FieldContent, body.Content).
		MaxLen(FieldContent, body.Content, MaxContentLen).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweet, err := handler.service.Create(request.Context(), ownerID, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tweet, "Tweet created successfully")
}

// listByUser handles GET /tweets/user/{userId}.
func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userId")
	if err := (&validate.Validator{}).UUID(FieldUserID, userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweets, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tweets, "User tweets fetched successfully")
}

// update handles PATCH /tweets/{tweetId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID := requestutil.Param(request, "tweetId")

	var body struct {
		Content string `json:"content"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		UUID(FieldTweetID, tweetID).
		Required(FieldContent, body.Content).
		MaxLen(FieldContent, body.Content, MaxContentLen).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweet, err := handler.service.Update(request.Context(), ownerID, tweetID, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tweet, "Tweet updated successfully")
}

// remove handles DELETE /tweets/{tweetId}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID := requestutil.Param(request, "tweetId")
	if err := (&validate.Validator{}).UUID(FieldTweetID, tweetID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, tweetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct{}{}, "Tweet deleted successfully")
}
