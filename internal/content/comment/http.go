// Copyright (c) 2026 Vidora. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/validate"
	"github.com/vidora-app/vidora/pkg/pagination"
)

// Handler exposes the /comments HTTP surface. Every route requires an
// authenticated principal.
type Handler struct {
	service *Service
}

// NewHandler wires the comment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the comments router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/{videoId}", handler.add)
	router.Get("/{videoId}", handler.list)
	router.Patch("/c/{commentId}", handler.update)
	router.Delete("/c/{commentId}", handler.remove)

	return router
}

// add handles POST /comments/{videoId}.
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")

	var body struct {
		Content string `json:"content"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		UUID(FieldVideoID, videoID).
		Required(FieldContent, body.Content).
		MaxLen(FieldContent, body.Content, MaxContentLen).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Add(request.Context(), ownerID, videoID, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment, "Comment added successfully")
}

// list handles GET /comments/{videoId}?page=...&limit=...
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.Param(request, "videoId")
	if err := (&validate.Validator{}).UUID(FieldVideoID, videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.List(request.Context(), videoID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Comments fetched successfully")
}

// update handles PATCH /comments/c/{commentId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, "commentId")

	var body struct {
		Content string `json:"content"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		UUID(FieldCommentID, commentID).
		Required(FieldContent, body.Content).
		MaxLen(FieldContent, body.Content, MaxContentLen).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), ownerID, commentID, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment, "Comment updated successfully")
}

// remove handles DELETE /comments/c/{commentId}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.Param(request, "commentId")
	if err := (&validate.Validator{}).UUID(FieldCommentID, commentID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct{}{}, "Comment deleted successfully")
}
