// Copyright (c) 2026 Vidora. All rights reserved.

package playlist

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/validate"
)

// Handler exposes the /playlists HTTP surface. Every route requires an
// authenticated principal.
type Handler struct {
	service *Service
}

// NewHandler wires the playlist handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the playlist router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/user/{userId}", handler.listByUser)
	router.Get("/{playlistId}", handler.get)
	router.Patch("/{playlistId}", handler.update)
	router.Delete("/{playlistId}", handler.remove)
	router.Patch("/add/{videoId}/{playlistId}", handler.addVideo)
	router.Patch("/remove/{videoId}/{playlistId}", handler.removeVideo)

	return router
}

// create handles POST /playlists.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		Required(FieldName, body.Name).
		MaxLen(FieldName, body.Name, 100).
		Required(FieldDescription, body.Description).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Create(request.Context(), ownerID, body.Name, body.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, "Playlist created successfully")
}

// listByUser handles GET /playlists/user/{userId}.
func (handler *Handler) listByUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userId")
	if err := (&validate.Validator{}).UUID(FieldUserID, userID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlists, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlists, "User playlists fetched successfully")
}

// get handles GET /playlists/{playlistId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlistID := requestutil.Param(request, "playlistId")
	if err := (&validate.Validator{}).UUID(FieldPlaylistID, playlistID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Get(request.Context(), playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, "Playlist fetched successfully")
}

// update handles PATCH /playlists/{playlistId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.Param(request, "playlistId")

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		UUID(FieldPlaylistID, playlistID).
		Custom(FieldName, input.Name == "" && input.Description == "", "At least one field is required").
		MaxLen(FieldName, input.Name, 100).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Update(request.Context(), ownerID, playlistID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, "Playlist updated successfully")
}

// remove handles DELETE /playlists/{playlistId}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.Param(request, "playlistId")
	if err := (&validate.Validator{}).UUID(FieldPlaylistID, playlistID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct{}{}, "Playlist deleted successfully")
}

// addVideo handles PATCH /playlists/add/{videoId}/{playlistId}.
func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	handler.changeMembership(writer, request, handler.service.AddVideo, "Video added to playlist successfully")
}

// removeVideo handles PATCH /playlists/remove/{videoId}/{playlistId}.
func (handler *Handler) removeVideo(writer http.ResponseWriter, request *http.Request) {
	handler.changeMembership(writer, request, handler.service.RemoveVideo, "Video removed from playlist successfully")
}

// changeMembership is the shared flow behind add and remove. Both path ids
// are validated independently so the client learns about every bad id at once.
func (handler *Handler) changeMembership(
	writer http.ResponseWriter,
	request *http.Request,
	change func(ctx context.Context, ownerID, playlistID, videoID string) (*WithVideos, error),
	message string,
) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")
	playlistID := requestutil.Param(request, "playlistId")

	if err := (&validate.Validator{}).
		UUID(FieldVideoID, videoID).
		UUID(FieldPlaylistID, playlistID).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := change(request.Context(), ownerID, playlistID, videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist, message)
}
