// Copyright (c) 2026 Vidora. All rights reserved.

package video

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/constants"
	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/validate"
	"github.com/vidora-app/vidora/pkg/pagination"
)

// multipartMemoryLimit is the in-memory threshold for parsed multipart forms.
const multipartMemoryLimit = 10 << 20

// Handler exposes the /videos HTTP surface. Every route requires an
// authenticated principal.
type Handler struct {
	service *Service
}

// NewHandler wires the video handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the videos router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.publish)
	router.Get("/{videoId}", handler.get)
	router.Patch("/{videoId}", handler.update)
	router.Patch("/{videoId}/thumbnail", handler.updateThumbnail)
	router.Delete("/{videoId}", handler.remove)
	router.Patch("/toggle/publish/{videoId}", handler.togglePublish)

	return router
}

// list handles GET /videos?userId=...&query=...&sortBy=...&sortType=...
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID := request.URL.Query().Get(FieldUserID)
	if err := (&validate.Validator{}).
		Required(FieldUserID, ownerID).
		Custom(FieldUserID, ownerID != "" && !validate.IsUUID(ownerID), "Must be a valid UUID").
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		OwnerID:        ownerID,
		Query:          request.URL.Query().Get("query"),
		SortBy:         request.URL.Query().Get("sortBy"),
		SortDescending: request.URL.Query().Get("sortType") != "asc",
		Page:           pagination.FromRequest(request),
	}

	result, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Videos fetched successfully")
}

// publish handles POST /videos (multipart form).
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadSize)
	if err := request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid multipart form"))
		return
	}

	videoFile, closeVideo, err := requestutil.FormUpload(request, FieldVideoFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeVideo()

	thumbnail, closeThumbnail, err := requestutil.FormUpload(request, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeThumbnail()

	input := PublishInput{
		Title:       request.FormValue(FieldTitle),
		Description: request.FormValue(FieldDescription),
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	}

	validator := (&validate.Validator{}).
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description).
		Custom(FieldVideoFile, videoFile == nil, "This field is required").
		Custom(FieldThumbnail, thumbnail == nil, "This field is required")

	if raw := request.FormValue(FieldDuration); raw != "" {
		duration, parseErr := strconv.ParseFloat(raw, 64)
		validator.Custom(FieldDuration, parseErr != nil || duration < 0, "Must be a non-negative number")
		input.Duration = duration
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Publish(request.Context(), ownerID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video, "Video published successfully")
}

// get handles GET /videos/{videoId}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")
	if err := (&validate.Validator{}).UUID(FieldVideoID, videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Get(request.Context(), videoID, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video, "Video fetched successfully")
}

// update handles PATCH /videos/{videoId}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).
		UUID(FieldVideoID, videoID).
		Custom(FieldTitle, input.Title == "" && input.Description == "", "At least one field is required").
		MaxLen(FieldTitle, input.Title, 200).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Update(request.Context(), ownerID, videoID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video, "Video updated successfully")
}

// updateThumbnail handles PATCH /videos/{videoId}/thumbnail (multipart form).
func (handler *Handler) updateThumbnail(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")
	if err := (&validate.Validator{}).UUID(FieldVideoID, videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadSize)
	if err := request.ParseMultipartForm(multipartMemoryLimit); err != nil {
		respond.Error(writer, request, apperr.BadRequest("Invalid multipart form"))
		return
	}

	upload, closeUpload, err := requestutil.FormUpload(request, FieldThumbnail)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer closeUpload()

	if upload == nil {
		respond.Error(writer, request, validate.RequiredError(FieldThumbnail, "file is required"))
		return
	}

	video, err := handler.service.UpdateThumbnail(request.Context(), ownerID, videoID, upload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video, "Thumbnail updated successfully")
}

// remove handles DELETE /videos/{videoId}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")
	if err := (&validate.Validator{}).UUID(FieldVideoID, videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, videoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct{}{}, "Video deleted successfully")
}

// togglePublish handles PATCH /videos/toggle/publish/{videoId}.
func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.Param(request, "videoId")
	if err := (&validate.Validator{}).UUID(FieldVideoID, videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.TogglePublish(request.Context(), ownerID, videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video, "Video publish status toggled successfully")
}
