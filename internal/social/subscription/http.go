// Copyright (c) 2026 Vidora. All rights reserved.

package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidora-app/vidora/internal/platform/middleware"
	requestutil "github.com/vidora-app/vidora/internal/platform/request"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/validate"
)

// Handler exposes the /subscriptions HTTP surface. Every route requires an
// authenticated principal.
type Handler struct {
	service *Service
}

// NewHandler wires the subscription handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the subscriptions router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/c/{channelId}", handler.toggle)
	router.Get("/c/{channelId}/subscribers", handler.subscribers)
	router.Get("/u", handler.subscribedChannels)

	return router
}

// toggle handles POST /subscriptions/c/{channelId}.
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	subscriberID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID := requestutil.Param(request, "channelId")
	if err := (&validate.Validator{}).UUID(FieldChannelID, channelID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.Toggle(request.Context(), subscriberID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state, "Subscription toggled successfully")
}

// subscribers handles GET /subscriptions/c/{channelId}/subscribers.
func (handler *Handler) subscribers(writer http.ResponseWriter, request *http.Request) {
	channelID := requestutil.Param(request, "channelId")
	if err := (&validate.Validator{}).UUID(FieldChannelID, channelID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	accounts, err := handler.service.Subscribers(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, accounts, "Channel subscribers fetched successfully")
}

// subscribedChannels handles GET /subscriptions/u.
func (handler *Handler) subscribedChannels(writer http.ResponseWriter, request *http.Request) {
	subscriberID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channels, err := handler.service.SubscribedChannels(request.Context(), subscriberID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channels, "Subscribed channels fetched successfully")
}
