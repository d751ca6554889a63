// Copyright (c) 2026 Vidora. All rights reserved.

package playlist

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/pkg/uuid"
)

// UpdateInput carries partial playlist updates. Blank fields are left
// unchanged; at least one must be provided.
type UpdateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Service implements the playlist use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the playlist service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Create persists a new, empty playlist for the caller.
*/
func (service *Service) Create(ctx context.Context, ownerID, name, description string) (*Playlist, error) {
	now := time.Now()
	playlist := &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(ctx, playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

/*
ListByUser returns all playlists of a user with their video counts.
*/
func (service *Service) ListByUser(ctx context.Context, userID string) ([]Summary, error) {
	return service.repo.ListByOwner(ctx, userID)
}

/*
Get returns one playlist hydrated with its member videos in order.
*/
func (service *Service) Get(ctx context.Context, playlistID string) (*WithVideos, error) {
	playlist, err := service.repo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	videos, err := service.repo.Videos(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	return &WithVideos{Playlist: *playlist, Videos: videos}, nil
}

/*
Update applies partial changes to a playlist owned by the caller.
*/
func (service *Service) Update(ctx context.Context, ownerID, playlistID string, input UpdateInput) (*Playlist, error) {
	playlist, err := service.ownedPlaylist(ctx, ownerID, playlistID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		playlist.Name = input.Name
	}
	if input.Description != "" {
		playlist.Description = input.Description
	}
	playlist.UpdatedAt = time.Now()

	if err := service.repo.Update(ctx, playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

/*
Delete removes a playlist owned by the caller.
*/
func (service *Service) Delete(ctx context.Context, ownerID, playlistID string) error {
	if _, err := service.ownedPlaylist(ctx, ownerID, playlistID); err != nil {
		return err
	}

	return service.repo.Delete(ctx, playlistID)
}

/*
AddVideo appends a video to a playlist owned by the caller.

Returns:
  - *WithVideos: The playlist with its updated membership
  - error: apperr.BadRequest for duplicate members, apperr.NotFound for a
    missing playlist or video
*/
func (service *Service) AddVideo(ctx context.Context, ownerID, playlistID, videoID string) (*WithVideos, error) {
	if _, err := service.ownedPlaylist(ctx, ownerID, playlistID); err != nil {
		return nil, err
	}

	if err := service.repo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}

	return service.Get(ctx, playlistID)
}

/*
RemoveVideo detaches a video from a playlist owned by the caller.
*/
func (service *Service) RemoveVideo(ctx context.Context, ownerID, playlistID, videoID string) (*WithVideos, error) {
	if _, err := service.ownedPlaylist(ctx, ownerID, playlistID); err != nil {
		return nil, err
	}

	if err := service.repo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}

	return service.Get(ctx, playlistID)
}

// ownedPlaylist loads a playlist and enforces that the caller owns it.
func (service *Service) ownedPlaylist(ctx context.Context, ownerID, playlistID string) (*Playlist, error) {
	playlist, err := service.repo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if playlist.OwnerID != ownerID {
		return nil, apperr.Forbidden("You are not allowed to modify this playlist")
	}

	return playlist, nil
}
