// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package playlist implements user-curated video collections: creation,
listing, video membership, and deletion.

A playlist belongs to one owner, keeps insertion order, and holds each
video at most once. Only the owner may modify a playlist.
*/
package playlist

import (
	"context"
	"time"

	"github.com/vidora-app/vidora/internal/content/video"
)

// Playlist represents one curated collection of videos.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Summary is a playlist row enriched with its video count, used in listings.
type Summary struct {
	Playlist
	VideoCount int64 `json:"videoCount"`
}

// WithVideos is a playlist hydrated with its member videos in order.
type WithVideos struct {
	Playlist
	Videos []video.WithOwner `json:"videos"`
}

// Repository defines the data access contract for playlists.
type Repository interface {

	/*
		Create persists a new playlist.
	*/
	Create(ctx context.Context, playlist *Playlist) error

	/*
		FindByID returns one playlist row.

		Returns:
		  - *Playlist: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Playlist, error)

	/*
		ListByOwner returns all playlists of a user with video counts,
		newest first.
	*/
	ListByOwner(ctx context.Context, ownerID string) ([]Summary, error)

	/*
		Update persists name and description changes.
	*/
	Update(ctx context.Context, playlist *Playlist) error

	/*
		Delete removes the playlist; membership rows cascade away.
	*/
	Delete(ctx context.Context, id string) error

	/*
		AddVideo appends a video to the playlist.

		Returns:
		  - error: apperr.BadRequest when the video is already a member,
		    apperr.NotFound when the video does not exist
	*/
	AddVideo(ctx context.Context, playlistID, videoID string) error

	/*
		RemoveVideo detaches a video from the playlist.

		Returns:
		  - error: apperr.BadRequest when the video is not a member
	*/
	RemoveVideo(ctx context.Context, playlistID, videoID string) error

	/*
		Videos returns the playlist's member videos in insertion order.
	*/
	Videos(ctx context.Context, playlistID string) ([]video.WithOwner, error)
}

// Field names used for validation in the playlist domain.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPlaylistID  = "playlistId"
	FieldVideoID     = "videoId"
	FieldUserID      = "userId"
)
