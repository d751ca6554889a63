// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package video implements the core content vertical: publishing, fetching,
updating, deleting, publish toggling, and listing of videos.

# View Counting

A fetch by an authenticated viewer counts as a view at most once per
deduplication window; the window is tracked in Redis so repeated refreshes
do not inflate the counter. Every counted fetch also lands in the viewer's
watch history.
*/
package video

import (
	"context"
	"time"

	"github.com/vidora-app/vidora/internal/users"
	"github.com/vidora-app/vidora/pkg/pagination"
)

// # Domain Entities

// Video represents one published or draft video owned by a channel.
type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WithOwner is a video row joined with its owner's public summary.
type WithOwner struct {
	Video
	Owner users.OwnerSummary `json:"owner"`
}

// ListFilter narrows and orders the video listing.
type ListFilter struct {
	// OwnerID scopes the listing to one channel. Required.
	OwnerID string

	// Query, when set, matches against title and description.
	Query string

	// SortBy is one of the whitelisted sort columns; SortDescending flips
	// the direction.
	SortBy         string
	SortDescending bool

	Page pagination.Params
}

// ListResult is one page of videos plus paging metadata.
type ListResult struct {
	Videos     []WithOwner `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"totalPages"`
}

// # Data Access

// Repository defines the data access contract for videos.
type Repository interface {

	/*
		Create persists a new video row.
	*/
	Create(ctx context.Context, video *Video) error

	/*
		FindByID returns one video joined with its owner summary.

		Returns:
		  - *WithOwner: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*WithOwner, error)

	/*
		Update persists title, description, and publish state.
	*/
	Update(ctx context.Context, video *Video) error

	/*
		UpdateThumbnail replaces only the thumbnail URL.
	*/
	UpdateThumbnail(ctx context.Context, id, thumbnailURL string) error

	/*
		Delete removes the video row. Dependent rows (comments, likes,
		playlist entries, watch history) are removed by the schema's
		cascading foreign keys.
	*/
	Delete(ctx context.Context, id string) error

	/*
		IncrementViews bumps the view counter by one and returns the new value.
	*/
	IncrementViews(ctx context.Context, id string) (int64, error)

	/*
		List returns one page of a channel's videos plus the total count.
	*/
	List(ctx context.Context, filter ListFilter) ([]WithOwner, int64, error)
}

// # Collaborators

// ViewGuard decides whether a fetch counts as a new view.
type ViewGuard interface {

	/*
		ShouldCount reports whether this (video, viewer) pair has not been
		counted within the deduplication window, and opens a new window when
		it has not.
	*/
	ShouldCount(ctx context.Context, videoID, viewerID string) (bool, error)
}

// HistoryRecorder lands counted fetches in the viewer's watch history.
// Implemented by the users service.
type HistoryRecorder interface {
	RecordWatch(ctx context.Context, userID, videoID string) error
}

// # Field Identifiers

// Field names used for validation in the video domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldVideoID     = "videoId"
	FieldVideoFile   = "videoFile"
	FieldThumbnail   = "thumbnail"
	FieldDuration    = "duration"
	FieldUserID      = "userId"
)
