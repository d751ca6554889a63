// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package comment implements threaded discussion under videos: adding,
listing, editing, and deleting comments.

Comments are flat (no reply nesting) and belong to exactly one video.
Only the comment's author may edit or delete it.
*/
package comment

import (
	"context"
	"time"

	"github.com/vidora-app/vidora/internal/users"
	"github.com/vidora-app/vidora/pkg/pagination"
)

// Comment represents one comment under a video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WithOwner is a comment row joined with its author's public summary.
type WithOwner struct {
	Comment
	Owner users.OwnerSummary `json:"owner"`
}

// ListResult is one page of a video's comments plus paging metadata.
type ListResult struct {
	Comments   []WithOwner `json:"comments"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"totalPages"`
}

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		Create persists a new comment.

		Returns:
		  - error: apperr.NotFound when the target video does not exist
	*/
	Create(ctx context.Context, comment *Comment) error

	/*
		FindByID returns one comment without the owner join.

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Comment, error)

	/*
		UpdateContent replaces the comment body and refreshes updatedat.
	*/
	UpdateContent(ctx context.Context, id, content string) error

	/*
		Delete removes the comment row; likes on it cascade away.
	*/
	Delete(ctx context.Context, id string) error

	/*
		ListByVideo returns one page of a video's comments, newest first,
		plus the total count.

		Returns:
		  - error: apperr.NotFound when the video does not exist
	*/
	ListByVideo(ctx context.Context, videoID string, page pagination.Params) ([]WithOwner, int64, error)
}

// Field names used for validation in the comment domain.
const (
	FieldContent   = "content"
	FieldVideoID   = "videoId"
	FieldCommentID = "commentId"
)

// MaxContentLen bounds the comment body.
const MaxContentLen = 2000
