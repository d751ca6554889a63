// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package tweet implements short text posts attached to a channel: creating,
listing per user, editing, and deleting.

Only the author may edit or delete a tweet.
*/
package tweet

import (
	"context"
	"time"

	"github.com/vidora-app/vidora/internal/users"
)

// Tweet represents one short text post.
type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WithOwner is a tweet row joined with its author's public summary.
type WithOwner struct {
	Tweet
	Owner users.OwnerSummary `json:"owner"`
}

// Repository defines the data access contract for tweets.
type Repository interface {

	/*
		Create persists a new tweet.
	*/
	Create(ctx context.Context, tweet *Tweet) error

	/*
		FindByID returns one tweet without the owner join.

		Returns:
		  - *Tweet: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*Tweet, error)

	/*
		ListByOwner returns a user's tweets with author summaries, newest
		first.

		Returns:
		  - error: apperr.NotFound when the user does not exist
	*/
	ListByOwner(ctx context.Context, ownerID string) ([]WithOwner, error)

	/*
		UpdateContent replaces the tweet body and refreshes updatedat.
	*/
	UpdateContent(ctx context.Context, id, content string) error

	/*
		Delete removes the tweet row; likes on it cascade away.
	*/
	Delete(ctx context.Context, id string) error
}

// Field names used for validation in the tweet domain.
const (
	FieldContent = "content"
	FieldTweetID = "tweetId"
	FieldUserID  = "userId"
)

// MaxContentLen bounds the tweet body.
const MaxContentLen = 280
