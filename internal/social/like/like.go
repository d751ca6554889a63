// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package like implements toggled reactions on videos, comments, and tweets.

A like row targets exactly one entity kind, and a user holds at most one
like per target. Toggling an existing like removes it; toggling a missing
one creates it.
*/
package like

import (
	"context"

	"github.com/vidora-app/vidora/internal/content/video"
)

// Target identifies the entity kind a like attaches to.
type Target string

const (
	TargetVideo   Target = "video"
	TargetComment Target = "comment"
	TargetTweet   Target = "tweet"
)

// State is the toggle outcome returned to clients.
type State struct {
	IsLiked bool `json:"isLiked"`
}

// Repository defines the data access contract for likes.
type Repository interface {

	/*
		Toggle flips the (user, target) like.

		Returns:
		  - bool: true when the toggle created a like, false when it
		    removed one
		  - error: apperr.NotFound when the target does not exist
	*/
	Toggle(ctx context.Context, userID string, target Target, targetID string) (bool, error)

	/*
		LikedVideos returns every video the user currently likes, most
		recently liked first.
	*/
	LikedVideos(ctx context.Context, userID string) ([]video.WithOwner, error)
}

// Field names used for validation in the like domain.
const (
	FieldVideoID   = "videoId"
	FieldCommentID = "commentId"
	FieldTweetID   = "tweetId"
)
