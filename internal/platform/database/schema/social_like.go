// Copyright (c) 2026 Vidora. All rights reserved.

package schema

// SocialLikeTable represents the 'social.likes' table.
//
// Exactly one of VideoID, CommentID, TweetID is non-null per row; the
// constraint lives in the migration.
type SocialLikeTable struct {
	Table     string
	ID        string
	LikedBy   string
	VideoID   string
	CommentID string
	TweetID   string
	CreatedAt string
}

// SocialLike is the schema definition for social.likes
var SocialLike = SocialLikeTable{
	Table:     "social.likes",
	ID:        "id",
	LikedBy:   "likedby",
	VideoID:   "videoid",
	CommentID: "commentid",
	TweetID:   "tweetid",
	CreatedAt: "createdat",
}

func (t SocialLikeTable) Columns() []string {
	return []string{t.ID, t.LikedBy, t.VideoID, t.CommentID, t.TweetID, t.CreatedAt}
}
