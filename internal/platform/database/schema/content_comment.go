// Copyright (c) 2026 Vidora. All rights reserved.

package schema

// ContentCommentTable represents the 'content.comment' table
type ContentCommentTable struct {
	Table     string
	ID        string
	VideoID   string
	OwnerID   string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// ContentComment is the schema definition for content.comment
var ContentComment = ContentCommentTable{
	Table:     "content.comment",
	ID:        "id",
	VideoID:   "videoid",
	OwnerID:   "ownerid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t ContentCommentTable) Columns() []string {
	return []string{t.ID, t.VideoID, t.OwnerID, t.Content, t.CreatedAt, t.UpdatedAt}
}
