// Copyright (c) 2026 Vidora. All rights reserved.

package schema

// ContentVideoTable represents the 'content.video' table
type ContentVideoTable struct {
	Table        string
	ID           string
	OwnerID      string
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     string
	ViewCount    string
	IsPublished  string
	CreatedAt    string
	UpdatedAt    string
}

// ContentVideo is the schema definition for content.video
var ContentVideo = ContentVideoTable{
	Table:        "content.video",
	ID:           "id",
	OwnerID:      "ownerid",
	Title:        "title",
	Description:  "description",
	VideoURL:     "videourl",
	ThumbnailURL: "thumbnailurl",
	Duration:     "duration",
	ViewCount:    "viewcount",
	IsPublished:  "ispublished",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t ContentVideoTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Title, t.Description, t.VideoURL, t.ThumbnailURL, t.Duration, t.ViewCount, t.IsPublished, t.CreatedAt, t.UpdatedAt}
}
