// Copyright (c) 2026 Vidora. All rights reserved.

package schema

// ContentPlaylistTable represents the 'content.playlist' table
type ContentPlaylistTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// ContentPlaylist is the schema definition for content.playlist
var ContentPlaylist = ContentPlaylistTable{
	Table:       "content.playlist",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t ContentPlaylistTable) Columns() []string {
	return []string{t.ID, t.OwnerID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt}
}

// ContentPlaylistVideoTable represents the 'content.playlistvideo' join table
type ContentPlaylistVideoTable struct {
	Table      string
	PlaylistID string
	VideoID    string
	Position   string
	AddedAt    string
}

// ContentPlaylistVideo is the schema definition for content.playlistvideo
var ContentPlaylistVideo = ContentPlaylistVideoTable{
	Table:      "content.playlistvideo",
	PlaylistID: "playlistid",
	VideoID:    "videoid",
	Position:   "position",
	AddedAt:    "addedat",
}

func (t ContentPlaylistVideoTable) Columns() []string {
	return []string{t.PlaylistID, t.VideoID, t.Position, t.AddedAt}
}
