// Copyright (c) 2026 Vidora. All rights reserved.

package schema

// ContentWatchHistoryTable represents the 'content.watchhistory' table
type ContentWatchHistoryTable struct {
	Table     string
	UserID    string
	VideoID   string
	WatchedAt string
}

// ContentWatchHistory is the schema definition for content.watchhistory
var ContentWatchHistory = ContentWatchHistoryTable{
	Table:     "content.watchhistory",
	UserID:    "userid",
	VideoID:   "videoid",
	WatchedAt: "watchedat",
}

func (t ContentWatchHistoryTable) Columns() []string {
	return []string{t.UserID, t.VideoID, t.WatchedAt}
}
