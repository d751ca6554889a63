// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package stats serves the channel dashboard: aggregate totals for the
authenticated channel and the full list of its own videos, published or not.
*/
package stats

import (
	"context"

	"github.com/vidora-app/vidora/internal/content/video"
)

// ChannelStats holds the dashboard totals for one channel.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// Repository defines the aggregate queries behind the dashboard.
type Repository interface {

	/*
		ChannelStats computes the dashboard totals for a channel in a
		single round trip.
	*/
	ChannelStats(ctx context.Context, channelID string) (*ChannelStats, error)

	/*
		ChannelVideos returns every video the channel owns, including
		unpublished ones, newest first.
	*/
	ChannelVideos(ctx context.Context, channelID string) ([]video.Video, error)
}
