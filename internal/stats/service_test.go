// Copyright (c) 2026 Vidora. All rights reserved.

package stats

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora/internal/content/video"
)

// fakeRepository aggregates over in-memory fixtures the way the SQL store
// aggregates over tables.
type fakeRepository struct {
	videos      []video.Video
	subscribers map[string]int64
	videoLikes  map[string]int64 // videoID -> likes
}

func (r *fakeRepository) ChannelStats(_ context.Context, channelID string) (*ChannelStats, error) {
	stats := &ChannelStats{TotalSubscribers: r.subscribers[channelID]}
	for _, item := range r.videos {
		if item.OwnerID != channelID {
			continue
		}
		stats.TotalVideos++
		stats.TotalViews += item.Views
		stats.TotalLikes += r.videoLikes[item.ID]
	}
	return stats, nil
}

func (r *fakeRepository) ChannelVideos(_ context.Context, channelID string) ([]video.Video, error) {
	owned := []video.Video{}
	for _, item := range r.videos {
		if item.OwnerID == channelID {
			owned = append(owned, item)
		}
	}
	return owned, nil
}

/*
TestService_ChannelStats verifies the totals are scoped to the requested
channel only.
*/
func TestService_ChannelStats(t *testing.T) {
	repo := &fakeRepository{
		videos: []video.Video{
			{ID: "video-1", OwnerID: "channel-1", Views: 100, IsPublished: true},
			{ID: "video-2", OwnerID: "channel-1", Views: 40, IsPublished: false},
			{ID: "video-3", OwnerID: "channel-2", Views: 999, IsPublished: true},
		},
		subscribers: map[string]int64{"channel-1": 7},
		videoLikes:  map[string]int64{"video-1": 3, "video-2": 1, "video-3": 50},
	}
	service := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	stats, err := service.ChannelStats(context.Background(), "channel-1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(140), stats.TotalViews)
	assert.Equal(t, int64(7), stats.TotalSubscribers)
	assert.Equal(t, int64(4), stats.TotalLikes)
}

/*
TestService_ChannelVideos verifies drafts are included in the channel's own
listing.
*/
func TestService_ChannelVideos(t *testing.T) {
	repo := &fakeRepository{
		videos: []video.Video{
			{ID: "video-1", OwnerID: "channel-1", IsPublished: true},
			{ID: "video-2", OwnerID: "channel-1", IsPublished: false},
			{ID: "video-3", OwnerID: "channel-2", IsPublished: true},
		},
	}
	service := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	videos, err := service.ChannelVideos(context.Background(), "channel-1")
	require.NoError(t, err)

	require.Len(t, videos, 2)
	assert.False(t, videos[1].IsPublished)
}
