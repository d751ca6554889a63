// Copyright (c) 2026 Vidora. All rights reserved.

package stats

import (
	"context"
	"log/slog"

	"github.com/vidora-app/vidora/internal/content/video"
)

// Service implements the dashboard use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the dashboard service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
ChannelStats returns the dashboard totals for the caller's channel.
*/
func (service *Service) ChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	return service.repo.ChannelStats(ctx, channelID)
}

/*
ChannelVideos returns every video the caller owns, including unpublished ones.
*/
func (service *Service) ChannelVideos(ctx context.Context, channelID string) ([]video.Video, error) {
	return service.repo.ChannelVideos(ctx, channelID)
}
