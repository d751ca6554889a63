// Copyright (c) 2026 Vidora. All rights reserved.

package like

import (
	"context"
	"log/slog"

	"github.com/vidora-app/vidora/internal/content/video"
)

// Service implements the like use cases. It is a thin layer: the toggle
// invariant lives in the repository's atomic flip.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the like service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Toggle flips the caller's like on a target.

Returns:
  - *State: The resulting like state
  - error: apperr.NotFound when the target does not exist
*/
func (service *Service) Toggle(ctx context.Context, userID string, target Target, targetID string) (*State, error) {
	liked, err := service.repo.Toggle(ctx, userID, target, targetID)
	if err != nil {
		return nil, err
	}

	return &State{IsLiked: liked}, nil
}

/*
LikedVideos returns every video the caller currently likes.
*/
func (service *Service) LikedVideos(ctx context.Context, userID string) ([]video.WithOwner, error) {
	return service.repo.LikedVideos(ctx, userID)
}
