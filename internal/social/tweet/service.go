// Copyright (c) 2026 Vidora. All rights reserved.

package tweet

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/pkg/uuid"
)

// Service implements the tweet use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the tweet service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Create persists a new tweet for the caller.
*/
func (service *Service) Create(ctx context.Context, ownerID, content string) (*Tweet, error) {
	now := time.Now()
	tweet := &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	return tweet, nil
}

/*
ListByUser returns a user's tweets, newest first.
*/
func (service *Service) ListByUser(ctx context.Context, userID string) ([]WithOwner, error) {
	return service.repo.ListByOwner(ctx, userID)
}

/*
Update replaces the body of a tweet authored by the caller.

Returns:
  - *Tweet: The updated tweet
  - error: apperr.Forbidden when the caller is not the author
*/
func (service *Service) Update(ctx context.Context, ownerID, tweetID, content string) (*Tweet, error) {
	tweet, err := service.ownedTweet(ctx, ownerID, tweetID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, err
	}

	tweet.Content = content
	tweet.UpdatedAt = time.Now()
	return tweet, nil
}

/*
Delete removes a tweet authored by the caller.
*/
func (service *Service) Delete(ctx context.Context, ownerID, tweetID string) error {
	if _, err := service.ownedTweet(ctx, ownerID, tweetID); err != nil {
		return err
	}

	return service.repo.Delete(ctx, tweetID)
}

// ownedTweet loads a tweet and enforces that the caller authored it.
func (service *Service) ownedTweet(ctx context.Context, ownerID, tweetID string) (*Tweet, error) {
	tweet, err := service.repo.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	if tweet.OwnerID != ownerID {
		return nil, apperr.Forbidden("You are not allowed to modify this tweet")
	}

	return tweet, nil
}
