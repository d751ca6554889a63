// Copyright (c) 2026 Vidora. All rights reserved.

package subscription

import (
	"context"
	"log/slog"

	"github.com/vidora-app/vidora/internal/users"
)

// Service implements the subscription use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the subscription service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Toggle flips the caller's subscription to a channel. Subscribing to one's
own channel is permitted.

Returns:
  - *State: The resulting subscription state
  - error: apperr.NotFound when the channel does not exist
*/
func (service *Service) Toggle(ctx context.Context, subscriberID, channelID string) (*State, error) {
	subscribed, err := service.repo.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	return &State{IsSubscribed: subscribed}, nil
}

/*
Subscribers lists the accounts subscribed to a channel.
*/
func (service *Service) Subscribers(ctx context.Context, channelID string) ([]users.OwnerSummary, error) {
	return service.repo.Subscribers(ctx, channelID)
}

/*
SubscribedChannels lists the channels the caller is subscribed to.
*/
func (service *Service) SubscribedChannels(ctx context.Context, subscriberID string) ([]users.OwnerSummary, error) {
	return service.repo.SubscribedChannels(ctx, subscriberID)
}
