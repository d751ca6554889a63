// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package subscription implements the channel-follow graph: toggling a
subscription and listing both sides of the edge.

A user may not subscribe to their own channel, and holds at most one
subscription per channel.
*/
package subscription

import (
	"context"

	"github.com/vidora-app/vidora/internal/users"
)

// State is the toggle outcome returned to clients.
type State struct {
	IsSubscribed bool `json:"isSubscribed"`
}

// Repository defines the data access contract for subscriptions.
type Repository interface {

	/*
		Toggle flips the (subscriber, channel) edge.

		Returns:
		  - bool: true when the toggle created a subscription, false when
		    it removed one
		  - error: apperr.NotFound when the channel does not exist
	*/
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)

	/*
		Subscribers lists the accounts subscribed to a channel, newest first.

		Returns:
		  - error: apperr.NotFound when the channel does not exist
	*/
	Subscribers(ctx context.Context, channelID string) ([]users.OwnerSummary, error)

	/*
		SubscribedChannels lists the channels a user is subscribed to,
		newest first.
	*/
	SubscribedChannels(ctx context.Context, subscriberID string) ([]users.OwnerSummary, error)
}

// Field names used for validation in the subscription domain.
const FieldChannelID = "channelId"
