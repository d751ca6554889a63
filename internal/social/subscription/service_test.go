// Copyright (c) 2026 Vidora. All rights reserved.

package subscription

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/users"
)

// fakeRepository tracks subscription edges between known accounts.
type fakeRepository struct {
	accounts map[string]bool
	edges    map[string]bool // subscriberID:channelID
}

func newFakeRepository(accountIDs ...string) *fakeRepository {
	accounts := map[string]bool{}
	for _, id := range accountIDs {
		accounts[id] = true
	}
	return &fakeRepository{accounts: accounts, edges: map[string]bool{}}
}

func (r *fakeRepository) Toggle(_ context.Context, subscriberID, channelID string) (bool, error) {
	if !r.accounts[channelID] {
		return false, apperr.NotFound("Channel")
	}

	key := subscriberID + ":" + channelID
	if r.edges[key] {
		delete(r.edges, key)
		return false, nil
	}
	r.edges[key] = true
	return true, nil
}

func (r *fakeRepository) Subscribers(_ context.Context, channelID string) ([]users.OwnerSummary, error) {
	if !r.accounts[channelID] {
		return nil, apperr.NotFound("Channel")
	}

	subscribers := []users.OwnerSummary{}
	for id := range r.accounts {
		if r.edges[id+":"+channelID] {
			subscribers = append(subscribers, users.OwnerSummary{ID: id})
		}
	}
	return subscribers, nil
}

func (r *fakeRepository) SubscribedChannels(_ context.Context, subscriberID string) ([]users.OwnerSummary, error) {
	channels := []users.OwnerSummary{}
	for id := range r.accounts {
		if r.edges[subscriberID+":"+id] {
			channels = append(channels, users.OwnerSummary{ID: id})
		}
	}
	return channels, nil
}

func newTestService(accountIDs ...string) (*Service, *fakeRepository) {
	repo := newFakeRepository(accountIDs...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

/*
TestService_Toggle verifies the involution, self-subscription, and the
missing-channel case.
*/
func TestService_Toggle(t *testing.T) {
	t.Run("toggle_is_involution", func(t *testing.T) {
		service, _ := newTestService("user-1", "channel-1")

		state, err := service.Toggle(context.Background(), "user-1", "channel-1")
		require.NoError(t, err)
		assert.True(t, state.IsSubscribed)

		state, err = service.Toggle(context.Background(), "user-1", "channel-1")
		require.NoError(t, err)
		assert.False(t, state.IsSubscribed)
	})

	t.Run("self_subscription_permitted", func(t *testing.T) {
		service, _ := newTestService("user-1")

		state, err := service.Toggle(context.Background(), "user-1", "user-1")
		require.NoError(t, err)
		assert.True(t, state.IsSubscribed)
	})

	t.Run("missing_channel_not_found", func(t *testing.T) {
		service, _ := newTestService("user-1")

		_, err := service.Toggle(context.Background(), "user-1", "ghost-channel")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})
}

/*
TestService_Listings verifies both directions of the follow graph.
*/
func TestService_Listings(t *testing.T) {
	service, _ := newTestService("user-1", "user-2", "channel-1")

	_, err := service.Toggle(context.Background(), "user-1", "channel-1")
	require.NoError(t, err)
	_, err = service.Toggle(context.Background(), "user-2", "channel-1")
	require.NoError(t, err)

	subscribers, err := service.Subscribers(context.Background(), "channel-1")
	require.NoError(t, err)
	assert.Len(t, subscribers, 2)

	channels, err := service.SubscribedChannels(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "channel-1", channels[0].ID)

	_, err = service.Subscribers(context.Background(), "ghost-channel")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}
