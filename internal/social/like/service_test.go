// Copyright (c) 2026 Vidora. All rights reserved.

package like

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora/internal/content/video"
	"github.com/vidora-app/vidora/internal/platform/apperr"
)

// fakeRepository tracks likes per (user, target) and knows which targets exist.
type fakeRepository struct {
	targets map[Target]map[string]bool
	likes   map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		targets: map[Target]map[string]bool{
			TargetVideo:   {},
			TargetComment: {},
			TargetTweet:   {},
		},
		likes: map[string]bool{},
	}
}

func (r *fakeRepository) addTarget(target Target, id string) {
	r.targets[target][id] = true
}

func (r *fakeRepository) Toggle(_ context.Context, userID string, target Target, targetID string) (bool, error) {
	if !r.targets[target][targetID] {
		return false, apperr.NotFound("Target")
	}

	key := userID + ":" + string(target) + ":" + targetID
	if r.likes[key] {
		delete(r.likes, key)
		return false, nil
	}
	r.likes[key] = true
	return true, nil
}

func (r *fakeRepository) LikedVideos(_ context.Context, userID string) ([]video.WithOwner, error) {
	videos := []video.WithOwner{}
	for id := range r.targets[TargetVideo] {
		if r.likes[userID+":"+string(TargetVideo)+":"+id] {
			entry := video.WithOwner{}
			entry.ID = id
			videos = append(videos, entry)
		}
	}
	return videos, nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

/*
TestService_Toggle verifies the toggle is an involution for every target kind.
*/
func TestService_Toggle(t *testing.T) {
	for _, target := range []Target{TargetVideo, TargetComment, TargetTweet} {
		t.Run(string(target), func(t *testing.T) {
			service, repo := newTestService()
			repo.addTarget(target, "target-1")

			state, err := service.Toggle(context.Background(), "user-1", target, "target-1")
			require.NoError(t, err)
			assert.True(t, state.IsLiked)

			state, err = service.Toggle(context.Background(), "user-1", target, "target-1")
			require.NoError(t, err)
			assert.False(t, state.IsLiked)

			state, err = service.Toggle(context.Background(), "user-1", target, "target-1")
			require.NoError(t, err)
			assert.True(t, state.IsLiked)
		})
	}
}

/*
TestService_Toggle_MissingTarget verifies liking a deleted target fails with 404.
*/
func TestService_Toggle_MissingTarget(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Toggle(context.Background(), "user-1", TargetVideo, "ghost")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestService_LikedVideos verifies the listing tracks live likes only.
*/
func TestService_LikedVideos(t *testing.T) {
	service, repo := newTestService()
	repo.addTarget(TargetVideo, "video-1")
	repo.addTarget(TargetVideo, "video-2")

	_, err := service.Toggle(context.Background(), "user-1", TargetVideo, "video-1")
	require.NoError(t, err)
	_, err = service.Toggle(context.Background(), "user-1", TargetVideo, "video-2")
	require.NoError(t, err)

	videos, err := service.LikedVideos(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, videos, 2)

	// Unliking removes the video from the listing.
	_, err = service.Toggle(context.Background(), "user-1", TargetVideo, "video-1")
	require.NoError(t, err)

	videos, err = service.LikedVideos(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "video-2", videos[0].ID)
}
