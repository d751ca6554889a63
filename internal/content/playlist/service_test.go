// Copyright (c) 2026 Vidora. All rights reserved.

package playlist

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

// fakeRepository keeps playlists and ordered memberships in memory.
type fakeRepository struct {
	videos    map[string]bool
	playlists map[string]*Playlist
	members   map[string][]string
}

func newFakeRepository(videoIDs ...string) *fakeRepository {
	videos := map[string]bool{}
	for _, id := range videoIDs {
		videos[id] = true
	}
	return &fakeRepository{
		videos:    videos,
		playlists: map[string]*Playlist{},
		members:   map[string][]string{},
	}
}

func (r *fakeRepository) Create(_ context.Context, playlist *Playlist) error {
	copied := *playlist
	r.playlists[playlist.ID] = &copied
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*Playlist, error) {
	playlist, ok := r.playlists[id]
	if !ok {
		return nil, apperr.NotFound("Playlist")
	}
	copied := *playlist
	return &copied, nil
}

func (r *fakeRepository) ListByOwner(_ context.Context, ownerID string) ([]Summary, error) {
	summaries := []Summary{}
	for _, playlist := range r.playlists {
		if playlist.OwnerID == ownerID {
			summaries = append(summaries, Summary{
				Playlist:   *playlist,
				VideoCount: int64(len(r.members[playlist.ID])),
			})
		}
	}
	return summaries, nil
}

func (r *fakeRepository) Update(_ context.Context, playlist *Playlist) error {
	stored, ok := r.playlists[playlist.ID]
	if !ok {
		return apperr.NotFound("Playlist")
	}
	stored.Name = playlist.Name
	stored.Description = playlist.Description
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	delete(r.playlists, id)
	delete(r.members, id)
	return nil
}

func (r *fakeRepository) AddVideo(_ context.Context, playlistID, videoID string) error {
	if !r.videos[videoID] {
		return apperr.NotFound("Video")
	}
	for _, member := range r.members[playlistID] {
		if member == videoID {
			return apperr.BadRequest("Video is already in the playlist")
		}
	}
	r.members[playlistID] = append(r.members[playlistID], videoID)
	return nil
}

func (r *fakeRepository) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	members := r.members[playlistID]
	for index, member := range members {
		if member == videoID {
			r.members[playlistID] = append(members[:index], members[index+1:]...)
			return nil
		}
	}
	return apperr.BadRequest("Video is not in the playlist")
}

func (r *fakeRepository) Videos(_ context.Context, playlistID string) ([]video.WithOwner, error) {
	videos := []video.WithOwner{}
	for _, member := range r.members[playlistID] {
		entry := video.WithOwner{}
		entry.ID = member
		videos = append(videos, entry)
	}
	return videos, nil
}

func newTestService(videoIDs ...string) (*Service, *fakeRepository) {
	repo := newFakeRepository(videoIDs...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, logger), repo
}

/*
TestService_CreateAndList verifies creation and per-user listing with counts.
*/
func TestService_CreateAndList(t *testing.T) {
	service, _ := newTestService("video-1")

	playlist, err := service.Create(context.Background(), "user-1", "Favorites", "the good stuff")
	require.NoError(t, err)
	assert.Equal(t, "user-1", playlist.OwnerID)

	_, err = service.AddVideo(context.Background(), "user-1", playlist.ID, "video-1")
	require.NoError(t, err)

	summaries, err := service.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1), summaries[0].VideoCount)

	// Other users see their own, empty set.
	summaries, err = service.ListByUser(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

/*
TestService_AddVideo covers membership, the duplicate guard, and the
independent existence checks for playlist and video.
*/
func TestService_AddVideo(t *testing.T) {
	t.Run("appends_in_order", func(t *testing.T) {
		service, _ := newTestService("video-1", "video-2")
		playlist, err := service.Create(context.Background(), "user-1", "Mix", "desc")
		require.NoError(t, err)

		_, err = service.AddVideo(context.Background(), "user-1", playlist.ID, "video-1")
		require.NoError(t, err)
		hydrated, err := service.AddVideo(context.Background(), "user-1", playlist.ID, "video-2")
		require.NoError(t, err)

		require.Len(t, hydrated.Videos, 2)
		assert.Equal(t, "video-1", hydrated.Videos[0].ID)
		assert.Equal(t, "video-2", hydrated.Videos[1].ID)
	})

	t.Run("duplicate_member_rejected", func(t *testing.T) {
		service, _ := newTestService("video-1")
		playlist, err := service.Create(context.Background(), "user-1", "Mix", "desc")
		require.NoError(t, err)

		_, err = service.AddVideo(context.Background(), "user-1", playlist.ID, "video-1")
		require.NoError(t, err)

		_, err = service.AddVideo(context.Background(), "user-1", playlist.ID, "video-1")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	})

	t.Run("missing_playlist_not_found", func(t *testing.T) {
		service, _ := newTestService("video-1")

		_, err := service.AddVideo(context.Background(), "user-1", "ghost-playlist", "video-1")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})

	t.Run("missing_video_not_found", func(t *testing.T) {
		service, _ := newTestService()
		playlist, err := service.Create(context.Background(), "user-1", "Mix", "desc")
		require.NoError(t, err)

		_, err = service.AddVideo(context.Background(), "user-1", playlist.ID, "ghost-video")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		service, _ := newTestService("video-1")
		playlist, err := service.Create(context.Background(), "user-1", "Mix", "desc")
		require.NoError(t, err)

		_, err = service.AddVideo(context.Background(), "intruder", playlist.ID, "video-1")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	})
}

/*
TestService_RemoveVideo covers detachment and the non-member guard.
*/
func TestService_RemoveVideo(t *testing.T) {
	service, _ := newTestService("video-1")
	playlist, err := service.Create(context.Background(), "user-1", "Mix", "desc")
	require.NoError(t, err)

	_, err = service.AddVideo(context.Background(), "user-1", playlist.ID, "video-1")
	require.NoError(t, err)

	hydrated, err := service.RemoveVideo(context.Background(), "user-1", playlist.ID, "video-1")
	require.NoError(t, err)
	assert.Empty(t, hydrated.Videos)

	_, err = service.RemoveVideo(context.Background(), "user-1", playlist.ID, "video-1")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
}

/*
TestService_Update verifies partial updates and the ownership guard.
*/
func TestService_Update(t *testing.T) {
	service, repo := newTestService()
	playlist, err := service.Create(context.Background(), "user-1", "Old Name", "old desc")
	require.NoError(t, err)

	_, err = service.Update(context.Background(), "intruder", playlist.ID, UpdateInput{Name: "Stolen"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)

	updated, err := service.Update(context.Background(), "user-1", playlist.ID, UpdateInput{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "old desc", updated.Description)
	assert.Equal(t, "New Name", repo.playlists[playlist.ID].Name)
}

/*
TestService_Delete verifies removal and the ownership guard.
*/
func TestService_Delete(t *testing.T) {
	service, repo := newTestService()
	playlist, err := service.Create(context.Background(), "user-1", "Doomed", "desc")
	require.NoError(t, err)

	err = service.Delete(context.Background(), "intruder", playlist.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)

	require.NoError(t, service.Delete(context.Background(), "user-1", playlist.ID))
	assert.Nil(t, repo.playlists[playlist.ID])
}
