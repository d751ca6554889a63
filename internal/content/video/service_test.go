// Copyright (c) 2026 Vidora. All rights reserved.

package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora/internal/media"
	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/users"
	"github.com/vidora-app/vidora/pkg/pagination"
)

// # Test Doubles

type fakeRepository struct {
	videos map[string]*Video
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{videos: map[string]*Video{}}
}

func (r *fakeRepository) Create(_ context.Context, video *Video) error {
	copied := *video
	r.videos[video.ID] = &copied
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*WithOwner, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, apperr.NotFound("Video")
	}
	return &WithOwner{Video: *video, Owner: users.OwnerSummary{ID: video.OwnerID}}, nil
}

func (r *fakeRepository) Update(_ context.Context, video *Video) error {
	stored, ok := r.videos[video.ID]
	if !ok {
		return apperr.NotFound("Video")
	}
	stored.Title = video.Title
	stored.Description = video.Description
	stored.IsPublished = video.IsPublished
	return nil
}

func (r *fakeRepository) UpdateThumbnail(_ context.Context, id, thumbnailURL string) error {
	r.videos[id].ThumbnailURL = thumbnailURL
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	delete(r.videos, id)
	return nil
}

func (r *fakeRepository) IncrementViews(_ context.Context, id string) (int64, error) {
	video, ok := r.videos[id]
	if !ok {
		return 0, apperr.NotFound("Video")
	}
	video.Views++
	return video.Views, nil
}

func (r *fakeRepository) List(_ context.Context, filter ListFilter) ([]WithOwner, int64, error) {
	matched := []WithOwner{}
	for _, video := range r.videos {
		if video.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Query != "" && !strings.Contains(video.Title, filter.Query) {
			continue
		}
		matched = append(matched, WithOwner{Video: *video})
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	offset := filter.Page.Offset()
	if offset > len(matched) {
		return []WithOwner{}, total, nil
	}
	end := offset + filter.Page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type fakeMediaStore struct {
	uploads int
	removed []string
}

func (s *fakeMediaStore) Store(_ context.Context, filename, contentType string, body io.Reader) (*media.Asset, error) {
	s.uploads++
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	return &media.Asset{
		URL:         fmt.Sprintf("https://cdn.test/asset-%d%s", s.uploads, media.Extension(filename)),
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}, nil
}

func (s *fakeMediaStore) Remove(_ context.Context, assetID string) error {
	s.removed = append(s.removed, assetID)
	return nil
}

// fakeViewGuard counts each (video, viewer) pair once, or fails entirely.
type fakeViewGuard struct {
	seen map[string]bool
	err  error
}

func (g *fakeViewGuard) ShouldCount(_ context.Context, videoID, viewerID string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	key := videoID + ":" + viewerID
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

type fakeHistory struct {
	records []string
}

func (h *fakeHistory) RecordWatch(_ context.Context, userID, videoID string) error {
	h.records = append(h.records, userID+":"+videoID)
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakeMediaStore, *fakeViewGuard, *fakeHistory) {
	t.Helper()

	repo := newFakeRepository()
	store := &fakeMediaStore{}
	guard := &fakeViewGuard{seen: map[string]bool{}}
	history := &fakeHistory{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(repo, store, guard, history, logger), repo, store, guard, history
}

func publishTestVideo(t *testing.T, service *Service, ownerID, title string) *Video {
	t.Helper()

	video, err := service.Publish(context.Background(), ownerID, PublishInput{
		Title:       title,
		Description: "about " + title,
		Duration:    42.5,
		VideoFile:   &media.Upload{Filename: "clip.mp4", ContentType: "video/mp4", Body: strings.NewReader("mp4")},
		Thumbnail:   &media.Upload{Filename: "thumb.webp", ContentType: "image/webp", Body: strings.NewReader("webp")},
	})
	require.NoError(t, err)
	return video
}

// # Tests

/*
TestService_Publish covers the happy path and the missing-file guards.
*/
func TestService_Publish(t *testing.T) {
	t.Run("success_starts_published", func(t *testing.T) {
		service, repo, store, _, _ := newTestService(t)

		video := publishTestVideo(t, service, "owner-1", "First Video")

		assert.True(t, video.IsPublished)
		assert.Equal(t, 2, store.uploads)
		assert.Equal(t, 42.5, video.Duration)
		require.NotNil(t, repo.videos[video.ID])
		assert.NotEmpty(t, repo.videos[video.ID].VideoURL)
	})

	t.Run("missing_video_file_rejected", func(t *testing.T) {
		service, _, store, _, _ := newTestService(t)

		_, err := service.Publish(context.Background(), "owner-1", PublishInput{
			Title:       "No file",
			Description: "missing",
			Thumbnail:   &media.Upload{Filename: "t.webp", ContentType: "image/webp", Body: strings.NewReader("webp")},
		})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		assert.Zero(t, store.uploads)
	})

	t.Run("missing_thumbnail_rejected", func(t *testing.T) {
		service, _, store, _, _ := newTestService(t)

		_, err := service.Publish(context.Background(), "owner-1", PublishInput{
			Title:       "No thumb",
			Description: "missing",
			VideoFile:   &media.Upload{Filename: "clip.mp4", ContentType: "video/mp4", Body: strings.NewReader("mp4")},
		})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		assert.Zero(t, store.uploads)
	})
}

/*
TestService_Get verifies view deduplication and watch-history recording.
*/
func TestService_Get(t *testing.T) {
	t.Run("counts_once_per_window", func(t *testing.T) {
		service, _, _, _, history := newTestService(t)
		video := publishTestVideo(t, service, "owner-1", "Watched")

		first, err := service.Get(context.Background(), video.ID, "viewer-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.Views)

		// Same viewer inside the window: not counted again.
		second, err := service.Get(context.Background(), video.ID, "viewer-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), second.Views)

		// A different viewer opens its own window.
		third, err := service.Get(context.Background(), video.ID, "viewer-2")
		require.NoError(t, err)
		assert.Equal(t, int64(2), third.Views)

		assert.Len(t, history.records, 3)
	})

	t.Run("degraded_guard_skips_count", func(t *testing.T) {
		service, _, _, guard, _ := newTestService(t)
		video := publishTestVideo(t, service, "owner-1", "Unguarded")
		guard.err = errors.New("redis down")

		fetched, err := service.Get(context.Background(), video.ID, "viewer-1")
		require.NoError(t, err)
		assert.Zero(t, fetched.Views)
	})

	t.Run("unknown_video_not_found", func(t *testing.T) {
		service, _, _, _, _ := newTestService(t)

		_, err := service.Get(context.Background(), "missing", "viewer-1")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})
}

/*
TestService_Update verifies partial updates and the ownership guard.
*/
func TestService_Update(t *testing.T) {
	t.Run("partial_update_keeps_other_fields", func(t *testing.T) {
		service, repo, _, _, _ := newTestService(t)
		video := publishTestVideo(t, service, "owner-1", "Original Title")

		updated, err := service.Update(context.Background(), "owner-1", video.ID, UpdateInput{Title: "New Title"})
		require.NoError(t, err)

		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "about Original Title", updated.Description)
		assert.Equal(t, "New Title", repo.videos[video.ID].Title)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		service, _, _, _, _ := newTestService(t)
		video := publishTestVideo(t, service, "owner-1", "Guarded")

		_, err := service.Update(context.Background(), "intruder", video.ID, UpdateInput{Title: "Stolen"})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusForbidden, ae.HTTPStatus)
	})
}

/*
TestService_TogglePublish verifies the flip is an involution.
*/
func TestService_TogglePublish(t *testing.T) {
	service, _, _, _, _ := newTestService(t)
	video := publishTestVideo(t, service, "owner-1", "Toggled")

	toggled, err := service.TogglePublish(context.Background(), "owner-1", video.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPublished)

	toggled, err = service.TogglePublish(context.Background(), "owner-1", video.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPublished)
}

/*
TestService_Delete verifies the row and both stored assets are removed.
*/
func TestService_Delete(t *testing.T) {
	service, repo, store, _, _ := newTestService(t)
	video := publishTestVideo(t, service, "owner-1", "Doomed")
	videoAssetID := media.AssetIDFromURL(video.VideoURL)
	thumbnailAssetID := media.AssetIDFromURL(video.ThumbnailURL)

	require.NoError(t, service.Delete(context.Background(), "owner-1", video.ID))

	assert.Nil(t, repo.videos[video.ID])
	assert.Contains(t, store.removed, videoAssetID)
	assert.Contains(t, store.removed, thumbnailAssetID)

	err := service.Delete(context.Background(), "owner-1", video.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
}

/*
TestService_List verifies paging metadata.
*/
func TestService_List(t *testing.T) {
	service, _, _, _, _ := newTestService(t)
	for i := 0; i < 5; i++ {
		publishTestVideo(t, service, "owner-1", fmt.Sprintf("Video %d", i))
	}
	publishTestVideo(t, service, "owner-2", "Other Channel")

	result, err := service.List(context.Background(), ListFilter{
		OwnerID: "owner-1",
		Page:    pagination.Params{Page: 1, Limit: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.Total)
	assert.Len(t, result.Videos, 2)
	assert.Equal(t, int64(3), result.TotalPages)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 2, result.Limit)
}
