// Copyright (c) 2026 Vidora. All rights reserved.

package video

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidora-app/vidora/internal/media"
	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/pkg/uuid"
)

// PublishInput carries the multipart publish form.
type PublishInput struct {
	Title       string
	Description string

	// Duration in seconds, reported by the uploading client. Optional;
	// zero when the client cannot probe the file.
	Duration float64

	VideoFile *media.Upload
	Thumbnail *media.Upload
}

// UpdateInput carries partial video metadata updates. Blank fields are left
// unchanged; at least one must be provided.
type UpdateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Service implements the video use cases.
type Service struct {
	repo    Repository
	media   media.Store
	views   ViewGuard
	history HistoryRecorder
	logger  *slog.Logger
}

// NewService wires the video service.
func NewService(repo Repository, mediaStore media.Store, views ViewGuard, history HistoryRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		media:   mediaStore,
		views:   views,
		history: history,
		logger:  logger,
	}
}

/*
Publish stores the video file and thumbnail, then creates the video row.
New videos start published.

Returns:
  - *Video: The created video
  - error: apperr.BadRequest when a file is missing, or upload failures
*/
func (service *Service) Publish(ctx context.Context, ownerID string, input PublishInput) (*Video, error) {
	if input.VideoFile == nil {
		return nil, apperr.BadRequest("Video file is required")
	}
	if input.Thumbnail == nil {
		return nil, apperr.BadRequest("Thumbnail file is required")
	}

	videoAsset, err := service.media.Store(ctx, input.VideoFile.Filename, input.VideoFile.ContentType, input.VideoFile.Body)
	if err != nil {
		return nil, err
	}

	thumbnailAsset, err := service.media.Store(ctx, input.Thumbnail.Filename, input.Thumbnail.ContentType, input.Thumbnail.Body)
	if err != nil {
		service.removeAsset(ctx, videoAsset.URL)
		return nil, err
	}

	now := time.Now()
	video := &Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		VideoURL:     videoAsset.URL,
		ThumbnailURL: thumbnailAsset.URL,
		Duration:     input.Duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repo.Create(ctx, video); err != nil {
		service.removeAsset(ctx, videoAsset.URL)
		service.removeAsset(ctx, thumbnailAsset.URL)
		return nil, err
	}

	service.logger.InfoContext(ctx, "video published",
		slog.String("video_id", video.ID),
		slog.String("owner_id", ownerID),
	)

	return video, nil
}

/*
Get fetches one video, counting the view and recording watch history for
the viewer.

The view is counted at most once per (video, viewer) deduplication window.
History recording is best-effort: a history failure must not fail the fetch.
*/
func (service *Service) Get(ctx context.Context, videoID, viewerID string) (*WithOwner, error) {
	video, err := service.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	countable, err := service.views.ShouldCount(ctx, videoID, viewerID)
	if err != nil {
		// A degraded Redis must not make videos unwatchable; skip the count.
		service.logger.WarnContext(ctx, "view guard unavailable",
			slog.String("video_id", videoID),
			slog.Any("error", err),
		)
		countable = false
	}

	if countable {
		views, err := service.repo.IncrementViews(ctx, videoID)
		if err != nil {
			return nil, err
		}
		video.Views = views
	}

	if err := service.history.RecordWatch(ctx, viewerID, videoID); err != nil {
		service.logger.WarnContext(ctx, "failed to record watch history",
			slog.String("video_id", videoID),
			slog.String("user_id", viewerID),
			slog.Any("error", err),
		)
	}

	return video, nil
}

/*
Update applies partial metadata changes to a video owned by the caller.

Returns:
  - *Video: The updated video
  - error: apperr.Forbidden when the caller does not own the video
*/
func (service *Service) Update(ctx context.Context, ownerID, videoID string, input UpdateInput) (*Video, error) {
	video, err := service.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		video.Title = input.Title
	}
	if input.Description != "" {
		video.Description = input.Description
	}
	video.UpdatedAt = time.Now()

	if err := service.repo.Update(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

/*
UpdateThumbnail stores the new thumbnail, points the video at it, and
removes the previous asset best-effort.
*/
func (service *Service) UpdateThumbnail(ctx context.Context, ownerID, videoID string, upload *media.Upload) (*Video, error) {
	video, err := service.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}

	asset, err := service.media.Store(ctx, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateThumbnail(ctx, videoID, asset.URL); err != nil {
		service.removeAsset(ctx, asset.URL)
		return nil, err
	}

	service.removeAsset(ctx, video.ThumbnailURL)

	video.ThumbnailURL = asset.URL
	return video, nil
}

/*
Delete removes a video owned by the caller along with its stored assets.
Asset removal is best-effort; the row deletion is the source of truth.
*/
func (service *Service) Delete(ctx context.Context, ownerID, videoID string) error {
	video, err := service.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, videoID); err != nil {
		return err
	}

	service.removeAsset(ctx, video.VideoURL)
	service.removeAsset(ctx, video.ThumbnailURL)

	service.logger.InfoContext(ctx, "video deleted",
		slog.String("video_id", videoID),
		slog.String("owner_id", ownerID),
	)

	return nil
}

/*
TogglePublish flips the publish state of a video owned by the caller.
*/
func (service *Service) TogglePublish(ctx context.Context, ownerID, videoID string) (*Video, error) {
	video, err := service.ownedVideo(ctx, ownerID, videoID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	video.UpdatedAt = time.Now()

	if err := service.repo.Update(ctx, video); err != nil {
		return nil, err
	}

	return video, nil
}

/*
List returns one page of a channel's videos.
*/
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	videos, total, err := service.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(filter.Page.Limit)
	if total%int64(filter.Page.Limit) != 0 {
		totalPages++
	}

	return &ListResult{
		Videos:     videos,
		Total:      total,
		Page:       filter.Page.Page,
		Limit:      filter.Page.Limit,
		TotalPages: totalPages,
	}, nil
}

// # Internals

// ownedVideo loads a video and enforces that the caller owns it.
func (service *Service) ownedVideo(ctx context.Context, ownerID, videoID string) (*Video, error) {
	video, err := service.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if video.OwnerID != ownerID {
		return nil, apperr.Forbidden("You are not allowed to modify this video")
	}

	owned := video.Video
	return &owned, nil
}

// removeAsset deletes a stored media object by URL, logging failures.
func (service *Service) removeAsset(ctx context.Context, url string) {
	assetID := media.AssetIDFromURL(url)
	if assetID == "" {
		return
	}
	if err := service.media.Remove(ctx, assetID); err != nil {
		service.logger.WarnContext(ctx, "failed to remove media asset",
			slog.String("asset_id", assetID),
			slog.Any("error", err),
		)
	}
}
