// Copyright (c) 2026 Vidora. All rights reserved.

package comment

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/pkg/pagination"
	"github.com/vidora-app/vidora/pkg/uuid"
)

// Service implements the comment use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the comment service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Add creates a comment under a video.

Returns:
  - *Comment: The created comment
  - error: apperr.NotFound when the video does not exist
*/
func (service *Service) Add(ctx context.Context, ownerID, videoID, content string) (*Comment, error) {
	now := time.Now()
	comment := &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
List returns one page of a video's comments, newest first.
*/
func (service *Service) List(ctx context.Context, videoID string, page pagination.Params) (*ListResult, error) {
	comments, total, err := service.repo.ListByVideo(ctx, videoID, page)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(page.Limit)
	if total%int64(page.Limit) != 0 {
		totalPages++
	}

	return &ListResult{
		Comments:   comments,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}, nil
}

/*
Update replaces the body of a comment authored by the caller.

Returns:
  - *Comment: The updated comment
  - error: apperr.Forbidden when the caller is not the author
*/
func (service *Service) Update(ctx context.Context, ownerID, commentID, content string) (*Comment, error) {
	comment, err := service.ownedComment(ctx, ownerID, commentID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = time.Now()
	return comment, nil
}

/*
Delete removes a comment authored by the caller.
*/
func (service *Service) Delete(ctx context.Context, ownerID, commentID string) error {
	if _, err := service.ownedComment(ctx, ownerID, commentID); err != nil {
		return err
	}

	return service.repo.Delete(ctx, commentID)
}

// ownedComment loads a comment and enforces that the caller authored it.
func (service *Service) ownedComment(ctx context.Context, ownerID, commentID string) (*Comment, error) {
	comment, err := service.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.OwnerID != ownerID {
		return nil, apperr.Forbidden("You are not allowed to modify this comment")
	}

	return comment, nil
}
