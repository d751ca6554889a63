// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package video (Postgres) implements the storage layer for video content.

# Schema Table Mapping
  - content.video: Video rows with denormalized view counters.
  - users.account: Read-only joins for owner summaries.
*/
package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/database/schema"
)

// sortColumns whitelists the API sort keys against real columns. Anything
// outside the map falls back to creation time.
var sortColumns = map[string]string{
	"createdAt": schema.ContentVideo.CreatedAt,
	"views":     schema.ContentVideo.ViewCount,
	"duration":  schema.ContentVideo.Duration,
	"title":     schema.ContentVideo.Title,
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the video store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a new video row.
*/
func (repository *PostgresRepository) Create(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.ContentVideo.Table, strings.Join(schema.ContentVideo.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Duration,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)

	// If the insert fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_video_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves one video joined with its owner summary.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *WithOwner: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*WithOwner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s v
		JOIN %s o ON o.%s = v.%s
		WHERE v.%s = $1`,
		videoWithOwnerColumns(),
		schema.ContentVideo.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentVideo.OwnerID,
		schema.ContentVideo.ID,
	)

	video := &WithOwner{}
	err := repository.pool.QueryRow(context, query, id).Scan(scanTargets(video)...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Video")
		}
		return nil, fmt.Errorf("postgres_video_repo_find_failed: %w", err)
	}

	return video, nil
}

/*
Update syncs title, description, publish state, and updatedat.
*/
func (repository *PostgresRepository) Update(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		schema.ContentVideo.Table,
		schema.ContentVideo.Title, schema.ContentVideo.Description,
		schema.ContentVideo.IsPublished, schema.ContentVideo.UpdatedAt,
		schema.ContentVideo.ID,
	)

	_, err := repository.pool.Exec(context, query,
		video.ID,
		video.Title,
		video.Description,
		video.IsPublished,
		video.UpdatedAt,
	)

	// If the update fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_video_repo_update_failed: %w", err)
	}

	return nil
}

/*
UpdateThumbnail replaces only the thumbnail URL.
*/
func (repository *PostgresRepository) UpdateThumbnail(context context.Context, id, thumbnailURL string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.ContentVideo.Table, schema.ContentVideo.ThumbnailURL,
		schema.ContentVideo.UpdatedAt, schema.ContentVideo.ID)

	_, err := repository.pool.Exec(context, query, id, thumbnailURL)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_update_thumbnail_failed: %w", err)
	}

	return nil
}

/*
Delete removes the video row; dependent rows cascade via foreign keys.
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentVideo.Table, schema.ContentVideo.ID)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_delete_failed: %w", err)
	}

	return nil
}

/*
IncrementViews bumps the view counter atomically and returns the new value.
*/
func (repository *PostgresRepository) IncrementViews(context context.Context, id string) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1 WHERE %s = $1 RETURNING %s`,
		schema.ContentVideo.Table, schema.ContentVideo.ViewCount, schema.ContentVideo.ViewCount,
		schema.ContentVideo.ID, schema.ContentVideo.ViewCount,
	)

	var views int64
	err := repository.pool.QueryRow(context, query, id).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("Video")
		}
		return 0, fmt.Errorf("postgres_video_repo_increment_views_failed: %w", err)
	}

	return views, nil
}

/*
List returns one page of a channel's videos plus the total count.

The optional text query matches title and description case-insensitively.
Sorting is restricted to whitelisted columns.
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]WithOwner, int64, error) {
	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = schema.ContentVideo.CreatedAt
	}
	direction := "ASC"
	if filter.SortDescending {
		direction = "DESC"
	}

	// Listings only surface published videos; drafts stay visible to their
	// owner through the dashboard.
	where := fmt.Sprintf("v.%s = $1 AND v.%s = TRUE",
		schema.ContentVideo.OwnerID, schema.ContentVideo.IsPublished)
	args := []interface{}{filter.OwnerID}
	if filter.Query != "" {
		where += fmt.Sprintf(" AND (v.%s ILIKE $2 OR v.%s ILIKE $2)",
			schema.ContentVideo.Title, schema.ContentVideo.Description)
		args = append(args, "%"+filter.Query+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s v WHERE %s`,
		schema.ContentVideo.Table, where)

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s v
		JOIN %s o ON o.%s = v.%s
		WHERE %s
		ORDER BY v.%s %s
		LIMIT %d OFFSET %d`,
		videoWithOwnerColumns(),
		schema.ContentVideo.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentVideo.OwnerID,
		where,
		sortColumn, direction,
		filter.Page.Limit, filter.Page.Offset(),
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_video_repo_list_failed: %w", err)
	}
	defer rows.Close()

	videos := []WithOwner{}
	for rows.Next() {
		var video WithOwner
		if err := rows.Scan(scanTargets(&video)...); err != nil {
			return nil, 0, err
		}
		videos = append(videos, video)
	}

	return videos, total, rows.Err()
}

// # Internals

// videoWithOwnerColumns is the shared select list for video + owner joins,
// with table aliases v (video) and o (owner).
func videoWithOwnerColumns() string {
	return fmt.Sprintf(
		"v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, o.%s, o.%s, o.%s, o.%s",
		schema.ContentVideo.ID, schema.ContentVideo.OwnerID, schema.ContentVideo.Title,
		schema.ContentVideo.Description, schema.ContentVideo.VideoURL, schema.ContentVideo.ThumbnailURL,
		schema.ContentVideo.Duration, schema.ContentVideo.ViewCount, schema.ContentVideo.IsPublished,
		schema.ContentVideo.CreatedAt, schema.ContentVideo.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
	)
}

// scanTargets pairs the select list of videoWithOwnerColumns with struct fields.
func scanTargets(video *WithOwner) []interface{} {
	return []interface{}{
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
		&video.Owner.ID,
		&video.Owner.Username,
		&video.Owner.FullName,
		&video.Owner.AvatarURL,
	}
}
