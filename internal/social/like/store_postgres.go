// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package like (Postgres) implements the storage layer for reactions.

# Schema Table Mapping
  - social.likes: One row per (user, target) like; a partial unique index
    per target column enforces the at-most-once invariant.
  - content.video, users.account: Read-only joins for the liked-videos view.
*/
package like

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora/internal/content/video"
	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/database/schema"
	"github.com/vidora-app/vidora/pkg/uuid"
)

// targetColumns maps each target kind to its foreign-key column and the
// client-facing resource name used in 404 messages.
var targetColumns = map[Target]struct {
	column   string
	resource string
}{
	TargetVideo:   {schema.SocialLike.VideoID, "Video"},
	TargetComment: {schema.SocialLike.CommentID, "Comment"},
	TargetTweet:   {schema.SocialLike.TweetID, "Tweet"},
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the like store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Toggle flips the (user, target) like with a delete-then-insert strategy.

The delete and insert race benignly: a concurrent duplicate insert hits the
unique index and is treated as "already liked", keeping the toggle an
involution under concurrency.
*/
func (repository *PostgresRepository) Toggle(context context.Context, userID string, target Target, targetID string) (bool, error) {
	mapping, ok := targetColumns[target]
	if !ok {
		return false, fmt.Errorf("like: unknown target kind %q", target)
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialLike.Table, schema.SocialLike.LikedBy, mapping.column)

	tag, err := repository.pool.Exec(context, deleteQuery, userID, targetID)
	if err != nil {
		return false, fmt.Errorf("postgres_like_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, NOW())`,
		schema.SocialLike.Table, schema.SocialLike.ID, schema.SocialLike.LikedBy,
		mapping.column, schema.SocialLike.CreatedAt)

	_, err = repository.pool.Exec(context, insertQuery, uuid.New(), userID, targetID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return false, apperr.NotFound(mapping.resource)
			case "23505":
				// Lost a race against an identical toggle; the like exists.
				return true, nil
			}
		}
		return false, fmt.Errorf("postgres_like_repo_insert_failed: %w", err)
	}

	return true, nil
}

/*
LikedVideos returns every video the user currently likes, most recently
liked first.
*/
func (repository *PostgresRepository) LikedVideos(context context.Context, userID string) ([]video.WithOwner, error) {
	query := fmt.Sprintf(`
		SELECT
			v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s,
			o.%s, o.%s, o.%s, o.%s
		FROM %s l
		JOIN %s v ON v.%s = l.%s
		JOIN %s o ON o.%s = v.%s
		WHERE l.%s = $1 AND l.%s IS NOT NULL
		ORDER BY l.%s DESC`,
		schema.ContentVideo.ID, schema.ContentVideo.OwnerID, schema.ContentVideo.Title,
		schema.ContentVideo.Description, schema.ContentVideo.VideoURL, schema.ContentVideo.ThumbnailURL,
		schema.ContentVideo.Duration, schema.ContentVideo.ViewCount, schema.ContentVideo.IsPublished,
		schema.ContentVideo.CreatedAt, schema.ContentVideo.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
		schema.SocialLike.Table,
		schema.ContentVideo.Table, schema.ContentVideo.ID, schema.SocialLike.VideoID,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentVideo.OwnerID,
		schema.SocialLike.LikedBy, schema.SocialLike.VideoID,
		schema.SocialLike.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_like_repo_liked_videos_failed: %w", err)
	}
	defer rows.Close()

	videos := []video.WithOwner{}
	for rows.Next() {
		var entry video.WithOwner
		if err := rows.Scan(
			&entry.ID,
			&entry.OwnerID,
			&entry.Title,
			&entry.Description,
			&entry.VideoURL,
			&entry.ThumbnailURL,
			&entry.Duration,
			&entry.Views,
			&entry.IsPublished,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&entry.Owner.ID,
			&entry.Owner.Username,
			&entry.Owner.FullName,
			&entry.Owner.AvatarURL,
		); err != nil {
			return nil, err
		}
		videos = append(videos, entry)
	}

	return videos, rows.Err()
}
