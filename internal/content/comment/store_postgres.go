// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package comment (Postgres) implements the storage layer for video comments.

# Schema Table Mapping
  - content.comment: Comment rows.
  - users.account: Read-only joins for author summaries.
*/
package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/database/schema"
	"github.com/vidora-app/vidora/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the comment store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a new comment row. A foreign-key violation on the video
column maps to 404: commenting on a deleted video is a client error, not a
server fault.
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.ContentComment.Table, strings.Join(schema.ContentComment.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	// If the insert fails, return an error
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperr.NotFound("Video")
		}
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves one comment row.

Returns:
  - *Comment: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		strings.Join(schema.ContentComment.Columns(), ", "),
		schema.ContentComment.Table,
		schema.ContentComment.ID,
	)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_failed: %w", err)
	}

	return comment, nil
}

/*
UpdateContent replaces the comment body and refreshes updatedat.
*/
func (repository *PostgresRepository) UpdateContent(context context.Context, id, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.ContentComment.Table, schema.ContentComment.Content,
		schema.ContentComment.UpdatedAt, schema.ContentComment.ID)

	_, err := repository.pool.Exec(context, query, id, content)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}

	return nil
}

/*
Delete removes the comment row.
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentComment.Table, schema.ContentComment.ID)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	return nil
}

/*
ListByVideo returns one page of a video's comments, newest first, plus the
total count. A missing video answers 404 rather than an empty page.
*/
func (repository *PostgresRepository) ListByVideo(context context.Context, videoID string, page pagination.Params) ([]WithOwner, int64, error) {
	existsQuery := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.ContentVideo.Table, schema.ContentVideo.ID)

	var videoExists bool
	if err := repository.pool.QueryRow(context, existsQuery, videoID).Scan(&videoExists); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_video_exists_failed: %w", err)
	}
	if !videoExists {
		return nil, 0, apperr.NotFound("Video")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.ContentComment.Table, schema.ContentComment.VideoID)

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			o.%s, o.%s, o.%s, o.%s
		FROM %s c
		JOIN %s o ON o.%s = c.%s
		WHERE c.%s = $1
		ORDER BY c.%s DESC
		LIMIT %d OFFSET %d`,
		schema.ContentComment.ID, schema.ContentComment.VideoID, schema.ContentComment.OwnerID,
		schema.ContentComment.Content, schema.ContentComment.CreatedAt, schema.ContentComment.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
		schema.ContentComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentComment.OwnerID,
		schema.ContentComment.VideoID,
		schema.ContentComment.CreatedAt,
		page.Limit, page.Offset(),
	)

	rows, err := repository.pool.Query(context, query, videoID)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	comments := []WithOwner{}
	for rows.Next() {
		var comment WithOwner
		if err := rows.Scan(
			&comment.ID,
			&comment.VideoID,
			&comment.OwnerID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.Owner.ID,
			&comment.Owner.Username,
			&comment.Owner.FullName,
			&comment.Owner.AvatarURL,
		); err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}

	return comments, total, rows.Err()
}

// isForeignKeyViolation reports whether err carries Postgres SQLSTATE 23503.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
