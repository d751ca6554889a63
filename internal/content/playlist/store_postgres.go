// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package playlist (Postgres) implements the storage layer for playlists.

# Schema Table Mapping
  - content.playlist: Playlist rows.
  - content.playlistvideo: Ordered membership join table.
*/
package playlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora/internal/content/video"
	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the playlist store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a new playlist row.
*/
func (repository *PostgresRepository) Create(context context.Context, playlist *Playlist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.ContentPlaylist.Table, strings.Join(schema.ContentPlaylist.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		playlist.ID,
		playlist.OwnerID,
		playlist.Name,
		playlist.Description,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)

	// If the insert fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_playlist_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves one playlist row.

Returns:
  - *Playlist: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Playlist, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		strings.Join(schema.ContentPlaylist.Columns(), ", "),
		schema.ContentPlaylist.Table,
		schema.ContentPlaylist.ID,
	)

	playlist := &Playlist{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Playlist")
		}
		return nil, fmt.Errorf("postgres_playlist_repo_find_failed: %w", err)
	}

	return playlist, nil
}

/*
ListByOwner returns all playlists of a user with video counts, newest first.
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]Summary, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, p.%s, p.%s, p.%s,
			(SELECT COUNT(*) FROM %s pv WHERE pv.%s = p.%s)
		FROM %s p
		WHERE p.%s = $1
		ORDER BY p.%s DESC`,
		schema.ContentPlaylist.ID, schema.ContentPlaylist.OwnerID, schema.ContentPlaylist.Name,
		schema.ContentPlaylist.Description, schema.ContentPlaylist.CreatedAt, schema.ContentPlaylist.UpdatedAt,
		schema.ContentPlaylistVideo.Table, schema.ContentPlaylistVideo.PlaylistID, schema.ContentPlaylist.ID,
		schema.ContentPlaylist.Table,
		schema.ContentPlaylist.OwnerID,
		schema.ContentPlaylist.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_list_failed: %w", err)
	}
	defer rows.Close()

	playlists := []Summary{}
	for rows.Next() {
		var summary Summary
		if err := rows.Scan(
			&summary.ID,
			&summary.OwnerID,
			&summary.Name,
			&summary.Description,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.VideoCount,
		); err != nil {
			return nil, err
		}
		playlists = append(playlists, summary)
	}

	return playlists, rows.Err()
}

/*
Update syncs name, description, and updatedat.
*/
func (repository *PostgresRepository) Update(context context.Context, playlist *Playlist) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.ContentPlaylist.Table,
		schema.ContentPlaylist.Name, schema.ContentPlaylist.Description, schema.ContentPlaylist.UpdatedAt,
		schema.ContentPlaylist.ID,
	)

	_, err := repository.pool.Exec(context, query,
		playlist.ID,
		playlist.Name,
		playlist.Description,
		playlist.UpdatedAt,
	)

	// If the update fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_playlist_repo_update_failed: %w", err)
	}

	return nil
}

/*
Delete removes the playlist row; membership rows cascade away.
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.ContentPlaylist.Table, schema.ContentPlaylist.ID)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_playlist_repo_delete_failed: %w", err)
	}

	return nil
}

/*
AddVideo appends a video at the next free position.

A unique violation means the video is already a member (400); a
foreign-key violation means the video does not exist (404).
*/
func (repository *PostgresRepository) AddVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		SELECT $1, $2, COALESCE(MAX(%s), 0) + 1, NOW()
		FROM %s WHERE %s = $1`,
		schema.ContentPlaylistVideo.Table,
		schema.ContentPlaylistVideo.PlaylistID, schema.ContentPlaylistVideo.VideoID,
		schema.ContentPlaylistVideo.Position, schema.ContentPlaylistVideo.AddedAt,
		schema.ContentPlaylistVideo.Position,
		schema.ContentPlaylistVideo.Table, schema.ContentPlaylistVideo.PlaylistID,
	)

	_, err := repository.pool.Exec(context, query, playlistID, videoID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return apperr.BadRequest("Video is already in the playlist")
			case "23503":
				return apperr.NotFound("Video")
			}
		}
		return fmt.Errorf("postgres_playlist_repo_add_video_failed: %w", err)
	}

	return nil
}

/*
RemoveVideo detaches a video; removing a non-member is a client error.
*/
func (repository *PostgresRepository) RemoveVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ContentPlaylistVideo.Table,
		schema.ContentPlaylistVideo.PlaylistID, schema.ContentPlaylistVideo.VideoID,
	)

	tag, err := repository.pool.Exec(context, query, playlistID, videoID)
	if err != nil {
		return fmt.Errorf("postgres_playlist_repo_remove_video_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.BadRequest("Video is not in the playlist")
	}

	return nil
}

/*
Videos returns the playlist's member videos joined with their owners, in
insertion order.
*/
func (repository *PostgresRepository) Videos(context context.Context, playlistID string) ([]video.WithOwner, error) {
	query := fmt.Sprintf(`
		SELECT
			v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s,
			o.%s, o.%s, o.%s, o.%s
		FROM %s pv
		JOIN %s v ON v.%s = pv.%s
		JOIN %s o ON o.%s = v.%s
		WHERE pv.%s = $1
		ORDER BY pv.%s ASC`,
		schema.ContentVideo.ID, schema.ContentVideo.OwnerID, schema.ContentVideo.Title,
		schema.ContentVideo.Description, schema.ContentVideo.VideoURL, schema.ContentVideo.ThumbnailURL,
		schema.ContentVideo.Duration, schema.ContentVideo.ViewCount, schema.ContentVideo.IsPublished,
		schema.ContentVideo.CreatedAt, schema.ContentVideo.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
		schema.ContentPlaylistVideo.Table,
		schema.ContentVideo.Table, schema.ContentVideo.ID, schema.ContentPlaylistVideo.VideoID,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentVideo.OwnerID,
		schema.ContentPlaylistVideo.PlaylistID,
		schema.ContentPlaylistVideo.Position,
	)

	rows, err := repository.pool.Query(context, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("postgres_playlist_repo_videos_failed: %w", err)
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
