// Copyright (c) 2026 Vidora. All rights reserved.

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora/internal/content/video"
	"github.com/vidora-app/vidora/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the dashboard store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ChannelStats computes the four dashboard totals in a single round trip.
Likes count likes received on the channel's videos.
*/
func (repository *PostgresRepository) ChannelStats(context context.Context, channelID string) (*ChannelStats, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			(SELECT COALESCE(SUM(%s), 0) FROM %s WHERE %s = $1),
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			(SELECT COUNT(*) FROM %s l
			 JOIN %s v ON v.%s = l.%s
			 WHERE v.%s = $1)`,
		schema.ContentVideo.Table, schema.ContentVideo.OwnerID,
		schema.ContentVideo.ViewCount, schema.ContentVideo.Table, schema.ContentVideo.OwnerID,
		schema.SocialSubscription.Table, schema.SocialSubscription.ChannelID,
		schema.SocialLike.Table,
		schema.ContentVideo.Table, schema.ContentVideo.ID, schema.SocialLike.VideoID,
		schema.ContentVideo.OwnerID,
	)

	var stats ChannelStats
	err := repository.pool.QueryRow(context, query, channelID).Scan(
		&stats.TotalVideos,
		&stats.TotalViews,
		&stats.TotalSubscribers,
		&stats.TotalLikes,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_stats_repo_totals_failed: %w", err)
	}

	return &stats, nil
}

/*
ChannelVideos returns every video the channel owns, drafts included, newest
first.
*/
func (repository *PostgresRepository) ChannelVideos(context context.Context, channelID string) ([]video.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		schema.ContentVideo.ID, schema.ContentVideo.OwnerID, schema.ContentVideo.Title,
		schema.ContentVideo.Description, schema.ContentVideo.VideoURL,
		schema.ContentVideo.ThumbnailURL, schema.ContentVideo.Duration,
		schema.ContentVideo.ViewCount, schema.ContentVideo.IsPublished,
		schema.ContentVideo.CreatedAt, schema.ContentVideo.UpdatedAt,
		schema.ContentVideo.Table,
		schema.ContentVideo.OwnerID,
		schema.ContentVideo.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("postgres_stats_repo_videos_failed: %w", err)
	}
	defer rows.Close()

	videos := []video.Video{}
	for rows.Next() {
		var item video.Video
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Title,
			&item.Description,
			&item.VideoURL,
			&item.ThumbnailURL,
			&item.Duration,
			&item.Views,
			&item.IsPublished,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		videos = append(videos, item)
	}

	return videos, rows.Err()
}
