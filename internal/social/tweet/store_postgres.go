// Copyright (c) 2026 Vidora. All rights reserved.

package tweet

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

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the tweet store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new tweet row.
*/
func (repository *PostgresRepository) Create(context context.Context, tweet *Tweet) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`,
		schema.SocialTweet.Table,
		strings.Join(schema.SocialTweet.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		tweet.ID, tweet.OwnerID, tweet.Content, tweet.CreatedAt, tweet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_tweet_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID returns one tweet without the owner join.

Returns:
  - error: apperr.NotFound when no row matches
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tweet, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.SocialTweet.Columns(), ", "),
		schema.SocialTweet.Table,
		schema.SocialTweet.ID,
	)

	var tweet Tweet
	err := repository.pool.QueryRow(context, query, id).Scan(
		&tweet.ID,
		&tweet.OwnerID,
		&tweet.Content,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Tweet")
		}
		return nil, fmt.Errorf("postgres_tweet_repo_find_failed: %w", err)
	}

	return &tweet, nil
}

/*
ListByOwner returns a user's tweets joined with the author summary, newest
first. A missing user answers 404 rather than an empty list.
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]WithOwner, error) {
	if err := repository.assertAccountExists(context, ownerID); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, t.%s, t.%s,
		       a.%s, a.%s, a.%s, a.%s
		FROM %s t
		JOIN %s a ON a.%s = t.%s
		WHERE t.%s = $1
		ORDER BY t.%s DESC`,
		schema.SocialTweet.ID, schema.SocialTweet.OwnerID, schema.SocialTweet.Content,
		schema.SocialTweet.CreatedAt, schema.SocialTweet.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
		schema.SocialTweet.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialTweet.OwnerID,
		schema.SocialTweet.OwnerID,
		schema.SocialTweet.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_tweet_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tweets := []WithOwner{}
	for rows.Next() {
		var tweet WithOwner
		if err := rows.Scan(
			&tweet.ID,
			&tweet.OwnerID,
			&tweet.Content,
			&tweet.CreatedAt,
			&tweet.UpdatedAt,
			&tweet.Owner.ID,
			&tweet.Owner.Username,
			&tweet.Owner.FullName,
			&tweet.Owner.AvatarURL,
		); err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}

	return tweets, rows.Err()
}

/*
UpdateContent replaces the tweet body and refreshes updatedat.
*/
func (repository *PostgresRepository) UpdateContent(context context.Context, id, content string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.SocialTweet.Table,
		schema.SocialTweet.Content, schema.SocialTweet.UpdatedAt,
		schema.SocialTweet.ID,
	)

	tag, err := repository.pool.Exec(context, query, id, content)
	if err != nil {
		return fmt.Errorf("postgres_tweet_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tweet")
	}

	return nil
}

/*
Delete removes the tweet row; likes on it cascade away.
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialTweet.Table, schema.SocialTweet.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_tweet_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tweet")
	}

	return nil
}

// assertAccountExists answers 404 for tweet listings of deleted users.
func (repository *PostgresRepository) assertAccountExists(context context.Context, id string) error {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.UserAccount.Table, schema.UserAccount.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("postgres_tweet_repo_exists_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("User")
	}

	return nil
}
