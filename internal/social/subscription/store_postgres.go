// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package subscription (Postgres) implements the storage layer for the
channel-follow graph.

# Schema Table Mapping
  - social.subscription: One row per (subscriber, channel) edge.
  - users.account: Read-only joins for both listing directions.
*/
package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/database/schema"
	"github.com/vidora-app/vidora/internal/users"
	"github.com/vidora-app/vidora/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the subscription store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Toggle flips the (subscriber, channel) edge with a delete-then-insert
strategy; the unique index absorbs concurrent duplicate toggles.
*/
func (repository *PostgresRepository) Toggle(context context.Context, subscriberID, channelID string) (bool, error) {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialSubscription.Table,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID)

	tag, err := repository.pool.Exec(context, deleteQuery, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("postgres_subscription_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, NOW())`,
		schema.SocialSubscription.Table,
		fmt.Sprintf("%s, %s, %s, %s",
			schema.SocialSubscription.ID, schema.SocialSubscription.SubscriberID,
			schema.SocialSubscription.ChannelID, schema.SocialSubscription.CreatedAt),
	)

	_, err = repository.pool.Exec(context, insertQuery, uuid.New(), subscriberID, channelID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return false, apperr.NotFound("Channel")
			case "23505":
				// Lost a race against an identical toggle; the edge exists.
				return true, nil
			}
		}
		return false, fmt.Errorf("postgres_subscription_repo_insert_failed: %w", err)
	}

	return true, nil
}

/*
Subscribers lists the accounts subscribed to a channel, newest first. A
missing channel answers 404 rather than an empty list.
*/
func (repository *PostgresRepository) Subscribers(context context.Context, channelID string) ([]users.OwnerSummary, error) {
	if err := repository.assertAccountExists(context, channelID); err != nil {
		return nil, err
	}

	return repository.listEdge(context, channelID,
		schema.SocialSubscription.ChannelID, schema.SocialSubscription.SubscriberID)
}

/*
SubscribedChannels lists the channels a user is subscribed to, newest first.
*/
func (repository *PostgresRepository) SubscribedChannels(context context.Context, subscriberID string) ([]users.OwnerSummary, error) {
	return repository.listEdge(context, subscriberID,
		schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID)
}

// # Internals

// listEdge walks the subscription graph from matchColumn to joinColumn and
// returns the account summaries on the far side.
func (repository *PostgresRepository) listEdge(context context.Context, id, matchColumn, joinColumn string) ([]users.OwnerSummary, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s
		FROM %s s
		JOIN %s a ON a.%s = s.%s
		WHERE s.%s = $1
		ORDER BY s.%s DESC`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
		schema.SocialSubscription.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, joinColumn,
		matchColumn,
		schema.SocialSubscription.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, fmt.Errorf("postgres_subscription_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := []users.OwnerSummary{}
	for rows.Next() {
		var account users.OwnerSummary
		if err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.FullName,
			&account.AvatarURL,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// assertAccountExists answers 404 for subscriber listings of deleted channels.
func (repository *PostgresRepository) assertAccountExists(context context.Context, id string) error {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.UserAccount.Table, schema.UserAccount.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("postgres_subscription_repo_exists_failed: %w", err)
	}
	if !exists {
		return apperr.NotFound("Channel")
	}

	return nil
}
