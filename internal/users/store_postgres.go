// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package users (Postgres) implements the storage layer for account identity.

# Schema Table Mapping
  - users.account: Master identity, profile data, and the stored refresh token.
  - content.watchhistory: Per-user watched-video records.
  - social.subscription: Read-only joins for the channel profile view.
*/
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the Postgres implementation of the account store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Identity Methods

/*
Create inserts a new account row.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict on unique violations, or insertion failures
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.UserAccount.Table, strings.Join(schema.UserAccount.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.AvatarURL,
		nullable(user.CoverImageURL),
		nullable(user.RefreshToken),
		user.CreatedAt,
		user.UpdatedAt,
	)

	// If the insert fails, return an error
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("User with email or username already exists")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.ID, id)
}

/*
FindByUsername retrieves a user record by its case-normalized username.
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Username, username)
}

/*
FindByEmail retrieves a user record by its email address.
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Email, email)
}

/*
ExistsByUsernameOrEmail checks the registration uniqueness constraint ahead
of the insert so the API can answer 409 without relying on the database error.
*/
func (repository *PostgresRepository) ExistsByUsernameOrEmail(context context.Context, username, email string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 OR %s = $2)`,
		schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.Email,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, username, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_failed: %w", err)
	}

	return exists, nil
}

/*
UpdateProfile syncs username, email, and full name, refreshing updatedat.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.Conflict when the new username or email is taken
*/
func (repository *PostgresRepository) UpdateProfile(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Email, schema.UserAccount.FullName,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		time.Now(),
	)

	// If the update fails, return an error
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("User with email or username already exists")
		}
		return fmt.Errorf("postgres_user_repo_update_profile_failed: %w", err)
	}

	return nil
}

/*
UpdateAvatar replaces only the avatar URL.
*/
func (repository *PostgresRepository) UpdateAvatar(context context.Context, userID, avatarURL string) error {
	return repository.updateColumn(context, userID, schema.UserAccount.AvatarURL, avatarURL)
}

/*
UpdateCoverImage replaces only the cover image URL.
*/
func (repository *PostgresRepository) UpdateCoverImage(context context.Context, userID, coverImageURL string) error {
	return repository.updateColumn(context, userID, schema.UserAccount.CoverImageURL, coverImageURL)
}

/*
UpdatePassword replaces only the password hash.
*/
func (repository *PostgresRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	return repository.updateColumn(context, userID, schema.UserAccount.Password, newHash)
}

/*
SetRefreshToken overwrites the stored rotation credential. An empty token is
persisted as NULL, revoking the refresh flow for the account.
*/
func (repository *PostgresRepository) SetRefreshToken(context context.Context, userID, token string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.RefreshToken, schema.UserAccount.ID)

	_, err := repository.pool.Exec(context, query, userID, nullable(token))
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_refresh_token_failed: %w", err)
	}

	return nil
}

// # Channel Methods

/*
ChannelProfile retrieves the public channel view of a username with
subscriber counts and the viewer's subscription state in one round trip.

Parameters:
  - context: context.Context
  - username: string (case-normalized)
  - viewerID: string (the authenticated principal)

Returns:
  - *ChannelProfile: Hydrated channel view
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	query := fmt.Sprintf(`
		SELECT
			u.%s, u.%s, u.%s, u.%s, u.%s, COALESCE(u.%s, ''),
			(SELECT COUNT(*) FROM %s s WHERE s.%s = u.%s),
			(SELECT COUNT(*) FROM %s s WHERE s.%s = u.%s),
			EXISTS(SELECT 1 FROM %s s WHERE s.%s = u.%s AND s.%s = $2)
		FROM %s u
		WHERE u.%s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.SocialSubscription.Table, schema.SocialSubscription.ChannelID, schema.UserAccount.ID,
		schema.SocialSubscription.Table, schema.SocialSubscription.SubscriberID, schema.UserAccount.ID,
		schema.SocialSubscription.Table, schema.SocialSubscription.ChannelID, schema.UserAccount.ID,
		schema.SocialSubscription.SubscriberID,
		schema.UserAccount.Table,
		schema.UserAccount.Username,
	)

	profile := &ChannelProfile{}
	err := repository.pool.QueryRow(context, query, username, viewerID).Scan(
		&profile.ID,
		&profile.Username,
		&profile.Email,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscriberCount,
		&profile.SubscribedToCount,
		&profile.IsSubscribed,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, fmt.Errorf("postgres_user_repo_channel_profile_failed: %w", err)
	}

	return profile, nil
}

// # Watch History Methods

/*
WatchHistory lists the user's watched videos joined with their owners,
most recently watched first.
*/
func (repository *PostgresRepository) WatchHistory(context context.Context, userID string) ([]WatchedVideo, error) {
	query := fmt.Sprintf(`
		SELECT
			v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s,
			o.%s, o.%s, o.%s, o.%s,
			h.%s
		FROM %s h
		JOIN %s v ON v.%s = h.%s
		JOIN %s o ON o.%s = v.%s
		WHERE h.%s = $1
		ORDER BY h.%s DESC`,
		schema.ContentVideo.ID, schema.ContentVideo.Title, schema.ContentVideo.Description,
		schema.ContentVideo.VideoURL, schema.ContentVideo.ThumbnailURL, schema.ContentVideo.Duration,
		schema.ContentVideo.ViewCount,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.FullName,
		schema.UserAccount.AvatarURL,
		schema.ContentWatchHistory.WatchedAt,
		schema.ContentWatchHistory.Table,
		schema.ContentVideo.Table, schema.ContentVideo.ID, schema.ContentWatchHistory.VideoID,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.ContentVideo.OwnerID,
		schema.ContentWatchHistory.UserID,
		schema.ContentWatchHistory.WatchedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_watch_history_failed: %w", err)
	}
	defer rows.Close()

	history := []WatchedVideo{}
	for rows.Next() {
		var entry WatchedVideo
		if err := rows.Scan(
			&entry.ID,
			&entry.Title,
			&entry.Description,
			&entry.VideoURL,
			&entry.ThumbnailURL,
			&entry.Duration,
			&entry.Views,
			&entry.Owner.ID,
			&entry.Owner.Username,
			&entry.Owner.FullName,
			&entry.Owner.AvatarURL,
			&entry.WatchedAt,
		); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}

/*
AddWatchHistory upserts a (user, video) watch record, refreshing the
watchedat timestamp on repeat views.
*/
func (repository *PostgresRepository) AddWatchHistory(context context.Context, userID, videoID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = NOW()`,
		schema.ContentWatchHistory.Table,
		schema.ContentWatchHistory.UserID, schema.ContentWatchHistory.VideoID, schema.ContentWatchHistory.WatchedAt,
		schema.ContentWatchHistory.UserID, schema.ContentWatchHistory.VideoID,
		schema.ContentWatchHistory.WatchedAt,
	)

	_, err := repository.pool.Exec(context, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_add_watch_history_failed: %w", err)
	}

	return nil
}

/*
RemoveWatchHistory deletes a single (user, video) watch record. Removing an
entry that does not exist is not an error.
*/
func (repository *PostgresRepository) RemoveWatchHistory(context context.Context, userID, videoID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ContentWatchHistory.Table,
		schema.ContentWatchHistory.UserID, schema.ContentWatchHistory.VideoID,
	)

	_, err := repository.pool.Exec(context, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_remove_watch_history_failed: %w", err)
	}

	return nil
}

// # Internals

// findBy loads a full account row matched on a single column.
func (repository *PostgresRepository) findBy(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.Password, schema.UserAccount.AvatarURL,
		schema.UserAccount.CoverImageURL, schema.UserAccount.RefreshToken,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		column,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	return user, nil
}

// updateColumn sets a single column plus updatedat on the account row.
func (repository *PostgresRepository) updateColumn(context context.Context, userID, column, value string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table, column, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	_, err := repository.pool.Exec(context, query, userID, value, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_column_failed: %w", err)
	}

	return nil
}

// nullable maps "" to NULL for optional text columns.
func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// isUniqueViolation reports whether err carries Postgres SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
