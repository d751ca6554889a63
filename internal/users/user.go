// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package users implements the account identity layer: registration, login,
credential rotation, profile management, channel discovery, and watch history.

# Architecture

This layer is the "Truth" of the system. The [User] entity encapsulates all
business rules related to account identity, and the package exposes the
[sec.Principal] view consumed by the authentication middleware.
*/
package users

import (
	"context"
	"time"

	"github.com/vidora-app/vidora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Vidora platform.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	PasswordHash  string    `json:"-"` // Explicitly omitted from JSON for security.
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	RefreshToken  string    `json:"-"` // The single currently-valid rotation credential. Never serialized.
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Principal returns the credential-free identity view of the user.
func (u *User) Principal() *sec.Principal {
	return &sec.Principal{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// ChannelProfile is the public channel view of a user, enriched with
// subscription counts relative to the viewing principal.
type ChannelProfile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	AvatarURL         string `json:"avatar"`
	CoverImageURL     string `json:"coverImage,omitempty"`
	SubscriberCount   int    `json:"subscriberCount"`
	SubscribedToCount int    `json:"channelsSubscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// OwnerSummary is the compact owner projection joined into list rows.
type OwnerSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatar"`
}

// WatchedVideo is one watch-history row: the video joined with its owner.
type WatchedVideo struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	VideoURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	Owner        OwnerSummary `json:"owner"`
	WatchedAt    time.Time    `json:"watchedAt"`
}

// # Data Access

// Repository defines the data access contract for user accounts.
type Repository interface {

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - ctx: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(ctx context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username
		(case-normalized).

		Parameters:
		  - ctx: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - ctx: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		ExistsByUsernameOrEmail reports whether any account already holds the
		given username or email. Used for the registration conflict check.

		Parameters:
		  - ctx: context.Context
		  - username: string
		  - email: string

		Returns:
		  - bool: true when a matching account exists
		  - error: Retrieval failures
	*/
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)

	/*
		UpdateProfile persists changes to username, email, and full name.

		Parameters:
		  - ctx: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	UpdateProfile(ctx context.Context, user *User) error

	/*
		UpdateAvatar replaces only the avatar URL.
	*/
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error

	/*
		UpdateCoverImage replaces only the cover image URL.
	*/
	UpdateCoverImage(ctx context.Context, userID, coverImageURL string) error

	/*
		UpdatePassword replaces only the user's password hash.
	*/
	UpdatePassword(ctx context.Context, userID, newHash string) error

	/*
		SetRefreshToken overwrites the single stored rotation credential.
		An empty value clears it, revoking any previously issued credential.
	*/
	SetRefreshToken(ctx context.Context, userID, token string) error

	/*
		ChannelProfile returns the public channel view for a username, with
		subscription counts computed relative to viewerID.

		Returns:
		  - *ChannelProfile: Hydrated channel view
		  - error: apperr.NotFound if the channel does not exist
	*/
	ChannelProfile(ctx context.Context, username, viewerID string) (*ChannelProfile, error)

	/*
		WatchHistory lists the user's watched videos joined with their owners,
		most recently watched first.
	*/
	WatchHistory(ctx context.Context, userID string) ([]WatchedVideo, error)

	/*
		AddWatchHistory upserts a (user, video) watch record, refreshing the
		watched-at timestamp on repeat views.
	*/
	AddWatchHistory(ctx context.Context, userID, videoID string) error

	/*
		RemoveWatchHistory deletes a single (user, video) watch record.
	*/
	RemoveWatchHistory(ctx context.Context, userID, videoID string) error
}

// # Field Identifiers

// Field names used for validation in the users domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldFullName    = "fullName"
	FieldPassword    = "password"
	FieldOldPassword = "oldPassword"
	FieldNewPassword = "newPassword"
	FieldAvatar      = "avatar"
	FieldCoverImage  = "coverImage"
	FieldVideoID     = "videoId"
)
