// Copyright (c) 2026 Vidora. All rights reserved.

package users

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vidora-app/vidora/internal/media"
	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/sec"
	"github.com/vidora-app/vidora/pkg/uuid"
)

// TokenProvider abstracts JWT issuance and refresh verification so the
// service can be tested without real secrets. [sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(userID, username string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	VerifyRefreshToken(token string) (*sec.RefreshClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// # Inputs and Outputs

// RegisterInput carries the multipart registration form.
type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     *media.Upload
	CoverImage *media.Upload // optional
}

// LoginInput carries the login credentials. Either Username or Email
// identifies the account.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccountInput carries partial profile updates. Blank fields are
// left unchanged; at least one field must be provided.
type UpdateAccountInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Session is the authenticated payload returned by login and refresh. The
// same token pair is also mirrored into HTTP-only cookies by the handler.
type Session struct {
	User         *sec.Principal `json:"user"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// # Service

// Service implements the account use cases on top of [Repository], the media
// delegate, and the token provider.
type Service struct {
	repo   Repository
	media  media.Store
	tokens TokenProvider
	logger *slog.Logger
}

// NewService wires the account service.
func NewService(repo Repository, mediaStore media.Store, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		media:  mediaStore,
		tokens: tokens,
		logger: logger,
	}
}

/*
Register creates a new account from the multipart registration form.

The avatar upload is mandatory and is stored before the account row is
created; the optional cover image is stored alongside it. A username or
email already in use fails with 409 before any upload happens.

Returns:
  - *sec.Principal: The created account, without credential material
  - error: apperr.Conflict, apperr.BadRequest, or persistence failures
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*sec.Principal, error) {
	username := normalize(input.Username)
	email := normalize(input.Email)

	exists, err := service.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("User with email or username already exists")
	}

	if input.Avatar == nil {
		return nil, apperr.BadRequest("Avatar file is required")
	}

	avatar, err := service.media.Store(ctx, input.Avatar.Filename, input.Avatar.ContentType, input.Avatar.Body)
	if err != nil {
		return nil, err
	}

	coverImageURL := ""
	if input.CoverImage != nil {
		coverImage, err := service.media.Store(ctx, input.CoverImage.Filename, input.CoverImage.ContentType, input.CoverImage.Body)
		if err != nil {
			service.removeAsset(ctx, avatar.URL)
			return nil, err
		}
		coverImageURL = coverImage.URL
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &User{
		ID:            uuid.New(),
		Username:      username,
		Email:         email,
		FullName:      strings.TrimSpace(input.FullName),
		PasswordHash:  passwordHash,
		AvatarURL:     avatar.URL,
		CoverImageURL: coverImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := service.repo.Create(ctx, user); err != nil {
		service.removeAsset(ctx, avatar.URL)
		service.removeAsset(ctx, coverImageURL)
		return nil, err
	}

	service.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user.Principal(), nil
}

/*
Login verifies credentials and issues a fresh token pair.

The account is located by email when present, otherwise by username. The
issued refresh token replaces any previously stored one, so logging in on a
second device invalidates the first device's refresh credential.

Returns:
  - *Session: Principal plus the issued token pair
  - error: apperr.NotFound for unknown accounts, apperr.Unauthorized for a
    wrong password
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if input.Username == "" && input.Email == "" {
		return nil, apperr.BadRequest("Username or email is required")
	}

	var user *User
	var err error
	if input.Email != "" {
		user, err = service.repo.FindByEmail(ctx, normalize(input.Email))
	} else {
		user, err = service.repo.FindByUsername(ctx, normalize(input.Username))
	}
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid user credentials")
	}

	session, err := service.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))
	return session, nil
}

/*
Logout revokes the stored refresh token, ending the account's session on
every device. The access token remains valid until its natural expiry.
*/
func (service *Service) Logout(ctx context.Context, userID string) error {
	return service.repo.SetRefreshToken(ctx, userID, "")
}

/*
Refresh exchanges a presented refresh token for a fresh token pair.

Signature validity alone is not enough: the presented value must be
byte-identical to the single token stored on the account row. A mismatch
means the token was already rotated or revoked.

Returns:
  - *Session: Principal plus the newly issued token pair
  - error: apperr.Unauthorized for missing, invalid, rotated, or revoked tokens
*/
func (service *Service) Refresh(ctx context.Context, presented string) (*Session, error) {
	if presented == "" {
		return nil, apperr.Unauthorized("Unauthorized request")
	}

	claims, err := service.tokens.VerifyRefreshToken(presented)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	user, err := service.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized("Invalid refresh token")
		}
		return nil, err
	}

	if user.RefreshToken == "" || user.RefreshToken != presented {
		return nil, apperr.Unauthorized("Refresh token is expired or used")
	}

	return service.issueSession(ctx, user)
}

/*
ChangePassword verifies the old password and stores a hash of the new one.

Returns:
  - error: apperr.BadRequest when the old password does not match
*/
func (service *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.BadRequest("Invalid old password")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return service.repo.UpdatePassword(ctx, userID, newHash)
}

/*
UpdateAccount applies a partial profile update and returns the new view.
*/
func (service *Service) UpdateAccount(ctx context.Context, userID string, input UpdateAccountInput) (*sec.Principal, error) {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = normalize(input.Username)
	}
	if input.Email != "" {
		user.Email = normalize(input.Email)
	}
	if input.FullName != "" {
		user.FullName = strings.TrimSpace(input.FullName)
	}
	user.UpdatedAt = time.Now()

	if err := service.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user.Principal(), nil
}

/*
UpdateAvatar stores the new avatar, points the account at it, and removes
the previous asset. Removal of the old asset is best-effort: an orphaned
object must not fail an otherwise successful profile update.
*/
func (service *Service) UpdateAvatar(ctx context.Context, userID string, upload *media.Upload) (*sec.Principal, error) {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := service.media.Store(ctx, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateAvatar(ctx, userID, asset.URL); err != nil {
		service.removeAsset(ctx, asset.URL)
		return nil, err
	}

	service.removeAsset(ctx, user.AvatarURL)

	user.AvatarURL = asset.URL
	return user.Principal(), nil
}

/*
UpdateCoverImage mirrors [Service.UpdateAvatar] for the cover image.
*/
func (service *Service) UpdateCoverImage(ctx context.Context, userID string, upload *media.Upload) (*sec.Principal, error) {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	asset, err := service.media.Store(ctx, upload.Filename, upload.ContentType, upload.Body)
	if err != nil {
		return nil, err
	}

	if err := service.repo.UpdateCoverImage(ctx, userID, asset.URL); err != nil {
		service.removeAsset(ctx, asset.URL)
		return nil, err
	}

	service.removeAsset(ctx, user.CoverImageURL)

	user.CoverImageURL = asset.URL
	return user.Principal(), nil
}

/*
ChannelProfile returns the public channel view for a username, with the
isSubscribed flag computed against the viewing principal.
*/
func (service *Service) ChannelProfile(ctx context.Context, username, viewerID string) (*ChannelProfile, error) {
	profile, err := service.repo.ChannelProfile(ctx, normalize(username), viewerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Channel")
		}
		return nil, err
	}
	return profile, nil
}

/*
WatchHistory lists the caller's watched videos, most recent first.
*/
func (service *Service) WatchHistory(ctx context.Context, userID string) ([]WatchedVideo, error) {
	return service.repo.WatchHistory(ctx, userID)
}

/*
RecordWatch upserts a watch-history entry. Invoked by the video layer when a
video is fetched by an authenticated viewer.
*/
func (service *Service) RecordWatch(ctx context.Context, userID, videoID string) error {
	return service.repo.AddWatchHistory(ctx, userID, videoID)
}

/*
RemoveFromWatchHistory deletes one watch-history entry of the caller.
*/
func (service *Service) RemoveFromWatchHistory(ctx context.Context, userID, videoID string) error {
	return service.repo.RemoveWatchHistory(ctx, userID, videoID)
}

/*
ResolvePrincipal loads the credential-free identity view for a user id. It
backs the authentication middleware, so a deleted account fails token
verification on the very next request.
*/
func (service *Service) ResolvePrincipal(ctx context.Context, userID string) (*sec.Principal, error) {
	user, err := service.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}

// # Internals

// issueSession generates a fresh token pair and persists the refresh token
// as the account's single valid rotation credential.
func (service *Service) issueSession(ctx context.Context, user *User) (*Session, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := service.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &Session{
		User:         user.Principal(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// removeAsset deletes a stored media object by URL, logging failures instead
// of propagating them.
func (service *Service) removeAsset(ctx context.Context, url string) {
	assetID := media.AssetIDFromURL(url)
	if assetID == "" {
		return
	}
	if err := service.media.Remove(ctx, assetID); err != nil {
		service.logger.WarnContext(ctx, "failed to remove media asset",
			slog.String("asset_id", assetID),
			slog.Any("error", err),
		)
	}
}

// normalize lower-cases and trims identity fields so lookups are
// case-insensitive.
func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// isNotFound reports whether err maps to a 404.
func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}
