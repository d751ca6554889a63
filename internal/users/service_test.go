// Copyright (c) 2026 Vidora. All rights reserved.

package users

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora/internal/media"
	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/sec"
)

// # Test Doubles

// fakeRepository is an in-memory [Repository] keyed by user id.
type fakeRepository struct {
	users   map[string]*User
	history map[string][]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:   map[string]*User{},
		history: map[string][]string{},
	}
}

func (r *fakeRepository) Create(_ context.Context, user *User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepository) UpdateProfile(_ context.Context, user *User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Username = user.Username
	stored.Email = user.Email
	stored.FullName = user.FullName
	return nil
}

func (r *fakeRepository) UpdateAvatar(_ context.Context, userID, avatarURL string) error {
	r.users[userID].AvatarURL = avatarURL
	return nil
}

func (r *fakeRepository) UpdateCoverImage(_ context.Context, userID, coverImageURL string) error {
	r.users[userID].CoverImageURL = coverImageURL
	return nil
}

func (r *fakeRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	r.users[userID].PasswordHash = newHash
	return nil
}

func (r *fakeRepository) SetRefreshToken(_ context.Context, userID, token string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.RefreshToken = token
	return nil
}

func (r *fakeRepository) ChannelProfile(_ context.Context, username, _ string) (*ChannelProfile, error) {
	for _, user := range r.users {
		if user.Username == username {
			return &ChannelProfile{ID: user.ID, Username: user.Username}, nil
		}
	}
	return nil, apperr.NotFound("Channel")
}

func (r *fakeRepository) WatchHistory(_ context.Context, userID string) ([]WatchedVideo, error) {
	entries := []WatchedVideo{}
	for _, videoID := range r.history[userID] {
		entries = append(entries, WatchedVideo{ID: videoID})
	}
	return entries, nil
}

func (r *fakeRepository) AddWatchHistory(_ context.Context, userID, videoID string) error {
	for _, existing := range r.history[userID] {
		if existing == videoID {
			return nil
		}
	}
	r.history[userID] = append(r.history[userID], videoID)
	return nil
}

func (r *fakeRepository) RemoveWatchHistory(_ context.Context, userID, videoID string) error {
	kept := []string{}
	for _, existing := range r.history[userID] {
		if existing != videoID {
			kept = append(kept, existing)
		}
	}
	r.history[userID] = kept
	return nil
}

// fakeMediaStore records uploads and removals without touching a bucket.
type fakeMediaStore struct {
	uploads int
	removed []string
}

func (s *fakeMediaStore) Store(_ context.Context, filename, contentType string, body io.Reader) (*media.Asset, error) {
	s.uploads++
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	return &media.Asset{
		URL:         fmt.Sprintf("https://cdn.test/asset-%d%s", s.uploads, media.Extension(filename)),
		ContentType: contentType,
		UploadedAt:  time.Now(),
	}, nil
}

func (s *fakeMediaStore) Remove(_ context.Context, assetID string) error {
	s.removed = append(s.removed, assetID)
	return nil
}

// # Fixtures

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakeMediaStore) {
	t.Helper()

	tokens, err := sec.NewTokenService("access-secret", "refresh-secret", "vidora.test", 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	repo := newFakeRepository()
	store := &fakeMediaStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(repo, store, tokens, logger), repo, store
}

func registerTestUser(t *testing.T, service *Service) *sec.Principal {
	t.Helper()

	principal, err := service.Register(context.Background(), RegisterInput{
		Username: "Alice",
		Email:    "Alice@Example.com",
		FullName: "Alice Example",
		Password: "s3cretpass",
		Avatar:   &media.Upload{Filename: "avatar.png", ContentType: "image/png", Body: strings.NewReader("png")},
	})
	require.NoError(t, err)
	return principal
}

// # Tests

/*
TestService_Register covers the happy path plus the avatar and conflict guards.
*/
func TestService_Register(t *testing.T) {
	t.Run("success_normalizes_identity", func(t *testing.T) {
		service, repo, store := newTestService(t)

		principal := registerTestUser(t, service)

		assert.Equal(t, "alice", principal.Username)
		assert.Equal(t, "alice@example.com", principal.Email)
		assert.Equal(t, 1, store.uploads)
		assert.NotEmpty(t, principal.AvatarURL)

		stored := repo.users[principal.ID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("s3cretpass", stored.PasswordHash))
	})

	t.Run("missing_avatar_rejected", func(t *testing.T) {
		service, _, store := newTestService(t)

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "bob",
			Email:    "bob@example.com",
			FullName: "Bob",
			Password: "password1",
		})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		assert.Zero(t, store.uploads)
	})

	t.Run("duplicate_username_conflicts", func(t *testing.T) {
		service, _, store := newTestService(t)
		registerTestUser(t, service)

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "ALICE",
			Email:    "other@example.com",
			FullName: "Other",
			Password: "password1",
			Avatar:   &media.Upload{Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("png")},
		})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.HTTPStatus)
		// The conflict fires before any upload happens.
		assert.Equal(t, 1, store.uploads)
	})
}

/*
TestService_Login verifies credential checks and refresh-token persistence.
*/
func TestService_Login(t *testing.T) {
	t.Run("success_stores_refresh_token", func(t *testing.T) {
		service, repo, _ := newTestService(t)
		principal := registerTestUser(t, service)

		session, err := service.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		assert.Equal(t, principal.ID, session.User.ID)
		assert.NotEmpty(t, session.AccessToken)
		assert.Equal(t, repo.users[principal.ID].RefreshToken, session.RefreshToken)
	})

	t.Run("login_by_username", func(t *testing.T) {
		service, _, _ := newTestService(t)
		registerTestUser(t, service)

		_, err := service.Login(context.Background(), LoginInput{Username: "alice", Password: "s3cretpass"})
		assert.NoError(t, err)
	})

	t.Run("unknown_user_not_found", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever1"})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})

	t.Run("wrong_password_unauthorized", func(t *testing.T) {
		service, _, _ := newTestService(t)
		registerTestUser(t, service)

		_, err := service.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrongpass"})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
	})
}

/*
TestService_Refresh verifies the stateful rotation contract: only the exact
stored token refreshes, and every refresh invalidates its predecessor.
*/
func TestService_Refresh(t *testing.T) {
	t.Run("rotation_invalidates_previous_token", func(t *testing.T) {
		service, _, _ := newTestService(t)
		registerTestUser(t, service)

		first, err := service.Login(context.Background(), LoginInput{Username: "alice", Password: "s3cretpass"})
		require.NoError(t, err)

		second, err := service.Refresh(context.Background(), first.RefreshToken)
		require.NoError(t, err)
		require.NotEqual(t, first.RefreshToken, second.RefreshToken)

		// The first token is signed and unexpired but no longer stored.
		_, err = service.Refresh(context.Background(), first.RefreshToken)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
		assert.Equal(t, "Refresh token is expired or used", ae.Message)
	})

	t.Run("garbage_token_unauthorized", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Refresh(context.Background(), "not-a-jwt")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
	})

	t.Run("empty_token_unauthorized", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.Refresh(context.Background(), "")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
	})
}

/*
TestService_Logout verifies that logout revokes the refresh flow entirely.
*/
func TestService_Logout(t *testing.T) {
	service, repo, _ := newTestService(t)
	principal := registerTestUser(t, service)

	session, err := service.Login(context.Background(), LoginInput{Username: "alice", Password: "s3cretpass"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), principal.ID))
	assert.Empty(t, repo.users[principal.ID].RefreshToken)

	_, err = service.Refresh(context.Background(), session.RefreshToken)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}

/*
TestService_ChangePassword verifies the old-password guard and rehash.
*/
func TestService_ChangePassword(t *testing.T) {
	service, _, _ := newTestService(t)
	principal := registerTestUser(t, service)

	err := service.ChangePassword(context.Background(), principal.ID, "wrongpass", "newpassword")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)

	require.NoError(t, service.ChangePassword(context.Background(), principal.ID, "s3cretpass", "newpassword"))

	_, err = service.Login(context.Background(), LoginInput{Username: "alice", Password: "newpassword"})
	assert.NoError(t, err)
}

/*
TestService_UpdateAvatar verifies that a replaced avatar removes the old asset.
*/
func TestService_UpdateAvatar(t *testing.T) {
	service, repo, store := newTestService(t)
	principal := registerTestUser(t, service)
	oldAssetID := media.AssetIDFromURL(principal.AvatarURL)

	updated, err := service.UpdateAvatar(context.Background(), principal.ID, &media.Upload{
		Filename:    "new.jpg",
		ContentType: "image/jpeg",
		Body:        strings.NewReader("jpg"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, principal.AvatarURL, updated.AvatarURL)
	assert.Equal(t, updated.AvatarURL, repo.users[principal.ID].AvatarURL)
	assert.Contains(t, store.removed, oldAssetID)
}

/*
TestService_WatchHistory exercises record, list, and remove.
*/
func TestService_WatchHistory(t *testing.T) {
	service, _, _ := newTestService(t)
	principal := registerTestUser(t, service)

	require.NoError(t, service.RecordWatch(context.Background(), principal.ID, "video-1"))
	require.NoError(t, service.RecordWatch(context.Background(), principal.ID, "video-2"))
	// Re-watching must not duplicate the entry.
	require.NoError(t, service.RecordWatch(context.Background(), principal.ID, "video-1"))

	history, err := service.WatchHistory(context.Background(), principal.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	require.NoError(t, service.RemoveFromWatchHistory(context.Background(), principal.ID, "video-1"))
	history, err = service.WatchHistory(context.Background(), principal.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "video-2", history[0].ID)
}

/*
TestService_ResolvePrincipal verifies the middleware adapter rejects deleted
accounts.
*/
func TestService_ResolvePrincipal(t *testing.T) {
	service, repo, _ := newTestService(t)
	principal := registerTestUser(t, service)

	resolved, err := service.ResolvePrincipal(context.Background(), principal.ID)
	require.NoError(t, err)
	assert.Equal(t, principal.Username, resolved.Username)

	delete(repo.users, principal.ID)
	_, err = service.ResolvePrincipal(context.Background(), principal.ID)
	assert.Error(t, err)
}
