// Copyright (c) 2026 Vidora. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(
		"access-secret", "refresh-secret", "vidora.test",
		15*time.Minute, 720*time.Hour,
	)
	require.NoError(t, err)
	return service
}

/*
TestHashPassword verifies the bcrypt round trip and hash uniqueness.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, sec.CheckPasswordHash("s3cret-password", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))

	// bcrypt salts every hash, so the same input must not repeat.
	secondHash, err := sec.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, secondHash)
}

/*
TestTokenService_AccessToken verifies the access token round trip.
*/
func TestTokenService_AccessToken(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.GenerateAccessToken("user-123", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "vidora.test", claims.Issuer)
}

/*
TestTokenService_RefreshToken verifies the refresh token round trip and that
the two token families do not verify against each other's secret.
*/
func TestTokenService_RefreshToken(t *testing.T) {
	service := newTestTokenService(t)

	refresh, err := service.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := service.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	// A refresh token must never pass access-token verification.
	_, err = service.VerifyAccessToken(refresh)
	assert.Error(t, err)

	access, err := service.GenerateAccessToken("user-123", "alice")
	require.NoError(t, err)
	_, err = service.VerifyRefreshToken(access)
	assert.Error(t, err)
}

/*
TestTokenService_InvalidInput verifies constructor guards and garbage tokens.
*/
func TestTokenService_InvalidInput(t *testing.T) {
	_, err := sec.NewTokenService("", "refresh-secret", "vidora.test", time.Minute, time.Hour)
	assert.Error(t, err)

	service := newTestTokenService(t)
	_, err = service.VerifyAccessToken("not-a-jwt")
	assert.Error(t, err)
}
