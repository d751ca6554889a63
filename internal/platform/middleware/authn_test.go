// Copyright (c) 2026 Vidora. All rights reserved.

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/constants"
	"github.com/vidora-app/vidora/internal/platform/ctxutil"
	"github.com/vidora-app/vidora/internal/platform/middleware"
	"github.com/vidora-app/vidora/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string.
type fakeVerifier struct {
	validToken string
	userID     string
}

func (v *fakeVerifier) VerifyAccessToken(tokenStr string) (*sec.AccessClaims, error) {
	if tokenStr != v.validToken {
		return nil, apperr.Unauthorized("Invalid access token")
	}
	return &sec.AccessClaims{UserID: v.userID}, nil
}

// fakeResolver resolves one known account.
type fakeResolver struct {
	principal *sec.Principal
}

func (r *fakeResolver) ResolvePrincipal(_ context.Context, userID string) (*sec.Principal, error) {
	if r.principal == nil || r.principal.ID != userID {
		return nil, apperr.NotFound("User")
	}
	return r.principal, nil
}

/*
TestAuthenticate_BearerHeader verifies the happy path via the Authorization header.
*/
func TestAuthenticate_BearerHeader(t *testing.T) {
	var seen *sec.Principal
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetPrincipal(request.Context())
	})
	verifier := &fakeVerifier{validToken: "good-token", userID: "user-123"}
	resolver := &fakeResolver{principal: &sec.Principal{ID: "user-123", Username: "alice"}}
	chain := middleware.Authenticate(verifier, resolver)(middleware.RequireAuth(inner))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()

	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "alice", seen.Username)
}

/*
TestAuthenticate_Cookie verifies the happy path via the accessToken cookie.
*/
func TestAuthenticate_Cookie(t *testing.T) {
	var seen *sec.Principal
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetPrincipal(request.Context())
	})
	verifier := &fakeVerifier{validToken: "good-token", userID: "user-123"}
	resolver := &fakeResolver{principal: &sec.Principal{ID: "user-123", Username: "alice"}}
	chain := middleware.Authenticate(verifier, resolver)(middleware.RequireAuth(inner))

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "good-token"})
	recorder := httptest.NewRecorder()

	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
}

/*
TestAuthenticate_Rejections verifies anonymous, invalid-token, and
deleted-account requests are all rejected with 401.
*/
func TestAuthenticate_Rejections(t *testing.T) {
	inner := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("protected handler must not run")
	})
	verifier := &fakeVerifier{validToken: "good-token", userID: "user-123"}

	tests := []struct {
		name     string
		token    string
		resolver middleware.PrincipalResolver
	}{
		{"anonymous", "", &fakeResolver{principal: &sec.Principal{ID: "user-123"}}},
		{"invalid_token", "bad-token", &fakeResolver{principal: &sec.Principal{ID: "user-123"}}},
		{"deleted_account", "good-token", &fakeResolver{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := middleware.Authenticate(verifier, tt.resolver)(middleware.RequireAuth(inner))

			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}
			recorder := httptest.NewRecorder()

			chain.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}
