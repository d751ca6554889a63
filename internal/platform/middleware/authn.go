// Copyright (c) 2026 Vidora. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vidora-app/vidora/internal/platform/apperr"
	"github.com/vidora-app/vidora/internal/platform/constants"
	"github.com/vidora-app/vidora/internal/platform/ctxutil"
	"github.com/vidora-app/vidora/internal/platform/respond"
	"github.com/vidora-app/vidora/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.AccessClaims, error)
}

// PrincipalResolver loads the full account identity asserted by a verified token.
//
// The middleware resolves the account on every protected request so that
// tokens of deleted accounts stop working immediately, even while their
// signature is still valid.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID string) (*sec.Principal, error)
}

// Authenticate extracts and verifies the access token from the request.
//
// # Flow
//  1. Look for the token in the 'accessToken' cookie, then in the
//     'Authorization: Bearer <token>' header.
//  2. If absent, the request proceeds as anonymous — [RequireAuth] decides
//     whether that is acceptable for the route.
//  3. If present, verify the JWT via [TokenVerifier].
//  4. Resolve the asserted account via [PrincipalResolver]; a missing account
//     is treated exactly like an invalid token.
//  5. Inject the [*sec.Principal] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			tokenStr := extractToken(request)
			if tokenStr == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(tokenStr)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid access token"))
				return
			}

			// ── 3. Principal Resolution ───────────────────────────────────────
			principal, err := resolver.ResolvePrincipal(request.Context(), claims.UserID)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid access token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Because it runs
// before any handler, an unauthenticated request to a protected route is
// rejected before a single entity lookup occurs.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal == nil {
			respond.Error(writer, request, apperr.Unauthorized("Unauthorized request"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// extractToken pulls the raw access token from the cookie or the
// Authorization header. Returns "" when neither carries one.
func extractToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
