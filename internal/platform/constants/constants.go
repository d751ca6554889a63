// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuers and cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "vidora-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Video uploads stream multi-megabyte bodies, so this is generous.
	DefaultReadTimeout = 5 * time.Minute

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Covers the media-store round trip performed by upload handlers.
	GlobalRequestTimeout = 5 * time.Minute

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "vidora.app"

	// AccessTokenCookieName is the name of the cookie that stores the access token.
	AccessTokenCookieName = "accessToken"

	// RefreshTokenCookieName is the name of the cookie that stores the refresh token.
	RefreshTokenCookieName = "refreshToken"
)

// # Uploads

const (
	// MaxUploadSize bounds multipart request bodies (videos, thumbnails, avatars).
	MaxUploadSize = 256 << 20 // 256 MiB

	// MaxImageUploadSize bounds image-only multipart request bodies.
	MaxImageUploadSize = 8 << 20 // 8 MiB
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData       = "data"
	FieldMessage    = "message"
	FieldStatusCode = "statusCode"
	FieldSuccess    = "success"
	FieldErrors     = "errors"
)

// # Redis Prefixes (Volatile State Taxonomy)

const (
	// RedisPrefixVideoView deduplicates view counts per (video, viewer) pair.
	RedisPrefixVideoView = "video:view:"
)

// # View Counting

const (
	// ViewDedupWindow is how long a viewer's repeat fetches of the same video
	// are counted as a single view.
	ViewDedupWindow = 6 * time.Hour
)
