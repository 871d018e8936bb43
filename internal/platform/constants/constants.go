// Copyright (c) 2026 F-Students App. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer, auth headers, and audit statuses.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "auth-service"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

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
	AuthIssuer = "auth.f-students.app"

	// RoleSuperadmin bypasses every role guard unconditionally.
	RoleSuperadmin = "SUPERADMIN"

	// AuthorizeEndpointSuffix is the one path allowed to accept a
	// pre-authorization access token (isAuthorized = false).
	AuthorizeEndpointSuffix = "/authorize"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"

	// HeaderRefreshToken carries the opaque refresh token string on the
	// token refresh endpoint. Distinct from the Authorization header.
	HeaderRefreshToken = "X-Refresh-Token"

	// HeaderInternalKey carries the shared secret for trusted internal callers.
	HeaderInternalKey = "X-Internal-Key"
)

// # Login Audit Statuses

const (
	// LoginStatusSuccess marks a successful authentication attempt.
	LoginStatusSuccess = "SUCCESS"

	// LoginStatusFailedCredentials marks a failed password verification.
	LoginStatusFailedCredentials = "FAILED_INVALID_CREDENTIALS"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixModuleList = "iam:module_list:"
)

// # Database Schemas

const (
	SchemaIAM = "iam"
)
