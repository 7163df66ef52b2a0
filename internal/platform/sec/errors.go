// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "errors"

// Token verification failures. [TokenCodec.Verify] returns exactly one of
// these (possibly wrapped) so callers can tell them apart with [errors.Is].
var (
	ErrMalformedToken   = errors.New("sec: malformed token")
	ErrInvalidSignature = errors.New("sec: invalid token signature")
	ErrTokenExpired     = errors.New("sec: token expired")

	// ErrWrongTokenUse rejects a refresh token presented where an access token is required.
	ErrWrongTokenUse = errors.New("sec: refresh token cannot authorize requests")
)

// Authorization header failures raised before a token reaches the codec.
var (
	ErrMissingAuthorization = errors.New("sec: missing authorization header")
	ErrInvalidAuthScheme    = errors.New("sec: authorization header is not a bearer token")
)

// Token service failures.
var (
	// ErrInvalidRefreshToken covers refresh tokens that fail verification or
	// no longer match the one stored for the principal.
	ErrInvalidRefreshToken = errors.New("sec: invalid refresh token")

	// ErrUserNotFound is returned when a token names a principal that no longer exists.
	ErrUserNotFound = errors.New("sec: user not found")

	// ErrUnauthorized wraps any codec failure hit while extracting claims.
	ErrUnauthorized = errors.New("sec: unauthorized")
)
