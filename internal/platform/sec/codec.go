// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// [TokenCodec] signs and verifies HS256 tokens with a shared secret handed in
// through [SigningConfig]; there is no package-level key. [TokenService] sits
// on top of it and implements the access/refresh token rules. The gateway only
// needs the codec; the clients service and the ownership guard use the service.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLength is the smallest HS256 secret accepted, in bytes.
const MinSecretLength = 32

// SigningConfig carries the shared HMAC secret. Every service that verifies
// tokens must be given the same value.
type SigningConfig struct {
	Secret []byte
}

// TokenCodec issues and verifies compact HS256 tokens.
//
// # Concurrency
//
// A TokenCodec is immutable after construction and safe for concurrent use.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// CodecOption customizes a [TokenCodec].
type CodecOption func(*TokenCodec)

// WithClock replaces the wall clock used for iat, exp and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(codec *TokenCodec) {
		codec.now = now
	}
}

// NewTokenCodec validates cfg and returns a ready codec.
func NewTokenCodec(cfg SigningConfig, opts ...CodecOption) (*TokenCodec, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", MinSecretLength)
	}

	codec := &TokenCodec{
		secret: append([]byte(nil), cfg.Secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}

	return codec, nil
}

// Issue signs claims with iat set to now and exp set to now+ttl. Subject,
// UserID, Role and Use are taken from claims; ID, IssuedAt and ExpiresAt are
// always generated.
func (codec *TokenCodec) Issue(claims Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", errors.New("sec: token ttl must be positive")
	}

	now := codec.now()
	wire := wireClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: flexibleID(claims.UserID),
		Roles:  string(claims.Role),
		Use:    claims.Use,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of token and returns its claims.
//
// # Errors
//
// The result wraps exactly one of [ErrMalformedToken], [ErrInvalidSignature]
// or [ErrTokenExpired]. A token whose exp is not after the current time is
// expired; no clock-skew leeway is applied.
func (codec *TokenCodec) Verify(token string) (*Claims, error) {
	wire := &wireClaims{}

	_, err := jwt.ParseWithClaims(token, wire, codec.key,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(codec.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	return wire.claims(), nil
}

// VerifyAccess is [TokenCodec.Verify] restricted to access tokens. A valid
// refresh token yields [ErrWrongTokenUse].
func (codec *TokenCodec) VerifyAccess(token string) (*Claims, error) {
	claims, err := codec.Verify(token)
	if err != nil {
		return nil, err
	}

	if claims.Use == TokenUseRefresh {
		return nil, ErrWrongTokenUse
	}

	return claims, nil
}

func (codec *TokenCodec) key(*jwt.Token) (interface{}, error) {
	return codec.secret, nil
}

// classify maps jwt errors onto the three verification kinds. The signature is
// checked before the claims, so an expired token always had a valid signature.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		// Missing exp, nbf in the future and similar claim problems.
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
}
