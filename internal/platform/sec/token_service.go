// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"
)

// PrincipalFinder loads the persisted principal a token names. Implementations
// return [ErrUserNotFound] when the subject does not exist.
type PrincipalFinder interface {
	FindPrincipal(ctx context.Context, subject string) (*Principal, error)
}

// IssuedTokens is the result of a login, registration or refresh.
type IssuedTokens struct {
	AccessToken  string
	RefreshToken string
	Principal    *Principal
}

// TokenService implements the access/refresh token rules on top of a [TokenCodec].
//
// A refresh token is only honoured while it equals the value stored on the
// principal. Refreshing does not rotate it; the next login overwrites it and
// thereby revokes the old one.
type TokenService struct {
	codec      *TokenCodec
	principals PrincipalFinder
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService wires a token service. principals may be nil for callers that
// only extract claims; [TokenService.Refresh] then fails.
func NewTokenService(codec *TokenCodec, principals PrincipalFinder, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		codec:      codec,
		principals: principals,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// # Issuance

// IssueAccessToken mints a short-lived token for p.
func (service *TokenService) IssueAccessToken(p Principal) (string, error) {
	return service.codec.Issue(Claims{
		Subject: p.Subject,
		UserID:  p.ID,
		Role:    p.Role,
		Use:     TokenUseAccess,
	}, service.accessTTL)
}

// IssueRefreshToken mints a long-lived token for p. The caller must persist it
// as the principal's current refresh token.
func (service *TokenService) IssueRefreshToken(p Principal) (string, error) {
	return service.codec.Issue(Claims{
		Subject: p.Subject,
		UserID:  p.ID,
		Role:    p.Role,
		Use:     TokenUseRefresh,
	}, service.refreshTTL)
}

// IssuePair mints both tokens for p. RefreshToken on the returned principal
// is set to the new refresh token; persisting it is still up to the caller.
func (service *TokenService) IssuePair(p Principal) (*IssuedTokens, error) {
	access, err := service.IssueAccessToken(p)
	if err != nil {
		return nil, err
	}

	refresh, err := service.IssueRefreshToken(p)
	if err != nil {
		return nil, err
	}

	p.RefreshToken = refresh
	return &IssuedTokens{AccessToken: access, RefreshToken: refresh, Principal: &p}, nil
}

// # Refresh

/*
Refresh exchanges a refresh token for a new access token.

The token must verify, its subject must resolve to a principal, and it must be
byte-equal to the refresh token stored for that principal. The refresh token
itself is returned unchanged.

Returns:
  - *IssuedTokens: new access token, the same refresh token, the principal
  - error: ErrInvalidRefreshToken or ErrUserNotFound
*/
func (service *TokenService) Refresh(ctx context.Context, refreshToken string) (*IssuedTokens, error) {
	if service.principals == nil {
		return nil, errors.New("sec: token service has no principal store")
	}

	claims, err := service.codec.Verify(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}

	if claims.Use == TokenUseAccess {
		return nil, fmt.Errorf("%w: access token presented", ErrInvalidRefreshToken)
	}

	principal, err := service.principals.FindPrincipal(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	stored := []byte(principal.RefreshToken)
	if len(stored) == 0 || subtle.ConstantTimeCompare(stored, []byte(refreshToken)) != 1 {
		return nil, fmt.Errorf("%w: superseded or revoked", ErrInvalidRefreshToken)
	}

	access, err := service.IssueAccessToken(*principal)
	if err != nil {
		return nil, err
	}

	return &IssuedTokens{AccessToken: access, RefreshToken: refreshToken, Principal: principal}, nil
}

// # Extraction

// ExtractIdentity verifies an access token and returns the caller it names.
// Refresh tokens are refused.
func (service *TokenService) ExtractIdentity(token string) (*Identity, error) {
	claims, err := service.codec.VerifyAccess(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	return claims.Identity(), nil
}

// ExtractPrincipalID returns the userId claim of a valid access token.
func (service *TokenService) ExtractPrincipalID(token string) (int64, error) {
	identity, err := service.ExtractIdentity(token)
	if err != nil {
		return 0, err
	}
	return identity.ID, nil
}

// ExtractRole returns the roles claim of a valid access token.
func (service *TokenService) ExtractRole(token string) (Role, error) {
	identity, err := service.ExtractIdentity(token)
	if err != nil {
		return "", err
	}
	return identity.Role, nil
}
