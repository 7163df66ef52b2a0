// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
	"github.com/taibuivan/ffshop/internal/platform/sec"
	"github.com/taibuivan/ffshop/internal/platform/validate"
)

// # Contracts & Types

// TokenIssuer is the part of [sec.TokenService] the account flows need.
type TokenIssuer interface {
	IssuePair(p sec.Principal) (*sec.IssuedTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*sec.IssuedTokens, error)
}

// Service implements the account use cases.
type Service struct {
	users       UserRepository
	tokens      TokenIssuer
	adminSignup bool
	logger      *slog.Logger
}

// NewService constructs a [Service]. With adminSignup off, registrations
// asking for [sec.RoleAdmin] are refused.
func NewService(users UserRepository, tokens TokenIssuer, adminSignup bool, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		adminSignup: adminSignup,
		logger:      logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to open an account.
type RegisterInput struct {
	Email    string
	Password string
	Role     sec.Role
}

/*
Register creates an account and signs it in straight away.

Parameters:
  - context: context.Context
  - input: RegisterInput (Role defaults to USER)

Returns:
  - *Session: access and refresh token of the new account
  - error: Conflict if the email is taken, Forbidden for a refused ADMIN signup
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	email := normalizeEmail(input.Email)

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}
	if role == sec.RoleAdmin && !service.adminSignup {
		return nil, apperr.Forbidden("Admin registration is disabled")
	}

	_, err := service.users.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already taken")
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, validate.Invalid(FieldPassword, fmt.Sprintf("Maximum %d bytes", PasswordMaxLength))
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// A racing registration of the same email surfaces here as a unique violation.
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_registered",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return service.startSession(context, user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login checks credentials and issues a fresh token pair. The new refresh
token replaces the stored one, so earlier refresh tokens stop working.

Returns:
  - *Session: Transport-ready session
  - error: Unauthorized with a generic message for any credential problem
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	user, err := service.users.FindByEmail(context, normalizeEmail(input.Email))
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.startSession(context, user)
}

// Refresh trades a refresh token for a new access token. The refresh token
// is returned unchanged.
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {
	issued, err := service.tokens.Refresh(context, refreshToken)
	if err != nil {
		if errors.Is(err, sec.ErrInvalidRefreshToken) || errors.Is(err, sec.ErrUserNotFound) {
			service.logger.WarnContext(context, "refresh_rejected", slog.String("reason", err.Error()))
			return nil, apperr.Unauthorized("Invalid refresh token").WithCause(err)
		}
		return nil, err
	}

	return &Session{
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
		Role:         issued.Principal.Role,
		UserID:       issued.Principal.ID,
	}, nil
}

// Logout clears the stored refresh token of userID.
func (service *Service) Logout(context context.Context, userID int64) error {
	if err := service.users.UpdateRefreshToken(context, userID, nil); err != nil {
		return dberr.NotFound(err, "User")
	}

	service.logger.InfoContext(context, "account_logged_out", slog.Int64("user_id", userID))
	return nil
}

// startSession mints a token pair for user and persists the refresh token.
func (service *Service) startSession(context context.Context, user *User) (*Session, error) {
	issued, err := service.tokens.IssuePair(*user.Principal())
	if err != nil {
		return nil, fmt.Errorf("auth_service_issue_failed: %w", err)
	}

	if err := service.users.UpdateRefreshToken(context, user.ID, &issued.RefreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = &issued.RefreshToken

	return &Session{
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
		Role:         user.Role,
		UserID:       user.ID,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
