// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the clients service: account registration, login,
refresh and logout.

It is the only service that mints tokens. Every other service (and the
gateway) only verifies them with the shared secret.
*/
package auth

import (
	"time"

	"github.com/taibuivan/ffshop/internal/platform/sec"
)

// # Domain Entities

// User is a registered shop account. Buyers hold [sec.RoleUser], sellers
// hold [sec.RoleAdmin].
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         sec.Role  `json:"role"`
	RefreshToken *string   `json:"-"` // Current refresh token; nil after logout.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal projects the account onto the token layer.
func (user *User) Principal() *sec.Principal {
	principal := &sec.Principal{ID: user.ID, Subject: user.Email, Role: user.Role}
	if user.RefreshToken != nil {
		principal.RefreshToken = *user.RefreshToken
	}
	return principal
}

// Session is the body returned by register, login and refresh.
type Session struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Role         sec.Role `json:"role"`
	UserID       int64    `json:"userId"`
}

// # Field Identifiers

const (
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldRefreshToken = "refreshToken"
)
