// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"

	"github.com/taibuivan/ffshop/internal/platform/dberr"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

// Principals adapts a [UserRepository] to [sec.PrincipalFinder]. Token
// subjects are account emails.
type Principals struct {
	users UserRepository
}

// NewPrincipals wraps users.
func NewPrincipals(users UserRepository) *Principals {
	return &Principals{users: users}
}

// FindPrincipal implements [sec.PrincipalFinder].
func (principals *Principals) FindPrincipal(ctx context.Context, subject string) (*sec.Principal, error) {
	user, err := principals.users.FindByEmail(ctx, subject)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, sec.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}
