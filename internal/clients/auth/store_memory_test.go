// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/ffshop/internal/clients/auth"
	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/dberr"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{rows: map[int64]*auth.User{}}
}

func (store *memoryUsers) FindByID(_ context.Context, id int64) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return clone(user), nil
}

func (store *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.rows {
		if strings.EqualFold(user.Email, email) {
			return clone(user), nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (store *memoryUsers) Create(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.rows {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Resource already exists")
		}
	}

	store.nextID++
	user.ID = store.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	store.rows[user.ID] = clone(user)
	return nil
}

func (store *memoryUsers) UpdateRefreshToken(_ context.Context, id int64, token *string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.rows[id]
	if !ok {
		return dberr.ErrNotFound
	}
	if token == nil {
		user.RefreshToken = nil
		return nil
	}
	value := *token
	user.RefreshToken = &value
	return nil
}

func clone(user *auth.User) *auth.User {
	copied := *user
	if user.RefreshToken != nil {
		value := *user.RefreshToken
		copied.RefreshToken = &value
	}
	return &copied
}
