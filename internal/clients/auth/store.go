// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for shop accounts.
//
// Lookups return [dberr.ErrNotFound] when no row matches.
type UserRepository interface {

	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id int64) (*User, error)

	// FindByEmail returns the account registered under email.
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a new account and fills in its ID and timestamps.

		Returns:
		  - error: apperr.Conflict when the email is taken, or storage errors
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateRefreshToken overwrites the stored refresh token. A nil token
		clears it, which revokes every outstanding refresh token of the user.
	*/
	UpdateRefreshToken(context context.Context, id int64, token *string) error
}
