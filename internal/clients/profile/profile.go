// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package profile manages the personal details attached to a shop account.
// Every operation works on the caller's own profile; there is no way to
// address somebody else's.
package profile

import (
	"time"

	"github.com/taibuivan/ffshop/internal/platform/sec"
)

// Profile is the public face of an account.
type Profile struct {
	ID        int64     `json:"id"` // Same as the account ID.
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      sec.Role  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the editable part of a [Profile].
type Input struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldUsername  = "username"

	NameMaxLength     = 100
	UsernameMinLength = 3
	UsernameMaxLength = 50
)
