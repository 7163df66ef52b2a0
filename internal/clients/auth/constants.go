// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Credential Constraints

const (
	// PasswordMinLength is the shortest password accepted at registration.
	PasswordMinLength = 8

	// PasswordMaxLength matches the bcrypt input limit.
	PasswordMaxLength = 72

	// EmailMaxLength follows the clients.account column width.
	EmailMaxLength = 320
)
