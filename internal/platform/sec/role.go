// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// Role represents the authorization level granted to an account. The value is
// carried verbatim in the "roles" claim and the X-Roles header.
type Role string

const (
	// RoleUser is the default role for shoppers.
	RoleUser Role = "USER"

	// RoleAdmin owns products and handles the orders and payments made for them.
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalizes a role name. Unknown values are returned as-is so the
// caller can decide how strict to be.
func ParseRole(value string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(value)))
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
