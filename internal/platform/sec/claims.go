// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUse separates access tokens from refresh tokens. Tokens minted before
// the claim existed carry no value and are treated as access tokens.
type TokenUse string

const (
	TokenUseAccess  TokenUse = "access"
	TokenUseRefresh TokenUse = "refresh"
)

// Claims is the decoded payload of a verified token.
type Claims struct {
	// Subject is the principal's login name (email).
	Subject string
	// UserID is the principal's numeric identifier.
	UserID int64
	// Role is empty when the token carries no "roles" claim.
	Role      Role
	Use       TokenUse
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is the per-request authorization context derived from a token or
// from the headers the gateway injected.
type Identity struct {
	ID      int64  `json:"userId"`
	Subject string `json:"username"`
	Role    Role   `json:"role"`
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (identity *Identity) IsAdmin() bool {
	return identity != nil && identity.Role == RoleAdmin
}

// Identity projects the claims onto the request-scoped identity.
func (claims *Claims) Identity() *Identity {
	return &Identity{ID: claims.UserID, Subject: claims.Subject, Role: claims.Role}
}

// Principal is the persisted identity a token is issued for. RefreshToken holds
// the single refresh token currently accepted for this principal.
type Principal struct {
	ID           int64
	Subject      string
	Role         Role
	RefreshToken string
}

// # Wire Format

// wireClaims is the JSON payload: sub, userId, roles, iat, exp, jti, token_use.
type wireClaims struct {
	jwt.RegisteredClaims

	UserID flexibleID `json:"userId"`
	Roles  string     `json:"roles"`
	Use    TokenUse   `json:"token_use,omitempty"`
}

func (wire *wireClaims) claims() *Claims {
	claims := &Claims{
		Subject: wire.Subject,
		UserID:  int64(wire.UserID),
		Role:    Role(wire.Roles),
		Use:     wire.Use,
		ID:      wire.ID,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.Time
	}
	return claims
}

// flexibleID is written as a JSON number but also accepted as a numeric
// string, since older issuers stored userId as text.
type flexibleID int64

// UnmarshalJSON implements [json.Unmarshaler].
func (id *flexibleID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	if raw == "" || raw == "null" {
		*id = 0
		return nil
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*id = flexibleID(n)
		return nil
	}

	// Integral floats such as 7.0 come out of some JSON encoders.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return fmt.Errorf("sec: userId %q is not an integer", raw)
	}
	*id = flexibleID(f)
	return nil
}
