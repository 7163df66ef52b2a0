// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an Authorization header value. The
// scheme must be exactly "Bearer " followed by a non-empty token.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthorization
	}

	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || strings.TrimSpace(token) == "" {
		return "", ErrInvalidAuthScheme
	}

	return token, nil
}
