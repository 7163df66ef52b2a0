// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"path"
	"strings"
)

// PublicRoutes is the gateway's allow-list of paths that need no token.
//
// # Pattern Syntax
//
// Patterns are matched segment by segment:
//   - "**" matches zero or more whole segments.
//   - any other segment is a [path.Match] glob ("*", "?", "[a-z]").
//
// "/api/public/products/**" therefore matches "/api/public/products" and
// "/api/public/products/7/stock" but not "/api/public/products-admin".
type PublicRoutes struct {
	patterns [][]string
}

// NewPublicRoutes compiles patterns. Each pattern must start with "/".
func NewPublicRoutes(patterns []string) (*PublicRoutes, error) {
	routes := &PublicRoutes{}

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if !strings.HasPrefix(pattern, "/") {
			return nil, fmt.Errorf("middleware: public route %q must start with /", pattern)
		}

		segments := splitSegments(pattern)
		for _, segment := range segments {
			if _, err := path.Match(segment, ""); err != nil {
				return nil, fmt.Errorf("middleware: public route %q: %w", pattern, err)
			}
		}

		routes.patterns = append(routes.patterns, segments)
	}

	return routes, nil
}

// Match reports whether requestPath is public.
func (routes *PublicRoutes) Match(requestPath string) bool {
	segments := splitSegments(requestPath)
	for _, pattern := range routes.patterns {
		if matchSegments(pattern, segments) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(segments); i++ {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}

		if ok, _ := path.Match(pattern[0], segments[0]); !ok {
			return false
		}

		pattern, segments = pattern[1:], segments[1:]
	}

	return len(segments) == 0
}

func splitSegments(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool { return r == '/' })
}
