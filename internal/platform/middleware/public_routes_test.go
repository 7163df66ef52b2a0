// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ffshop/internal/platform/middleware"
)

/*
TestPublicRoutes_Match exercises the segment-wise pattern syntax.
*/
func TestPublicRoutes_Match(t *testing.T) {
	routes, err := middleware.NewPublicRoutes([]string{
		"/health",
		"/api/public/products/**",
		"/api/files/*/preview",
		"/api/**/docs",
	})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health/", true},
		{"/healthz", false},
		{"/api/public/products", true},
		{"/api/public/products/", true},
		{"/api/public/products/1/stock", true},
		{"/api/public/products-admin", false},
		{"/api/public", false},
		{"/api/files/a1/preview", true},
		{"/api/files/a1/b2/preview", false},
		{"/api/docs", true},
		{"/api/v1/orders/docs", true},
		{"/api/v1/orders/docs/more", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, routes.Match(tt.path))
		})
	}
}

/*
TestNewPublicRoutes_Invalid rejects relative and malformed patterns.
*/
func TestNewPublicRoutes_Invalid(t *testing.T) {
	_, err := middleware.NewPublicRoutes([]string{"api/public"})
	assert.Error(t, err)

	_, err = middleware.NewPublicRoutes([]string{"/api/[bad"})
	assert.Error(t, err)

	routes, err := middleware.NewPublicRoutes([]string{" ", ""})
	require.NoError(t, err)
	assert.False(t, routes.Match("/anything"))
}
