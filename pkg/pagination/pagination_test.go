// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ffshop/pkg/pagination"
)

/*
TestFromRequest falls back to defaults and clamps oversized pages.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, 20, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=2&size=5", 2, 5, 5},
		{"page=2&limit=7&size=5", 2, 7, 7},
		{"page=0&limit=-1", 1, 20, 0},
		{"page=abc&limit=1000", 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

/*
TestNewMeta rounds the page count up.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 20, Total: 41, TotalPages: 3}, pagination.NewMeta(1, 20, 41))
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
}
