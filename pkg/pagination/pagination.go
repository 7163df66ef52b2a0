// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads the page and limit of the public product
// catalogue and builds the "meta" block returned next to each page.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-based page of Limit items.
type Params struct {
	Page  int
	Limit int
}

// Offset is the SQL OFFSET of the page.
func (p Params) Offset() int {
	return (max(p.Page, 1) - 1) * p.Limit
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta derives TotalPages from total; a zero limit yields zero pages.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads ?page= and ?limit=, with ?size= as an alias of limit.
// Missing, malformed or non-positive values take the defaults and limit is
// clamped to MaxLimit.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()

	rawLimit := query.Get("limit")
	if rawLimit == "" {
		rawLimit = query.Get("size")
	}

	return Params{
		Page:  positiveOr(query.Get("page"), DefaultPage),
		Limit: min(positiveOr(rawLimit, DefaultLimit), MaxLimit),
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
