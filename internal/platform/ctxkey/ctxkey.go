// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey names the values the shop's middleware stores on a request
// context. Read and write them through ctxutil, never directly.
package ctxkey

// Key has an unexported field, so only this package can build one.
type Key struct{ name string }

func (k Key) String() string { return "ffshop." + k.name }

var (
	// RequestID carries the X-Request-ID correlation id.
	RequestID = Key{"request_id"}
	// Logger carries the request-scoped *slog.Logger.
	Logger = Key{"logger"}
	// Identity carries the *sec.Identity resolved by the route guard.
	Identity = Key{"identity"}
)
