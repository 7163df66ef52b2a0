// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values the middleware
// chain and the route guard share: correlation id, logger and caller.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ffshop/internal/platform/ctxkey"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.RequestID, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.RequestID).(string)
	return id
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.Logger, logger)
}

// GetLogger falls back to slog.Default so callers never nil-check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.Logger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, ctxkey.Identity, identity)
}

// GetIdentity returns nil until a guard resolved the caller.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, _ := ctx.Value(ctxkey.Identity).(*sec.Identity)
	return identity
}
