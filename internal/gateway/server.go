// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/middleware"
)

// Config is what the gateway router needs from its configuration.
type Config interface {
	middleware.AppConfig
	Port() string
}

// Dependencies are the collaborators of the gateway router.
type Dependencies struct {
	Verifier middleware.AccessVerifier
	Public   *middleware.PublicRoutes
	Proxy    http.Handler
	Liveness http.HandlerFunc
}

/*
NewServer builds the gateway [http.Server].

CORS runs before the token check so preflights never need a token; /health
is only reachable through the public route list like any other path.
*/
func NewServer(ctx context.Context, cfg Config, logger *slog.Logger, deps Dependencies) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port(),
		Handler:           NewRouter(ctx, cfg, logger, deps),
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}
}

// NewRouter builds the gateway handler chain.
func NewRouter(ctx context.Context, cfg middleware.AppConfig, logger *slog.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Only request tagging, panic recovery and preflights run before the token check.
	r.Use(middleware.RequestID())
	r.Use(middleware.PanicRecovery(logger))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.AuthGateway(deps.Verifier, deps.Public, logger))
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.RateLimit(ctx))

	r.Get("/health", deps.Liveness)
	r.Handle("/*", deps.Proxy)

	return r
}
