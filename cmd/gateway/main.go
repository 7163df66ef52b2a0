// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command gateway is the public entry point of the shop.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Build the token codec and the public route list.
//  4. Build the upstream proxy.
//  5. Start HTTP server with graceful shutdown.
//
// The gateway holds no state; it only needs the JWT secret the clients
// service signs with.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/ffshop/internal/api"
	"github.com/taibuivan/ffshop/internal/gateway"
	"github.com/taibuivan/ffshop/internal/platform/config"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/middleware"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadGateway()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Int("upstreams", len(cfg.Upstreams)),
	)

	// ── 3. Token Verification ─────────────────────────────────────────────
	codec, err := sec.NewTokenCodec(sec.SigningConfig{Secret: []byte(cfg.JWT.Secret)})
	must(log, err, "initialize token codec")

	public, err := middleware.NewPublicRoutes(cfg.PublicRoutes)
	must(log, err, "parse public routes")

	// ── 4. Upstreams ──────────────────────────────────────────────────────
	proxy, err := gateway.NewProxy(cfg.Upstreams, log)
	must(log, err, "build upstream proxy")

	for prefix, upstream := range cfg.Upstreams {
		log.Info("upstream_registered", slog.String("prefix", prefix), slog.String("url", upstream))
	}

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	liveness, _ := api.NewHealthHandlers(nil, log)
	server := gateway.NewServer(ctx, cfg, log, gateway.Dependencies{
		Verifier: codec,
		Public:   public,
		Proxy:    proxy,
		Liveness: liveness,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("gateway starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("gateway stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.GatewayName), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)
	return log
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
