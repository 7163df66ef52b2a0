// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the shop services (clients, orders, payments, products).
//
// SERVICES selects which of them this process mounts, so the same binary runs
// as one combined process or as one process per service behind the gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect to RabbitMQ (optional).
//  7. Build the token service and the guard.
//  8. Wire the enabled services.
//  9. Start HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ffshop/internal/api"
	"github.com/taibuivan/ffshop/internal/clients/auth"
	"github.com/taibuivan/ffshop/internal/clients/profile"
	"github.com/taibuivan/ffshop/internal/commerce/order"
	"github.com/taibuivan/ffshop/internal/commerce/payment"
	"github.com/taibuivan/ffshop/internal/commerce/product"
	"github.com/taibuivan/ffshop/internal/platform/broker"
	"github.com/taibuivan/ffshop/internal/platform/config"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/guard"
	"github.com/taibuivan/ffshop/internal/platform/migration"
	pgstore "github.com/taibuivan/ffshop/internal/platform/postgres"
	redisstore "github.com/taibuivan/ffshop/internal/platform/redis"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("[ffshop] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Any("services", cfg.Services),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.Open(startupCtx, pgstore.Settings{DSN: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.Connect(startupCtx, redisstore.Settings{URL: cfg.RedisURL, PoolSize: cfg.RedisPoolSize}, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Broker ─────────────────────────────────────────────────────────
	var events broker.Publisher = broker.Nop{Logger: log}
	if cfg.AMQPURL != "" {
		publisher, err := broker.Dial(cfg.AMQPURL, constants.EventExchange, log)
		must(log, err, "connect to rabbitmq")
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				log.Error("broker close error", slog.Any("error", cerr))
			}
		}()
		events = publisher
	} else {
		log.Warn("AMQP_URL not set, domain events are dropped")
	}

	// ── 7. Tokens and Guard ───────────────────────────────────────────────
	codec, err := sec.NewTokenCodec(sec.SigningConfig{Secret: []byte(cfg.JWT.Secret)})
	must(log, err, "initialize token codec")

	users := auth.NewUserRepository(pool)
	tokens := sec.NewTokenService(codec, auth.NewPrincipals(users), cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	g := guard.New(tokens, cfg.TrustGatewayHeaders, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers([]api.Check{
		{Name: "postgres", Ping: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "redis", Ping: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	}, log)

	handlers := wire(cfg, log, services{
		users:  users,
		tokens: tokens,
		guard:  g,
		events: events,
		pool:   pool,
		redis:  rdb,
	})
	handlers.Liveness = liveness
	handlers.Readiness = readiness

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
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

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// services are the shared collaborators every service constructor draws from.
type services struct {
	users  auth.UserRepository
	tokens *sec.TokenService
	guard  *guard.Guard
	events broker.Publisher
	pool   *pgxpool.Pool
	redis  *redis.Client
}

// wire builds the handler set of every enabled service. Orders reserve stock
// through the product service in-process, so it exists whenever orders or
// products are enabled.
func wire(cfg *config.Config, log *slog.Logger, deps services) api.Handlers {
	var handlers api.Handlers

	if cfg.Enabled(config.ServiceClients) {
		authService := auth.NewService(deps.users, deps.tokens, cfg.AdminSignupEnabled, log)
		handlers.Auth = auth.NewHandler(authService, deps.guard)

		profileService := profile.NewService(profile.NewPostgresRepository(deps.pool))
		handlers.Profile = profile.NewHandler(profileService, deps.guard)
	}

	var catalog *product.Service
	if cfg.Enabled(config.ServiceProducts) || cfg.Enabled(config.ServiceOrders) || cfg.Enabled(config.ServicePayments) {
		repository := product.NewCachedRepository(
			product.NewPostgresRepository(deps.pool), deps.redis, cfg.ProductCacheTTL, log,
		)
		catalog = product.NewService(repository, deps.guard, log)
	}
	if cfg.Enabled(config.ServiceProducts) {
		handlers.Products = product.NewHandler(catalog, deps.guard)
	}

	var orders *order.Service
	if cfg.Enabled(config.ServiceOrders) || cfg.Enabled(config.ServicePayments) {
		orders = order.NewService(order.NewPostgresRepository(deps.pool), catalog, deps.guard, deps.events, log)
	}
	if cfg.Enabled(config.ServiceOrders) {
		handlers.Orders = order.NewHandler(orders, deps.guard)
	}

	if cfg.Enabled(config.ServicePayments) {
		payments := payment.NewService(payment.NewPostgresRepository(deps.pool), orders, deps.guard, deps.events, log)
		handlers.Payments = payment.NewHandler(payments, deps.guard)
	}

	return handlers
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// Only used during startup wiring.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
