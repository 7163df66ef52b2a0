// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the shop services a process runs into one
[http.Server].

SERVICES decides which handler sets cmd/api builds; whatever is left nil in
[Handlers] is simply not mounted. Tokens are not verified on the way in:
the gateway did that, and each route group's guard reads the identity it
forwarded.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/ffshop/internal/clients/auth"
	"github.com/taibuivan/ffshop/internal/clients/profile"
	"github.com/taibuivan/ffshop/internal/commerce/order"
	"github.com/taibuivan/ffshop/internal/commerce/payment"
	"github.com/taibuivan/ffshop/internal/commerce/product"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/middleware"
)

// Server is one shop process: a chi router behind an [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers are the route sets a process can serve. Leave a field nil to
// keep its service out of this process.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Auth     *auth.Handler    // clients
	Profile  *profile.Handler // clients
	Orders   *order.Handler   // orders
	Payments *payment.Handler // payments
	Products *product.Handler // products
}

// ServerConfig is what the server reads from config.Config.
type ServerConfig interface {
	middleware.AppConfig
	Port() string
}

type mount struct {
	prefix   string
	register func(chi.Router)
}

// mounts lists the enabled route groups under their gateway prefixes.
func (h Handlers) mounts() []mount {
	var mounts []mount
	if h.Auth != nil {
		mounts = append(mounts, mount{"/api/clients/auth", h.Auth.RegisterRoutes})
	}
	if h.Profile != nil {
		mounts = append(mounts, mount{"/api/clients/profile", h.Profile.RegisterRoutes})
	}
	if h.Orders != nil {
		mounts = append(mounts,
			mount{"/api/order/users", h.Orders.RegisterUserRoutes},
			mount{"/api/order/admin", h.Orders.RegisterAdminRoutes},
		)
	}
	if h.Payments != nil {
		mounts = append(mounts,
			mount{"/api/user/payments/order", h.Payments.RegisterUserRoutes},
			mount{"/api/admin/payments/order", h.Payments.RegisterAdminRoutes},
		)
	}
	if h.Products != nil {
		mounts = append(mounts,
			mount{"/api/public/products", h.Products.RegisterPublicRoutes},
			mount{"/api/products/admin", h.Products.RegisterAdminRoutes},
		)
	}
	return mounts
}

// NewServer builds the router and its middleware. The rate limiter's sweeper
// stops with ctx.
func NewServer(ctx context.Context, cfg ServerConfig, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(ctx),
		middleware.PanicRecovery(log),
		middleware.CORS(cfg),
		chimw.CleanPath,
	)

	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	for _, m := range h.mounts() {
		r.Route(m.prefix, m.register)
		log.Debug("routes_mounted", slog.String("prefix", m.prefix))
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port(),
			Handler:           r,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
