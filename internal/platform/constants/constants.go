// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared by the gateway and the shop
services: server timeouts, rate-limit budget, header names, cache prefixes
and broker routing keys.

Anything an operator may want to change lives in config instead.
*/
package constants

import "time"

const (
	AppName     = "ffshop-api"
	GatewayName = "ffshop-gateway"
	AppVersion  = "0.1.0-dev"
)

// # HTTP Servers

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds a request end to end, SQL statements included.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

// Every client IP gets DefaultRateLimitRPS sustained with bursts up to
// DefaultRateLimitBurst. Idle entries are swept every
// RateLimitCleanupInterval once unseen for RateLimitClientTTL.
const (
	DefaultRateLimitRPS      = 100.0
	DefaultRateLimitBurst    = 150
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// Identity headers. Only the gateway writes them, after verifying the access
// token; services trust them when TRUST_GATEWAY_HEADERS is on.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"
	HeaderRoles    = "X-Roles"
)

// IdentityHeaders are stripped from every inbound gateway request.
var IdentityHeaders = []string{HeaderUserID, HeaderUsername, HeaderRoles}

// # Cache

// RedisPrefixProduct namespaces cached public product reads, keyed by id.
const RedisPrefixProduct = "products:public:"

// # Events

const (
	// EventExchange is the durable topic exchange all domain events go to.
	EventExchange = "ffshop.events"

	RoutingOrderStatusChanged   = "order.status_changed"
	RoutingPaymentStatusChanged = "payment.status_changed"
)
