// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles runtime settings for the gateway and the shop services.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values. A local .env file,
when present, is loaded first with 'joho/godotenv'; real environment variables
always win over it.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Both binaries must be started with the same JWT_SECRET: the gateway verifies
the tokens the clients service issues.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Service names accepted in SERVICES.
const (
	ServiceClients  = "clients"
	ServiceOrders   = "orders"
	ServicePayments = "payments"
	ServiceProducts = "products"
)

// # Configuration Schema

// Config holds all runtime configuration for the shop API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8081"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Services selects which route groups this process mounts. Running one
	// process per service reproduces the microservice deployment.
	Services []string `env:"SERVICES" envSeparator:"," envDefault:"clients,orders,payments,products"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"20"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL        string        `env:"REDIS_URL,required"`
	RedisPoolSize   int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	ProductCacheTTL time.Duration `env:"PRODUCT_CACHE_TTL" envDefault:"5m"`

	// Token signing
	JWT JWTConfig

	// TrustGatewayHeaders makes the services accept X-User-Id / X-Roles as
	// already verified. Disable when a service is reachable without the gateway.
	TrustGatewayHeaders bool `env:"TRUST_GATEWAY_HEADERS" envDefault:"true"`

	// AdminSignupEnabled allows /register to create ADMIN accounts.
	AdminSignupEnabled bool `env:"ADMIN_SIGNUP_ENABLED" envDefault:"false"`

	// Message broker (RabbitMQ). Events are dropped when empty.
	AMQPURL string `env:"AMQP_URL"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// JWTConfig is shared by both binaries.
type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET,required"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL"  envDefault:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
}

// GatewayConfig holds the runtime configuration of the API gateway.
type GatewayConfig struct {
	ServerPort  string `env:"GATEWAY_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	JWT JWTConfig

	// PublicRoutes are Ant-style patterns reachable without a token.
	PublicRoutes []string `env:"PUBLIC_ROUTES" envSeparator:"," envDefault:"/health,/api/clients/auth/login,/api/clients/auth/register,/api/clients/auth/refresh,/api/public/products/**"`

	// Upstreams maps a path prefix to the base URL of the service behind it,
	// e.g. "/api/clients=http://clients:8081,/api/order=http://orders:8082".
	Upstreams map[string]string `env:"GATEWAY_UPSTREAMS,required" envSeparator:"," envKeyValSeparator:"="`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}

	// This fails if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	for _, name := range cfg.Services {
		if !slices.Contains([]string{ServiceClients, ServiceOrders, ServicePayments, ServiceProducts}, name) {
			return nil, fmt.Errorf("config: unknown service %q in SERVICES", name)
		}
	}

	return cfg, nil
}

// LoadGateway parses environment variables into a [GatewayConfig] struct.
func LoadGateway() (*GatewayConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &GatewayConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if len(cfg.Upstreams) == 0 {
		return nil, errors.New("config: GATEWAY_UPSTREAMS must name at least one upstream")
	}

	return cfg, nil
}

// loadDotEnv reads .env from the working directory. A missing file is not an error.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to read .env: %w", err)
	}
	return nil
}

// Enabled reports whether the named service is mounted by this process.
func (c *Config) Enabled(service string) bool {
	return slices.Contains(c.Services, service)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Origins returns the CORS allow-list.
func (c *Config) Origins() []string {
	return c.AllowedOrigins
}

// IsDevelopment reports whether the gateway is running in development mode.
func (c *GatewayConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// Origins returns the CORS allow-list.
func (c *GatewayConfig) Origins() []string {
	return c.AllowedOrigins
}

// Port returns the listen port of the shop API server.
func (c *Config) Port() string {
	return c.ServerPort
}

// Port returns the listen port of the gateway.
func (c *GatewayConfig) Port() string {
	return c.ServerPort
}
