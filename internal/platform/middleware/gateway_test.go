// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ffshop/internal/platform/ctxutil"
	"github.com/taibuivan/ffshop/internal/platform/middleware"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

var gatewaySecret = []byte("gateway-test-secret-0123456789abcdef")

// captured records what reached the handler behind the gateway.
type captured struct {
	called   bool
	path     string
	userID   string
	username string
	roles    []string
	identity *sec.Identity
}

func newGateway(t *testing.T) (http.Handler, *sec.TokenCodec, *captured) {
	t.Helper()

	codec, err := sec.NewTokenCodec(sec.SigningConfig{Secret: gatewaySecret})
	require.NoError(t, err)

	public, err := middleware.NewPublicRoutes([]string{
		"/api/clients/auth/login",
		"/api/clients/auth/register",
		"/api/clients/auth/refresh",
		"/api/public/products/**",
	})
	require.NoError(t, err)

	seen := &captured{}
	downstream := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen.called = true
		seen.path = request.URL.Path
		seen.userID = request.Header.Get("X-User-Id")
		seen.username = request.Header.Get("X-Username")
		seen.roles = request.Header.Values("X-Roles")
		seen.identity = ctxutil.GetIdentity(request.Context())
		writer.WriteHeader(http.StatusOK)
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return middleware.AuthGateway(codec, public, logger)(downstream), codec, seen
}

func serve(handler http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestAuthGateway_PublicBypass forwards public routes without a token.
*/
func TestAuthGateway_PublicBypass(t *testing.T) {
	tests := []struct {
		name   string
		target string
		public bool
	}{
		{"login", "/api/clients/auth/login", true},
		{"refresh", "/api/clients/auth/refresh", true},
		{"products_root", "/api/public/products", true},
		{"product_detail", "/api/public/products/42", true},
		{"nested_product_path", "/api/public/products/42/stock", true},
		{"lookalike_prefix", "/api/public/products-admin", false},
		{"protected_route", "/api/order/users", false},
		{"dot_segments", "/api/public/products/../../order/users", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway, _, seen := newGateway(t)
			recorder := serve(gateway, http.MethodGet, tt.target, nil)

			if tt.public {
				assert.Equal(t, http.StatusOK, recorder.Code)
				assert.True(t, seen.called)
			} else {
				assert.Equal(t, http.StatusUnauthorized, recorder.Code)
				assert.False(t, seen.called)
			}
		})
	}
}

/*
TestAuthGateway_StripsSpoofedIdentity never lets client-supplied identity headers through.
*/
func TestAuthGateway_StripsSpoofedIdentity(t *testing.T) {
	gateway, _, seen := newGateway(t)

	recorder := serve(gateway, http.MethodGet, "/api/public/products", map[string]string{
		"X-User-Id": "1",
		"X-Roles":   "ADMIN",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, seen.userID)
	assert.Empty(t, seen.roles)
}

/*
TestAuthGateway_Rejections covers the header and token failures, all 401.
*/
func TestAuthGateway_Rejections(t *testing.T) {
	gateway, codec, seen := newGateway(t)

	expired, err := sec.NewTokenCodec(sec.SigningConfig{Secret: gatewaySecret},
		sec.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	require.NoError(t, err)
	expiredToken, err := expired.Issue(sec.Claims{Subject: "late@shop.test", UserID: 1}, time.Hour)
	require.NoError(t, err)

	refreshToken, err := codec.Issue(sec.Claims{Subject: "r@shop.test", UserID: 1, Use: sec.TokenUseRefresh}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing_header", ""},
		{"basic_scheme", "Basic dXNlcjpwYXNz"},
		{"lowercase_bearer", "bearer abc"},
		{"garbage_token", "Bearer garbage"},
		{"expired_token", "Bearer " + expiredToken},
		{"refresh_token", "Bearer " + refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.authorization != "" {
				headers["Authorization"] = tt.authorization
			}

			recorder := serve(gateway, http.MethodGet, "/api/order/users", headers)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, seen.called)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, "UNAUTHORIZED", body["code"])
		})
	}
}

/*
TestAuthGateway_Propagation injects the identity headers from a valid token.
*/
func TestAuthGateway_Propagation(t *testing.T) {
	gateway, codec, seen := newGateway(t)

	token, err := codec.Issue(sec.Claims{Subject: "buyer@shop.test", UserID: 77, Role: sec.RoleUser}, time.Hour)
	require.NoError(t, err)

	recorder := serve(gateway, http.MethodGet, "/api/order/users", map[string]string{
		"Authorization": "Bearer " + token,
		"X-User-Id":     "1",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "77", seen.userID)
	assert.Equal(t, "buyer@shop.test", seen.username)
	assert.Equal(t, []string{"USER"}, seen.roles)
	require.NotNil(t, seen.identity)
	assert.Equal(t, int64(77), seen.identity.ID)
}

/*
TestAuthGateway_MissingRole propagates an empty X-Roles when the claim is absent.
*/
func TestAuthGateway_MissingRole(t *testing.T) {
	gateway, codec, seen := newGateway(t)

	token, err := codec.Issue(sec.Claims{Subject: "norole@shop.test", UserID: 5}, time.Hour)
	require.NoError(t, err)

	recorder := serve(gateway, http.MethodGet, "/api/order/users", map[string]string{
		"Authorization": "Bearer " + token,
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "5", seen.userID)
	assert.Equal(t, []string{""}, seen.roles)
}
