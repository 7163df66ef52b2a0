// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/ctxutil"
	"github.com/taibuivan/ffshop/internal/platform/respond"
	"github.com/taibuivan/ffshop/internal/platform/sec"
)

// AccessVerifier verifies an access token. [sec.TokenCodec] satisfies it.
type AccessVerifier interface {
	VerifyAccess(token string) (*sec.Claims, error)
}

/*
AuthGateway is the gateway's token check. It must be the first
request-processing middleware so nothing downstream ever sees an
unauthenticated request for a protected route.

# Flow
 1. Strip any client-supplied X-User-Id / X-Username / X-Roles.
 2. Public route: forward untouched.
 3. Otherwise require "Authorization: Bearer <token>" and verify it.
 4. Forward a copy of the request carrying the identity headers.

Any failure ends the request with 401.
*/
func AuthGateway(verifier AccessVerifier, public *PublicRoutes, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			forwarded := request.Clone(ctx)
			normalizePath(forwarded)
			for _, header := range constants.IdentityHeaders {
				forwarded.Header.Del(header)
			}

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(ctx)),
				slog.String("method", request.Method),
				slog.String("path", forwarded.URL.Path),
			)

			// ── 1. Public Bypass ──────────────────────────────────────────────
			if public.Match(forwarded.URL.Path) {
				requestLogger.DebugContext(ctx, "gateway_public_route")
				next.ServeHTTP(writer, forwarded)
				return
			}

			// ── 2. Header Check ───────────────────────────────────────────────
			token, err := sec.BearerToken(request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				event := "gateway_invalid_authorization_header"
				if errors.Is(err, sec.ErrMissingAuthorization) {
					event = "gateway_missing_authorization_header"
				}
				requestLogger.WarnContext(ctx, event)
				reject(writer, forwarded, err)
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccess(token)
			if err != nil {
				requestLogger.WarnContext(ctx, "gateway_invalid_token", slog.String("reason", err.Error()))
				reject(writer, forwarded, err)
				return
			}

			// ── 4. Identity Propagation ───────────────────────────────────────
			forwarded.Header.Set(constants.HeaderUserID, strconv.FormatInt(claims.UserID, 10))
			forwarded.Header.Set(constants.HeaderUsername, claims.Subject)
			forwarded.Header.Set(constants.HeaderRoles, string(claims.Role))

			next.ServeHTTP(writer, forwarded.WithContext(ctxutil.WithIdentity(ctx, claims.Identity())))
		})
	}
}

func reject(writer http.ResponseWriter, request *http.Request, cause error) {
	respond.Error(writer, request, apperr.Unauthorized("Authentication required").WithCause(cause))
}

// normalizePath resolves dot segments so "/api/public/products/../../order"
// cannot ride on a public pattern. A trailing slash is kept.
func normalizePath(request *http.Request) {
	raw := request.URL.Path
	if raw == "" {
		raw = "/"
	}

	cleaned := path.Clean("/" + raw)
	if strings.HasSuffix(raw, "/") && cleaned != "/" {
		cleaned += "/"
	}

	if cleaned != request.URL.Path {
		request.URL.Path = cleaned
		request.URL.RawPath = ""
	}
}
