// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP chain shared by the gateway and the shop
services.

The gateway runs, in order: [RequestID], [PanicRecovery], [CORS],
[AuthGateway], [StructuredLogger] and [RateLimit]. The services run the
same pieces minus the gateway filter, with their own route guards further
down.
*/
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/taibuivan/ffshop/internal/platform/constants"
)

// RealIP returns the client address: X-Real-IP, then the first hop of
// X-Forwarded-For, then the socket peer. Header values that do not parse as
// an IP are ignored.
func RealIP(request *http.Request) string {
	if ip := net.ParseIP(strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP))); ip != nil {
		return ip.String()
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
