// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gateway is the single entry point of the shop.

It verifies the caller's token (see [middleware.AuthGateway]) and forwards
the request, identity headers included, to the service that owns the path
prefix. The services behind it are never exposed directly.
*/
package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/respond"
)

type route struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// Proxy forwards each request to the upstream with the longest matching prefix.
type Proxy struct {
	routes []route
	logger *slog.Logger
}

/*
NewProxy builds one reverse proxy per upstream.

Parameters:
  - upstreams: path prefix to base URL, e.g. "/api/order" -> "http://orders:8082"

Returns:
  - error: if a URL cannot be parsed or a prefix does not start with "/"
*/
func NewProxy(upstreams map[string]string, logger *slog.Logger) (*Proxy, error) {
	proxy := &Proxy{logger: logger}

	for prefix, raw := range upstreams {
		if !strings.HasPrefix(prefix, "/") {
			return nil, fmt.Errorf("gateway: prefix %q must start with /", prefix)
		}

		target, err := url.Parse(raw)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("gateway: invalid upstream %q for %s", raw, prefix)
		}

		proxy.routes = append(proxy.routes, route{
			prefix: strings.TrimSuffix(prefix, "/"),
			proxy:  proxy.reverseProxy(target),
		})
	}

	// Longest prefix first.
	sort.Slice(proxy.routes, func(i, j int) bool {
		return len(proxy.routes[i].prefix) > len(proxy.routes[j].prefix)
	})

	return proxy, nil
}

func (proxy *Proxy) reverseProxy(target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(outbound *httputil.ProxyRequest) {
			outbound.SetURL(target)
			outbound.SetXForwarded()
		},
		ErrorHandler: func(writer http.ResponseWriter, request *http.Request, err error) {
			proxy.logger.ErrorContext(request.Context(), "gateway_upstream_failed",
				slog.String("upstream", target.Host),
				slog.String("path", request.URL.Path),
				slog.String("error", err.Error()),
			)
			respond.Error(writer, request, apperr.BadGateway(err))
		},
	}
}

// ServeHTTP implements [http.Handler].
func (proxy *Proxy) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	for _, route := range proxy.routes {
		if matchesPrefix(request.URL.Path, route.prefix) {
			route.proxy.ServeHTTP(writer, request)
			return
		}
	}
	respond.Error(writer, request, apperr.NotFound("Route"))
}

// matchesPrefix matches whole path segments only: "/api/order" covers
// "/api/order/users" but not "/api/orders".
func matchesPrefix(requestPath, prefix string) bool {
	if prefix == "" {
		return true
	}
	return requestPath == prefix || strings.HasPrefix(requestPath, prefix+"/")
}
