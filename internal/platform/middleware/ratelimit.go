// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/ffshop/internal/platform/apperr"
	"github.com/taibuivan/ffshop/internal/platform/constants"
	"github.com/taibuivan/ffshop/internal/platform/respond"
)

// limiterTable keeps one token bucket per client address.
type limiterTable struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterTable(limit rate.Limit, burst int) *limiterTable {
	return &limiterTable{buckets: make(map[string]*bucket), limit: limit, burst: burst}
}

// reserve takes one token for client. When none is left it returns how long
// the client should wait.
func (table *limiterTable) reserve(client string, now time.Time) (bool, time.Duration) {
	table.mu.Lock()
	defer table.mu.Unlock()

	entry, ok := table.buckets[client]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(table.limit, table.burst)}
		table.buckets[client] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep forgets clients idle for longer than ttl.
func (table *limiterTable) sweep(now time.Time, ttl time.Duration) {
	table.mu.Lock()
	defer table.mu.Unlock()

	for client, entry := range table.buckets {
		if now.Sub(entry.lastSeen) > ttl {
			delete(table.buckets, client)
		}
	}
}

// RateLimit allows each client IP DefaultRateLimitRPS requests per second
// with a burst of DefaultRateLimitBurst, and answers 429 beyond that. The
// idle-client sweeper stops with ctx.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	table := newLimiterTable(rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				table.sweep(now, constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			allowed, wait := table.reserve(RealIP(request), time.Now())
			if !allowed {
				retryAfter := max(1, int(math.Ceil(wait.Seconds())))
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
