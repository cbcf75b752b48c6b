// Copyright 2026 Bonfida
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Bonfida/sns-quicknode/internal/observability/logger"
	"github.com/Bonfida/sns-quicknode/internal/provisioning"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns"
)

// RateLimiter hands out a token bucket per client IP. The map is swept
// periodically so one-off callers do not accumulate; an active caller simply
// gets a fresh bucket on its next request.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	sweep    time.Duration
}

// NewRateLimiter creates a limiter granting rps sustained requests per second
// with the given burst per client IP.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		sweep:    10 * time.Minute,
	}
	go rl.sweepLoop()
	return rl
}

// Allow reports whether the client may proceed, consuming one token.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lim, ok := rl.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[ip] = lim
	}
	return lim.Allow()
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.sweep)
	for range ticker.C {
		rl.mu.Lock()
		rl.limiters = make(map[string]*rate.Limiter)
		rl.mu.Unlock()
	}
}

// RateLimitMiddleware rejects clients over their per-IP budget before any
// other processing. The rejection carries the wire shape of the surface it
// hit, like every other gateway error, but always with HTTP 429 so callers
// can back off; throttling never pages the operators.
func (h *Handler) RateLimitMiddleware(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.Allow(ip) {
				slog.WarnContext(r.Context(), "rate limit exceeded",
					logger.RemoteAddr(ip),
					logger.Path(r.URL.Path),
				)
				if strings.HasPrefix(r.URL.Path, "/provisioning") {
					respondJSON(w, http.StatusTooManyRequests,
						provisioning.UpdateResponse{Status: provisioning.StatusError})
					return
				}
				respondJSON(w, http.StatusTooManyRequests,
					sns.NewErrorResponse(nil, rpcerror.Newf(rpcerror.Generic, "rate limit exceeded")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, set by the fronting proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return forwarded
	}
	return r.RemoteAddr
}
