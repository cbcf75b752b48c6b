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
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Bonfida/sns-quicknode/internal/observability/logger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			slog.InfoContext(r.Context(), "http_request_start",
				logger.RequestID(middleware.GetReqID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request_end",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.UserAgent(r.UserAgent()),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// BasicAuthMiddleware enforces the static credential pair shared with the
// provisioning partner. Both comparisons run in constant time and both always
// run, so a request with a valid username costs the same as one without.
func (h *Handler) BasicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			h.audit.AuthFailure(r.Context(), r.RemoteAddr, "missing basic auth")
			h.renderError(w, r, rpcerror.Newf(rpcerror.InvalidAuthentication, "missing credentials"))
			return
		}
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(h.auth.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(h.auth.Password)) == 1
		if !userOK || !passOK {
			h.audit.AuthFailure(r.Context(), r.RemoteAddr, "bad credentials")
			h.renderError(w, r, rpcerror.Newf(rpcerror.InvalidAuthentication, "bad credentials"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TenantHeadersMiddleware pulls the tenant identity headers into the request
// context. A missing tenant header is an authentication failure, matching the
// contract with the provisioning partner.
func (h *Handler) TenantHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get("x-quicknode-id")
		if tenantID == "" {
			h.renderError(w, r, rpcerror.Newf(rpcerror.InvalidAuthentication, "missing x-quicknode-id header"))
			return
		}
		instanceID := r.Header.Get("x-instance-id")
		next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), tenantID, instanceID)))
	})
}
