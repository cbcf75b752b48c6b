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

// Package http is the transport layer of the gateway: the chi router, the
// authentication and tenant middleware, the JSON-RPC dispatch handler and the
// partner provisioning API.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/notifier"
	"github.com/Bonfida/sns-quicknode/internal/observability/logger"
	"github.com/Bonfida/sns-quicknode/internal/observability/metrics"
	"github.com/Bonfida/sns-quicknode/internal/provisioning"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns"
)

// AuthConfig holds the static basic-auth credential pair.
type AuthConfig struct {
	Username string
	Password string
}

// Handler holds HTTP handlers and dependencies
type Handler struct {
	store  provisioning.Store
	dial   ledger.Dialer
	notify notifier.Notifier
	audit  *logger.AuditLogger
	meter  *metrics.Meter
	auth   AuthConfig
}

// NewHandler creates a new HTTP handler
func NewHandler(
	store provisioning.Store,
	dial ledger.Dialer,
	notify notifier.Notifier,
	audit *logger.AuditLogger,
	meter *metrics.Meter,
	auth AuthConfig,
) *Handler {
	return &Handler{
		store:  store,
		dial:   dial,
		notify: notify,
		audit:  audit,
		meter:  meter,
		auth:   auth,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(h.RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/", h.HealthCheck)

	// JSON-RPC surface
	r.Route("/rpc", func(r chi.Router) {
		r.Use(h.BasicAuthMiddleware)
		r.Use(h.TenantHeadersMiddleware)
		r.Post("/", h.RPC)
	})

	// Partner provisioning surface
	r.Route("/provisioning", func(r chi.Router) {
		r.Use(h.BasicAuthMiddleware)
		r.Post("/new", h.Provision)
		r.Put("/update", h.Update)
		r.Delete("/deactivate", h.Deactivate)
		r.Delete("/deprovision", h.Deprovision)
		r.Get("/test/{tenant_id}", h.ProvisioningTest)
	})

	return r
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", logger.Error(err))
	}
}

// renderError maps an error onto the failing surface's wire shape: the RPC
// surface answers a JSON-RPC error envelope (null id at this layer, handlers
// that know the request id render their own), the provisioning surface
// answers {"status":"error"}. Server-side failures additionally page the
// operators, best effort.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	rpcErr := rpcerror.FromErr(err)
	status := rpcErr.HTTPStatus()

	h.logError(r, rpcErr, status)

	if strings.HasPrefix(r.URL.Path, "/provisioning") {
		respondJSON(w, status, provisioning.UpdateResponse{Status: provisioning.StatusError})
		return
	}
	respondJSON(w, status, sns.NewErrorResponse(nil, rpcErr))
}

// logError writes the full trace server-side and notifies on 5xx.
func (h *Handler) logError(r *http.Request, rpcErr *rpcerror.Error, status int) {
	if status >= 500 {
		slog.ErrorContext(r.Context(), "request failed",
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Path(r.URL.Path),
			logger.StatusCode(status),
			logger.Error(rpcErr),
			logger.ErrorTrace(rpcErr.FullTrace()),
		)
		h.notify.Notify(r.Context(), fmt.Sprintf("Error on %s: %s (%s)",
			r.URL.Path, rpcErr.Message(), rpcErr.FullTrace()))
		return
	}
	slog.WarnContext(r.Context(), "request rejected",
		logger.RequestID(middleware.GetReqID(r.Context())),
		logger.Path(r.URL.Path),
		logger.StatusCode(status),
		logger.Error(rpcErr),
		logger.ErrorTrace(rpcErr.FullTrace()),
	)
}
