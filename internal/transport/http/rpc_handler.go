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
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Bonfida/sns-quicknode/internal/observability/logger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns"
)

// maxRequestBody bounds a JSON-RPC request body.
const maxRequestBody = 1 << 20

// RPC is the JSON-RPC gateway endpoint. The flow per request: decode the
// envelope, resolve the tenant's provisioned backend, dial a fresh ledger
// client against it, dispatch the method, render. The request id is echoed
// verbatim on success and on every failure, envelope-level ones included.
func (h *Handler) RPC(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		h.renderError(w, r, rpcerror.Wrap(rpcerror.MalformedRequest, err))
		return
	}

	env, decodeErr := sns.DecodeEnvelope(body)
	if decodeErr != nil {
		h.renderRPCError(w, r, env.ID, decodeErr)
		return
	}

	tenantID, instanceID := GetTenantID(ctx), GetInstanceID(ctx)
	endpoint, err := h.store.Get(ctx, tenantID, instanceID)
	if err != nil {
		if rpcerror.FromErr(err).Kind == rpcerror.ProvisioningRecordNotFound {
			h.audit.UnprovisionedAccess(ctx, tenantID, instanceID, r.RemoteAddr)
		}
		h.renderRPCError(w, r, env.ID, err)
		return
	}

	cli := h.dial(endpoint.HTTPURL)
	result, err := sns.Dispatch(ctx, cli, env.Method, env.Params)

	status := http.StatusOK
	if err != nil {
		status = rpcerror.FromErr(err).HTTPStatus()
	}
	h.meter.RecordRPC(ctx, env.Method.String(), status, time.Since(start).Seconds())

	if err != nil {
		h.renderRPCError(w, r, env.ID, err)
		return
	}

	slog.InfoContext(ctx, "rpc_dispatched",
		logger.RequestID(middleware.GetReqID(ctx)),
		logger.TenantID(tenantID),
		logger.RPCMethod(env.Method.String()),
		logger.Duration(time.Since(start).Milliseconds()),
	)
	respondJSON(w, http.StatusOK, sns.NewResponse(env.ID, result))
}

// renderRPCError renders a JSON-RPC error envelope carrying the request id.
func (h *Handler) renderRPCError(w http.ResponseWriter, r *http.Request, id json.RawMessage, err error) {
	rpcErr := rpcerror.FromErr(err)
	status := rpcErr.HTTPStatus()
	h.logError(r, rpcErr, status)
	respondJSON(w, status, sns.NewErrorResponse(id, rpcErr))
}
