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
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Bonfida/sns-quicknode/internal/provisioning"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return rpcerror.Wrap(rpcerror.MalformedRequest, err)
	}
	return nil
}

// Provision registers a new tenant endpoint.
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	var endpoint provisioning.Endpoint
	if err := decodeBody(r, &endpoint); err != nil {
		h.meter.RecordProvisioning(r.Context(), "provision", http.StatusBadRequest)
		h.renderError(w, r, err)
		return
	}
	if err := h.store.Provision(r.Context(), &endpoint); err != nil {
		h.meter.RecordProvisioning(r.Context(), "provision", rpcerror.FromErr(err).HTTPStatus())
		h.renderError(w, r, err)
		return
	}
	h.audit.EndpointProvisioned(r.Context(), endpoint.TenantID, endpoint.InstanceID, endpoint.Plan)
	h.meter.RecordProvisioning(r.Context(), "provision", http.StatusOK)
	respondJSON(w, http.StatusOK, provisioning.Response{Status: provisioning.StatusSuccess})
}

// Update rewrites a tenant's endpoint and revives it if deactivated.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var endpoint provisioning.Endpoint
	if err := decodeBody(r, &endpoint); err != nil {
		h.meter.RecordProvisioning(r.Context(), "update", http.StatusBadRequest)
		h.renderError(w, r, err)
		return
	}
	if err := h.store.Update(r.Context(), &endpoint); err != nil {
		h.meter.RecordProvisioning(r.Context(), "update", rpcerror.FromErr(err).HTTPStatus())
		h.renderError(w, r, err)
		return
	}
	h.audit.EndpointUpdated(r.Context(), endpoint.TenantID, endpoint.InstanceID, endpoint.Plan)
	h.meter.RecordProvisioning(r.Context(), "update", http.StatusOK)
	respondJSON(w, http.StatusOK, provisioning.UpdateResponse{Status: provisioning.StatusSuccess})
}

// Deactivate retires one endpoint at the requested timestamp.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	var req provisioning.DeactivateRequest
	if err := decodeBody(r, &req); err != nil {
		h.meter.RecordProvisioning(r.Context(), "deactivate", http.StatusBadRequest)
		h.renderError(w, r, err)
		return
	}
	if err := h.store.Deactivate(r.Context(), req.TenantID, req.InstanceID, req.DeactivateAt); err != nil {
		h.meter.RecordProvisioning(r.Context(), "deactivate", rpcerror.FromErr(err).HTTPStatus())
		h.renderError(w, r, err)
		return
	}
	h.audit.EndpointDeactivated(r.Context(), req.TenantID, req.InstanceID, req.DeactivateAt)
	h.meter.RecordProvisioning(r.Context(), "deactivate", http.StatusOK)
	respondJSON(w, http.StatusOK, provisioning.UpdateResponse{Status: provisioning.StatusSuccess})
}

// Deprovision retires every endpoint of a tenant.
func (h *Handler) Deprovision(w http.ResponseWriter, r *http.Request) {
	var req provisioning.DeprovisionRequest
	if err := decodeBody(r, &req); err != nil {
		h.meter.RecordProvisioning(r.Context(), "deprovision", http.StatusBadRequest)
		h.renderError(w, r, err)
		return
	}
	if err := h.store.Deprovision(r.Context(), req.TenantID, req.DeprovisionAt); err != nil {
		h.meter.RecordProvisioning(r.Context(), "deprovision", rpcerror.FromErr(err).HTTPStatus())
		h.renderError(w, r, err)
		return
	}
	h.audit.TenantDeprovisioned(r.Context(), req.TenantID, req.DeprovisionAt)
	h.meter.RecordProvisioning(r.Context(), "deprovision", http.StatusOK)
	respondJSON(w, http.StatusOK, provisioning.UpdateResponse{Status: provisioning.StatusSuccess})
}

// ProvisioningTest echoes the live provisioning record of a tenant, for
// partner-side diagnostics.
func (h *Handler) ProvisioningTest(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenant_id")
	endpoint, err := h.store.GetByTenant(r.Context(), tenantID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, endpoint)
}
