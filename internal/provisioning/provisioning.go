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

// Package provisioning holds the tenant endpoint model and the storage
// contract behind the partner provisioning API. Endpoints are soft-deleted:
// a row never leaves the table, its expiry timestamp moves instead.
package provisioning

import (
	"context"
	"math"
)

// NeverExpires is the expiry timestamp of a live endpoint. Provision and
// update both reset expiry to this sentinel, which also un-deletes a
// previously deactivated row.
const NeverExpires int64 = math.MaxInt64

// Endpoint is one provisioned tenant endpoint. The JSON field names are the
// kebab-case names of the partner provisioning protocol.
type Endpoint struct {
	TenantID   string   `json:"quicknode-id"`
	InstanceID string   `json:"endpoint-id"`
	WssURL     string   `json:"wss-url"`
	HTTPURL    string   `json:"http-url"`
	Referers   []string `json:"referers"`
	Chain      string   `json:"chain"`
	Network    string   `json:"network"`
	Plan       string   `json:"plan"`
}

// DeactivateRequest retires a single endpoint of a tenant.
type DeactivateRequest struct {
	TenantID     string `json:"quicknode-id"`
	InstanceID   string `json:"endpoint-id"`
	DeactivateAt int64  `json:"deactivate-at"`
	Chain        string `json:"chain"`
	Network      string `json:"network"`
}

// DeprovisionRequest retires every endpoint of a tenant.
type DeprovisionRequest struct {
	TenantID      string `json:"quicknode-id"`
	InstanceID    string `json:"endpoint-id"`
	DeprovisionAt int64  `json:"deprovision-at"`
}

// Status is the outcome field of provisioning responses.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Response is the reply to a provision call.
type Response struct {
	Status       Status  `json:"status"`
	DashboardURL *string `json:"dashboard-url"`
	AccessURL    *string `json:"access-url"`
}

// UpdateResponse is the reply to update, deactivate and deprovision calls.
type UpdateResponse struct {
	Status Status `json:"status"`
}

// Store persists tenant endpoints. Lookup methods return only live rows;
// liveness is decided against wall-clock seconds after the fetch, so an
// expiry in the past behaves exactly like a missing row
// (ProvisioningRecordNotFound).
type Store interface {
	// Provision inserts a fresh endpoint row with expiry NeverExpires.
	Provision(ctx context.Context, e *Endpoint) error
	// Update rewrites the endpoint row of a tenant and resets its expiry.
	Update(ctx context.Context, e *Endpoint) error
	// Deactivate sets the expiry of one (tenant, instance) row.
	Deactivate(ctx context.Context, tenantID, instanceID string, expireAt int64) error
	// Deprovision sets the expiry of every row of a tenant.
	Deprovision(ctx context.Context, tenantID string, expireAt int64) error
	// Get fetches the live endpoint for a (tenant, instance) pair.
	Get(ctx context.Context, tenantID, instanceID string) (*Endpoint, error)
	// GetByTenant fetches the live endpoint of a tenant regardless of instance.
	GetByTenant(ctx context.Context, tenantID string) (*Endpoint, error)
}
