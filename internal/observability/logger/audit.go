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

package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// AuditEvent represents a provisioning or security-relevant event
type AuditEvent struct {
	EventType  string
	TenantID   string
	InstanceID string
	IPAddress  string
	Action     string
	Result     string // success, failure, denied
	Reason     string
	Metadata   map[string]any
}

// AuditLogger records the provisioning lifecycle and authentication outcomes
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger.With(Component("audit")),
	}
}

// Log logs an audit event
func (a *AuditLogger) Log(ctx context.Context, event AuditEvent) {
	// UUIDv7 keeps audit events sortable by emission time.
	eventID := uuid.Must(uuid.NewV7()).String()

	attrs := []slog.Attr{
		slog.String("event_id", eventID),
		slog.String("event_type", event.EventType),
		slog.String("action", event.Action),
		slog.String("result", event.Result),
	}

	if event.TenantID != "" {
		attrs = append(attrs, slog.String("tenant_id", event.TenantID))
	}
	if event.InstanceID != "" {
		attrs = append(attrs, slog.String("instance_id", event.InstanceID))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, slog.Any("metadata", event.Metadata))
	}

	a.logger.LogAttrs(ctx, slog.LevelInfo, "audit_event", attrs...)
}

// Provisioning lifecycle events
func (a *AuditLogger) EndpointProvisioned(ctx context.Context, tenantID, instanceID, plan string) {
	a.Log(ctx, AuditEvent{
		EventType:  "provisioning",
		TenantID:   tenantID,
		InstanceID: instanceID,
		Action:     "provision",
		Result:     "success",
		Metadata:   map[string]any{"plan": plan},
	})
}

func (a *AuditLogger) EndpointUpdated(ctx context.Context, tenantID, instanceID, plan string) {
	a.Log(ctx, AuditEvent{
		EventType:  "provisioning",
		TenantID:   tenantID,
		InstanceID: instanceID,
		Action:     "update",
		Result:     "success",
		Metadata:   map[string]any{"plan": plan},
	})
}

func (a *AuditLogger) EndpointDeactivated(ctx context.Context, tenantID, instanceID string, deactivateAt int64) {
	a.Log(ctx, AuditEvent{
		EventType:  "provisioning",
		TenantID:   tenantID,
		InstanceID: instanceID,
		Action:     "deactivate",
		Result:     "success",
		Metadata:   map[string]any{"deactivate_at": deactivateAt},
	})
}

func (a *AuditLogger) TenantDeprovisioned(ctx context.Context, tenantID string, deprovisionAt int64) {
	a.Log(ctx, AuditEvent{
		EventType: "provisioning",
		TenantID:  tenantID,
		Action:    "deprovision",
		Result:    "success",
		Metadata:  map[string]any{"deprovision_at": deprovisionAt},
	})
}

// Authentication events
func (a *AuditLogger) AuthFailure(ctx context.Context, ipAddr, reason string) {
	a.Log(ctx, AuditEvent{
		EventType: "authentication",
		IPAddress: ipAddr,
		Action:    "basic_auth",
		Result:    "failure",
		Reason:    reason,
	})
}

func (a *AuditLogger) UnprovisionedAccess(ctx context.Context, tenantID, instanceID, ipAddr string) {
	a.Log(ctx, AuditEvent{
		EventType:  "access_control",
		TenantID:   tenantID,
		InstanceID: instanceID,
		IPAddress:  ipAddr,
		Action:     "rpc",
		Result:     "denied",
		Reason:     "no live provisioning record",
	})
}
