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

import "context"

type contextKey string

const (
	tenantIDKey   contextKey = "tenant_id"
	instanceIDKey contextKey = "instance_id"
)

// WithTenant stores the tenant identity headers on the context.
func WithTenant(ctx context.Context, tenantID, instanceID string) context.Context {
	ctx = context.WithValue(ctx, tenantIDKey, tenantID)
	return context.WithValue(ctx, instanceIDKey, instanceID)
}

// GetTenantID retrieves the tenant ID from context.
func GetTenantID(ctx context.Context) string {
	if val, ok := ctx.Value(tenantIDKey).(string); ok {
		return val
	}
	return ""
}

// GetInstanceID retrieves the instance ID from context.
func GetInstanceID(ctx context.Context) string {
	if val, ok := ctx.Value(instanceIDKey).(string); ok {
		return val
	}
	return ""
}
