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

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Config holds metrics configuration
type Config struct {
	Enabled bool
}

// Meter carries the gateway's instruments: per-method RPC counts and
// latencies plus provisioning operation counts.
type Meter struct {
	meter metric.Meter

	rpcRequests  metric.Int64Counter
	rpcDuration  metric.Float64Histogram
	provisioning metric.Int64Counter
}

// New creates a new meter instance
func New(ctx context.Context, cfg Config, serviceName string) (*Meter, error) {
	m := &Meter{}
	if !cfg.Enabled {
		m.meter = otel.Meter("noop")
	} else {
		m.meter = otel.Meter(serviceName)
	}

	var err error
	m.rpcRequests, err = m.meter.Int64Counter(
		"rpc_requests_total",
		metric.WithDescription("Dispatched JSON-RPC requests by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc request counter: %w", err)
	}
	m.rpcDuration, err = m.meter.Float64Histogram(
		"rpc_request_duration_seconds",
		metric.WithDescription("JSON-RPC request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc duration histogram: %w", err)
	}
	m.provisioning, err = m.meter.Int64Counter(
		"provisioning_operations_total",
		metric.WithDescription("Provisioning API operations by action and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provisioning counter: %w", err)
	}

	return m, nil
}

// GetMeter returns the underlying meter
func (m *Meter) GetMeter() metric.Meter {
	return m.meter
}

// RecordRPC counts one dispatched RPC and its latency.
func (m *Meter) RecordRPC(ctx context.Context, method string, status int, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("status", status),
	)
	m.rpcRequests.Add(ctx, 1, attrs)
	m.rpcDuration.Record(ctx, seconds, attrs)
}

// RecordProvisioning counts one provisioning API operation.
func (m *Meter) RecordProvisioning(ctx context.Context, action string, status int) {
	m.provisioning.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Int("status", status),
	))
}
