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

// Package notifier delivers operator alerts for server-side failures to a
// Mattermost-compatible incoming webhook. Delivery is best effort: a failed
// notification is logged and never affects the request that triggered it.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Notifier sends an out-of-band message to the operators.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Webhook posts messages to a Mattermost incoming webhook.
type Webhook struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewWebhook constructs a webhook notifier. An empty hook URL yields a noop
// notifier, so callers never branch on configuration.
func NewWebhook(hookURL string, logger *slog.Logger) Notifier {
	if hookURL == "" {
		logger.Info("alert webhook not configured, notifications disabled")
		return Noop{}
	}
	return &Webhook{
		url:    hookURL,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type webhookPayload struct {
	Text string `json:"text"`
}

// Notify posts the message. Failures are logged, never returned.
func (w *Webhook) Notify(ctx context.Context, message string) {
	body, err := json.Marshal(webhookPayload{Text: message})
	if err != nil {
		w.logger.Error("failed to encode alert payload", "error", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		w.logger.Error("failed to build alert request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.Error("failed to deliver alert", "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		w.logger.Error("alert webhook rejected message", "error", fmt.Sprintf("status %d", resp.StatusCode))
	}
}

// Noop discards every message.
type Noop struct{}

func (Noop) Notify(context.Context, string) {}

// Recorder captures messages for tests.
type Recorder struct {
	Messages []string
}

func (r *Recorder) Notify(_ context.Context, message string) {
	r.Messages = append(r.Messages, message)
}
