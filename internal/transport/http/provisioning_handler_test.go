package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (g *testGateway) provisioningCall(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.SetBasicAuth(testUser, testPass)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	g.router.ServeHTTP(rec, req)
	return rec
}

// TestPurpose: Validates the provisioning lifecycle over HTTP: provision,
// test-read, deactivate, revive via update, deprovision.
// Scope: HTTP Integration Test
// Expected: kebab-case wire fields round-trip; a deactivated endpoint reads
// back as error until updated.
// Test Case ID: GW-10
func TestProvisioning_Lifecycle(t *testing.T) {
	g := newTestGateway(t)
	body := `{
		"quicknode-id": "tenant-1",
		"endpoint-id": "instance-1",
		"wss-url": "wss://backend.example.com",
		"http-url": "https://backend.example.com",
		"referers": [],
		"chain": "solana",
		"network": "mainnet",
		"plan": "standard"
	}`

	rec := g.provisioningCall(t, http.MethodPost, "/provisioning/new", body, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","dashboard-url":null,"access-url":null}`, rec.Body.String())

	rec = g.provisioningCall(t, http.MethodGet, "/provisioning/test/tenant-1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"http-url":"https://backend.example.com"`)

	rec = g.provisioningCall(t, http.MethodDelete, "/provisioning/deactivate",
		`{"quicknode-id":"tenant-1","endpoint-id":"instance-1","deactivate-at":100,"chain":"solana","network":"mainnet"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())

	rec = g.provisioningCall(t, http.MethodGet, "/provisioning/test/tenant-1", "", true)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":"error"}`, rec.Body.String())

	rec = g.provisioningCall(t, http.MethodPut, "/provisioning/update", body, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = g.provisioningCall(t, http.MethodGet, "/provisioning/test/tenant-1", "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = g.provisioningCall(t, http.MethodDelete, "/provisioning/deprovision",
		`{"quicknode-id":"tenant-1","endpoint-id":"instance-1","deprovision-at":100}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = g.provisioningCall(t, http.MethodGet, "/provisioning/test/tenant-1", "", true)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestPurpose: Validates authentication and body validation on the
// provisioning surface.
// Scope: HTTP Integration Test
// Expected: 401 without credentials, 400 with a non-JSON body, both with the
// provisioning error shape.
// Test Case ID: GW-11
func TestProvisioning_AuthAndValidation(t *testing.T) {
	g := newTestGateway(t)

	rec := g.provisioningCall(t, http.MethodPost, "/provisioning/new", `{}`, false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":"error"}`, rec.Body.String())

	rec = g.provisioningCall(t, http.MethodPost, "/provisioning/new", `not json`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"status":"error"}`, rec.Body.String())
}
