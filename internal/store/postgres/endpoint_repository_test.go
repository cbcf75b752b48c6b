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

package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bonfida/sns-quicknode/internal/provisioning"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// stubRow feeds scanLive a fetched endpoint row without a database.
type stubRow struct {
	endpoint provisioning.Endpoint
	expiry   int64
	err      error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.endpoint.TenantID
	*dest[1].(*string) = r.endpoint.InstanceID
	*dest[2].(*string) = r.endpoint.WssURL
	*dest[3].(*string) = r.endpoint.HTTPURL
	*dest[4].(*[]string) = r.endpoint.Referers
	*dest[5].(*string) = r.endpoint.Chain
	*dest[6].(*string) = r.endpoint.Network
	*dest[7].(*string) = r.endpoint.Plan
	*dest[8].(*int64) = r.expiry
	return nil
}

func repoAt(now int64) *EndpointRepository {
	return &EndpointRepository{now: func() int64 { return now }}
}

// TestPurpose: Validates the expiry boundary of the liveness check: a row is
// live strictly after now, so an expiry equal to now reads as missing.
// Scope: Unit Test
// Expected: expiry <= now yields ProvisioningRecordNotFound; expiry > now
// yields the endpoint; the never-expires sentinel is always live.
// Test Case ID: PRV-03
func TestScanLive_ExpiryBoundary(t *testing.T) {
	const now = int64(1_700_000_000)
	endpoint := provisioning.Endpoint{
		TenantID:   "tenant-1",
		InstanceID: "instance-1",
		HTTPURL:    "https://backend.example.com",
		Chain:      "solana",
		Network:    "mainnet",
		Plan:       "standard",
	}

	tests := []struct {
		name   string
		expiry int64
		live   bool
	}{
		{"expired in the past", now - 1, false},
		{"expiring exactly now", now, false},
		{"expiring one second from now", now + 1, true},
		{"never expires", provisioning.NeverExpires, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repoAt(now).scanLive(stubRow{endpoint: endpoint, expiry: tt.expiry})
			if !tt.live {
				require.Error(t, err)
				assert.Equal(t, rpcerror.ProvisioningRecordNotFound, rpcerror.FromErr(err).Kind)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &endpoint, got)
		})
	}
}

// TestPurpose: Validates error classification on the fetch path.
// Scope: Unit Test
// Expected: a missing row maps to ProvisioningRecordNotFound, any other
// database failure to DbError.
// Test Case ID: PRV-04
func TestScanLive_ErrorClassification(t *testing.T) {
	repo := repoAt(1_700_000_000)

	_, err := repo.scanLive(stubRow{err: pgx.ErrNoRows})
	assert.Equal(t, rpcerror.ProvisioningRecordNotFound, rpcerror.FromErr(err).Kind)

	_, err = repo.scanLive(stubRow{err: errors.New("connection reset")})
	assert.Equal(t, rpcerror.DbError, rpcerror.FromErr(err).Kind)
}
