package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Bonfida/sns-quicknode/internal/provisioning"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// EndpointRepository implements provisioning.Store
type EndpointRepository struct {
	db *DB

	// now is swappable for expiry tests.
	now func() int64
}

// NewEndpointRepository creates a new endpoint repository
func NewEndpointRepository(db *DB) *EndpointRepository {
	return &EndpointRepository{
		db:  db,
		now: func() int64 { return time.Now().Unix() },
	}
}

// Provision inserts a fresh endpoint row with the never-expires sentinel.
func (r *EndpointRepository) Provision(ctx context.Context, e *provisioning.Endpoint) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO provisioned_endpoints
			(quicknode_id, endpoint_id, wss_url, http_url, referers, chain, network, plan, expiry_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.TenantID, e.InstanceID, e.WssURL, e.HTTPURL, e.Referers, e.Chain, e.Network, e.Plan, provisioning.NeverExpires)
	if err != nil {
		return rpcerror.Wrap(rpcerror.DbError, err)
	}
	return nil
}

// Update rewrites the tenant's endpoint row and resets its expiry, reviving
// a previously deactivated row.
func (r *EndpointRepository) Update(ctx context.Context, e *provisioning.Endpoint) error {
	_, err := r.db.pool.Exec(ctx, `
		UPDATE provisioned_endpoints
		SET endpoint_id = $1, wss_url = $2, http_url = $3, referers = $4,
		    chain = $5, network = $6, plan = $7, expiry_timestamp = $8
		WHERE quicknode_id = $9
	`, e.InstanceID, e.WssURL, e.HTTPURL, e.Referers, e.Chain, e.Network, e.Plan,
		provisioning.NeverExpires, e.TenantID)
	if err != nil {
		return rpcerror.Wrap(rpcerror.DbError, err)
	}
	return nil
}

// Deactivate expires a single (tenant, instance) row.
func (r *EndpointRepository) Deactivate(ctx context.Context, tenantID, instanceID string, expireAt int64) error {
	_, err := r.db.pool.Exec(ctx, `
		UPDATE provisioned_endpoints
		SET expiry_timestamp = $1
		WHERE quicknode_id = $2 AND endpoint_id = $3
	`, expireAt, tenantID, instanceID)
	if err != nil {
		return rpcerror.Wrap(rpcerror.DbError, err)
	}
	return nil
}

// Deprovision expires every row of a tenant.
func (r *EndpointRepository) Deprovision(ctx context.Context, tenantID string, expireAt int64) error {
	_, err := r.db.pool.Exec(ctx, `
		UPDATE provisioned_endpoints
		SET expiry_timestamp = $1
		WHERE quicknode_id = $2
	`, expireAt, tenantID)
	if err != nil {
		return rpcerror.Wrap(rpcerror.DbError, err)
	}
	return nil
}

// Get fetches the live endpoint for a (tenant, instance) pair. The expiry
// check runs here, against the fetched row, so an expired endpoint is
// indistinguishable from one that never existed.
func (r *EndpointRepository) Get(ctx context.Context, tenantID, instanceID string) (*provisioning.Endpoint, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT quicknode_id, endpoint_id, wss_url, http_url, referers, chain, network, plan, expiry_timestamp
		FROM provisioned_endpoints
		WHERE quicknode_id = $1 AND endpoint_id = $2
	`, tenantID, instanceID)
	return r.scanLive(row)
}

// GetByTenant fetches the live endpoint of a tenant regardless of instance.
func (r *EndpointRepository) GetByTenant(ctx context.Context, tenantID string) (*provisioning.Endpoint, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT quicknode_id, endpoint_id, wss_url, http_url, referers, chain, network, plan, expiry_timestamp
		FROM provisioned_endpoints
		WHERE quicknode_id = $1
		LIMIT 1
	`, tenantID)
	return r.scanLive(row)
}

func (r *EndpointRepository) scanLive(row pgx.Row) (*provisioning.Endpoint, error) {
	var e provisioning.Endpoint
	var expiry int64
	err := row.Scan(&e.TenantID, &e.InstanceID, &e.WssURL, &e.HTTPURL,
		&e.Referers, &e.Chain, &e.Network, &e.Plan, &expiry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rpcerror.New(rpcerror.ProvisioningRecordNotFound)
	}
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.DbError, err)
	}
	if expiry <= r.now() {
		return nil, rpcerror.New(rpcerror.ProvisioningRecordNotFound)
	}
	return &e, nil
}
