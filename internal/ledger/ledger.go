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

// Package ledger defines the contract between the gateway and the Solana
// name-service SDK. The gateway treats key derivation, account fetches and
// resolution as black-box operations behind the Client interface; a fresh
// Client is dialed per request against the tenant's resolved endpoint.
package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/Bonfida/sns-quicknode/internal/sns/record"
)

// Account is the raw state of a fetched backend account, header included.
type Account struct {
	Data []byte
}

// RegistrationParams describes an unsigned domain registration to build.
type RegistrationParams struct {
	Domain            string
	Buyer             solana.PublicKey
	BuyerTokenAccount solana.PublicKey
	Space             uint32
	Mint              *solana.PublicKey
	Referrer          *solana.PublicKey
}

// Client is the name-service SDK surface the method handlers dispatch to.
// Account getters return a nil *Account (and nil error) when the account does
// not exist; errors are reserved for transport and encoding failures.
//
// Derivation methods are pure and never touch the network.
type Client interface {
	// GetAccount fetches a single account at key.
	GetAccount(ctx context.Context, key solana.PublicKey) (*Account, error)
	// GetAccounts fetches several accounts in one backend call. The result
	// is positional: absent accounts come back as nil entries.
	GetAccounts(ctx context.Context, keys ...solana.PublicKey) ([]*Account, error)

	// DomainKey derives the registry key of "domain" or "sub.domain".
	DomainKey(domain string) (solana.PublicKey, error)
	// RecordDomainKey derives the V1 record key of "record.domain".
	RecordDomainKey(domain, rec string) (solana.PublicKey, error)
	// RecordKeyV2 derives the V2 record key for a validated record kind.
	RecordKeyV2(domain string, rec record.Kind) (solana.PublicKey, error)
	// ReverseKey derives the reverse-lookup key of a domain.
	ReverseKey(domain string) (solana.PublicKey, error)

	// ResolveOwner returns the current owner of a registered domain.
	ResolveOwner(ctx context.Context, domain string) (solana.PublicKey, error)
	// DomainsForOwner lists the registry keys of every domain owned by owner.
	DomainsForOwner(ctx context.Context, owner solana.PublicKey) ([]solana.PublicKey, error)
	// ReverseLookup resolves a registry key back to its human-readable name.
	// Missing reverse records surface as DomainNotFound.
	ReverseLookup(ctx context.Context, key solana.PublicKey) (string, error)
	// ReverseLookupBatch resolves several registry keys in one backend call.
	// The result is positional; an empty string marks a missing reverse record.
	ReverseLookupBatch(ctx context.Context, keys []solana.PublicKey) ([]string, error)
	// Subdomains lists the subdomain names registered under domain.
	Subdomains(ctx context.Context, domain string) ([]string, error)
	// FavouriteDomain returns the registry key the owner pinned as favourite,
	// or nil when none is set.
	FavouriteDomain(ctx context.Context, owner solana.PublicKey) (*solana.PublicKey, error)
	// RegistrationTransaction builds and serializes an unsigned
	// register-domain transaction.
	RegistrationTransaction(ctx context.Context, params RegistrationParams) ([]byte, error)
}

// Dialer constructs a Client bound to a tenant backend endpoint. One client is
// dialed per inbound request; there is no pooling and no retry.
type Dialer func(endpoint string) Client
