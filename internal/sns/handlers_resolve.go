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

package sns

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// parsePublicKey decodes a base58 address supplied by the caller.
func parsePublicKey(s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, rpcerror.Wrap(rpcerror.InvalidParameters, err)
	}
	return key, nil
}

func resolveDomain(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	owner, err := cli.ResolveOwner(ctx, p.Domain)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return owner.String(), nil
}

// ownedDomain pairs a registry key with its resolved name.
type ownedDomain struct {
	Key    string `json:"key"`
	Domain string `json:"domain"`
}

// getAllDomainsForOwner is all or nothing: if any owned key has no reverse
// record the whole call fails rather than returning a partial list.
func getAllDomainsForOwner(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeOwnerParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	owner, err := parsePublicKey(p.Owner)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Owner)
	}
	keys, err := cli.DomainsForOwner(ctx, owner)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	names, err := cli.ReverseLookupBatch(ctx, keys)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	domains := make([]ownedDomain, 0, len(keys))
	for i, key := range keys {
		if names[i] == "" {
			return nil, rpcerror.Newf(rpcerror.ReverseRecordNotFound,
				"no reverse record for %s", key).AppendInfo(p.Owner)
		}
		domains = append(domains, ownedDomain{Key: key.String(), Domain: names[i]})
	}
	return domains, nil
}

func reverseLookup(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainKeyParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	key, err := parsePublicKey(p.DomainKey)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.DomainKey)
	}
	name, err := cli.ReverseLookup(ctx, key)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.DomainKey)
	}
	return name, nil
}

func getSubdomains(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	subs, err := cli.Subdomains(ctx, p.Domain)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return subs, nil
}

func getFavouriteDomain(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeOwnerParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	owner, err := parsePublicKey(p.Owner)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Owner)
	}
	key, err := cli.FavouriteDomain(ctx, owner)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Owner)
	}
	if key == nil {
		return nil, nil
	}
	return key.String(), nil
}
