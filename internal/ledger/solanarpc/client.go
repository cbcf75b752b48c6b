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

// Package solanarpc implements the ledger.Client contract on top of the
// solana-go RPC client. Clients are cheap to construct and bound to a single
// tenant endpoint; the gateway dials one per request.
package solanarpc

import (
	"context"
	"encoding/binary"
	"errors"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// Name account header offsets: parent key, owner key, class key.
const (
	ownerOffset  = 32
	classOffset  = 64
	headerLen    = 96
	nameLenBytes = 4
)

// Client talks to one tenant backend endpoint.
type Client struct {
	rpc *rpc.Client
}

var _ ledger.Client = (*Client)(nil)

// Dial constructs a Client for the endpoint. It performs no I/O; transport
// defaults apply, no retry, no pooling.
func Dial(endpoint string) ledger.Client {
	return &Client{rpc: rpc.New(endpoint)}
}

// GetAccount fetches one account; a missing account is (nil, nil).
func (c *Client) GetAccount(ctx context.Context, key solana.PublicKey) (*ledger.Account, error) {
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, key, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, rpcerror.Wrap(rpcerror.SolanaRpcError, err)
	}
	if res == nil || res.Value == nil {
		return nil, nil
	}
	return &ledger.Account{Data: res.Value.Data.GetBinary()}, nil
}

// GetAccounts fetches several accounts in one call; absent accounts come back
// as nil entries, positionally.
func (c *Client) GetAccounts(ctx context.Context, keys ...solana.PublicKey) ([]*ledger.Account, error) {
	res, err := c.rpc.GetMultipleAccountsWithOpts(ctx, keys, &rpc.GetMultipleAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.SolanaRpcError, err)
	}
	out := make([]*ledger.Account, len(keys))
	if res == nil {
		return out, nil
	}
	for i, acc := range res.Value {
		if i >= len(out) {
			break
		}
		if acc != nil {
			out[i] = &ledger.Account{Data: acc.Data.GetBinary()}
		}
	}
	return out, nil
}

// ResolveOwner returns the owner key from the domain's registry header.
func (c *Client) ResolveOwner(ctx context.Context, domain string) (solana.PublicKey, error) {
	key, err := c.DomainKey(domain)
	if err != nil {
		return solana.PublicKey{}, err
	}
	acc, err := c.GetAccount(ctx, key)
	if err != nil {
		return solana.PublicKey{}, rpcerror.FromErr(err).AppendTrace()
	}
	if acc == nil {
		return solana.PublicKey{}, rpcerror.Newf(rpcerror.DomainNotFound, "domain %q is not registered", domain)
	}
	if len(acc.Data) < headerLen {
		return solana.PublicKey{}, rpcerror.Newf(rpcerror.Generic, "registry account for %q is truncated", domain)
	}
	return solana.PublicKeyFromBytes(acc.Data[ownerOffset : ownerOffset+32]), nil
}

// DomainsForOwner scans the name program for .sol accounts owned by owner.
func (c *Client) DomainsForOwner(ctx context.Context, owner solana.PublicKey) ([]solana.PublicKey, error) {
	res, err := c.rpc.GetProgramAccountsWithOpts(ctx, nameProgram, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(rootDomain.Bytes())}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: ownerOffset, Bytes: solana.Base58(owner.Bytes())}},
		},
	})
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.SolanaRpcError, err)
	}
	keys := make([]solana.PublicKey, 0, len(res))
	for _, keyed := range res {
		keys = append(keys, keyed.Pubkey)
	}
	return keys, nil
}

// ReverseLookup resolves one registry key to its domain name.
func (c *Client) ReverseLookup(ctx context.Context, key solana.PublicKey) (string, error) {
	revKey, err := reverseKeyOf(key)
	if err != nil {
		return "", err
	}
	acc, err := c.GetAccount(ctx, revKey)
	if err != nil {
		return "", rpcerror.FromErr(err).AppendTrace()
	}
	if acc == nil {
		return "", rpcerror.Newf(rpcerror.DomainNotFound, "no reverse record for %s", key)
	}
	name, err := parseReverseName(acc.Data)
	if err != nil {
		return "", err
	}
	return name, nil
}

// ReverseLookupBatch resolves several registry keys in a single backend call.
// Missing reverse records are empty strings, positionally.
func (c *Client) ReverseLookupBatch(ctx context.Context, keys []solana.PublicKey) ([]string, error) {
	revKeys := make([]solana.PublicKey, len(keys))
	for i, key := range keys {
		revKey, err := reverseKeyOf(key)
		if err != nil {
			return nil, err
		}
		revKeys[i] = revKey
	}
	accounts, err := c.GetAccounts(ctx, revKeys...)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	names := make([]string, len(keys))
	for i, acc := range accounts {
		if acc == nil {
			continue
		}
		name, err := parseReverseName(acc.Data)
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// Subdomains lists subdomain names via the reverse accounts parented under the
// domain.
func (c *Client) Subdomains(ctx context.Context, domain string) ([]string, error) {
	parent, err := c.DomainKey(domain)
	if err != nil {
		return nil, err
	}
	res, err := c.rpc.GetProgramAccountsWithOpts(ctx, nameProgram, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: 0, Bytes: solana.Base58(parent.Bytes())}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: classOffset, Bytes: solana.Base58(reverseClass.Bytes())}},
		},
	})
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.SolanaRpcError, err)
	}
	subs := make([]string, 0, len(res))
	for _, keyed := range res {
		name, err := parseReverseName(keyed.Account.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		// Subdomain reverse names carry the 0x00 subdomain prefix.
		subs = append(subs, strings.TrimPrefix(name, "\x00"))
	}
	return subs, nil
}

// FavouriteDomain reads the owner's favourite-domain account, nil when unset.
func (c *Client) FavouriteDomain(ctx context.Context, owner solana.PublicKey) (*solana.PublicKey, error) {
	key, err := favouriteDomainKey(owner)
	if err != nil {
		return nil, err
	}
	acc, err := c.GetAccount(ctx, key)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	if acc == nil {
		return nil, nil
	}
	// Account layout: a one byte tag followed by the pinned registry key.
	if len(acc.Data) < 1+32 {
		return nil, rpcerror.Newf(rpcerror.Generic, "favourite domain account is truncated")
	}
	pinned := solana.PublicKeyFromBytes(acc.Data[1:33])
	return &pinned, nil
}

// parseReverseName reads the length-prefixed name stored after the account
// header of a reverse-lookup account.
func parseReverseName(data []byte) (string, error) {
	if len(data) < headerLen+nameLenBytes {
		return "", rpcerror.Newf(rpcerror.Generic, "reverse account is truncated")
	}
	nameLen := int(binary.LittleEndian.Uint32(data[headerLen : headerLen+nameLenBytes]))
	start := headerLen + nameLenBytes
	if start+nameLen > len(data) {
		return "", rpcerror.Newf(rpcerror.Generic, "reverse account name overruns its data")
	}
	return string(data[start : start+nameLen]), nil
}
