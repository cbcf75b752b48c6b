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
	"github.com/Bonfida/sns-quicknode/internal/sns/record"
)

// getDomainData returns the raw V1 payload of a domain or record account,
// base64 encoded with the registry header stripped. An absent account is a
// null result, not an error.
func getDomainData(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainRecordParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	var key solana.PublicKey
	if p.Record == nil {
		key, err = cli.DomainKey(p.Domain)
	} else {
		key, err = cli.RecordDomainKey(p.Domain, *p.Record)
	}
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	account, err := cli.GetAccount(ctx, key)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	if account == nil {
		return nil, nil
	}
	data, err := record.DecodeV1(account.Data)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return data, nil
}

// getDomainDataV2 returns the decoded V2 record for a domain. The domain
// account and the record account are fetched in a single backend call; an
// absent record account is a null result.
func getDomainDataV2(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainRecordParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	if p.Record == nil {
		return nil, rpcerror.Newf(rpcerror.MissingParameters, "record is required")
	}
	kind, err := record.Parse(*p.Record)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(*p.Record)
	}
	domainKey, err := cli.DomainKey(p.Domain)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	recordKey, err := cli.RecordKeyV2(p.Domain, kind)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	accounts, err := cli.GetAccounts(ctx, domainKey, recordKey)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	domainAccount, recordAccount := accounts[0], accounts[1]
	if recordAccount == nil {
		return nil, nil
	}
	if domainAccount == nil || len(domainAccount.Data) < record.HeaderLen {
		return nil, rpcerror.Newf(rpcerror.DomainNotFound, "domain %q is not registered", p.Domain)
	}
	owner := solana.PublicKeyFromBytes(domainAccount.Data[32:64])
	decoded, err := record.DecodeV2(owner.String(), kind, recordAccount.Data)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return decoded, nil
}
