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

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns/record"
)

// Key derivation handlers are pure: they never hit the backend, only walk
// the deterministic derivation scheme of the registry.

func getDomainKey(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	key, err := cli.DomainKey(p.Domain)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return key.String(), nil
}

func getDomainRecordKey(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainRequiredRecordParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	key, err := cli.RecordDomainKey(p.Domain, p.Record)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return key.String(), nil
}

func getDomainRecordV2Key(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainRequiredRecordParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	kind, err := record.Parse(p.Record)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Record)
	}
	key, err := cli.RecordKeyV2(p.Domain, kind)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return key.String(), nil
}

func getDomainReverseKey(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeDomainParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	key, err := cli.ReverseKey(p.Domain)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return key.String(), nil
}
