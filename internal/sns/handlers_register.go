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
	"encoding/base64"
	"encoding/json"

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns/record"
)

func getSupportedRecords(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	names := make([]string, len(record.Supported))
	for i, kind := range record.Supported {
		names[i] = kind.String()
	}
	return names, nil
}

// getRegistrationTransaction builds an unsigned register-domain transaction
// and returns it base64 encoded for the caller to sign and submit.
func getRegistrationTransaction(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error) {
	p, err := decodeRegistrationParams(params)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace()
	}
	buyer, err := parsePublicKey(p.Buyer)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Buyer)
	}
	buyerTokenAccount, err := parsePublicKey(p.BuyerTokenAccount)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.BuyerTokenAccount)
	}
	reg := ledger.RegistrationParams{
		Domain:            p.Domain,
		Buyer:             buyer,
		BuyerTokenAccount: buyerTokenAccount,
		Space:             p.Space,
	}
	if p.Mint != nil {
		mint, err := parsePublicKey(*p.Mint)
		if err != nil {
			return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(*p.Mint)
		}
		reg.Mint = &mint
	}
	if p.ReferrerKey != nil {
		referrer, err := parsePublicKey(*p.ReferrerKey)
		if err != nil {
			return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(*p.ReferrerKey)
		}
		reg.Referrer = &referrer
	}
	tx, err := cli.RegistrationTransaction(ctx, reg)
	if err != nil {
		return nil, rpcerror.FromErr(err).AppendTrace().AppendInfo(p.Domain)
	}
	return base64.StdEncoding.EncodeToString(tx), nil
}
