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

package record

import (
	"encoding/hex"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/gagliardetto/solana-go"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

const injectiveHRP = "inj"

// DecodeContent renders V2 record content by record kind. Address records have
// fixed binary widths; everything else is UTF-8 text.
func DecodeContent(kind Kind, content []byte) (any, error) {
	switch kind {
	case SOL:
		if len(content) != 32 {
			return nil, rpcerror.Newf(rpcerror.InvalidRecord,
				"SOL record content is %d bytes, want 32", len(content))
		}
		return solana.PublicKeyFromBytes(content).String(), nil

	case ETH, BSC:
		if len(content) != 20 {
			return nil, rpcerror.Newf(rpcerror.InvalidRecord,
				"%s record content is %d bytes, want 20", kind, len(content))
		}
		return "0x" + hex.EncodeToString(content), nil

	case INJ:
		if len(content) != 20 {
			return nil, rpcerror.Newf(rpcerror.InvalidRecord,
				"INJ record content is %d bytes, want 20", len(content))
		}
		converted, err := bech32.ConvertBits(content, 8, 5, true)
		if err != nil {
			return nil, rpcerror.Wrap(rpcerror.InvalidRecord, err)
		}
		addr, err := bech32.Encode(injectiveHRP, converted)
		if err != nil {
			return nil, rpcerror.Wrap(rpcerror.InvalidRecord, err)
		}
		return addr, nil

	default:
		if !utf8.Valid(content) {
			return nil, rpcerror.Newf(rpcerror.InvalidRecord,
				"%s record content is not valid UTF-8", kind)
		}
		return string(content), nil
	}
}
