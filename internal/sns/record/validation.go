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
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// Validation tags how an identity field of a V2 record is encoded and how many
// bytes it occupies on the wire.
type Validation uint16

const (
	ValidationNone Validation = iota
	ValidationSolana
	ValidationEthereum
	ValidationUnverifiedSolana
	ValidationXChain
)

// parseValidation rejects tag values outside the closed set.
func parseValidation(tag uint16) (Validation, error) {
	if tag > uint16(ValidationXChain) {
		return 0, rpcerror.Newf(rpcerror.InvalidRecord, "unknown validation tag %d", tag)
	}
	return Validation(tag), nil
}

// Width is the encoded byte width of an identity field under this validation.
func (v Validation) Width() int {
	switch v {
	case ValidationSolana:
		return 32
	case ValidationEthereum:
		return 20
	case ValidationXChain:
		return 34
	default:
		// None and UnverifiedSolana carry no identity bytes.
		return 0
	}
}

func (v Validation) String() string {
	switch v {
	case ValidationSolana:
		return "solana"
	case ValidationEthereum:
		return "ethereum"
	case ValidationUnverifiedSolana:
		return "unverifiedSolana"
	case ValidationXChain:
		return "xchain"
	default:
		return "none"
	}
}

// MarshalJSON renders the validation kind as its string name.
func (v Validation) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// xchainIdentity is the JSON shape of an XChain identity region: a little-endian
// u16 chain id followed by a 32-byte owner key.
type xchainIdentity struct {
	ChainID  uint16 `json:"chainId"`
	OwnerKey []byte `json:"ownerKey"`
}

func (x xchainIdentity) MarshalJSON() ([]byte, error) {
	key := make([]uint16, len(x.OwnerKey))
	for i, b := range x.OwnerKey {
		key[i] = uint16(b)
	}
	return json.Marshal(struct {
		ChainID  uint16   `json:"chainId"`
		OwnerKey []uint16 `json:"ownerKey"`
	}{x.ChainID, key})
}

// RenderIdentity turns raw identity bytes into the canonical text form for the
// validation kind. The byte slice length must equal v.Width(); the decoder
// guarantees that.
func (v Validation) RenderIdentity(raw []byte) (string, error) {
	switch v {
	case ValidationNone, ValidationUnverifiedSolana:
		return "", nil
	case ValidationSolana:
		return solana.PublicKeyFromBytes(raw).String(), nil
	case ValidationEthereum:
		return "0x" + hex.EncodeToString(raw), nil
	case ValidationXChain:
		out, err := json.Marshal(xchainIdentity{
			ChainID:  binary.LittleEndian.Uint16(raw[:2]),
			OwnerKey: raw[2:],
		})
		if err != nil {
			return "", rpcerror.Wrap(rpcerror.InvalidRecord, err)
		}
		return string(out), nil
	default:
		return "", rpcerror.Newf(rpcerror.InvalidRecord, "unknown validation %d", v)
	}
}
