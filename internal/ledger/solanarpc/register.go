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

package solanarpc

import (
	"context"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

var (
	// registrarProgram sells .sol domains.
	registrarProgram = solana.MustPublicKeyFromBase58("jCebN34bUfdeUYJT13J1yG16XWQpt5PDx6Mse9GUqhR")
	// usdcMint is the default payment mint when none is supplied.
	usdcMint = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

// registrarInstructionTag selects the create-with-token-payment instruction.
const registrarInstructionTag = 13

// RegistrationTransaction builds an unsigned register-domain transaction and
// serializes it to the wire format. The caller signs and submits out of band.
func (c *Client) RegistrationTransaction(ctx context.Context, params ledger.RegistrationParams) ([]byte, error) {
	nameKey, err := c.DomainKey(params.Domain)
	if err != nil {
		return nil, err
	}
	reverseKey, err := c.ReverseKey(params.Domain)
	if err != nil {
		return nil, err
	}

	mint := usdcMint
	if params.Mint != nil {
		mint = *params.Mint
	}
	// The registrar collects payment on its central-state associated token
	// account for the chosen mint.
	vault, _, err := solana.FindAssociatedTokenAddress(reverseClass, mint)
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.Generic, err)
	}

	blockhash, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.SolanaRpcError, err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(nameProgram),
		solana.Meta(rootDomain),
		solana.Meta(nameKey).WRITE(),
		solana.Meta(reverseKey).WRITE(),
		solana.Meta(reverseClass).WRITE(),
		solana.Meta(params.Buyer).WRITE().SIGNER(),
		solana.Meta(params.BuyerTokenAccount).WRITE(),
		solana.Meta(vault).WRITE(),
		solana.Meta(mint),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}
	if params.Referrer != nil {
		accounts = append(accounts, solana.Meta(*params.Referrer).WRITE())
	}

	ix := solana.NewInstruction(registrarProgram, accounts, encodeRegisterData(params))

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		blockhash.Value.Blockhash,
		solana.TransactionPayer(params.Buyer),
	)
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.Generic, err)
	}
	serialized, err := tx.MarshalBinary()
	if err != nil {
		return nil, rpcerror.Wrap(rpcerror.Generic, err)
	}
	return serialized, nil
}

// encodeRegisterData serializes the instruction payload: tag, length-prefixed
// domain name, requested account space, referrer flag.
func encodeRegisterData(params ledger.RegistrationParams) []byte {
	name := []byte(params.Domain)
	data := make([]byte, 0, 1+4+len(name)+4+1)
	data = append(data, registrarInstructionTag)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(name)))
	data = append(data, name...)
	data = binary.LittleEndian.AppendUint32(data, params.Space)
	if params.Referrer != nil {
		data = append(data, 1)
	} else {
		data = append(data, 0)
	}
	return data
}
