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
	"crypto/sha256"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns/record"
)

// hashPrefix salts every name hash in the name service.
const hashPrefix = "SPL Name Service"

var (
	// nameProgram is the SPL name-service program.
	nameProgram = solana.MustPublicKeyFromBase58("namesLPneVptA9Z5rqUDD9tMTWEJwofgaYwp8cawRkX")
	// rootDomain is the parent of every .sol domain account.
	rootDomain = solana.MustPublicKeyFromBase58("58PwtjSDuFHuUkYjH9BYnnQKHfwo9reZhC2zMJv9JPkx")
	// reverseClass is the name class of reverse-lookup accounts.
	reverseClass = solana.MustPublicKeyFromBase58("33m47vH6Eav6jr5Ry86XjhRft2jRBLDnDgPSHoquXi2Z")
	// recordsV2Class is the central state of the sns-records program.
	recordsV2Class = solana.MustPublicKeyFromBase58("2pMnqHvei2N5oDcVGCRdZx48gqti199wr5CsyTTafsbo")
	// nameOffersProgram holds favourite-domain accounts.
	nameOffersProgram = solana.MustPublicKeyFromBase58("85iDfUvr3HJyLM2zcq5BXSiDvUWfw6cSE1FfNBo8Ap29")
)

func hashedName(name string) []byte {
	sum := sha256.Sum256([]byte(hashPrefix + name))
	return sum[:]
}

// deriveNameKey computes the PDA of a hashed name under an optional class and
// parent. A zero PublicKey stands for the absent class/parent, encoded as 32
// zero bytes in the seed, which matches the on-chain derivation.
func deriveNameKey(hashed []byte, class, parent solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{hashed, class.Bytes(), parent.Bytes()}
	key, _, err := solana.FindProgramAddress(seeds, nameProgram)
	if err != nil {
		return solana.PublicKey{}, rpcerror.Wrap(rpcerror.InvalidDomain, err)
	}
	return key, nil
}

// splitDomain strips a trailing ".sol" and splits off at most one subdomain
// label. More than two labels is not a valid domain.
func splitDomain(domain string) (sub, name string, err error) {
	domain = strings.TrimSuffix(domain, ".sol")
	if domain == "" {
		return "", "", rpcerror.Newf(rpcerror.InvalidDomain, "empty domain")
	}
	parts := strings.Split(domain, ".")
	switch len(parts) {
	case 1:
		return "", parts[0], nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", rpcerror.Newf(rpcerror.InvalidDomain, "domain %q has too many labels", domain)
	}
}

// domainKey derives the registry key of a domain. When the leading label is a
// record name rather than a subdomain, the record flag selects the 0x01 name
// prefix used by V1 records instead of the 0x00 subdomain prefix.
func domainKey(domain string, isRecord bool) (solana.PublicKey, error) {
	sub, name, err := splitDomain(domain)
	if err != nil {
		return solana.PublicKey{}, err
	}
	parentKey, err := deriveNameKey(hashedName(name), solana.PublicKey{}, rootDomain)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if sub == "" {
		return parentKey, nil
	}
	prefix := "\x00"
	if isRecord {
		prefix = "\x01"
	}
	return deriveNameKey(hashedName(prefix+sub), solana.PublicKey{}, parentKey)
}

// DomainKey derives the registry key of "domain" or "sub.domain".
func (c *Client) DomainKey(domain string) (solana.PublicKey, error) {
	return domainKey(domain, false)
}

// RecordDomainKey derives the V1 record key, i.e. "record.domain" with the
// record name prefix.
func (c *Client) RecordDomainKey(domain, rec string) (solana.PublicKey, error) {
	return domainKey(rec+"."+domain, true)
}

// RecordKeyV2 derives the V2 record key: the record name under the 0x02 prefix,
// classed by the sns-records central state and parented by the domain.
func (c *Client) RecordKeyV2(domain string, rec record.Kind) (solana.PublicKey, error) {
	parent, err := domainKey(domain, false)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return deriveNameKey(hashedName("\x02"+rec.String()), recordsV2Class, parent)
}

// ReverseKey derives the reverse-lookup key of a domain.
func (c *Client) ReverseKey(domain string) (solana.PublicKey, error) {
	key, err := domainKey(domain, false)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return reverseKeyOf(key)
}

// reverseKeyOf derives the reverse-lookup key straight from a registry key.
func reverseKeyOf(key solana.PublicKey) (solana.PublicKey, error) {
	return deriveNameKey(hashedName(key.String()), reverseClass, solana.PublicKey{})
}

// favouriteDomainKey derives the owner's favourite-domain account.
func favouriteDomainKey(owner solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress(
		[][]byte{[]byte("favourite_domain"), owner.Bytes()},
		nameOffersProgram,
	)
	if err != nil {
		return solana.PublicKey{}, rpcerror.Wrap(rpcerror.Generic, err)
	}
	return key, nil
}
