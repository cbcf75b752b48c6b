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
	"bytes"
	"encoding/json"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// Parameter decoding is polymorphic on the top-level shape of params: a JSON
// array is read by fixed position, anything else is treated as a named object.
//
// The two paths deliberately differ in error granularity. The positional path
// distinguishes an absent slot (MissingParameters) from a present slot of the
// wrong type (InvalidParameters); the object path reports every failure as
// InvalidParameters. Clients depend on both behaviors.

var nullLiteral = []byte("null")

// asArray detects the positional shape.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), nullLiteral)
}

// stringAt reads a required string at a fixed position.
func stringAt(arr []json.RawMessage, i int) (string, error) {
	if i >= len(arr) {
		return "", rpcerror.Newf(rpcerror.MissingParameters, "missing positional parameter %d", i)
	}
	var s string
	if isNull(arr[i]) {
		return "", rpcerror.Newf(rpcerror.InvalidParameters, "parameter %d is null, expected a string", i)
	}
	if err := json.Unmarshal(arr[i], &s); err != nil {
		return "", rpcerror.Wrap(rpcerror.InvalidParameters, err)
	}
	return s, nil
}

// optStringAt reads an optional string: an absent index or a null element is
// "no value", a present non-string is InvalidParameters.
func optStringAt(arr []json.RawMessage, i int) (*string, error) {
	if i >= len(arr) || isNull(arr[i]) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(arr[i], &s); err != nil {
		return nil, rpcerror.Wrap(rpcerror.InvalidParameters, err)
	}
	return &s, nil
}

// uint32At reads a required unsigned integer at a fixed position.
func uint32At(arr []json.RawMessage, i int) (uint32, error) {
	if i >= len(arr) {
		return 0, rpcerror.Newf(rpcerror.MissingParameters, "missing positional parameter %d", i)
	}
	var n uint32
	if isNull(arr[i]) {
		return 0, rpcerror.Newf(rpcerror.InvalidParameters, "parameter %d is null, expected an integer", i)
	}
	if err := json.Unmarshal(arr[i], &n); err != nil {
		return 0, rpcerror.Wrap(rpcerror.InvalidParameters, err)
	}
	return n, nil
}

// decodeObject decodes the named-object shape into dst after checking that
// every required field is present. Unknown extra fields are ignored; all
// failures on this path are the generic InvalidParameters.
func decodeObject(raw json.RawMessage, dst any, required ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return rpcerror.Wrap(rpcerror.InvalidParameters, err)
	}
	for _, name := range required {
		value, ok := fields[name]
		if !ok || isNull(value) {
			return rpcerror.Newf(rpcerror.InvalidParameters, "missing field %q", name)
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return rpcerror.Wrap(rpcerror.InvalidParameters, err)
	}
	return nil
}

// domainParams is the single-domain parameter shape shared by several methods.
type domainParams struct {
	Domain string `json:"domain"`
}

func decodeDomainParams(raw json.RawMessage) (domainParams, error) {
	var p domainParams
	if arr, ok := asArray(raw); ok {
		domain, err := stringAt(arr, 0)
		if err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		p.Domain = domain
		return p, nil
	}
	if err := decodeObject(raw, &p, "domain"); err != nil {
		return p, err
	}
	return p, nil
}

// domainRecordParams carries a domain plus an optional record name.
type domainRecordParams struct {
	Domain string  `json:"domain"`
	Record *string `json:"record"`
}

func decodeDomainRecordParams(raw json.RawMessage) (domainRecordParams, error) {
	var p domainRecordParams
	if arr, ok := asArray(raw); ok {
		domain, err := stringAt(arr, 0)
		if err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		rec, err := optStringAt(arr, 1)
		if err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		p.Domain, p.Record = domain, rec
		return p, nil
	}
	if err := decodeObject(raw, &p, "domain"); err != nil {
		return p, err
	}
	return p, nil
}

// domainRequiredRecordParams carries a domain plus a mandatory record name.
type domainRequiredRecordParams struct {
	Domain string `json:"domain"`
	Record string `json:"record"`
}

func decodeDomainRequiredRecordParams(raw json.RawMessage) (domainRequiredRecordParams, error) {
	var p domainRequiredRecordParams
	if arr, ok := asArray(raw); ok {
		domain, err := stringAt(arr, 0)
		if err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		rec, err := stringAt(arr, 1)
		if err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		p.Domain, p.Record = domain, rec
		return p, nil
	}
	if err := decodeObject(raw, &p, "domain", "record"); err != nil {
		return p, err
	}
	return p, nil
}

// ownerParams identifies an owner address.
type ownerParams struct {
	Owner string `json:"owner"`
}

func decodeOwnerParams(raw json.RawMessage) (ownerParams, error) {
	var p ownerParams
	if arr, ok := asArray(raw); ok {
		owner, err := stringAt(arr, 0)
		if err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		p.Owner = owner
		return p, nil
	}
	if err := decodeObject(raw, &p, "owner"); err != nil {
		return p, err
	}
	return p, nil
}

// domainKeyParams identifies a registry key directly.
type domainKeyParams struct {
	DomainKey string `json:"domain_key"`
}

func decodeDomainKeyParams(raw json.RawMessage) (domainKeyParams, error) {
	var p domainKeyParams
	if arr, ok := asArray(raw); ok {
		key, err := stringAt(arr, 0)
		if err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		p.DomainKey = key
		return p, nil
	}
	if err := decodeObject(raw, &p, "domain_key"); err != nil {
		return p, err
	}
	return p, nil
}

// registrationParams describes an unsigned registration request.
type registrationParams struct {
	Domain            string  `json:"domain"`
	Buyer             string  `json:"buyer"`
	BuyerTokenAccount string  `json:"buyer_token_account"`
	Space             uint32  `json:"space"`
	Mint              *string `json:"mint"`
	ReferrerKey       *string `json:"referrer_key"`
}

func decodeRegistrationParams(raw json.RawMessage) (registrationParams, error) {
	var p registrationParams
	if arr, ok := asArray(raw); ok {
		var err error
		if p.Domain, err = stringAt(arr, 0); err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		if p.Buyer, err = stringAt(arr, 1); err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		if p.BuyerTokenAccount, err = stringAt(arr, 2); err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		if p.Space, err = uint32At(arr, 3); err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		if p.Mint, err = optStringAt(arr, 4); err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		if p.ReferrerKey, err = optStringAt(arr, 5); err != nil {
			return p, rpcerror.FromErr(err).AppendTrace()
		}
		return p, nil
	}
	if err := decodeObject(raw, &p, "domain", "buyer", "buyer_token_account", "space"); err != nil {
		return p, err
	}
	return p, nil
}
