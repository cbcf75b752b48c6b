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

// Package sns implements the name-service method surface of the gateway:
// the JSON-RPC envelope, the closed method set, parameter decoding and the
// per-method handlers that drive a ledger client.
package sns

import (
	"context"
	"encoding/json"

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// Method is one of the gateway's published JSON-RPC methods. An unrecognized
// method name decodes to MethodUnsupported rather than failing the envelope,
// so the caller still gets a response carrying its request id.
type Method string

const (
	MethodResolveDomain              Method = "sns_resolveDomain"
	MethodGetDomainKey               Method = "sns_getDomainKey"
	MethodGetAllDomainsForOwner      Method = "sns_getAllDomainsForOwner"
	MethodGetDomainData              Method = "sns_getDomainData"
	MethodGetDomainDataV2            Method = "sns_getDomainDataV2"
	MethodGetDomainRecordKey         Method = "sns_getDomainRecordKey"
	MethodGetDomainRecordV2Key       Method = "sns_getDomainRecordV2Key"
	MethodGetDomainReverseKey        Method = "sns_getDomainReverseKey"
	MethodGetSubdomains              Method = "sns_getSubdomains"
	MethodGetSupportedRecords        Method = "sns_getSupportedRecords"
	MethodGetRegistrationTransaction Method = "sns_getRegistrationTransaction"
	MethodGetFavouriteDomain         Method = "sns_getFavouriteDomain"
	MethodReverseLookup              Method = "sns_reverseLookup"

	// MethodUnsupported is the catch-all for method names outside the set.
	MethodUnsupported Method = ""
)

// handlerFunc runs one method against a ledger client.
type handlerFunc func(ctx context.Context, cli ledger.Client, params json.RawMessage) (any, error)

var handlers = map[Method]handlerFunc{
	MethodResolveDomain:              resolveDomain,
	MethodGetDomainKey:               getDomainKey,
	MethodGetAllDomainsForOwner:      getAllDomainsForOwner,
	MethodGetDomainData:              getDomainData,
	MethodGetDomainDataV2:            getDomainDataV2,
	MethodGetDomainRecordKey:         getDomainRecordKey,
	MethodGetDomainRecordV2Key:       getDomainRecordV2Key,
	MethodGetDomainReverseKey:        getDomainReverseKey,
	MethodGetSubdomains:              getSubdomains,
	MethodGetSupportedRecords:        getSupportedRecords,
	MethodGetRegistrationTransaction: getRegistrationTransaction,
	MethodGetFavouriteDomain:         getFavouriteDomain,
	MethodReverseLookup:              reverseLookup,
}

// ParseMethod maps a wire method name onto the closed set.
func ParseMethod(name string) Method {
	m := Method(name)
	if _, ok := handlers[m]; ok {
		return m
	}
	return MethodUnsupported
}

func (m *Method) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*m = ParseMethod(name)
	return nil
}

func (m Method) String() string { return string(m) }

// Dispatch routes a decoded request to its handler. A request for a method
// outside the published set surfaces as UnsupportedEndpoint so the gateway
// renders the standard method-not-found code.
func Dispatch(ctx context.Context, cli ledger.Client, method Method, params json.RawMessage) (any, error) {
	h, ok := handlers[method]
	if !ok {
		return nil, rpcerror.Newf(rpcerror.UnsupportedEndpoint, "method %q is not supported", method)
	}
	return h(ctx, cli, params)
}
