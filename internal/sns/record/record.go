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

// Package record implements the SNS name-record wire formats: the V1 raw data
// blob and the V2 structured record with validated variable-width identity
// fields.
package record

import (
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// Kind is a supported record name ("SOL", "github", ...).
type Kind string

const (
	IPFS     Kind = "IPFS"
	ARWV     Kind = "ARWV"
	SOL      Kind = "SOL"
	ETH      Kind = "ETH"
	BTC      Kind = "BTC"
	LTC      Kind = "LTC"
	DOGE     Kind = "DOGE"
	Email    Kind = "email"
	URL      Kind = "url"
	Discord  Kind = "discord"
	Github   Kind = "github"
	Reddit   Kind = "reddit"
	Twitter  Kind = "twitter"
	Telegram Kind = "telegram"
	Pic      Kind = "pic"
	SHDW     Kind = "SHDW"
	POINT    Kind = "POINT"
	BSC      Kind = "BSC"
	INJ      Kind = "INJ"
	Backpack Kind = "backpack"
)

// Supported is the fixed, ordered list returned by sns_getSupportedRecords.
var Supported = []Kind{
	IPFS, ARWV, SOL, ETH, BTC, LTC, DOGE,
	Email, URL, Discord, Github, Reddit, Twitter, Telegram,
	Pic, SHDW, POINT, BSC, INJ, Backpack,
}

var supportedSet = func() map[Kind]struct{} {
	m := make(map[Kind]struct{}, len(Supported))
	for _, k := range Supported {
		m[k] = struct{}{}
	}
	return m
}()

// Parse validates a caller-supplied record name.
func Parse(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := supportedSet[k]; !ok {
		return "", rpcerror.Newf(rpcerror.InvalidRecord, "unknown record %q", s)
	}
	return k, nil
}

// String returns the canonical record name.
func (k Kind) String() string { return string(k) }
