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
	"encoding/base64"
	"encoding/binary"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

const (
	// HeaderLen is the fixed size of a name-service account header
	// (parent, owner and class keys, 32 bytes each).
	HeaderLen = 96

	// RecordHeaderLen is the fixed size of the V2 record sub-header: two
	// little-endian u16 validation tags followed by a u32 content length.
	RecordHeaderLen = 8
)

// DecodeV1 strips the account header and base64-encodes the remainder
// verbatim. No interpretation of the payload happens at V1.
func DecodeV1(accountData []byte) (string, error) {
	if len(accountData) < HeaderLen {
		return "", rpcerror.Newf(rpcerror.InvalidRecord,
			"account data %d bytes, shorter than the %d byte header", len(accountData), HeaderLen)
	}
	return base64.StdEncoding.EncodeToString(accountData[HeaderLen:]), nil
}

// V2 is the decoded view of a record account.
type V2 struct {
	CurrentOwner   string     `json:"currentOwner"`
	Content        any        `json:"content"`
	StalenessID    string     `json:"stalenessId"`
	StalenessVal   Validation `json:"stalenessValidation"`
	RoaID          string     `json:"roaId"`
	RoaVal         Validation `json:"roaValidation"`
}

// cursor walks a byte buffer by validated, checked widths. All failures are
// InvalidRecord; nothing is ever read past the end of the buffer.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.buf) {
		return nil, rpcerror.Newf(rpcerror.InvalidRecord,
			"need %d bytes at offset %d, have %d", n, c.off, len(c.buf)-c.off)
	}
	out := c.buf[c.off : c.off+n]
	c.off += n
	return out, nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// DecodeV2 parses a record account into its structured view. owner is the
// current owner of the domain account, already rendered; kind selects the
// content codec. The account bytes include the name-account header.
//
// Each failure short-circuits: a partially decoded record is never returned.
func DecodeV2(owner string, kind Kind, accountData []byte) (*V2, error) {
	if len(accountData) < HeaderLen+RecordHeaderLen {
		return nil, rpcerror.Newf(rpcerror.InvalidRecord,
			"record account %d bytes, need at least %d", len(accountData), HeaderLen+RecordHeaderLen)
	}

	c := &cursor{buf: accountData, off: HeaderLen}

	stalenessTag, err := c.u16()
	if err != nil {
		return nil, err
	}
	roaTag, err := c.u16()
	if err != nil {
		return nil, err
	}
	contentLength, err := c.u32()
	if err != nil {
		return nil, err
	}

	stalenessVal, err := parseValidation(stalenessTag)
	if err != nil {
		return nil, err
	}
	roaVal, err := parseValidation(roaTag)
	if err != nil {
		return nil, err
	}

	// Fixed region order: staleness identity, right-of-association identity,
	// then content. Offsets are the running sum of the preceding widths.
	stalenessRaw, err := c.take(stalenessVal.Width())
	if err != nil {
		return nil, err
	}
	roaRaw, err := c.take(roaVal.Width())
	if err != nil {
		return nil, err
	}
	content, err := c.take(int(contentLength))
	if err != nil {
		return nil, err
	}

	stalenessID, err := stalenessVal.RenderIdentity(stalenessRaw)
	if err != nil {
		return nil, err
	}
	roaID, err := roaVal.RenderIdentity(roaRaw)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeContent(kind, content)
	if err != nil {
		return nil, err
	}

	return &V2{
		CurrentOwner: owner,
		Content:      decoded,
		StalenessID:  stalenessID,
		StalenessVal: stalenessVal,
		RoaID:        roaID,
		RoaVal:       roaVal,
	}, nil
}
