package record

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// buildV2 assembles a synthetic record account: 96-byte header, 8-byte record
// sub-header, then the identity regions and content in wire order.
func buildV2(staleness, roa Validation, stalenessID, roaID, content []byte) []byte {
	buf := make([]byte, HeaderLen)
	hdr := make([]byte, RecordHeaderLen)
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(staleness))
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(roa))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(content)))
	buf = append(buf, hdr...)
	buf = append(buf, stalenessID...)
	buf = append(buf, roaID...)
	buf = append(buf, content...)
	return buf
}

func seq(n int, start byte) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = start + byte(i)
	}
	return out
}

func TestDecodeV1StripsHeader(t *testing.T) {
	payload := []byte("https://github.com/Bonfida/")
	data := append(make([]byte, HeaderLen), payload...)

	got, err := DecodeV1(data)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), got)

	// Exactly the header is a valid, empty record.
	got, err = DecodeV1(make([]byte, HeaderLen))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = DecodeV1(make([]byte, HeaderLen-1))
	require.Error(t, err)
	assert.Equal(t, rpcerror.InvalidRecord, rpcerror.FromErr(err).Kind)
}

func TestDecodeV2Offsets(t *testing.T) {
	cases := []struct {
		name      string
		staleness Validation
		roa       Validation
	}{
		{"none/none", ValidationNone, ValidationNone},
		{"solana/none", ValidationSolana, ValidationNone},
		{"ethereum/solana", ValidationEthereum, ValidationSolana},
		{"xchain/ethereum", ValidationXChain, ValidationEthereum},
		{"unverified/xchain", ValidationUnverifiedSolana, ValidationXChain},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			content := []byte("hello")
			data := buildV2(c.staleness, c.roa,
				seq(c.staleness.Width(), 1), seq(c.roa.Width(), 101), content)

			// The total length is exactly the sum of the regions: any
			// shorter buffer must fail, see TestDecodeV2Truncation.
			want := HeaderLen + RecordHeaderLen + c.staleness.Width() + c.roa.Width() + len(content)
			require.Len(t, data, want)

			rec, err := DecodeV2("ownerKey111", URL, data)
			require.NoError(t, err)
			assert.Equal(t, "ownerKey111", rec.CurrentOwner)
			assert.Equal(t, c.staleness, rec.StalenessVal)
			assert.Equal(t, c.roa, rec.RoaVal)
			assert.Equal(t, "hello", rec.Content)
		})
	}
}

func TestDecodeV2Truncation(t *testing.T) {
	full := buildV2(ValidationEthereum, ValidationSolana,
		seq(20, 1), seq(32, 101), []byte("content"))

	// Truncating anywhere below the computed total must yield InvalidRecord,
	// never a panic or an out-of-bounds read.
	for n := 0; n < len(full); n++ {
		_, err := DecodeV2("owner", URL, full[:n])
		require.Error(t, err, "length %d", n)
		assert.Equal(t, rpcerror.InvalidRecord, rpcerror.FromErr(err).Kind, "length %d", n)
	}

	_, err := DecodeV2("owner", URL, full)
	assert.NoError(t, err)
}

func TestDecodeV2UnknownValidationTag(t *testing.T) {
	data := buildV2(ValidationNone, ValidationNone, nil, nil, nil)
	binary.LittleEndian.PutUint16(data[HeaderLen:], 9)

	_, err := DecodeV2("owner", URL, data)
	require.Error(t, err)
	assert.Equal(t, rpcerror.InvalidRecord, rpcerror.FromErr(err).Kind)
}

func TestEthereumIdentityRoundTrip(t *testing.T) {
	raw := seq(20, 0xA0)
	// Pure function: same bytes, same lowercase hex, every call.
	first, err := ValidationEthereum.RenderIdentity(raw)
	require.NoError(t, err)
	second, err := ValidationEthereum.RenderIdentity(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "0xa0a1a2a3a4a5a6a7a8a9aaabacadaeafb0b1b2b3", first)
}

func TestXChainIdentityShape(t *testing.T) {
	raw := make([]byte, 34)
	binary.LittleEndian.PutUint16(raw[:2], 56)
	copy(raw[2:], seq(32, 1))

	rendered, err := ValidationXChain.RenderIdentity(raw)
	require.NoError(t, err)

	var parsed struct {
		ChainID  uint16 `json:"chainId"`
		OwnerKey []int  `json:"ownerKey"`
	}
	require.NoError(t, json.Unmarshal([]byte(rendered), &parsed))
	assert.Equal(t, uint16(56), parsed.ChainID)
	require.Len(t, parsed.OwnerKey, 32)
	assert.Equal(t, 1, parsed.OwnerKey[0])
	assert.Equal(t, 32, parsed.OwnerKey[31])
}

func TestSupportedRecordsFixedList(t *testing.T) {
	require.Len(t, Supported, 20)
	assert.Equal(t, IPFS, Supported[0])
	assert.Equal(t, Backpack, Supported[19])

	_, err := Parse("github")
	assert.NoError(t, err)
	_, err = Parse("myspace")
	require.Error(t, err)
	assert.Equal(t, rpcerror.InvalidRecord, rpcerror.FromErr(err).Kind)
}
