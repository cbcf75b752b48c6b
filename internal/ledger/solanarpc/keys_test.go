package solanarpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns/record"
)

func TestDomainKeyDeterministic(t *testing.T) {
	c := &Client{}

	a, err := c.DomainKey("bonfida")
	require.NoError(t, err)
	b, err := c.DomainKey("bonfida")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// The .sol suffix is stripped before hashing.
	withSuffix, err := c.DomainKey("bonfida.sol")
	require.NoError(t, err)
	assert.Equal(t, a, withSuffix)

	other, err := c.DomainKey("bonfidb")
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestSubdomainAndRecordPrefixesDiffer(t *testing.T) {
	c := &Client{}

	sub, err := c.DomainKey("dex.bonfida")
	require.NoError(t, err)
	rec, err := c.RecordDomainKey("bonfida", "dex")
	require.NoError(t, err)

	// Same labels, different name prefix byte, so different accounts.
	assert.NotEqual(t, sub, rec)

	parent, err := c.DomainKey("bonfida")
	require.NoError(t, err)
	assert.NotEqual(t, parent, sub)
}

func TestRecordKeyV2DiffersFromV1(t *testing.T) {
	c := &Client{}

	v1, err := c.RecordDomainKey("bonfida", "SOL")
	require.NoError(t, err)
	v2, err := c.RecordKeyV2("bonfida", record.SOL)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)
}

func TestReverseKeyDiffersFromDomainKey(t *testing.T) {
	c := &Client{}

	key, err := c.DomainKey("bonfida")
	require.NoError(t, err)
	rev, err := c.ReverseKey("bonfida")
	require.NoError(t, err)
	assert.NotEqual(t, key, rev)
}

func TestInvalidDomains(t *testing.T) {
	c := &Client{}

	for _, domain := range []string{"", ".sol", "a.b.c"} {
		_, err := c.DomainKey(domain)
		require.Error(t, err, "domain %q", domain)
		assert.Equal(t, rpcerror.InvalidDomain, rpcerror.FromErr(err).Kind)
	}
}
