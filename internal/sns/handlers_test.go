package sns

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Bonfida/sns-quicknode/internal/ledger"
	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
	"github.com/Bonfida/sns-quicknode/internal/sns/record"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) GetAccount(ctx context.Context, key solana.PublicKey) (*ledger.Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *mockClient) GetAccounts(ctx context.Context, keys ...solana.PublicKey) ([]*ledger.Account, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Account), args.Error(1)
}

func (m *mockClient) DomainKey(domain string) (solana.PublicKey, error) {
	args := m.Called(domain)
	return args.Get(0).(solana.PublicKey), args.Error(1)
}

func (m *mockClient) RecordDomainKey(domain, rec string) (solana.PublicKey, error) {
	args := m.Called(domain, rec)
	return args.Get(0).(solana.PublicKey), args.Error(1)
}

func (m *mockClient) RecordKeyV2(domain string, rec record.Kind) (solana.PublicKey, error) {
	args := m.Called(domain, rec)
	return args.Get(0).(solana.PublicKey), args.Error(1)
}

func (m *mockClient) ReverseKey(domain string) (solana.PublicKey, error) {
	args := m.Called(domain)
	return args.Get(0).(solana.PublicKey), args.Error(1)
}

func (m *mockClient) ResolveOwner(ctx context.Context, domain string) (solana.PublicKey, error) {
	args := m.Called(ctx, domain)
	return args.Get(0).(solana.PublicKey), args.Error(1)
}

func (m *mockClient) DomainsForOwner(ctx context.Context, owner solana.PublicKey) ([]solana.PublicKey, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]solana.PublicKey), args.Error(1)
}

func (m *mockClient) ReverseLookup(ctx context.Context, key solana.PublicKey) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockClient) ReverseLookupBatch(ctx context.Context, keys []solana.PublicKey) ([]string, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockClient) Subdomains(ctx context.Context, domain string) ([]string, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockClient) FavouriteDomain(ctx context.Context, owner solana.PublicKey) (*solana.PublicKey, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*solana.PublicKey), args.Error(1)
}

func (m *mockClient) RegistrationTransaction(ctx context.Context, params ledger.RegistrationParams) ([]byte, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func kindOf(err error) rpcerror.Kind {
	return rpcerror.FromErr(err).Kind
}

var (
	testOwner  = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	testKeyA   = solana.MustPublicKeyFromBase58("58PwtjSDuFHuUkYjH9BYnnQKHfwo9reZhC2zMJv9JPkx")
	testKeyB   = solana.MustPublicKeyFromBase58("33m47vH6Eav6jr5Ry86XjhRft2jRBLDnDgPSHoquXi2Z")
	anyContext = mock.Anything
)

// TestPurpose: Validates that domain resolution returns the owner address as
// a base58 string for both positional and named parameter shapes.
// Scope: Unit Test
// Expected: Both shapes dispatch to the same handler and yield the owner.
// Test Case ID: SNS-01
func TestResolveDomain_ParamShapes(t *testing.T) {
	for _, params := range []string{`["bonfida"]`, `{"domain":"bonfida"}`} {
		cli := new(mockClient)
		cli.On("ResolveOwner", anyContext, "bonfida").Return(testOwner, nil)

		result, err := Dispatch(context.Background(), cli, MethodResolveDomain, json.RawMessage(params))
		require.NoError(t, err)
		assert.Equal(t, testOwner.String(), result)
		cli.AssertExpectations(t)
	}
}

// TestPurpose: Validates the positional decoding asymmetry: an absent slot is
// a missing parameter while a present slot of the wrong type is invalid.
// Scope: Unit Test
// Expected: Empty array maps to MissingParameters, a number maps to
// InvalidParameters, and the named shape reports only InvalidParameters.
// Test Case ID: SNS-02
func TestParamErrors_MissingVersusInvalid(t *testing.T) {
	cli := new(mockClient)

	_, err := Dispatch(context.Background(), cli, MethodResolveDomain, json.RawMessage(`[]`))
	assert.Equal(t, rpcerror.MissingParameters, kindOf(err))

	_, err = Dispatch(context.Background(), cli, MethodResolveDomain, json.RawMessage(`[42]`))
	assert.Equal(t, rpcerror.InvalidParameters, kindOf(err))

	_, err = Dispatch(context.Background(), cli, MethodResolveDomain, json.RawMessage(`[null]`))
	assert.Equal(t, rpcerror.InvalidParameters, kindOf(err))

	_, err = Dispatch(context.Background(), cli, MethodResolveDomain, json.RawMessage(`{}`))
	assert.Equal(t, rpcerror.InvalidParameters, kindOf(err))

	_, err = Dispatch(context.Background(), cli, MethodResolveDomain, json.RawMessage(`{"domain":7}`))
	assert.Equal(t, rpcerror.InvalidParameters, kindOf(err))
}

// TestPurpose: Validates that a null optional positional element reads as
// absent rather than as a type error.
// Scope: Unit Test
// Expected: ["bonfida", null] selects the domain account, not a record.
// Test Case ID: SNS-03
func TestGetDomainData_NullOptionalRecord(t *testing.T) {
	cli := new(mockClient)
	cli.On("DomainKey", "bonfida").Return(testKeyA, nil)
	payload := append(make([]byte, record.HeaderLen), 0xAB, 0xCD)
	cli.On("GetAccount", anyContext, testKeyA).Return(&ledger.Account{Data: payload}, nil)

	result, err := Dispatch(context.Background(), cli, MethodGetDomainData, json.RawMessage(`["bonfida", null]`))
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xAB, 0xCD}), result)
	cli.AssertExpectations(t)
}

// TestPurpose: Validates that an absent account yields a null result rather
// than an error.
// Scope: Unit Test
// Expected: nil account maps to a nil result with no error.
// Test Case ID: SNS-04
func TestGetDomainData_AbsentAccountIsNull(t *testing.T) {
	cli := new(mockClient)
	cli.On("RecordDomainKey", "bonfida", "url").Return(testKeyA, nil)
	cli.On("GetAccount", anyContext, testKeyA).Return(nil, nil)

	result, err := Dispatch(context.Background(), cli, MethodGetDomainData, json.RawMessage(`["bonfida", "url"]`))
	require.NoError(t, err)
	assert.Nil(t, result)
}

// TestPurpose: Validates the all-or-nothing contract of the owner listing:
// one missing reverse record fails the whole call.
// Scope: Unit Test
// Expected: A complete batch returns key/domain pairs; a batch with one
// empty name fails with ReverseRecordNotFound.
// Test Case ID: SNS-05
func TestGetAllDomainsForOwner_AllOrNothing(t *testing.T) {
	params := json.RawMessage(`{"owner":"` + testOwner.String() + `"}`)
	keys := []solana.PublicKey{testKeyA, testKeyB}

	cli := new(mockClient)
	cli.On("DomainsForOwner", anyContext, testOwner).Return(keys, nil)
	cli.On("ReverseLookupBatch", anyContext, keys).Return([]string{"alpha", "beta"}, nil)

	result, err := Dispatch(context.Background(), cli, MethodGetAllDomainsForOwner, params)
	require.NoError(t, err)
	domains := result.([]ownedDomain)
	require.Len(t, domains, 2)
	assert.Equal(t, testKeyA.String(), domains[0].Key)
	assert.Equal(t, "alpha", domains[0].Domain)
	assert.Equal(t, "beta", domains[1].Domain)

	cli = new(mockClient)
	cli.On("DomainsForOwner", anyContext, testOwner).Return(keys, nil)
	cli.On("ReverseLookupBatch", anyContext, keys).Return([]string{"alpha", ""}, nil)

	_, err = Dispatch(context.Background(), cli, MethodGetAllDomainsForOwner, params)
	assert.Equal(t, rpcerror.ReverseRecordNotFound, kindOf(err))
}

// TestPurpose: Validates V2 record retrieval over the paired account fetch.
// Scope: Unit Test
// Expected: An absent record account is a null result; a present record
// decodes with the domain owner from the domain account header.
// Test Case ID: SNS-06
func TestGetDomainDataV2(t *testing.T) {
	params := json.RawMessage(`["bonfida", "url"]`)

	cli := new(mockClient)
	cli.On("DomainKey", "bonfida").Return(testKeyA, nil)
	cli.On("RecordKeyV2", "bonfida", record.URL).Return(testKeyB, nil)
	cli.On("GetAccounts", anyContext, []solana.PublicKey{testKeyA, testKeyB}).
		Return([]*ledger.Account{{Data: make([]byte, record.HeaderLen)}, nil}, nil)

	result, err := Dispatch(context.Background(), cli, MethodGetDomainDataV2, params)
	require.NoError(t, err)
	assert.Nil(t, result)

	domainData := make([]byte, record.HeaderLen)
	copy(domainData[32:64], testOwner.Bytes())

	content := []byte("https://bonfida.org")
	recordData := make([]byte, record.HeaderLen+record.RecordHeaderLen+len(content))
	recordData[record.HeaderLen+4] = byte(len(content))
	copy(recordData[record.HeaderLen+record.RecordHeaderLen:], content)

	cli = new(mockClient)
	cli.On("DomainKey", "bonfida").Return(testKeyA, nil)
	cli.On("RecordKeyV2", "bonfida", record.URL).Return(testKeyB, nil)
	cli.On("GetAccounts", anyContext, []solana.PublicKey{testKeyA, testKeyB}).
		Return([]*ledger.Account{{Data: domainData}, {Data: recordData}}, nil)

	result, err = Dispatch(context.Background(), cli, MethodGetDomainDataV2, params)
	require.NoError(t, err)
	decoded := result.(*record.V2)
	assert.Equal(t, testOwner.String(), decoded.CurrentOwner)
	assert.Equal(t, "https://bonfida.org", decoded.Content)
}

// TestPurpose: Validates that V2 retrieval rejects a missing record name and
// an unknown record name before touching the backend.
// Scope: Unit Test
// Expected: MissingParameters without a record, InvalidRecord for "frobnicate".
// Test Case ID: SNS-07
func TestGetDomainDataV2_RecordValidation(t *testing.T) {
	cli := new(mockClient)

	_, err := Dispatch(context.Background(), cli, MethodGetDomainDataV2, json.RawMessage(`["bonfida"]`))
	assert.Equal(t, rpcerror.MissingParameters, kindOf(err))

	_, err = Dispatch(context.Background(), cli, MethodGetDomainDataV2, json.RawMessage(`["bonfida", "frobnicate"]`))
	assert.Equal(t, rpcerror.InvalidRecord, kindOf(err))
}

// TestPurpose: Validates the supported-record listing and its fixed ordering.
// Scope: Unit Test
// Expected: Twenty names, IPFS first, backpack last.
// Test Case ID: SNS-08
func TestGetSupportedRecords(t *testing.T) {
	result, err := Dispatch(context.Background(), new(mockClient), MethodGetSupportedRecords, nil)
	require.NoError(t, err)
	names := result.([]string)
	require.Len(t, names, 20)
	assert.Equal(t, "IPFS", names[0])
	assert.Equal(t, "backpack", names[19])
}

// TestPurpose: Validates registration transaction building, including the
// optional mint and referrer and the base64 serialization of the result.
// Scope: Unit Test
// Expected: Decoded params reach the client intact; the raw bytes come back
// base64 encoded.
// Test Case ID: SNS-09
func TestGetRegistrationTransaction(t *testing.T) {
	params := json.RawMessage(`["bonfida", "` + testOwner.String() + `", "` + testKeyA.String() + `", 1024]`)

	cli := new(mockClient)
	cli.On("RegistrationTransaction", anyContext, mock.MatchedBy(func(p ledger.RegistrationParams) bool {
		return p.Domain == "bonfida" && p.Buyer == testOwner &&
			p.BuyerTokenAccount == testKeyA && p.Space == 1024 &&
			p.Mint == nil && p.Referrer == nil
	})).Return([]byte{1, 2, 3}, nil)

	result, err := Dispatch(context.Background(), cli, MethodGetRegistrationTransaction, params)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), result)

	_, err = Dispatch(context.Background(), cli, MethodGetRegistrationTransaction,
		json.RawMessage(`["bonfida", "not-a-key", "`+testKeyA.String()+`", 1024]`))
	assert.Equal(t, rpcerror.InvalidParameters, kindOf(err))

	_, err = Dispatch(context.Background(), cli, MethodGetRegistrationTransaction,
		json.RawMessage(`["bonfida", "`+testOwner.String()+`", "`+testKeyA.String()+`"]`))
	assert.Equal(t, rpcerror.MissingParameters, kindOf(err))
}

// TestPurpose: Validates favourite domain lookup including the unset case.
// Scope: Unit Test
// Expected: nil favourite renders as a null result.
// Test Case ID: SNS-10
func TestGetFavouriteDomain(t *testing.T) {
	params := json.RawMessage(`["` + testOwner.String() + `"]`)

	cli := new(mockClient)
	fav := testKeyA
	cli.On("FavouriteDomain", anyContext, testOwner).Return(&fav, nil)
	result, err := Dispatch(context.Background(), cli, MethodGetFavouriteDomain, params)
	require.NoError(t, err)
	assert.Equal(t, testKeyA.String(), result)

	cli = new(mockClient)
	cli.On("FavouriteDomain", anyContext, testOwner).Return(nil, nil)
	result, err = Dispatch(context.Background(), cli, MethodGetFavouriteDomain, params)
	require.NoError(t, err)
	assert.Nil(t, result)
}

// TestPurpose: Validates that unknown methods fail dispatch with the
// method-not-found classification while preserving envelope decoding.
// Scope: Unit Test
// Expected: UnsupportedEndpoint from Dispatch; DecodeEnvelope keeps the id.
// Test Case ID: SNS-11
func TestDispatch_UnknownMethod(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"jsonrpc":"2.0","method":"sns_fooBar","params":[],"id":7}`))
	require.NoError(t, err)
	assert.Equal(t, MethodUnsupported, env.Method)
	assert.Equal(t, json.RawMessage(`7`), env.ID)

	_, err = Dispatch(context.Background(), new(mockClient), env.Method, env.Params)
	assert.Equal(t, rpcerror.UnsupportedEndpoint, kindOf(err))
}

// TestPurpose: Validates envelope version pinning and id echo on responses.
// Scope: Unit Test
// Expected: jsonrpc "1.0" is malformed; string and object ids echo verbatim;
// an absent id serializes as null; decode failures still surface the id.
// Test Case ID: SNS-12
func TestEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"jsonrpc":"1.0","method":"sns_resolveDomain","id":5}`))
	assert.Equal(t, rpcerror.MalformedRequest, kindOf(err))
	assert.Equal(t, json.RawMessage(`5`), env.ID)

	env, err = DecodeEnvelope([]byte(`{"jsonrpc":"2.0","method":17,"id":"req-3"}`))
	assert.Equal(t, rpcerror.MalformedRequest, kindOf(err))
	assert.Equal(t, json.RawMessage(`"req-3"`), env.ID)

	env, err = DecodeEnvelope([]byte(`not json`))
	assert.Equal(t, rpcerror.MalformedRequest, kindOf(err))
	assert.Empty(t, env.ID)

	resp := NewResponse(json.RawMessage(`"abc"`), "ok")
	out, marshalErr := json.Marshal(resp)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"jsonrpc":"2.0","result":"ok","id":"abc"}`, string(out))

	errResp := NewErrorResponse(nil, rpcerror.New(rpcerror.InvalidDomain))
	out, marshalErr = json.Marshal(errResp)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"jsonrpc":"2.0","error":{"code":-32602,"message":"Invalid Domain"},"id":null}`, string(out))
}
