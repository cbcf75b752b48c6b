package rpcerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
		code   int
	}{
		{InvalidAuthentication, http.StatusUnauthorized, CodeInvalidRequest},
		{ProvisioningRecordNotFound, http.StatusUnauthorized, CodeInvalidRequest},
		{UnsupportedEndpoint, http.StatusNotFound, CodeMethodNotFound},
		{UnsupportedMethod, http.StatusInternalServerError, CodeMethodNotFound},
		{MalformedRequest, http.StatusBadRequest, CodeInvalidParams},
		{InvalidParameters, http.StatusBadRequest, CodeInvalidParams},
		{MissingParameters, http.StatusBadRequest, CodeInvalidParams},
		{InvalidDomain, http.StatusBadRequest, CodeInvalidParams},
		{InvalidRecord, http.StatusBadRequest, CodeInvalidParams},
		{Generic, http.StatusInternalServerError, CodeServerError},
		{DbError, http.StatusInternalServerError, CodeServerError},
		{SolanaRpcError, http.StatusInternalServerError, CodeServerError},
		{DomainNotFound, http.StatusInternalServerError, CodeServerError},
		{ReverseRecordNotFound, http.StatusInternalServerError, CodeServerError},
	}
	for _, c := range cases {
		err := New(c.kind)
		assert.Equal(t, c.status, err.HTTPStatus(), "status for kind %d", c.kind)
		assert.Equal(t, c.code, err.Code(), "code for kind %d", c.kind)
	}
}

func TestUnsupportedMethodStatus(t *testing.T) {
	// UnsupportedMethod is not in the 4xx mapping set: it falls through to 500
	// while still carrying the MethodNotFound JSON-RPC code. The dispatcher
	// reports unknown method names as UnsupportedEndpoint instead.
	err := New(UnsupportedMethod)
	assert.Equal(t, CodeMethodNotFound, err.Code())
}

func TestTraceAccumulates(t *testing.T) {
	err := New(DbError)
	require.Len(t, err.Trace, 1)

	err = err.AppendTrace().AppendInfo("pool exhausted")
	err = err.AppendTrace()
	assert.Len(t, err.Trace, 3)
	assert.Equal(t, []string{"pool exhausted"}, err.Info)

	// Earlier breadcrumbs are never replaced.
	first := err.Trace[0]
	err.AppendTrace()
	assert.Equal(t, first, err.Trace[0])
}

func TestWrapPreservesKind(t *testing.T) {
	inner := New(InvalidDomain)
	wrapped := Wrap(DbError, inner)
	assert.Equal(t, InvalidDomain, wrapped.Kind)
	assert.Len(t, wrapped.Trace, 2)

	plain := Wrap(SolanaRpcError, errors.New("connection refused"))
	assert.Equal(t, SolanaRpcError, plain.Kind)
	assert.Equal(t, []string{"connection refused"}, plain.Info)
}

func TestMessageNeverExposesTrace(t *testing.T) {
	err := Newf(DbError, "dsn=postgres://secret@host").AppendTrace()
	assert.Equal(t, "Internal error", err.Error())
	assert.NotContains(t, err.Error(), "secret")
	assert.Contains(t, err.FullTrace(), "dsn=postgres://secret@host")
}
