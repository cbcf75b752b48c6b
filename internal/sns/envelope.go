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
	"encoding/json"

	"github.com/Bonfida/sns-quicknode/internal/rpcerror"
)

// ProtocolVersion is the only accepted jsonrpc field value.
const ProtocolVersion = "2.0"

// Envelope is a single JSON-RPC request. The id is kept raw so that the
// response echoes it byte for byte, whatever JSON value the caller sent.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  Method          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// DecodeEnvelope parses a request body. A body that is not a JSON-RPC 2.0
// object at all is MalformedRequest; a well-formed envelope with an unknown
// method decodes successfully and fails later at dispatch, keeping the id.
// The envelope is returned even on failure, carrying whatever id was
// recovered from the body, so error replies can echo it.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		env.ID = extractID(body)
		return &env, rpcerror.Wrap(rpcerror.MalformedRequest, err)
	}
	if env.JSONRPC != ProtocolVersion {
		return &env, rpcerror.Newf(rpcerror.MalformedRequest, "unsupported protocol version %q", env.JSONRPC)
	}
	return &env, nil
}

// extractID salvages the id field from a body that failed envelope decoding,
// for example because another field carried the wrong type. A body that is
// not a JSON object yields nil, which serializes as a null id.
func extractID(body []byte) json.RawMessage {
	var partial struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(body, &partial); err != nil {
		return nil
	}
	return partial.ID
}

// Response is a JSON-RPC success reply.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  any             `json:"result"`
	ID      json.RawMessage `json:"id"`
}

// ErrorResponse is a JSON-RPC error reply.
type ErrorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Error   ErrorBody       `json:"error"`
	ID      json.RawMessage `json:"id"`
}

// ErrorBody is the code and message pair inside an error reply.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewResponse wraps a handler result for the given request id.
func NewResponse(id json.RawMessage, result any) Response {
	return Response{JSONRPC: ProtocolVersion, Result: result, ID: normalizeID(id)}
}

// NewErrorResponse renders an error for the given request id. Only the
// public code and message cross the wire; the trace stays in the logs.
func NewErrorResponse(id json.RawMessage, err *rpcerror.Error) ErrorResponse {
	return ErrorResponse{
		JSONRPC: ProtocolVersion,
		Error:   ErrorBody{Code: err.Code(), Message: err.Message()},
		ID:      normalizeID(id),
	}
}

// normalizeID maps an absent id to an explicit null so the field always
// serializes.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}
