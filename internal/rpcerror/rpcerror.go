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

// Package rpcerror defines the closed error taxonomy of the gateway and its
// mapping to HTTP statuses and JSON-RPC error codes. Errors accumulate a trace
// of call sites as they propagate; the trace is logged server-side and never
// rendered to the caller.
package rpcerror

import (
	"fmt"
	"runtime"
	"strings"
)

// Kind identifies one member of the closed error set.
type Kind int

const (
	Generic Kind = iota
	InvalidAuthentication
	DbError
	ProvisioningRecordNotFound
	UnsupportedEndpoint
	UnsupportedMethod
	MalformedRequest
	InvalidParameters
	MissingParameters
	InvalidDomain
	DomainNotFound
	SolanaRpcError
	ReverseRecordNotFound
	InvalidRecord
)

// JSON-RPC 2.0 error codes.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

// Error carries a Kind plus an accumulating breadcrumb trace and optional
// diagnostic info strings. Trace and Info are append-only.
type Error struct {
	Kind  Kind
	Trace []string
	Info  []string
}

// New creates an Error of the given kind, recording the caller as the first
// trace entry.
func New(kind Kind) *Error {
	return &Error{Kind: kind, Trace: []string{callSite(2)}}
}

// Newf creates an Error with one formatted info string.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		Trace: []string{callSite(2)},
		Info:  []string{fmt.Sprintf(format, args...)},
	}
}

// Wrap converts err to an *Error of the given kind, keeping err.Error() as
// diagnostic info. If err is already an *Error its kind is preserved and only
// the trace grows.
func Wrap(kind Kind, err error) *Error {
	if e, ok := err.(*Error); ok {
		e.Trace = append(e.Trace, callSite(2))
		return e
	}
	return &Error{
		Kind:  kind,
		Trace: []string{callSite(2)},
		Info:  []string{err.Error()},
	}
}

// AppendTrace records the caller as a breadcrumb and returns the error.
func (e *Error) AppendTrace() *Error {
	e.Trace = append(e.Trace, callSite(2))
	return e
}

// AppendInfo attaches a diagnostic string and returns the error.
func (e *Error) AppendInfo(info string) *Error {
	e.Info = append(e.Info, info)
	return e
}

// Error implements the error interface. The rendered string is the public
// message only; breadcrumbs stay out of it.
func (e *Error) Error() string {
	return e.Message()
}

// Message is the client-visible message for the kind.
func (e *Error) Message() string {
	switch e.Kind {
	case InvalidAuthentication:
		return "Invalid Authentication"
	case ProvisioningRecordNotFound:
		return "User has not been provisioned"
	case UnsupportedEndpoint:
		return "Unsupported endpoint"
	case UnsupportedMethod:
		return "Unsupported method"
	case MalformedRequest:
		return "Malformed Request"
	case InvalidParameters:
		return "Invalid Parameters"
	case MissingParameters:
		return "Missing Parameters"
	case InvalidDomain:
		return "Invalid Domain"
	case DomainNotFound:
		return "Domain not found"
	case ReverseRecordNotFound:
		return "Reverse record not found"
	case InvalidRecord:
		return "Invalid Record"
	default:
		return "Internal error"
	}
}

// HTTPStatus maps the kind to the HTTP status of the response envelope.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case InvalidAuthentication, ProvisioningRecordNotFound:
		return 401
	case UnsupportedEndpoint:
		return 404
	case MalformedRequest, InvalidParameters, MissingParameters,
		InvalidDomain, InvalidRecord:
		return 400
	default:
		return 500
	}
}

// Code maps the kind to the JSON-RPC error code.
func (e *Error) Code() int {
	switch e.Kind {
	case InvalidAuthentication, ProvisioningRecordNotFound:
		return CodeInvalidRequest
	case UnsupportedEndpoint, UnsupportedMethod:
		return CodeMethodNotFound
	case MalformedRequest, InvalidParameters, MissingParameters,
		InvalidDomain, InvalidRecord:
		return CodeInvalidParams
	default:
		return CodeServerError
	}
}

// FullTrace renders the breadcrumbs and info for server-side logging.
func (e *Error) FullTrace() string {
	var b strings.Builder
	b.WriteString(strings.Join(e.Trace, " <- "))
	if len(e.Info) > 0 {
		b.WriteString(" | ")
		b.WriteString(strings.Join(e.Info, "; "))
	}
	return b.String()
}

// FromErr returns err as an *Error, wrapping unknown error values as Generic.
func FromErr(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: Generic, Trace: []string{callSite(2)}, Info: []string{err.Error()}}
}

func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	// Trim to the last two path elements to keep traces readable.
	parts := strings.Split(file, "/")
	if len(parts) > 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d", file, line)
}
