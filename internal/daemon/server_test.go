// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package daemon

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/propensive/digression/internal/errors"
)

func TestRewriteRPC(t *testing.T) {
	server := NewServer(Config{})
	r := httptest.NewRequest("POST", "/rpc", nil)

	var resp RewriteResponse
	err := server.Rewrite(r, &RewriteRequest{Name: "Foo$anonfun$bar$1"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "Fooλbar₁", resp.Display)

	err = server.Rewrite(r, &RewriteRequest{Name: "<init>", Method: true}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "ⲛ()", resp.Display)
}

func TestValidateRPC(t *testing.T) {
	server := NewServer(Config{})
	r := httptest.NewRequest("POST", "/rpc", nil)

	var resp ValidateResponse
	err := server.Validate(r, &ValidateRequest{Name: "com.example.Foo"}, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, "Foo", resp.ClassName)
	assert.Equal(t, "com.example", resp.PackageName)

	resp = ValidateResponse{}
	err = server.Validate(r, &ValidateRequest{Name: "1bad.name"}, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "invalid_start", resp.Kind)
	assert.NotEmpty(t, resp.Reason)
}

func TestAssembleRPC(t *testing.T) {
	server := NewServer(Config{})
	r := httptest.NewRequest("POST", "/rpc", nil)

	input := "com.example.Boom: x\n" +
		"\tat com.example.A.b(A.scala:1)\n" +
		"Caused by: com.example.Root\n" +
		"\tat com.example.C.d(C.scala:2)\n"

	var resp AssembleResponse
	err := server.Assemble(r, &AssembleRequest{Text: input}, &resp)
	require.NoError(t, err)
	require.NotNil(t, resp.Trace)

	assert.Equal(t, "com.example", resp.Trace.Component)
	assert.Equal(t, "Boom", resp.Trace.ClassName)
	require.Equal(t, 1, len(resp.Trace.Frames))
	assert.Equal(t, "b()", resp.Trace.Frames[0].MethodName)
	require.NotNil(t, resp.Trace.Cause)
	assert.Equal(t, "Root", resp.Trace.Cause.ClassName)
}

func TestAssembleRPC_EmptyInput(t *testing.T) {
	server := NewServer(Config{})
	r := httptest.NewRequest("POST", "/rpc", nil)

	var resp AssembleResponse
	err := server.Assemble(r, &AssembleRequest{}, &resp)
	assert.ErrorIs(t, err, apperrors.ErrEmptyTrace)
}

func TestLegendRPC(t *testing.T) {
	server := NewServer(Config{})
	r := httptest.NewRequest("POST", "/rpc", nil)

	var resp LegendResponse
	err := server.Legend(r, &LegendRequest{}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "anonymous function", resp.Glyphs["λ"])
	assert.NotEmpty(t, resp.Glyphs["ⲛ"])
}

func TestAuthentication(t *testing.T) {
	server := NewServer(Config{AuthToken: "secret123"})

	var resp RewriteResponse
	req := &RewriteRequest{Name: "x"}

	r := httptest.NewRequest("POST", "/rpc", nil)
	err := server.Rewrite(r, req, &resp)
	assert.Error(t, err, "missing token must be rejected")

	r = httptest.NewRequest("POST", "/rpc", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	err = server.Rewrite(r, req, &resp)
	assert.Error(t, err, "wrong token must be rejected")

	r = httptest.NewRequest("POST", "/rpc", nil)
	r.Header.Set("Authorization", "Bearer secret123")
	err = server.Rewrite(r, req, &resp)
	assert.NoError(t, err)

	r = httptest.NewRequest("POST", "/rpc", nil)
	r.Header.Set("Authorization", "secret123")
	err = server.Rewrite(r, req, &resp)
	assert.NoError(t, err, "raw token must also be accepted")
}

func TestHandlerServesDigressionServiceName(t *testing.T) {
	server := NewServer(Config{})
	handler, err := server.handler()
	require.NoError(t, err)

	body := `{"jsonrpc":"2.0","method":"Digression.Rewrite","params":[{"name":"Foo$anonfun$bar$1"}],"id":1}`
	r := httptest.NewRequest("POST", "/rpc", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, 200, w.Code)

	var reply struct {
		Result *RewriteResponse `json:"result"`
		Error  json.RawMessage  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.Nil(t, reply.Error, "RPC error: %s", reply.Error)
	require.NotNil(t, reply.Result)
	assert.Equal(t, "Fooλbar₁", reply.Result.Display)
}

func TestHandlerHealthEndpoint(t *testing.T) {
	server := NewServer(Config{})
	handler, err := server.handler()
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
