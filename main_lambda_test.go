//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, body string, b64 bool) events.LambdaFunctionURLResponse {
	t.Helper()
	if b64 {
		body = base64.StdEncoding.EncodeToString([]byte(body))
	}
	resp, err := handler(context.Background(), events.LambdaFunctionURLRequest{Body: body, IsBase64Encoded: b64})
	require.NoError(t, err)
	return resp
}

func TestHandler_Search(t *testing.T) {
	lambdaLog.SetOutput(io.Discard)
	asm := symmetricAssembly()
	b, err := json.Marshal(map[string]any{"target": asm.Totals().Force, "count": 2, "quadrants": asm})
	require.NoError(t, err)

	resp := invoke(t, string(b), true)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
	var r Report
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &r))
	assert.NotEmpty(t, r.Results)
	assert.LessOrEqual(t, len(r.Results), 2)
}

func TestHandler_Modes(t *testing.T) {
	resp := invoke(t, `{"mode": "spring", "n": 1}`, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = invoke(t, `{"mode": "spring", "ssd": 3}`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = invoke(t, `{"mode": "optimize"}`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "unknown mode")

	resp = invoke(t, `{"target": 1, "quadrants": [{}]}`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = invoke(t, `not json`, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
