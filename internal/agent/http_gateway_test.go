package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_Success(t *testing.T) {
	var got httpRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"response": {"status": "success", "result": {"campaign_title": "X"}},
			"module_outputs": {"artifact_files": [{"file_url": "https://cdn/a.png"}]}
		}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(HTTPConfig{BaseURL: srv.URL, APIKey: "secret", Timeout: 5 * time.Second})
	resp, err := g.Invoke(context.Background(), "make a campaign", "agent-1")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "make a campaign", got.Message)
	assert.Equal(t, "agent-1", got.AgentID)
	assert.True(t, resp.Success)
	assert.Equal(t, map[string]any{"campaign_title": "X"}, resp.Payload())
	require.Len(t, resp.Artifacts(), 1)
	assert.Equal(t, "https://cdn/a.png", resp.Artifacts()[0].FileURL)
}

func TestHTTPGateway_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"backend error envelope", http.StatusOK, `{"success": false, "error": "quota exceeded"}`, "quota exceeded"},
		{"failure without message", http.StatusOK, `{"success": false}`, "agent reported failure"},
		{"non-2xx with envelope", http.StatusBadGateway, `{"success": false, "error": "upstream down"}`, "upstream down"},
		{"non-2xx plain body", http.StatusInternalServerError, `oops`, "agent backend returned status 500"},
		{"undecodable 2xx", http.StatusOK, `<html>`, "invalid agent response"},
		{"array body", http.StatusOK, `[{"success": true}]`, "invalid agent response"},
		{"null body", http.StatusOK, `null`, "invalid agent response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := NewHTTPGateway(HTTPConfig{BaseURL: srv.URL}).Invoke(context.Background(), "p", "a")
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, tt.wantErr)
		})
	}
}

func TestHTTPGateway_MistypedSideFieldsKeepSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"success": true,
			"response": {"result": {"campaign_title": "X"}},
			"module_outputs": {"artifact_files": [
				{"file_url": 42},
				"not-an-object",
				{"file_url": ""},
				{"file_url": "https://cdn/ok.png", "size": "big"}
			], "extra": [1, 2]}
		}`))
	}))
	defer srv.Close()

	resp, err := NewHTTPGateway(HTTPConfig{BaseURL: srv.URL}).Invoke(context.Background(), "p", "a")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]any{"campaign_title": "X"}, resp.Payload())
	require.Len(t, resp.Artifacts(), 1)
	assert.Equal(t, "https://cdn/ok.png", resp.Artifacts()[0].FileURL)
}

func TestHTTPGateway_ModuleOutputsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"module outputs is a string", `{"success": true, "response": "ok", "module_outputs": "none"}`},
		{"artifact files is a number", `{"success": true, "response": "ok", "module_outputs": {"artifact_files": 7}}`},
		{"module outputs is null", `{"success": true, "response": "ok", "module_outputs": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := NewHTTPGateway(HTTPConfig{BaseURL: srv.URL}).Invoke(context.Background(), "p", "a")
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, "ok", resp.Payload())
			assert.Empty(t, resp.Artifacts())
		})
	}
}

func TestHTTPGateway_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resp, err := NewHTTPGateway(HTTPConfig{BaseURL: url, Timeout: time.Second}).Invoke(context.Background(), "p", "a")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "request failed")
}

func TestHTTPGateway_BadURL(t *testing.T) {
	_, err := NewHTTPGateway(HTTPConfig{BaseURL: "://bad"}).Invoke(context.Background(), "p", "a")
	assert.Error(t, err)
}

func TestResponsePayload(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want any
	}{
		{"nil response", nil, nil},
		{"string response", &Response{Response: "raw text"}, "raw text"},
		{"result key", &Response{Response: map[string]any{"result": "inner"}}, "inner"},
		{"empty result falls back", &Response{Response: map[string]any{"result": "", "x": 1.0}}, map[string]any{"result": "", "x": 1.0}},
		{"null result falls back", &Response{Response: map[string]any{"result": nil}}, map[string]any{"result": nil}},
		{"no result key", &Response{Response: map[string]any{"campaign_title": "t"}}, map[string]any{"campaign_title": "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resp.Payload())
		})
	}
}
